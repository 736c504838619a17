package model

import "time"

// OverdueEntry is one row of the overdue report: an open loan past its
// due date, with the borrower's name
type OverdueEntry struct {
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	DueDate     time.Time `json:"due_date"`
	DaysOverdue int       `json:"days_overdue"`
}

// TopBook is one row of the popularity ranking, counting all loans
// a book ever had (open and closed)
type TopBook struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	CheckoutCount int    `json:"checkout_count"`
}
