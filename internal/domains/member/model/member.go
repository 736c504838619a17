package model

import (
	"time"

	"github.com/google/uuid"
)

// Member represents a registered library member
type Member struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
}

// ActiveLoan is one of a member's currently open loans
type ActiveLoan struct {
	LoanID    uuid.UUID `json:"loan_id"`
	BookTitle string    `json:"book_title"`
	DueDate   time.Time `json:"due_date"`
}

// MemberWithLoans is a member plus their open loans, for the members view
type MemberWithLoans struct {
	Member

	ActiveLoans []ActiveLoan `json:"active_loans"`
}
