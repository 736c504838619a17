package model

import (
	"time"

	"github.com/google/uuid"
)

// Book statuses. Status is derived from loan rows on read,
// never stored on the book itself.
const (
	StatusAvailable = "available"
	StatusOnLoan    = "on-loan"
)

// Book represents a catalog entry
type Book struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Author         string    `json:"author"`
	Tags           []string  `json:"tags"`
	CoverID        *string   `json:"cover_id"`
	OpenLibraryKey *string   `json:"open_library_key"`
	CreatedAt      time.Time `json:"created_at"`
}

// BookWithStatus is a catalog row enriched with derived lending state
type BookWithStatus struct {
	Book

	Status            string     `json:"status"`
	DueDate           *time.Time `json:"due_date"`
	LoanedToFirstName *string    `json:"loaned_to_first_name"`
	LoanedToLastName  *string    `json:"loaned_to_last_name"`
	WaitlistCount     int        `json:"waitlist_count"`
}
