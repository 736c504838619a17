package service

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/loan/model"
)

// LoanService is the lending state machine exposed to the HTTP layer
type LoanService interface {
	// RequestLoan lends the book when it is available, otherwise
	// enqueues the member on its waitlist
	RequestLoan(ctx context.Context, bookID, memberID uuid.UUID) (*model.LoanResult, error)

	// ReturnBook closes the open loan (no-op when none) and promotes
	// the longest-waiting member, if any
	ReturnBook(ctx context.Context, bookID uuid.UUID) (*model.ReturnResult, error)

	// GetWaitlist lists waiting members for a book, FIFO
	GetWaitlist(ctx context.Context, bookID uuid.UUID) ([]model.WaitlistPosition, error)

	// CheckAvailability reports whether a book has no open loan
	CheckAvailability(ctx context.Context, bookID uuid.UUID) (bool, error)
}
