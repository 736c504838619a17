package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/loan/model"
)

// =====================================================
// LOAN STORE INTERFACE
// =====================================================

// LoanStore is the persistence contract consumed by the loan engine.
//
// The write path runs entirely inside WithinTx so that availability
// check + loan creation, and close + promote, are each a single atomic
// unit per book. The two standalone reads are snapshot queries.
type LoanStore interface {
	// WithinTx runs fn inside one transaction. Every LoanOperations call
	// made by fn sees and mutates the same consistent state; fn returning
	// an error rolls everything back.
	WithinTx(ctx context.Context, fn func(ops LoanOperations) error) error

	// GetWaitlist lists entries for a book with member names,
	// ordered by joined date ascending
	GetWaitlist(ctx context.Context, bookID uuid.UUID) ([]model.WaitlistPosition, error)

	// HasOpenLoan reports whether an open loan exists for the book
	HasOpenLoan(ctx context.Context, bookID uuid.UUID) (bool, error)
}

// LoanOperations are the store operations available inside a transaction
type LoanOperations interface {
	// LockBook takes a row lock on the book for the rest of the
	// transaction. Returns false when the book does not exist.
	// Concurrent transactions touching the same book serialize here.
	LockBook(bookID uuid.UUID) (bool, error)

	// FindOpenLoan returns the open loan for the book, or nil
	FindOpenLoan(bookID uuid.UUID) (*model.Loan, error)

	// CreateLoan inserts a new loan row
	CreateLoan(loan *model.Loan) error

	// CloseOpenLoan sets the return date on the book's open loan.
	// Returns false when no open loan existed (treated as a no-op
	// by the engine, not an error).
	CloseOpenLoan(bookID uuid.UUID, returnedAt time.Time) (bool, error)

	// NextInWaitlist returns the earliest waitlist entry for the book
	// by joined date (id as tie-break), or nil when nobody is waiting
	NextInWaitlist(bookID uuid.UUID) (*model.WaitlistEntry, error)

	// AddToWaitlist inserts a waitlist entry. Fails with
	// model.ErrAlreadyOnWaitlist when the (book, member) pair
	// already has one.
	AddToWaitlist(entry *model.WaitlistEntry) error

	// RemoveFromWaitlist deletes the entry that was promoted
	RemoveFromWaitlist(entryID uuid.UUID) error
}
