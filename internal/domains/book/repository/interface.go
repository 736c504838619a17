package repository

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/book/model"
)

// BookRepository is the catalog data-access contract
type BookRepository interface {
	// Create inserts a new book. Titles are unique case-insensitively;
	// a clash fails with model.ErrDuplicateTitle.
	Create(ctx context.Context, book *model.Book) error

	// GetByID gets a book by id
	GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error)

	// List returns catalog rows with derived status, current borrower
	// and waitlist count, optionally filtered by a title search
	List(ctx context.Context, search string) ([]*model.BookWithStatus, error)

	// Delete removes a book; loans and waitlist entries cascade
	Delete(ctx context.Context, id uuid.UUID) error

	// Upsert inserts a book or, on a title clash, refreshes its tags
	// and external metadata. Used by the catalog populate flow.
	Upsert(ctx context.Context, book *model.Book) (*model.Book, error)
}
