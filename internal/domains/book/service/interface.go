package service

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/book/model"
)

// BookService is the catalog business logic
type BookService interface {
	CreateBook(ctx context.Context, req model.CreateBookRequest) (*model.Book, error)
	GetBook(ctx context.Context, id uuid.UUID) (*model.Book, error)
	ListBooks(ctx context.Context, search string) ([]*model.BookWithStatus, error)
	DeleteBook(ctx context.Context, id uuid.UUID) error
}
