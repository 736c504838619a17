package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/domains/book/repository"
)

type bookService struct {
	bookRepo repository.BookRepository
}

func NewBookService(bookRepo repository.BookRepository) BookService {
	return &bookService{bookRepo: bookRepo}
}

func (s *bookService) CreateBook(ctx context.Context, req model.CreateBookRequest) (*model.Book, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Build entity
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	book := &model.Book{
		ID:        uuid.New(),
		Title:     req.Title,
		Author:    req.Author,
		Tags:      tags,
		CreatedAt: time.Now(),
	}

	// Step 3: Save
	if err := s.bookRepo.Create(ctx, book); err != nil {
		if errors.Is(err, model.ErrDuplicateTitle) {
			return nil, model.NewDuplicateTitleError()
		}
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	return book, nil
}

func (s *bookService) GetBook(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrBookNotFound) {
			return nil, model.NewBookNotFoundError()
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	return book, nil
}

func (s *bookService) ListBooks(ctx context.Context, search string) ([]*model.BookWithStatus, error) {
	books, err := s.bookRepo.List(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}

func (s *bookService) DeleteBook(ctx context.Context, id uuid.UUID) error {
	if err := s.bookRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrBookNotFound) {
			return model.NewBookNotFoundError()
		}
		return fmt.Errorf("failed to delete book: %w", err)
	}
	return nil
}
