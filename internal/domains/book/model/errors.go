package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeBookNotFound   = "BK001"
	ErrCodeDuplicateTitle = "BK002"
)

// Errors
var (
	ErrBookNotFound   = errors.New("book not found")
	ErrDuplicateTitle = errors.New("book with this title already exists")
)

// BookError custom error type
type BookError struct {
	Code    string
	Message string
	Err     error
}

func (e *BookError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BookError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewBookNotFoundError() *BookError {
	return &BookError{
		Code:    ErrCodeBookNotFound,
		Message: "Book not found",
		Err:     ErrBookNotFound,
	}
}

func NewDuplicateTitleError() *BookError {
	return &BookError{
		Code:    ErrCodeDuplicateTitle,
		Message: "Book with this title already exists",
		Err:     ErrDuplicateTitle,
	}
}
