package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeBookNotFound      = "LN001"
	ErrCodeAlreadyOnWaitlist = "LN002"
	ErrCodeMemberNotFound    = "LN003"
)

// Errors
var (
	ErrBookNotFound      = errors.New("book not found")
	ErrAlreadyOnWaitlist = errors.New("already on the waitlist for this book")
	ErrMemberNotFound    = errors.New("member not found")
)

// LoanError custom error type
type LoanError struct {
	Code    string
	Message string
	Err     error
}

func (e *LoanError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *LoanError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewBookNotFoundError() *LoanError {
	return &LoanError{
		Code:    ErrCodeBookNotFound,
		Message: "Book not found",
		Err:     ErrBookNotFound,
	}
}

func NewAlreadyOnWaitlistError() *LoanError {
	return &LoanError{
		Code:    ErrCodeAlreadyOnWaitlist,
		Message: "You are already on the waitlist for this book",
		Err:     ErrAlreadyOnWaitlist,
	}
}

func NewMemberNotFoundError() *LoanError {
	return &LoanError{
		Code:    ErrCodeMemberNotFound,
		Message: "Member not found",
		Err:     ErrMemberNotFound,
	}
}
