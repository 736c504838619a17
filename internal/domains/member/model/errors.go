package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeMemberNotFound  = "MB001"
	ErrCodeDuplicateMember = "MB002"
)

// Errors
var (
	ErrMemberNotFound  = errors.New("member not found")
	ErrDuplicateMember = errors.New("member with this name already exists")
)

// MemberError custom error type
type MemberError struct {
	Code    string
	Message string
	Err     error
}

func (e *MemberError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *MemberError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewMemberNotFoundError() *MemberError {
	return &MemberError{
		Code:    ErrCodeMemberNotFound,
		Message: "Member not found",
		Err:     ErrMemberNotFound,
	}
}

func NewDuplicateMemberError() *MemberError {
	return &MemberError{
		Code:    ErrCodeDuplicateMember,
		Message: "Member with this name already exists",
		Err:     ErrDuplicateMember,
	}
}
