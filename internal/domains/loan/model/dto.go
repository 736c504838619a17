package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// dateLayout renders dates without a time component (ISO date)
const dateLayout = "2006-01-02"

// CreateLoanRequest asks the engine to lend a book to a member
type CreateLoanRequest struct {
	BookID   string `json:"book_id"`
	MemberID string `json:"member_id"`
}

func (r CreateLoanRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BookID,
			validation.Required.Error("book_id is required"),
			is.UUID.Error("book_id must be a valid UUID"),
		),
		validation.Field(&r.MemberID,
			validation.Required.Error("member_id is required"),
			is.UUID.Error("member_id must be a valid UUID"),
		),
	)
}

// ReturnBookRequest asks the engine to process a return
type ReturnBookRequest struct {
	BookID string `json:"book_id"`
}

func (r ReturnBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BookID,
			validation.Required.Error("book_id is required"),
			is.UUID.Error("book_id must be a valid UUID"),
		),
	)
}

// WaitlistEntryResponse is one row of GET /books/:id/waitlist
type WaitlistEntryResponse struct {
	MemberID  string `json:"member_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	JoinedAt  string `json:"joined_at"`
}

func NewWaitlistEntryResponse(p WaitlistPosition) WaitlistEntryResponse {
	return WaitlistEntryResponse{
		MemberID:  p.MemberID.String(),
		FirstName: p.FirstName,
		LastName:  p.LastName,
		JoinedAt:  p.JoinedAt.Format(time.RFC3339),
	}
}

// FormatDueDate renders a due date as an ISO date, no time component
func FormatDueDate(t time.Time) string {
	return t.Format(dateLayout)
}
