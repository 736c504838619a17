package model

import (
	"time"

	"github.com/google/uuid"
)

// LoanPeriodDays is the fixed lending policy: every loan is due
// seven days after it is created, including waitlist promotions.
const LoanPeriodDays = 7

// Loan represents one lending of a book to a member.
// A loan with no return date is open: the book is currently out.
type Loan struct {
	ID         uuid.UUID  `json:"id"`
	BookID     uuid.UUID  `json:"book_id"`
	MemberID   uuid.UUID  `json:"member_id"`
	LoanDate   time.Time  `json:"loan_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date"`
	CreatedAt  time.Time  `json:"created_at"`
}

// IsOpen reports whether the book is still out on this loan
func (l *Loan) IsOpen() bool {
	return l.ReturnDate == nil
}

// DueDateFrom computes the due date for a loan created at t
func DueDateFrom(t time.Time) time.Time {
	return t.AddDate(0, 0, LoanPeriodDays)
}

// WaitlistEntry queues a member for a book that is on loan.
// Entries are served strictly in ascending joined order (FIFO).
type WaitlistEntry struct {
	ID       uuid.UUID `json:"id"`
	BookID   uuid.UUID `json:"book_id"`
	MemberID uuid.UUID `json:"member_id"`
	JoinedAt time.Time `json:"joined_at"`
}

// WaitlistPosition is a waitlist entry joined with the member's name,
// as shown to staff.
type WaitlistPosition struct {
	ID        uuid.UUID `json:"id"`
	BookID    uuid.UUID `json:"book_id"`
	MemberID  uuid.UUID `json:"member_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	JoinedAt  time.Time `json:"joined_at"`
}

// Outcomes of the two engine write operations

type LoanOutcome string

const (
	OutcomeLoaned     LoanOutcome = "loaned"
	OutcomeWaitlisted LoanOutcome = "waitlisted"
)

type ReturnOutcome string

const (
	OutcomeReassigned ReturnOutcome = "reassigned"
	OutcomeAvailable  ReturnOutcome = "available"
)

// LoanResult is the outcome of RequestLoan
type LoanResult struct {
	Outcome LoanOutcome
	Loan    *Loan // set when Outcome == OutcomeLoaned
}

// ReturnResult is the outcome of ReturnBook
type ReturnResult struct {
	Outcome  ReturnOutcome
	MemberID uuid.UUID // promoted member, when Outcome == OutcomeReassigned
	Loan     *Loan     // new loan for the promoted member
}
