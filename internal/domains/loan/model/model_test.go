package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDueDateFrom(t *testing.T) {
	loanedAt := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)

	due := DueDateFrom(loanedAt)

	assert.Equal(t, time.Date(2025, 3, 17, 15, 30, 0, 0, time.UTC), due)
}

func TestLoanIsOpen(t *testing.T) {
	loan := Loan{}
	assert.True(t, loan.IsOpen())

	returned := time.Now()
	loan.ReturnDate = &returned
	assert.False(t, loan.IsOpen())
}

func TestCreateLoanRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateLoanRequest
		wantErr bool
	}{
		{
			name: "valid",
			req: CreateLoanRequest{
				BookID:   "7d444840-9dc0-11d1-b245-5ffdce74fad2",
				MemberID: "9b2a54f1-0b1c-4a3e-8a2d-6f1e2d3c4b5a",
			},
			wantErr: false,
		},
		{
			name:    "missing book",
			req:     CreateLoanRequest{MemberID: "9b2a54f1-0b1c-4a3e-8a2d-6f1e2d3c4b5a"},
			wantErr: true,
		},
		{
			name:    "missing member",
			req:     CreateLoanRequest{BookID: "7d444840-9dc0-11d1-b245-5ffdce74fad2"},
			wantErr: true,
		},
		{
			name: "not a uuid",
			req: CreateLoanRequest{
				BookID:   "42",
				MemberID: "9b2a54f1-0b1c-4a3e-8a2d-6f1e2d3c4b5a",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFormatDueDate(t *testing.T) {
	due := time.Date(2025, 3, 17, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-17", FormatDueDate(due))
}
