package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/loan/model"
	"library-backend/internal/domains/loan/repository"
)

// =====================================================
// LOAN ENGINE
// =====================================================

// loanService drives the per-book lending state machine:
//
//	Available --RequestLoan--> OnLoan          (creates a loan)
//	OnLoan    --RequestLoan--> OnLoan          (enqueues waitlist)
//	OnLoan    --ReturnBook, waitlist empty-->  Available
//	OnLoan    --ReturnBook, waitlist queued--> OnLoan (promoted member)
//
// All state lives in the store; the service holds nothing between calls,
// so concurrent requests are safe as long as each call's reads and writes
// happen inside one transaction holding the book's row lock.
type loanService struct {
	store repository.LoanStore
	now   func() time.Time
}

func NewLoanService(store repository.LoanStore) LoanService {
	return &loanService{
		store: store,
		now:   time.Now,
	}
}

// =====================================================
// REQUEST LOAN
// =====================================================

func (s *loanService) RequestLoan(ctx context.Context, bookID, memberID uuid.UUID) (*model.LoanResult, error) {
	var result *model.LoanResult

	err := s.store.WithinTx(ctx, func(ops repository.LoanOperations) error {
		// Step 1: Lock the book row. The availability check and the
		// insert below must not interleave with a concurrent request
		// or return for the same book.
		found, err := ops.LockBook(bookID)
		if err != nil {
			return err
		}
		if !found {
			return model.NewBookNotFoundError()
		}

		// Step 2: Availability = no open loan exists
		open, err := ops.FindOpenLoan(bookID)
		if err != nil {
			return err
		}

		// Step 3a: Available -> create the loan
		if open == nil {
			now := s.now()
			loan := &model.Loan{
				ID:        uuid.New(),
				BookID:    bookID,
				MemberID:  memberID,
				LoanDate:  now,
				DueDate:   model.DueDateFrom(now),
				CreatedAt: now,
			}

			if err := ops.CreateLoan(loan); err != nil {
				return err
			}

			result = &model.LoanResult{Outcome: model.OutcomeLoaned, Loan: loan}
			return nil
		}

		// Step 3b: On loan -> enqueue on the waitlist.
		// The unique (book, member) constraint rejects duplicates.
		entry := &model.WaitlistEntry{
			ID:       uuid.New(),
			BookID:   bookID,
			MemberID: memberID,
			JoinedAt: s.now(),
		}

		if err := ops.AddToWaitlist(entry); err != nil {
			if errors.Is(err, model.ErrAlreadyOnWaitlist) {
				return model.NewAlreadyOnWaitlistError()
			}
			if errors.Is(err, model.ErrMemberNotFound) {
				return model.NewMemberNotFoundError()
			}
			return err
		}

		result = &model.LoanResult{Outcome: model.OutcomeWaitlisted}
		return nil
	})

	if err != nil {
		var loanErr *model.LoanError
		if errors.As(err, &loanErr) {
			return nil, loanErr
		}
		if errors.Is(err, model.ErrMemberNotFound) {
			return nil, model.NewMemberNotFoundError()
		}
		return nil, fmt.Errorf("failed to process loan request: %w", err)
	}

	return result, nil
}

// =====================================================
// RETURN BOOK
// =====================================================

func (s *loanService) ReturnBook(ctx context.Context, bookID uuid.UUID) (*model.ReturnResult, error) {
	var result *model.ReturnResult

	err := s.store.WithinTx(ctx, func(ops repository.LoanOperations) error {
		// Same lock as RequestLoan: between closing the old loan and
		// opening the promoted one, the book must never be observable
		// as available.
		found, err := ops.LockBook(bookID)
		if err != nil {
			return err
		}
		if !found {
			return model.NewBookNotFoundError()
		}

		// Step 1: Close the open loan. Returning a book that was never
		// lent is treated as idempotent, not an error.
		if _, err := ops.CloseOpenLoan(bookID, s.now()); err != nil {
			return err
		}

		// Step 2: Promote the longest-waiting member (FIFO)
		next, err := ops.NextInWaitlist(bookID)
		if err != nil {
			return err
		}

		if next == nil {
			result = &model.ReturnResult{Outcome: model.OutcomeAvailable}
			return nil
		}

		now := s.now()
		loan := &model.Loan{
			ID:        uuid.New(),
			BookID:    bookID,
			MemberID:  next.MemberID,
			LoanDate:  now,
			DueDate:   model.DueDateFrom(now),
			CreatedAt: now,
		}

		if err := ops.CreateLoan(loan); err != nil {
			return err
		}

		if err := ops.RemoveFromWaitlist(next.ID); err != nil {
			return err
		}

		result = &model.ReturnResult{
			Outcome:  model.OutcomeReassigned,
			MemberID: next.MemberID,
			Loan:     loan,
		}
		return nil
	})

	if err != nil {
		var loanErr *model.LoanError
		if errors.As(err, &loanErr) {
			return nil, loanErr
		}
		return nil, fmt.Errorf("failed to process return: %w", err)
	}

	return result, nil
}

// =====================================================
// READS
// =====================================================

func (s *loanService) GetWaitlist(ctx context.Context, bookID uuid.UUID) ([]model.WaitlistPosition, error) {
	entries, err := s.store.GetWaitlist(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to get waitlist: %w", err)
	}
	return entries, nil
}

func (s *loanService) CheckAvailability(ctx context.Context, bookID uuid.UUID) (bool, error) {
	hasOpen, err := s.store.HasOpenLoan(ctx, bookID)
	if err != nil {
		return false, fmt.Errorf("failed to check availability: %w", err)
	}
	return !hasOpen, nil
}
