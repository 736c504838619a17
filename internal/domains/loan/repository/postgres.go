package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/loan/model"
	"library-backend/pkg/database"
)

// Postgres error codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// =====================================================
// POSTGRES STORE IMPLEMENTATION
// =====================================================

type postgresLoanStore struct {
	pool *pgxpool.Pool
}

func NewPostgresLoanStore(pool *pgxpool.Pool) LoanStore {
	return &postgresLoanStore{pool: pool}
}

func (s *postgresLoanStore) WithinTx(ctx context.Context, fn func(ops LoanOperations) error) error {
	return database.WithTransaction(ctx, s.pool, func(tx pgx.Tx) error {
		return fn(&txLoanOperations{ctx: ctx, tx: tx})
	})
}

// =====================================================
// SNAPSHOT READS
// =====================================================

func (s *postgresLoanStore) GetWaitlist(ctx context.Context, bookID uuid.UUID) ([]model.WaitlistPosition, error) {
	query := `
		SELECT w.id, w.book_id, w.member_id, m.first_name, m.last_name, w.joined_date
		FROM waitlist w
		JOIN members m ON w.member_id = m.id
		WHERE w.book_id = $1
		ORDER BY w.joined_date ASC, w.id ASC
	`

	rows, err := s.pool.Query(ctx, query, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to list waitlist: %w", err)
	}
	defer rows.Close()

	var entries []model.WaitlistPosition
	for rows.Next() {
		var p model.WaitlistPosition
		if err := rows.Scan(&p.ID, &p.BookID, &p.MemberID, &p.FirstName, &p.LastName, &p.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan waitlist entry: %w", err)
		}
		entries = append(entries, p)
	}

	return entries, rows.Err()
}

func (s *postgresLoanStore) HasOpenLoan(ctx context.Context, bookID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM loans WHERE book_id = $1 AND return_date IS NULL)`

	var exists bool
	if err := s.pool.QueryRow(ctx, query, bookID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check open loan: %w", err)
	}

	return exists, nil
}

// =====================================================
// TRANSACTIONAL OPERATIONS
// =====================================================

type txLoanOperations struct {
	ctx context.Context
	tx  pgx.Tx
}

// LockBook takes the per-book row lock every write path serializes on.
// Without it, two concurrent loan requests could both observe the book
// as available and both insert an open loan.
func (o *txLoanOperations) LockBook(bookID uuid.UUID) (bool, error) {
	query := `SELECT id FROM books WHERE id = $1 FOR UPDATE`

	var id uuid.UUID
	err := o.tx.QueryRow(o.ctx, query, bookID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to lock book: %w", err)
	}

	return true, nil
}

func (o *txLoanOperations) FindOpenLoan(bookID uuid.UUID) (*model.Loan, error) {
	query := `
		SELECT id, book_id, member_id, loan_date, due_date, return_date, created_at
		FROM loans
		WHERE book_id = $1 AND return_date IS NULL
	`

	loan := &model.Loan{}
	err := o.tx.QueryRow(o.ctx, query, bookID).Scan(
		&loan.ID,
		&loan.BookID,
		&loan.MemberID,
		&loan.LoanDate,
		&loan.DueDate,
		&loan.ReturnDate,
		&loan.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find open loan: %w", err)
	}

	return loan, nil
}

func (o *txLoanOperations) CreateLoan(loan *model.Loan) error {
	query := `
		INSERT INTO loans (id, book_id, member_id, loan_date, due_date, return_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := o.tx.Exec(o.ctx, query,
		loan.ID,
		loan.BookID,
		loan.MemberID,
		loan.LoanDate,
		loan.DueDate,
		loan.ReturnDate,
		loan.CreatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			// Partial unique index on open loans: backstop for the
			// one-open-loan-per-book invariant
			if pgErr.Code == pgUniqueViolation {
				return fmt.Errorf("book already has an open loan: %w", err)
			}
			if pgErr.Code == pgForeignKeyViolation {
				return model.ErrMemberNotFound
			}
		}
		return fmt.Errorf("failed to create loan: %w", err)
	}

	return nil
}

func (o *txLoanOperations) CloseOpenLoan(bookID uuid.UUID, returnedAt time.Time) (bool, error) {
	query := `
		UPDATE loans
		SET return_date = $2
		WHERE book_id = $1 AND return_date IS NULL
	`

	result, err := o.tx.Exec(o.ctx, query, bookID, returnedAt)
	if err != nil {
		return false, fmt.Errorf("failed to close loan: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

func (o *txLoanOperations) NextInWaitlist(bookID uuid.UUID) (*model.WaitlistEntry, error) {
	query := `
		SELECT id, book_id, member_id, joined_date
		FROM waitlist
		WHERE book_id = $1
		ORDER BY joined_date ASC, id ASC
		LIMIT 1
	`

	entry := &model.WaitlistEntry{}
	err := o.tx.QueryRow(o.ctx, query, bookID).Scan(
		&entry.ID,
		&entry.BookID,
		&entry.MemberID,
		&entry.JoinedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read waitlist head: %w", err)
	}

	return entry, nil
}

func (o *txLoanOperations) AddToWaitlist(entry *model.WaitlistEntry) error {
	query := `
		INSERT INTO waitlist (id, book_id, member_id, joined_date)
		VALUES ($1, $2, $3, $4)
	`

	_, err := o.tx.Exec(o.ctx, query,
		entry.ID,
		entry.BookID,
		entry.MemberID,
		entry.JoinedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == pgUniqueViolation {
				return model.ErrAlreadyOnWaitlist
			}
			if pgErr.Code == pgForeignKeyViolation {
				return model.ErrMemberNotFound
			}
		}
		return fmt.Errorf("failed to add to waitlist: %w", err)
	}

	return nil
}

func (o *txLoanOperations) RemoveFromWaitlist(entryID uuid.UUID) error {
	query := `DELETE FROM waitlist WHERE id = $1`

	if _, err := o.tx.Exec(o.ctx, query, entryID); err != nil {
		return fmt.Errorf("failed to remove from waitlist: %w", err)
	}

	return nil
}
