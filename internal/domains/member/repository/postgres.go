package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/member/model"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresMemberRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresMemberRepository(pool *pgxpool.Pool) MemberRepository {
	return &postgresMemberRepository{pool: pool}
}

// =====================================================
// CREATE
// =====================================================

func (r *postgresMemberRepository) Create(ctx context.Context, member *model.Member) error {
	var existing uuid.UUID
	err := r.pool.QueryRow(ctx,
		`SELECT id FROM members
		 WHERE LOWER(first_name) = LOWER($1) AND LOWER(last_name) = LOWER($2)`,
		member.FirstName, member.LastName,
	).Scan(&existing)

	if err == nil {
		return model.ErrDuplicateMember
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("failed to check duplicate member: %w", err)
	}

	query := `
		INSERT INTO members (id, first_name, last_name, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err = r.pool.Exec(ctx, query,
		member.ID,
		member.FirstName,
		member.LastName,
		member.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create member: %w", err)
	}

	return nil
}

// =====================================================
// GET BY ID
// =====================================================

func (r *postgresMemberRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Member, error) {
	query := `
		SELECT id, first_name, last_name, created_at
		FROM members
		WHERE id = $1
	`

	member := &model.Member{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&member.ID,
		&member.FirstName,
		&member.LastName,
		&member.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return member, nil
}

// =====================================================
// LIST WITH ACTIVE LOANS
// =====================================================

func (r *postgresMemberRepository) List(ctx context.Context) ([]*model.MemberWithLoans, error) {
	// One joined query; open loans are grouped per member in Go
	query := `
		SELECT
			m.id, m.first_name, m.last_name, m.created_at,
			l.id, b.title, l.due_date
		FROM members m
		LEFT JOIN loans l ON m.id = l.member_id AND l.return_date IS NULL
		LEFT JOIN books b ON l.book_id = b.id
		ORDER BY m.last_name, m.first_name, l.due_date
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []*model.MemberWithLoans
	byID := make(map[uuid.UUID]*model.MemberWithLoans)

	for rows.Next() {
		var (
			m         model.Member
			loanID    *uuid.UUID
			bookTitle *string
			dueDate   *time.Time
		)

		err := rows.Scan(
			&m.ID, &m.FirstName, &m.LastName, &m.CreatedAt,
			&loanID, &bookTitle, &dueDate,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}

		entry, ok := byID[m.ID]
		if !ok {
			entry = &model.MemberWithLoans{
				Member:      m,
				ActiveLoans: []model.ActiveLoan{},
			}
			byID[m.ID] = entry
			members = append(members, entry)
		}

		if loanID != nil && bookTitle != nil && dueDate != nil {
			entry.ActiveLoans = append(entry.ActiveLoans, model.ActiveLoan{
				LoanID:    *loanID,
				BookTitle: *bookTitle,
				DueDate:   *dueDate,
			})
		}
	}

	return members, rows.Err()
}
