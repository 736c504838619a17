package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/report/model"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresReportRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresReportRepository(pool *pgxpool.Pool) ReportRepository {
	return &postgresReportRepository{pool: pool}
}

func (r *postgresReportRepository) Overdue(ctx context.Context) ([]*model.OverdueEntry, error) {
	query := `
		SELECT
			b.title,
			b.author,
			m.first_name,
			m.last_name,
			l.due_date,
			(CURRENT_DATE - l.due_date)::integer AS days_overdue
		FROM loans l
		JOIN books b ON l.book_id = b.id
		JOIN members m ON l.member_id = m.id
		WHERE l.return_date IS NULL
		AND l.due_date < CURRENT_DATE
		ORDER BY days_overdue DESC, l.due_date
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to run overdue report: %w", err)
	}
	defer rows.Close()

	var entries []*model.OverdueEntry
	for rows.Next() {
		entry := &model.OverdueEntry{}
		err := rows.Scan(
			&entry.Title,
			&entry.Author,
			&entry.FirstName,
			&entry.LastName,
			&entry.DueDate,
			&entry.DaysOverdue,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan overdue entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func (r *postgresReportRepository) TopBooks(ctx context.Context, limit int) ([]*model.TopBook, error) {
	query := `
		WITH loan_counts AS (
			SELECT book_id, COUNT(*) AS total_loans
			FROM loans
			GROUP BY book_id
		)
		SELECT
			b.title,
			b.author,
			COALESCE(lc.total_loans, 0) AS checkout_count
		FROM books b
		LEFT JOIN loan_counts lc ON b.id = lc.book_id
		ORDER BY checkout_count DESC, b.title ASC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to run top books report: %w", err)
	}
	defer rows.Close()

	var books []*model.TopBook
	for rows.Next() {
		book := &model.TopBook{}
		if err := rows.Scan(&book.Title, &book.Author, &book.CheckoutCount); err != nil {
			return nil, fmt.Errorf("failed to scan top book: %w", err)
		}
		books = append(books, book)
	}

	return books, rows.Err()
}
