package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"library-backend/internal/domains/book/model"
)

const pgUniqueViolation = "23505"

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresBookRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresBookRepository(pool *pgxpool.Pool) BookRepository {
	return &postgresBookRepository{pool: pool}
}

// =====================================================
// CREATE
// =====================================================

func (r *postgresBookRepository) Create(ctx context.Context, book *model.Book) error {
	// Case-insensitive duplicate check first; the unique constraint on
	// title only catches exact-case clashes
	var existing uuid.UUID
	err := r.pool.QueryRow(ctx,
		`SELECT id FROM books WHERE LOWER(title) = LOWER($1)`,
		book.Title,
	).Scan(&existing)

	if err == nil {
		return model.ErrDuplicateTitle
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("failed to check duplicate title: %w", err)
	}

	query := `
		INSERT INTO books (id, title, author, tags, cover_id, open_library_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = r.pool.Exec(ctx, query,
		book.ID,
		book.Title,
		book.Author,
		pq.Array(book.Tags),
		book.CoverID,
		book.OpenLibraryKey,
		book.CreatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return model.ErrDuplicateTitle
		}
		return fmt.Errorf("failed to create book: %w", err)
	}

	return nil
}

// =====================================================
// GET BY ID
// =====================================================

func (r *postgresBookRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	query := `
		SELECT id, title, author, tags, cover_id, open_library_key, created_at
		FROM books
		WHERE id = $1
	`

	book := &model.Book{}
	var tags []string

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		pq.Array(&tags),
		&book.CoverID,
		&book.OpenLibraryKey,
		&book.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	book.Tags = tags
	return book, nil
}

// =====================================================
// LIST WITH DERIVED STATUS
// =====================================================

func (r *postgresBookRepository) List(ctx context.Context, search string) ([]*model.BookWithStatus, error) {
	// Status is computed from the open loan, never stored
	query := `
		SELECT
			b.id, b.title, b.author, b.tags, b.cover_id, b.open_library_key, b.created_at,
			CASE
				WHEN l.id IS NOT NULL THEN 'on-loan'
				ELSE 'available'
			END AS status,
			l.due_date,
			m.first_name AS loaned_to_first_name,
			m.last_name AS loaned_to_last_name,
			COUNT(w.id) AS waitlist_count
		FROM books b
		LEFT JOIN loans l ON b.id = l.book_id AND l.return_date IS NULL
		LEFT JOIN members m ON l.member_id = m.id
		LEFT JOIN waitlist w ON b.id = w.book_id
	`

	args := []interface{}{}
	if search != "" {
		query += ` WHERE LOWER(b.title) LIKE LOWER($1)`
		args = append(args, "%"+search+"%")
	}

	query += ` GROUP BY b.id, l.id, m.id ORDER BY b.title`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	var books []*model.BookWithStatus
	for rows.Next() {
		book := &model.BookWithStatus{}
		var tags []string

		err := rows.Scan(
			&book.ID,
			&book.Title,
			&book.Author,
			pq.Array(&tags),
			&book.CoverID,
			&book.OpenLibraryKey,
			&book.CreatedAt,
			&book.Status,
			&book.DueDate,
			&book.LoanedToFirstName,
			&book.LoanedToLastName,
			&book.WaitlistCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}

		book.Tags = tags
		books = append(books, book)
	}

	return books, rows.Err()
}

// =====================================================
// DELETE
// =====================================================

func (r *postgresBookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}

	return nil
}

// =====================================================
// UPSERT (populate flow)
// =====================================================

func (r *postgresBookRepository) Upsert(ctx context.Context, book *model.Book) (*model.Book, error) {
	query := `
		INSERT INTO books (id, title, author, tags, cover_id, open_library_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (title) DO UPDATE
		SET tags = $4,
		    cover_id = COALESCE($5, books.cover_id),
		    open_library_key = COALESCE($6, books.open_library_key)
		RETURNING id, title, author, tags, cover_id, open_library_key, created_at
	`

	stored := &model.Book{}
	var tags []string

	err := r.pool.QueryRow(ctx, query,
		book.ID,
		book.Title,
		book.Author,
		pq.Array(book.Tags),
		book.CoverID,
		book.OpenLibraryKey,
		book.CreatedAt,
	).Scan(
		&stored.ID,
		&stored.Title,
		&stored.Author,
		pq.Array(&tags),
		&stored.CoverID,
		&stored.OpenLibraryKey,
		&stored.CreatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to upsert book: %w", err)
	}

	stored.Tags = tags
	return stored, nil
}
