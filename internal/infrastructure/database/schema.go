package database

import (
	"context"
	"fmt"
	"log"
)

// schemaStatements bootstrap the library schema. Statements are idempotent so
// startup is safe against an already-initialized database.
//
// Loans and waitlist entries cascade on parent removal. The partial unique
// index on open loans backs the at-most-one-open-loan-per-book invariant at
// the storage level; the unique (book_id, member_id) constraint backs
// duplicate waitlist prevention.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS books (
		id UUID PRIMARY KEY,
		title VARCHAR(255) UNIQUE NOT NULL,
		author VARCHAR(255) NOT NULL,
		tags TEXT[],
		cover_id VARCHAR(255),
		open_library_key VARCHAR(255),
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS members (
		id UUID PRIMARY KEY,
		first_name VARCHAR(100) NOT NULL,
		last_name VARCHAR(100) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS loans (
		id UUID PRIMARY KEY,
		book_id UUID NOT NULL REFERENCES books(id) ON DELETE CASCADE,
		member_id UUID NOT NULL REFERENCES members(id) ON DELETE CASCADE,
		loan_date DATE NOT NULL DEFAULT CURRENT_DATE,
		due_date DATE NOT NULL,
		return_date DATE,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS waitlist (
		id UUID PRIMARY KEY,
		book_id UUID NOT NULL REFERENCES books(id) ON DELETE CASCADE,
		member_id UUID NOT NULL REFERENCES members(id) ON DELETE CASCADE,
		joined_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(book_id, member_id)
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_loans_open_book
		ON loans (book_id) WHERE return_date IS NULL`,
	`CREATE INDEX IF NOT EXISTS idx_loans_member ON loans (member_id)`,
	`CREATE INDEX IF NOT EXISTS idx_waitlist_book_joined
		ON waitlist (book_id, joined_date)`,
}

// InitSchema creates tables and indexes if they do not exist yet
func (db *PostgresDB) InitSchema(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	for _, stmt := range schemaStatements {
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}

	log.Println("[DATABASE] Schema initialized")
	return nil
}
