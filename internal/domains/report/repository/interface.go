package repository

import (
	"context"

	"library-backend/internal/domains/report/model"
)

// ReportRepository runs the read-only aggregation queries.
// Reports observe the same rows the loan engine mutates but never
// write anything themselves.
type ReportRepository interface {
	// Overdue lists open loans past their due date,
	// most overdue first
	Overdue(ctx context.Context) ([]*model.OverdueEntry, error)

	// TopBooks ranks books by total loan count, title as tie-break
	TopBooks(ctx context.Context, limit int) ([]*model.TopBook, error)
}
