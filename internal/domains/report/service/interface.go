package service

import (
	"context"

	"library-backend/internal/domains/report/model"
)

type ReportService interface {
	OverdueReport(ctx context.Context) ([]*model.OverdueEntry, error)
	TopBooksReport(ctx context.Context, limit int) ([]*model.TopBook, error)
}
