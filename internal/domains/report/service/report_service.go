package service

import (
	"context"
	"fmt"

	"library-backend/internal/domains/report/model"
	"library-backend/internal/domains/report/repository"
)

const (
	defaultTopBooksLimit = 5
	maxTopBooksLimit     = 50
)

type reportService struct {
	reportRepo repository.ReportRepository
}

func NewReportService(reportRepo repository.ReportRepository) ReportService {
	return &reportService{reportRepo: reportRepo}
}

func (s *reportService) OverdueReport(ctx context.Context) ([]*model.OverdueEntry, error) {
	entries, err := s.reportRepo.Overdue(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build overdue report: %w", err)
	}
	return entries, nil
}

func (s *reportService) TopBooksReport(ctx context.Context, limit int) ([]*model.TopBook, error) {
	if limit <= 0 {
		limit = defaultTopBooksLimit
	}
	if limit > maxTopBooksLimit {
		limit = maxTopBooksLimit
	}

	books, err := s.reportRepo.TopBooks(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to build top books report: %w", err)
	}
	return books, nil
}
