package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/report/model"
)

type fakeReportRepo struct {
	overdue   []*model.OverdueEntry
	topBooks  []*model.TopBook
	lastLimit int
}

func (f *fakeReportRepo) Overdue(ctx context.Context) ([]*model.OverdueEntry, error) {
	return f.overdue, nil
}

func (f *fakeReportRepo) TopBooks(ctx context.Context, limit int) ([]*model.TopBook, error) {
	f.lastLimit = limit
	if limit < len(f.topBooks) {
		return f.topBooks[:limit], nil
	}
	return f.topBooks, nil
}

func TestOverdueReport(t *testing.T) {
	repo := &fakeReportRepo{overdue: []*model.OverdueEntry{
		{Title: "1984", Author: "George Orwell", FirstName: "Ada", LastName: "Lovelace",
			DueDate: time.Now().AddDate(0, 0, -3), DaysOverdue: 3},
	}}
	svc := NewReportService(repo)

	entries, err := svc.OverdueReport(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 3, entries[0].DaysOverdue)
}

func TestTopBooksReport_LimitHandling(t *testing.T) {
	repo := &fakeReportRepo{topBooks: []*model.TopBook{
		{Title: "A", CheckoutCount: 9},
		{Title: "B", CheckoutCount: 7},
		{Title: "C", CheckoutCount: 5},
	}}
	svc := NewReportService(repo)

	tests := []struct {
		name      string
		limit     int
		wantLimit int
	}{
		{"zero falls back to default", 0, defaultTopBooksLimit},
		{"negative falls back to default", -4, defaultTopBooksLimit},
		{"explicit limit passes through", 2, 2},
		{"oversized limit is clamped", 500, maxTopBooksLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.TopBooksReport(context.Background(), tt.limit)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLimit, repo.lastLimit)
		})
	}
}
