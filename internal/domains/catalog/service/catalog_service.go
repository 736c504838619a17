package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	bookmodel "library-backend/internal/domains/book/model"
	bookrepo "library-backend/internal/domains/book/repository"
	"library-backend/internal/domains/catalog/client"
	"library-backend/internal/domains/catalog/model"
	"library-backend/pkg/cache"
	"library-backend/pkg/logger"
)

type catalogService struct {
	bookRepo bookrepo.BookRepository
	fetcher  client.SubjectFetcher
	cache    cache.Cache
	cacheTTL time.Duration
	coverURL func(coverID string) string
}

func NewCatalogService(
	bookRepo bookrepo.BookRepository,
	fetcher client.SubjectFetcher,
	cacheClient cache.Cache,
	cacheTTL time.Duration,
	coverURL func(coverID string) string,
) CatalogService {
	return &catalogService{
		bookRepo: bookRepo,
		fetcher:  fetcher,
		cache:    cacheClient,
		cacheTTL: cacheTTL,
		coverURL: coverURL,
	}
}

func (s *catalogService) Populate(ctx context.Context, req model.PopulateRequest) (*model.PopulateResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req = req.Normalized()

	// Step 1: resolve the source list (cache, live feed, then samples)
	books, source := s.resolveBooks(ctx, req)

	// Step 2: upsert every entry; re-running populate refreshes
	// metadata instead of erroring on existing titles
	result := &model.PopulateResult{
		Genre:  req.Genre,
		Source: source,
		Books:  []model.PopulatedRow{},
	}

	for _, cb := range books {
		book := &bookmodel.Book{
			ID:             uuid.New(),
			Title:          cb.Title,
			Author:         cb.Author,
			Tags:           cb.Subjects,
			CoverID:        cb.CoverID,
			OpenLibraryKey: cb.OpenLibraryKey,
			CreatedAt:      time.Now(),
		}

		stored, err := s.bookRepo.Upsert(ctx, book)
		if err != nil {
			return nil, fmt.Errorf("failed to import %q: %w", cb.Title, err)
		}

		row := model.PopulatedRow{
			Title:  stored.Title,
			Author: stored.Author,
		}
		if stored.CoverID != nil {
			url := s.coverURL(*stored.CoverID)
			row.CoverURL = &url
		}

		result.Books = append(result.Books, row)
		result.Imported++
	}

	return result, nil
}

// resolveBooks tries the cache, then the live feed, then the bundled
// samples. Cache failures are logged and ignored.
func (s *catalogService) resolveBooks(ctx context.Context, req model.PopulateRequest) ([]model.CatalogBook, string) {
	cacheKey := fmt.Sprintf("catalog:subject:%s:%d", req.Genre, req.Limit)

	var cached []model.CatalogBook
	if s.cache != nil {
		hit, err := s.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			logger.Warn("catalog cache read failed", err)
		} else if hit {
			return cached, model.SourceCache
		}
	}

	books, err := s.fetcher.FetchSubject(ctx, req.Genre, req.Limit)
	if err != nil || len(books) == 0 {
		if err != nil {
			logger.Warn("subject feed unavailable, using samples", err)
		}
		return model.SampleBooks(req.Genre), model.SourceSamples
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, books, s.cacheTTL); err != nil {
			logger.Warn("catalog cache write failed", err)
		}
	}

	return books, model.SourceOpenLibrary
}
