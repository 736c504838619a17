package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookmodel "library-backend/internal/domains/book/model"
	"library-backend/internal/domains/catalog/model"
)

// ===== FAKES =====

type fakeBookRepo struct {
	upserts []*bookmodel.Book
}

func (f *fakeBookRepo) Create(ctx context.Context, book *bookmodel.Book) error { return nil }

func (f *fakeBookRepo) GetByID(ctx context.Context, id uuid.UUID) (*bookmodel.Book, error) {
	return nil, bookmodel.ErrBookNotFound
}

func (f *fakeBookRepo) List(ctx context.Context, search string) ([]*bookmodel.BookWithStatus, error) {
	return nil, nil
}

func (f *fakeBookRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakeBookRepo) Upsert(ctx context.Context, book *bookmodel.Book) (*bookmodel.Book, error) {
	f.upserts = append(f.upserts, book)
	return book, nil
}

type fakeFetcher struct {
	books   []model.CatalogBook
	err     error
	calls   int
	subject string
	limit   int
}

func (f *fakeFetcher) FetchSubject(ctx context.Context, subject string, limit int) ([]model.CatalogBook, error) {
	f.calls++
	f.subject = subject
	f.limit = limit
	return f.books, f.err
}

type fakeCache struct {
	entries map[string][]byte
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}}
}

func (f *fakeCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := f.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.entries[key] = raw
	f.sets++
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.entries, key)
	}
	return nil
}

func (f *fakeCache) Ping(ctx context.Context) error { return nil }

func testCoverURL(coverID string) string {
	return "https://covers.example.com/b/id/" + coverID + "-M.jpg"
}

// ===== TESTS =====

func TestPopulate_FetchesAndImports(t *testing.T) {
	coverID := "42"
	repo := &fakeBookRepo{}
	fetcher := &fakeFetcher{books: []model.CatalogBook{
		{Title: "Dune", Author: "Frank Herbert", Subjects: []string{"science fiction"}, CoverID: &coverID},
		{Title: "Hyperion", Author: "Dan Simmons"},
	}}
	cache := newFakeCache()

	svc := NewCatalogService(repo, fetcher, cache, time.Hour, testCoverURL)

	result, err := svc.Populate(context.Background(), model.PopulateRequest{Genre: "science_fiction", Limit: 2})
	require.NoError(t, err)

	assert.Equal(t, model.SourceOpenLibrary, result.Source)
	assert.Equal(t, 2, result.Imported)
	require.Len(t, repo.upserts, 2)
	assert.Equal(t, "Dune", repo.upserts[0].Title)
	assert.Equal(t, []string{"science fiction"}, repo.upserts[0].Tags)

	require.NotNil(t, result.Books[0].CoverURL)
	assert.Equal(t, "https://covers.example.com/b/id/42-M.jpg", *result.Books[0].CoverURL)
	assert.Nil(t, result.Books[1].CoverURL)

	assert.Equal(t, 1, cache.sets, "successful fetch should be cached")
}

func TestPopulate_AppliesDefaults(t *testing.T) {
	repo := &fakeBookRepo{}
	fetcher := &fakeFetcher{books: []model.CatalogBook{{Title: "Sapiens", Author: "Yuval Noah Harari"}}}

	svc := NewCatalogService(repo, fetcher, newFakeCache(), time.Hour, testCoverURL)

	result, err := svc.Populate(context.Background(), model.PopulateRequest{})
	require.NoError(t, err)

	assert.Equal(t, model.DefaultPopulateGenre, result.Genre)
	assert.Equal(t, model.DefaultPopulateGenre, fetcher.subject)
	assert.Equal(t, model.DefaultPopulateLimit, fetcher.limit)
}

func TestPopulate_CacheHitSkipsFetch(t *testing.T) {
	repo := &fakeBookRepo{}
	fetcher := &fakeFetcher{err: errors.New("should not be called")}
	cache := newFakeCache()

	cached := []model.CatalogBook{{Title: "Cached Book", Author: "Someone"}}
	require.NoError(t, cache.Set(context.Background(), "catalog:subject:fiction:8", cached, time.Hour))

	svc := NewCatalogService(repo, fetcher, cache, time.Hour, testCoverURL)

	result, err := svc.Populate(context.Background(), model.PopulateRequest{Genre: "fiction"})
	require.NoError(t, err)

	assert.Equal(t, model.SourceCache, result.Source)
	assert.Equal(t, 0, fetcher.calls)
	require.Len(t, repo.upserts, 1)
	assert.Equal(t, "Cached Book", repo.upserts[0].Title)
}

func TestPopulate_FallsBackToSamplesOnFetchError(t *testing.T) {
	repo := &fakeBookRepo{}
	fetcher := &fakeFetcher{err: errors.New("connection refused")}

	svc := NewCatalogService(repo, fetcher, newFakeCache(), time.Hour, testCoverURL)

	result, err := svc.Populate(context.Background(), model.PopulateRequest{Genre: "science"})
	require.NoError(t, err)

	assert.Equal(t, model.SourceSamples, result.Source)
	assert.Equal(t, len(model.SampleBooks("science")), result.Imported)
}

func TestPopulate_UnknownGenreUsesGeneralSamples(t *testing.T) {
	repo := &fakeBookRepo{}
	fetcher := &fakeFetcher{err: errors.New("timeout")}

	svc := NewCatalogService(repo, fetcher, newFakeCache(), time.Hour, testCoverURL)

	result, err := svc.Populate(context.Background(), model.PopulateRequest{Genre: "basket weaving"})
	require.NoError(t, err)

	assert.Equal(t, model.SourceSamples, result.Source)
	assert.Equal(t, len(model.SampleBooks("general")), result.Imported)
}

func TestPopulate_RejectsOversizedLimit(t *testing.T) {
	svc := NewCatalogService(&fakeBookRepo{}, &fakeFetcher{}, newFakeCache(), time.Hour, testCoverURL)

	_, err := svc.Populate(context.Background(), model.PopulateRequest{Limit: model.MaxPopulateLimit + 1})
	assert.Error(t, err)
}
