package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchSubject_ParsesWorks(t *testing.T) {
	var gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"works": [
				{
					"key": "/works/OL893415W",
					"title": "A Brief History of Time",
					"authors": [{"name": "Stephen Hawking"}],
					"subject": ["science", "physics", "cosmology", "time", "space", "extra"],
					"cover_id": 6637896
				},
				{
					"title": "Untitled Authorless Work"
				},
				{
					"title": ""
				}
			]
		}`))
	}))
	defer server.Close()

	c := NewOpenLibraryClient(server.URL, "https://covers.openlibrary.org", 2*time.Second)

	books, err := c.FetchSubject(context.Background(), "Science Fiction", 3)
	require.NoError(t, err)

	assert.Equal(t, "/subjects/science_fiction.json", gotPath)
	assert.Equal(t, "limit=3", gotQuery)

	require.Len(t, books, 2, "works without a title are skipped")

	first := books[0]
	assert.Equal(t, "A Brief History of Time", first.Title)
	assert.Equal(t, "Stephen Hawking", first.Author)
	assert.Len(t, first.Subjects, 5, "subjects are capped")
	require.NotNil(t, first.CoverID)
	assert.Equal(t, "6637896", *first.CoverID)
	require.NotNil(t, first.OpenLibraryKey)
	assert.Equal(t, "/works/OL893415W", *first.OpenLibraryKey)

	second := books[1]
	assert.Equal(t, "Unknown", second.Author)
	assert.Nil(t, second.CoverID)
	assert.Nil(t, second.OpenLibraryKey)
}

func TestFetchSubject_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c := NewOpenLibraryClient(server.URL, "https://covers.openlibrary.org", 2*time.Second)

	_, err := c.FetchSubject(context.Background(), "fiction", 5)
	assert.Error(t, err)
}

func TestCoverURL(t *testing.T) {
	c := NewOpenLibraryClient("https://openlibrary.org", "https://covers.openlibrary.org/", time.Second)
	assert.Equal(t, "https://covers.openlibrary.org/b/id/1234-M.jpg", c.CoverURL("1234"))
}
