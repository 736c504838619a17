package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"library-backend/internal/domains/catalog/model"
)

const maxSubjectsPerBook = 5

// SubjectFetcher fetches books for a subject from an external catalog
type SubjectFetcher interface {
	FetchSubject(ctx context.Context, subject string, limit int) ([]model.CatalogBook, error)
}

// OpenLibraryClient talks to the Open Library subjects API
type OpenLibraryClient struct {
	baseURL    string
	coversBase string
	httpClient *http.Client
}

func NewOpenLibraryClient(baseURL, coversBaseURL string, timeout time.Duration) *OpenLibraryClient {
	return &OpenLibraryClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		coversBase: strings.TrimRight(coversBaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// subjectResponse mirrors the parts of the Open Library subject
// payload we care about
type subjectResponse struct {
	Works []struct {
		Key     string `json:"key"`
		Title   string `json:"title"`
		Authors []struct {
			Name string `json:"name"`
		} `json:"authors"`
		Subject []string `json:"subject"`
		CoverID *int64   `json:"cover_id"`
	} `json:"works"`
}

// FetchSubject queries /subjects/{subject}.json and maps the works
// into catalog books
func (c *OpenLibraryClient) FetchSubject(ctx context.Context, subject string, limit int) ([]model.CatalogBook, error) {
	endpoint := fmt.Sprintf("%s/subjects/%s.json?limit=%d",
		c.baseURL, url.PathEscape(normalizeSubject(subject)), limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build subject request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch subject %q: %w", subject, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("subject fetch for %q returned status %d", subject, resp.StatusCode)
	}

	var payload subjectResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode subject response: %w", err)
	}

	books := make([]model.CatalogBook, 0, len(payload.Works))
	for _, work := range payload.Works {
		if work.Title == "" {
			continue
		}

		book := model.CatalogBook{
			Title:  work.Title,
			Author: "Unknown",
		}
		if len(work.Authors) > 0 && work.Authors[0].Name != "" {
			book.Author = work.Authors[0].Name
		}

		subjects := work.Subject
		if len(subjects) > maxSubjectsPerBook {
			subjects = subjects[:maxSubjectsPerBook]
		}
		book.Subjects = subjects

		if work.CoverID != nil {
			coverID := strconv.FormatInt(*work.CoverID, 10)
			book.CoverID = &coverID
		}
		if work.Key != "" {
			key := work.Key
			book.OpenLibraryKey = &key
		}

		books = append(books, book)
	}

	return books, nil
}

// CoverURL builds the medium-size cover image URL for a cover id
func (c *OpenLibraryClient) CoverURL(coverID string) string {
	return fmt.Sprintf("%s/b/id/%s-M.jpg", c.coversBase, coverID)
}

// normalizeSubject lowercases and underscores the genre so it matches
// Open Library subject slugs
func normalizeSubject(subject string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(subject)), " ", "_")
}
