package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CatalogBook is a book as fetched from an external catalog source,
// before it becomes a library book
type CatalogBook struct {
	Title          string   `json:"title"`
	Author         string   `json:"author"`
	Subjects       []string `json:"subjects"`
	CoverID        *string  `json:"cover_id"`
	OpenLibraryKey *string  `json:"open_library_key"`
}

// PopulateRequest asks the service to seed the catalog from an
// external subject feed
type PopulateRequest struct {
	Genre string `json:"genre"`
	Limit int    `json:"limit"`
}

const (
	DefaultPopulateGenre = "general"
	DefaultPopulateLimit = 8
	MaxPopulateLimit     = 50
)

func (r PopulateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Genre, validation.Length(0, 100)),
		validation.Field(&r.Limit, validation.Min(0), validation.Max(MaxPopulateLimit)),
	)
}

// Normalized returns a copy with defaults applied
func (r PopulateRequest) Normalized() PopulateRequest {
	out := r
	if out.Genre == "" {
		out.Genre = DefaultPopulateGenre
	}
	if out.Limit <= 0 {
		out.Limit = DefaultPopulateLimit
	}
	return out
}

// PopulateResult summarizes a populate run
type PopulateResult struct {
	Genre    string         `json:"genre"`
	Source   string         `json:"source"`
	Imported int            `json:"imported"`
	Books    []PopulatedRow `json:"books"`
}

// Populate sources
const (
	SourceOpenLibrary = "openlibrary"
	SourceCache       = "cache"
	SourceSamples     = "samples"
)

// PopulatedRow is one imported book in the populate response
type PopulatedRow struct {
	Title    string  `json:"title"`
	Author   string  `json:"author"`
	CoverURL *string `json:"cover_url"`
}
