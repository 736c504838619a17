package service

import (
	"context"

	"library-backend/internal/domains/catalog/model"
)

type CatalogService interface {
	// Populate seeds the catalog from the external subject feed,
	// falling back to a bundled sample set when the feed is down
	Populate(ctx context.Context, req model.PopulateRequest) (*model.PopulateResult, error)
}
