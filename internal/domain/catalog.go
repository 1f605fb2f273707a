package domain

import (
	"context"
	"errors"
)

var (
	// ErrNotFound means the catalog answered and holds no matching object.
	ErrNotFound = errors.New("near-earth object not found")

	// ErrCatalogUnavailable means the catalog could not be reached or gave an
	// unusable answer. Transport errors wrap it so callers can use errors.Is.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)

// Catalog looks up near-Earth object records.
type Catalog interface {
	// FetchByID returns the record with the given catalog id.
	FetchByID(ctx context.Context, id string) (NEO, error)

	// SearchByName returns the first record whose name contains fragment
	// (case-insensitive), scanning at most maxPages pages.
	SearchByName(ctx context.Context, fragment string, maxPages int) (NEO, error)
}
