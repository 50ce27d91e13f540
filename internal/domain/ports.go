package domain

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// CatalogSource produces a full catalog snapshot (HTTP, file, MySQL).
type CatalogSource interface {
	Fetch(ctx context.Context) (Catalog, error)
}

// CatalogDocumentClient returns the raw catalog document (HTTP, file).
type CatalogDocumentClient interface {
	GetCatalog(ctx context.Context) (map[string]any, error)
}

type CatalogRepository interface {
	// Write path (seeding only)
	ReplaceCatalog(ctx context.Context, c Catalog) error

	// Read path
	LoadCatalog(ctx context.Context) (Catalog, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// RenderSink draws result cards. Render returns one label per card that has a
// TimeZone, in card order. An empty slice means "show the no results card".
type RenderSink interface {
	Render(cards []Card) []TimeLabel
	Clear()
}

// TimeLabel is an opaque handle to an on-screen clock.
type TimeLabel interface {
	// SetText replaces the label text. It returns false once the label is
	// no longer displayed.
	SetText(text string) bool
}
