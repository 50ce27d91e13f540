package app

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"travel_reco/internal/adapters/observability"
	"travel_reco/internal/domain"
)

// DocumentSource turns a raw catalog document into a Catalog.
type DocumentSource struct {
	Client domain.CatalogDocumentClient
}

func (s DocumentSource) Fetch(ctx context.Context) (domain.Catalog, error) {
	doc, err := s.Client.GetCatalog(ctx)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("fetch catalog document: %w", err)
	}
	if doc == nil {
		return domain.Catalog{}, fmt.Errorf("fetch catalog document: empty body")
	}
	return mapCatalog(doc), nil
}

// RepoSource reads the catalog staged in a repository.
type RepoSource struct {
	Repo domain.CatalogRepository
}

func (s RepoSource) Fetch(ctx context.Context) (domain.Catalog, error) {
	return s.Repo.LoadCatalog(ctx)
}

// LoadCatalog fetches the catalog once. Any failure is logged and replaced by
// the empty catalog so searches keep working and simply find nothing.
func LoadCatalog(ctx context.Context, name string, src domain.CatalogSource) domain.Catalog {
	if src == nil {
		log.Error().Str("source", name).Msg("no catalog source configured; using empty catalog")
		observability.ObserveCatalogLoad(name, fmt.Errorf("no source"))
		return domain.EmptyCatalog()
	}

	c, err := src.Fetch(ctx)
	observability.ObserveCatalogLoad(name, err)
	if err != nil {
		log.Error().Err(err).Str("source", name).Msg("catalog load failed; using empty catalog")
		return domain.EmptyCatalog()
	}

	c = withEmptySlices(c)
	b, t, co, ci := c.Counts()
	log.Info().
		Str("source", name).
		Int("beaches", b).
		Int("temples", t).
		Int("countries", co).
		Int("cities", ci).
		Msg("catalog loaded")
	return c
}

func withEmptySlices(c domain.Catalog) domain.Catalog {
	if c.Beaches == nil {
		c.Beaches = []domain.Place{}
	}
	if c.Temples == nil {
		c.Temples = []domain.Place{}
	}
	if c.Countries == nil {
		c.Countries = []domain.Country{}
	}
	return c
}

// CatalogVersion is a short content hash used to scope cache keys.
func CatalogVersion(c domain.Catalog) string {
	body, err := json.Marshal(withEmptySlices(c))
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal catalog for version hash")
		return "unknown"
	}
	sum := sha1.Sum(body)
	return hex.EncodeToString(sum[:8])
}
