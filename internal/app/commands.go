package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"travel_reco/internal/domain"
)

// SeedService stages a catalog document in the repository so the client can
// load it with CATALOG_SOURCE=mysql.
type SeedService struct {
	src   domain.CatalogSource
	repo  domain.CatalogRepository
	cache domain.Cache
}

func NewSeedService(src domain.CatalogSource, r domain.CatalogRepository, cache domain.Cache) *SeedService {
	return &SeedService{src: src, repo: r, cache: cache}
}

func (s *SeedService) Seed(ctx context.Context) (domain.Catalog, error) {
	c, err := s.src.Fetch(ctx)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("seed: read source: %w", err)
	}
	c = withEmptySlices(c)

	// Remember what was staged before so its cached searches can be dropped.
	prev, perr := s.repo.LoadCatalog(ctx)
	switch {
	case perr == nil:
	case errors.Is(perr, domain.ErrNotFound):
		perr = nil
	default:
		log.Warn().Err(perr).Msg("seed: could not read previous catalog; cache left as is")
	}

	if err := s.repo.ReplaceCatalog(ctx, c); err != nil {
		return domain.Catalog{}, fmt.Errorf("seed: replace catalog: %w", err)
	}

	if s.cache != nil && perr == nil {
		s.invalidateSearches(ctx, prev)
	}

	b, t, co, ci := c.Counts()
	log.Info().Int("beaches", b).Int("temples", t).Int("countries", co).Int("cities", ci).
		Str("version", CatalogVersion(c)).Msg("catalog seeded")
	return c, nil
}

// invalidate the most common search keys of the previous catalog version
func (s *SeedService) invalidateSearches(ctx context.Context, prev domain.Catalog) {
	version := CatalogVersion(prev)
	for _, q := range CommonQueries(prev) {
		for _, opts := range []MatchOptions{{}, {RejectEmptyQuery: true}} {
			_ = s.cache.Del(ctx, searchKey(version, Normalize(q), opts))
		}
	}
}

// CommonQueries lists the searches worth caching for c: the blank query, the
// keywords and every country name.
func CommonQueries(c domain.Catalog) []string {
	queries := append([]string{""}, beachWords...)
	queries = append(queries, templeWords...)
	queries = append(queries, countryWords...)
	for _, co := range c.Countries {
		queries = append(queries, co.Name)
	}
	return queries
}
