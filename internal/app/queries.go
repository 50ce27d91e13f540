package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"travel_reco/internal/adapters/observability"
	"travel_reco/internal/domain"
)

// SearchService is a read-through cache in front of the matcher. The cache is
// optional; its errors never fail a search.
type SearchService struct {
	catalog  domain.Catalog
	version  string
	cache    domain.Cache
	cacheTTL time.Duration
	opts     MatchOptions
}

func NewSearchService(c domain.Catalog, cache domain.Cache, ttl time.Duration, opts MatchOptions) *SearchService {
	return &SearchService{catalog: c, version: CatalogVersion(c), cache: cache, cacheTTL: ttl, opts: opts}
}

func (s *SearchService) Catalog() domain.Catalog { return s.catalog }
func (s *SearchService) Version() string         { return s.version }

type cachedSearch struct {
	Rule    Rule                 `json:"rule"`
	Entries []domain.ResultEntry `json:"entries"`
}

// searchKey namespaces guarded searches so services with different
// MatchOptions can share one cache.
func searchKey(version, q string, opts MatchOptions) string {
	if opts.RejectEmptyQuery {
		return fmt.Sprintf("search:%s:g1:%s", version, q)
	}
	return fmt.Sprintf("search:%s:%s", version, q)
}

func (s *SearchService) Search(ctx context.Context, query string) ([]domain.ResultEntry, Rule) {
	key := searchKey(s.version, Normalize(query), s.opts)

	if s.cache != nil {
		var hit cachedSearch
		ok, err := s.cache.Get(ctx, key, &hit)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("search cache get failed")
		}
		if ok && err == nil {
			return copyEntries(hit.Entries), hit.Rule
		}
	}

	start := time.Now()
	out, rule := MatchRule(s.catalog, query, s.opts)
	observability.ObserveSearch(string(rule), len(out), time.Since(start))

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, cachedSearch{Rule: rule, Entries: out}, int(s.cacheTTL.Seconds())); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("search cache set failed")
		}
	}
	// copy so callers can't mutate what a fake or in-process cache holds
	return copyEntries(out), rule
}

func copyEntries(in []domain.ResultEntry) []domain.ResultEntry {
	out := make([]domain.ResultEntry, len(in))
	copy(out, in)
	return out
}
