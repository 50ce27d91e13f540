package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"travel_reco/internal/app"
)

func TestSearch_CacheMissThenHit(t *testing.T) {
	cache := &fakeCache{}
	s := app.NewSearchService(sampleCatalog(), cache, 10*time.Minute, app.MatchOptions{})

	// Miss (first time, populates cache)
	first, rule := s.Search(context.Background(), "Japan")
	if rule != app.RuleCountry || len(first) != 2 {
		t.Fatalf("unexpected first result: %s %+v", rule, first)
	}
	if cache.sets != 1 {
		t.Fatalf("expected one cache set, got %d", cache.sets)
	}

	// Hit; same normalized key
	second, rule := s.Search(context.Background(), "  JAPAN ")
	if rule != app.RuleCountry {
		t.Fatalf("rule from cache = %s", rule)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("cached result differs (-first +second):\n%s", diff)
	}
	if cache.sets != 1 || cache.gets != 2 {
		t.Fatalf("sets=%d gets=%d", cache.sets, cache.gets)
	}
	if !cache.has("search:" + s.Version() + ":japan") {
		t.Fatalf("unexpected cache keys: %v", cache.store)
	}
}

func TestSearch_CacheErrorsDoNotFail(t *testing.T) {
	s := app.NewSearchService(sampleCatalog(), brokenCache{}, time.Minute, app.MatchOptions{})
	got, rule := s.Search(context.Background(), "temples")
	if rule != app.RuleTemples || len(got) != 2 {
		t.Fatalf("got %s %+v", rule, got)
	}
}

func TestSearch_WithoutCache(t *testing.T) {
	s := app.NewSearchService(sampleCatalog(), nil, 0, app.MatchOptions{RejectEmptyQuery: true})
	got, rule := s.Search(context.Background(), "")
	if rule != app.RuleEmpty || len(got) != 0 {
		t.Fatalf("got %s %+v", rule, got)
	}
}

func TestSearch_ResultsAreCopies(t *testing.T) {
	s := app.NewSearchService(sampleCatalog(), nil, 0, app.MatchOptions{})
	a, _ := s.Search(context.Background(), "beaches")
	a[0].Name = "changed"
	b, _ := s.Search(context.Background(), "beaches")
	if b[0].Name != "Bora Bora, French Polynesia" {
		t.Fatalf("caller mutation leaked: %q", b[0].Name)
	}
	if s.Catalog().Beaches[0].Name != "Bora Bora, French Polynesia" {
		t.Fatalf("catalog mutated")
	}
}

func TestSearch_SharedCacheKeepsEmptyQueryGuard(t *testing.T) {
	ctx := context.Background()
	cache := &fakeCache{}
	open := app.NewSearchService(sampleCatalog(), cache, time.Minute, app.MatchOptions{})
	guarded := app.NewSearchService(sampleCatalog(), cache, time.Minute, app.MatchOptions{RejectEmptyQuery: true})

	if got, rule := open.Search(ctx, ""); rule != app.RuleCountry || len(got) == 0 {
		t.Fatalf("open: %s %+v", rule, got)
	}
	if got, rule := guarded.Search(ctx, "  "); rule != app.RuleEmpty || len(got) != 0 {
		t.Fatalf("guarded served an unguarded result: %s %+v", rule, got)
	}
	// and the other way round, now that both entries are cached
	if got, rule := open.Search(ctx, " "); rule != app.RuleCountry || len(got) == 0 {
		t.Fatalf("open served a guarded result: %s %+v", rule, got)
	}
	if !cache.has("search:"+open.Version()+":") || !cache.has("search:"+open.Version()+":g1:") {
		t.Fatalf("unexpected cache keys: %v", cache.store)
	}
}
