package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"travel_reco/internal/app"
	"travel_reco/internal/domain"
)

func TestLoadCatalog_Success(t *testing.T) {
	c := app.LoadCatalog(context.Background(), "test", fakeSource{c: sampleCatalog()})
	if diff := cmp.Diff(sampleCatalog(), c); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadCatalog_FailureGivesEmptyCatalog(t *testing.T) {
	for name, src := range map[string]domain.CatalogSource{
		"error": fakeSource{err: errors.New("boom")},
		"nil":   nil,
	} {
		c := app.LoadCatalog(context.Background(), name, src)
		if c.Beaches == nil || c.Temples == nil || c.Countries == nil {
			t.Fatalf("%s: collections must be empty, not nil: %#v", name, c)
		}
		if b, te, co, ci := c.Counts(); b+te+co+ci != 0 {
			t.Fatalf("%s: catalog not empty", name)
		}
	}
}

func TestLoadCatalog_FillsMissingCollections(t *testing.T) {
	c := app.LoadCatalog(context.Background(), "test", fakeSource{c: domain.Catalog{
		Beaches: []domain.Place{{Name: "x"}},
	}})
	if c.Temples == nil || c.Countries == nil {
		t.Fatalf("missing collections must become empty slices: %#v", c)
	}
}

func TestDocumentSource(t *testing.T) {
	doc := map[string]any{
		"beaches": []any{map[string]any{"name": "Bora Bora, French Polynesia", "imageUrl": "a", "description": "d"}},
	}
	c, err := app.DocumentSource{Client: fakeDocClient{doc: doc}}.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(c.Beaches) != 1 || c.Beaches[0].ImageURL != "a" {
		t.Fatalf("unexpected catalog: %+v", c)
	}

	if _, err := (app.DocumentSource{Client: fakeDocClient{}}).Fetch(context.Background()); err == nil {
		t.Fatalf("nil document should be an error")
	}
	boom := errors.New("boom")
	if _, err := (app.DocumentSource{Client: fakeDocClient{err: boom}}).Fetch(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}

func TestRepoSource(t *testing.T) {
	repo := &fakeRepo{}
	if _, err := (app.RepoSource{Repo: repo}).Fetch(context.Background()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
	c := sampleCatalog()
	repo.stored = &c
	got, err := app.RepoSource{Repo: repo}.Fetch(context.Background())
	if err != nil || len(got.Countries) != 3 {
		t.Fatalf("got %+v, %v", got, err)
	}
}

func TestCatalogVersion(t *testing.T) {
	a := app.CatalogVersion(sampleCatalog())
	if len(a) != 16 {
		t.Fatalf("version %q", a)
	}
	if a != app.CatalogVersion(sampleCatalog()) {
		t.Fatalf("version must be stable")
	}
	c := sampleCatalog()
	c.Beaches[0].Description = "changed"
	if a == app.CatalogVersion(c) {
		t.Fatalf("version must change with content")
	}
	// nil and empty collections hash the same
	if app.CatalogVersion(domain.Catalog{}) != app.CatalogVersion(domain.EmptyCatalog()) {
		t.Fatalf("nil vs empty collections")
	}
}
