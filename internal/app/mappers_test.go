package app_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"travel_reco/internal/app"
	"travel_reco/internal/domain"
)

func TestDecodeCatalog_CanonicalDocument(t *testing.T) {
	raw := []byte(`{
	  "countries": [{"id": 1, "name": "Japan", "cities": [{"name": "Kyoto, Japan", "imageUrl": "k.jpg", "description": "Old capital."}]}],
	  "temples":   [{"id": 1, "name": "Angkor Wat, Cambodia", "imageUrl": "a.jpg", "description": "Khmer."}],
	  "beaches":   [{"id": 1, "name": "Bora Bora, French Polynesia", "imageUrl": "b.jpg", "description": "Lagoon."}]
	}`)
	got, err := app.DecodeCatalog(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := domain.Catalog{
		Beaches: []domain.Place{{Name: "Bora Bora, French Polynesia", ImageURL: "b.jpg", Description: "Lagoon."}},
		Temples: []domain.Place{{Name: "Angkor Wat, Cambodia", ImageURL: "a.jpg", Description: "Khmer."}},
		Countries: []domain.Country{{Name: "Japan", Cities: []domain.Place{
			{Name: "Kyoto, Japan", ImageURL: "k.jpg", Description: "Old capital."},
		}}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeCatalog_AliasesAndJunk(t *testing.T) {
	raw := []byte(`{
	  "beaches": [{"title": "Whitehaven", "image_url": "w.jpg", "summary": "Silica sand."}, 42, "junk"],
	  "countries": [{"country": "Australia", "places": [{"name": "Sydney, Australia", "image": {"url": "s.jpg"}}]}]
	}`)
	got, err := app.DecodeCatalog(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Beaches) != 1 || got.Beaches[0].Name != "Whitehaven" || got.Beaches[0].ImageURL != "w.jpg" || got.Beaches[0].Description != "Silica sand." {
		t.Fatalf("beaches = %+v", got.Beaches)
	}
	if got.Temples == nil || len(got.Temples) != 0 {
		t.Fatalf("missing temples must decode as empty: %#v", got.Temples)
	}
	if len(got.Countries) != 1 || got.Countries[0].Name != "Australia" || got.Countries[0].Cities[0].ImageURL != "s.jpg" {
		t.Fatalf("countries = %+v", got.Countries)
	}
}

func TestDecodeCatalog_Errors(t *testing.T) {
	for _, raw := range []string{`{`, `null`, `[1,2]`} {
		if _, err := app.DecodeCatalog([]byte(raw)); err == nil {
			t.Fatalf("%s: expected error", raw)
		}
	}
}

func TestOriginCountryConvention(t *testing.T) {
	c := domain.Catalog{Beaches: []domain.Place{
		{Name: "A, B, C"},
		{Name: "Trailing comma,"},
		{Name: "No comma"},
		{Name: "Spaced ,   Fiji  "},
	}}
	got := app.Match(c, "beaches")
	var origins []string
	for _, e := range got {
		origins = append(origins, e.OriginCountry)
	}
	if diff := cmp.Diff([]string{"C", "", "", "Fiji"}, origins); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}
