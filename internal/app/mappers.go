package app

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"travel_reco/internal/domain"
)

/********** alias registries (single source of truth) **********/

var placeAliases = map[string][]string{
	"name":        {"name", "title"},
	"image":       {"imageUrl", "image_url", "imageURL", "image", "image.url"},
	"description": {"description", "desc", "summary"},
}

var countryAliases = map[string][]string{
	"name": {"name", "country"},
}

var collectionAliases = map[string][]string{
	"beaches":   {"beaches"},
	"temples":   {"temples"},
	"countries": {"countries"},
	"cities":    {"cities", "places"},
}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// lookupStr returns string at path or "".
func lookupStr(m map[string]any, path string) string {
	if v := lookupAny(m, path); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// firstNonEmptyAlias: first non-empty string for a named alias set.
func firstNonEmptyAlias(m map[string]any, aliases map[string][]string, key string) string {
	for _, p := range aliases[key] {
		if s := lookupStr(m, p); s != "" {
			return s
		}
	}
	return ""
}

// firstObjects: first alias path holding an array; non-object items are dropped.
func firstObjects(m map[string]any, aliases map[string][]string, key string) []map[string]any {
	for _, p := range aliases[key] {
		raw, ok := lookupAny(m, p).([]any)
		if !ok {
			continue
		}
		out := make([]map[string]any, 0, len(raw))
		for _, it := range raw {
			if obj, ok := it.(map[string]any); ok {
				out = append(out, obj)
			}
		}
		return out
	}
	return nil
}

/********** catalog decoder **********/

// DecodeCatalog parses a catalog document. Missing collections decode as
// empty slices; only malformed JSON is an error.
func DecodeCatalog(raw []byte) (domain.Catalog, error) {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return domain.Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}
	if doc == nil {
		return domain.Catalog{}, fmt.Errorf("decode catalog: document is null")
	}
	return mapCatalog(doc), nil
}

func mapCatalog(doc map[string]any) domain.Catalog {
	c := domain.EmptyCatalog()
	for _, b := range firstObjects(doc, collectionAliases, "beaches") {
		c.Beaches = append(c.Beaches, mapPlace(b))
	}
	for _, t := range firstObjects(doc, collectionAliases, "temples") {
		c.Temples = append(c.Temples, mapPlace(t))
	}
	for _, co := range firstObjects(doc, collectionAliases, "countries") {
		c.Countries = append(c.Countries, mapCountry(co))
	}
	return c
}

func mapPlace(m map[string]any) domain.Place {
	return domain.Place{
		Name:        firstNonEmptyAlias(m, placeAliases, "name"),
		ImageURL:    firstNonEmptyAlias(m, placeAliases, "image"),
		Description: firstNonEmptyAlias(m, placeAliases, "description"),
	}
}

func mapCountry(m map[string]any) domain.Country {
	co := domain.Country{
		Name:   firstNonEmptyAlias(m, countryAliases, "name"),
		Cities: []domain.Place{},
	}
	for _, city := range firstObjects(m, collectionAliases, "cities") {
		co.Cities = append(co.Cities, mapPlace(city))
	}
	if co.Name == "" {
		log.Debug().Int("cities", len(co.Cities)).Msg("catalog country without a name")
	}
	return co
}

/********** result mappers **********/

// originFromName returns the trimmed text after the last comma of a display
// name such as "Bora Bora, French Polynesia", or "" when there is no comma.
func originFromName(name string) string {
	i := strings.LastIndexByte(name, ',')
	if i < 0 {
		return ""
	}
	return strings.TrimSpace(name[i+1:])
}

func placeToEntry(p domain.Place) domain.ResultEntry {
	return domain.ResultEntry{
		Name:          p.Name,
		ImageURL:      p.ImageURL,
		Description:   p.Description,
		OriginCountry: originFromName(p.Name),
	}
}

func cityToEntry(city domain.Place, country string) domain.ResultEntry {
	return domain.ResultEntry{
		Name:          city.Name,
		ImageURL:      city.ImageURL,
		Description:   city.Description,
		OriginCountry: country,
	}
}

func placesToEntries(ps []domain.Place) []domain.ResultEntry {
	out := make([]domain.ResultEntry, 0, len(ps))
	for _, p := range ps {
		out = append(out, placeToEntry(p))
	}
	return out
}

func citiesToEntries(co domain.Country) []domain.ResultEntry {
	out := make([]domain.ResultEntry, 0, len(co.Cities))
	for _, city := range co.Cities {
		out = append(out, cityToEntry(city, co.Name))
	}
	return out
}
