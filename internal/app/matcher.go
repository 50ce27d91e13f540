package app

import (
	"strings"

	"golang.org/x/text/cases"

	"travel_reco/internal/domain"
)

// Rule names the matching rule that produced a result set.
type Rule string

const (
	RuleBeaches   Rule = "beaches"
	RuleTemples   Rule = "temples"
	RuleCountries Rule = "countries"
	RuleCountry   Rule = "country"
	RuleCity      Rule = "city"
	RuleLoose     Rule = "loose"
	RuleEmpty     Rule = "empty" // only with MatchOptions.RejectEmptyQuery
)

var (
	beachWords   = []string{"beach", "beaches"}
	templeWords  = []string{"temple", "temples"}
	countryWords = []string{"country", "countries"}
)

type MatchOptions struct {
	// RejectEmptyQuery returns no results for a blank query. Without it a
	// blank query matches the first country's cities, or every beach and
	// temple when the catalog has no countries.
	RejectEmptyQuery bool
}

// Match runs the query against the catalog with default options.
func Match(c domain.Catalog, query string) []domain.ResultEntry {
	out, _ := MatchRule(c, query, MatchOptions{})
	return out
}

// MatchRule is Match plus the rule that fired. Rules are tried in priority
// order and the first one that applies wins.
func MatchRule(c domain.Catalog, query string, opts MatchOptions) ([]domain.ResultEntry, Rule) {
	m := newMatcher()
	q := m.normalize(query)

	if q == "" && opts.RejectEmptyQuery {
		return []domain.ResultEntry{}, RuleEmpty
	}

	switch {
	case matchKeyword(q, beachWords):
		return placesToEntries(c.Beaches), RuleBeaches
	case matchKeyword(q, templeWords):
		return placesToEntries(c.Temples), RuleTemples
	case matchKeyword(q, countryWords):
		return flattenCountryCities(c.Countries), RuleCountries
	}

	if co, ok := m.findCountry(c.Countries, q); ok {
		return citiesToEntries(co), RuleCountry
	}

	if cities := m.findCities(c.Countries, q); len(cities) > 0 {
		return cities, RuleCity
	}

	loose := []domain.ResultEntry{}
	for _, group := range [][]domain.Place{c.Beaches, c.Temples} {
		for _, p := range group {
			if strings.Contains(m.normalize(p.Name), q) {
				loose = append(loose, placeToEntry(p))
			}
		}
	}
	return loose, RuleLoose
}

// Normalize trims and case-folds s the same way the matcher does.
func Normalize(s string) string { return newMatcher().normalize(s) }

// matcher carries a per-call Caser; Casers are not safe for concurrent use.
type matcher struct{ fold cases.Caser }

func newMatcher() *matcher { return &matcher{fold: cases.Fold()} }

func (m *matcher) normalize(s string) string {
	return m.fold.String(strings.TrimSpace(s))
}

func matchKeyword(q string, words []string) bool {
	for _, w := range words {
		if q == w || strings.Contains(q, w) {
			return true
		}
	}
	return false
}

// first country in catalog order, not the best one
func (m *matcher) findCountry(countries []domain.Country, q string) (domain.Country, bool) {
	for _, co := range countries {
		name := m.normalize(co.Name)
		if name == q || strings.Contains(name, q) {
			return co, true
		}
	}
	return domain.Country{}, false
}

func (m *matcher) findCities(countries []domain.Country, q string) []domain.ResultEntry {
	var out []domain.ResultEntry
	for _, co := range countries {
		for _, city := range co.Cities {
			name := m.normalize(city.Name)
			if name == q || strings.Contains(name, q) {
				out = append(out, cityToEntry(city, co.Name))
			}
		}
	}
	return out
}

func flattenCountryCities(countries []domain.Country) []domain.ResultEntry {
	out := []domain.ResultEntry{}
	for _, co := range countries {
		out = append(out, citiesToEntries(co)...)
	}
	return out
}
