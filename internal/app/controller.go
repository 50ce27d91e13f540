package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"travel_reco/internal/domain"
)

// Controller owns the application state: the loaded catalog (through the
// search service), the render sink and the clock scheduler.
type Controller struct {
	search *SearchService
	sink   domain.RenderSink
	clock  *Scheduler
	now    func() time.Time
}

func NewController(search *SearchService, sink domain.RenderSink, clock *Scheduler) *Controller {
	if clock == nil {
		clock = NewScheduler(SchedulerOptions{})
	}
	return &Controller{search: search, sink: sink, clock: clock, now: clock.now}
}

func (c *Controller) Catalog() domain.Catalog { return c.search.Catalog() }

// Submit runs a query, renders the results and restarts the clocks for the
// new batch.
func (c *Controller) Submit(ctx context.Context, query string) []domain.ResultEntry {
	entries, rule := c.search.Search(ctx, query)
	log.Info().Str("query", query).Str("rule", string(rule)).Int("results", len(entries)).Msg("search")

	// old clocks must not write into the batch we are about to replace
	c.clock.Stop()

	cards := BuildCards(entries)
	labels := c.sink.Render(cards)

	bindings := bindLabels(cards, labels)
	if len(bindings) > 0 {
		RefreshLabels(bindings, c.now())
	}
	c.clock.Start(bindings)
	return entries
}

// Reset clears the results and stops the clocks.
func (c *Controller) Reset() {
	c.clock.Stop()
	c.sink.Clear()
}

func (c *Controller) Close() { c.clock.Stop() }

// BuildCards decides which entries get a live clock. The country comes from
// OriginCountry, or from the display name when that is empty.
func BuildCards(entries []domain.ResultEntry) []domain.Card {
	cards := make([]domain.Card, 0, len(entries))
	for _, e := range entries {
		card := domain.Card{Entry: e}
		country := e.OriginCountry
		if country == "" {
			country = originFromName(e.Name)
		}
		if tz, ok := ResolveTimeZone(country); ok {
			card.TimeZone = tz
			card.TimeLabel = LocalTimeLabel(country)
		}
		cards = append(cards, card)
	}
	return cards
}

// bindLabels pairs the sink's labels with the cards that asked for a clock.
func bindLabels(cards []domain.Card, labels []domain.TimeLabel) []domain.TimeZoneBinding {
	var out []domain.TimeZoneBinding
	i := 0
	for _, card := range cards {
		if card.TimeZone == "" {
			continue
		}
		if i >= len(labels) {
			log.Warn().Int("labels", len(labels)).Msg("render sink returned fewer clock labels than requested")
			break
		}
		out = append(out, domain.TimeZoneBinding{Label: labels[i], TimeZone: card.TimeZone, Prefix: card.TimeLabel})
		i++
	}
	return out
}
