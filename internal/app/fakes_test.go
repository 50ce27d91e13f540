package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"travel_reco/internal/app"
	"travel_reco/internal/domain"
)

// ---- catalog fixture ----

func sampleCatalog() domain.Catalog {
	return domain.Catalog{
		Beaches: []domain.Place{
			{Name: "Bora Bora, French Polynesia", ImageURL: "bora.jpg", Description: "Lagoon."},
			{Name: "Copacabana Beach, Brazil", ImageURL: "copa.jpg", Description: "Rio."},
			{Name: "Lonely Cove", ImageURL: "cove.jpg", Description: "No country here."},
		},
		Temples: []domain.Place{
			{Name: "Angkor Wat, Cambodia", ImageURL: "angkor.jpg", Description: "Khmer."},
			{Name: "Taj Mahal, India", ImageURL: "taj.jpg", Description: "Marble."},
		},
		Countries: []domain.Country{
			{Name: "Australia", Cities: []domain.Place{
				{Name: "Sydney, Australia", ImageURL: "syd.jpg", Description: "Harbour."},
				{Name: "Melbourne, Australia", ImageURL: "mel.jpg", Description: "Laneways."},
			}},
			{Name: "Japan", Cities: []domain.Place{
				{Name: "Kyoto, Japan", ImageURL: "kyoto.jpg", Description: "Temples."},
				{Name: "Tokyo, Japan", ImageURL: "tokyo.jpg", Description: "Neon."},
			}},
			{Name: "Brazil", Cities: []domain.Place{
				{Name: "Rio de Janeiro, Brazil", ImageURL: "rio.jpg", Description: "Carnival."},
				{Name: "São Paulo, Brazil", ImageURL: "sp.jpg", Description: "Skyline."},
			}},
		},
	}
}

// 2024-01-01 00:00 UTC
var fixedNow = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// ---- cache ----

type fakeCache struct {
	mu    sync.Mutex
	store map[string][]byte
	gets  int
	sets  int
	dels  []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.sets++
	c.store[key] = b
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dels = append(c.dels, key)
	delete(c.store, key)
	return nil
}

func (c *fakeCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.store[key]
	return ok
}

type brokenCache struct{}

var errCacheDown = errors.New("cache down")

func (brokenCache) Get(context.Context, string, any) (bool, error) { return false, errCacheDown }
func (brokenCache) Set(context.Context, string, any, int) error    { return errCacheDown }
func (brokenCache) Del(context.Context, string) error              { return errCacheDown }

// ---- catalog sources and repository ----

type fakeSource struct {
	c   domain.Catalog
	err error
}

func (s fakeSource) Fetch(context.Context) (domain.Catalog, error) { return s.c, s.err }

type fakeDocClient struct {
	doc map[string]any
	err error
}

func (f fakeDocClient) GetCatalog(context.Context) (map[string]any, error) { return f.doc, f.err }

type fakeRepo struct {
	stored     *domain.Catalog
	loadErr    error
	replaceErr error
	replaced   int
}

func (r *fakeRepo) ReplaceCatalog(ctx context.Context, c domain.Catalog) error {
	if r.replaceErr != nil {
		return r.replaceErr
	}
	r.replaced++
	r.stored = &c
	return nil
}

func (r *fakeRepo) LoadCatalog(ctx context.Context) (domain.Catalog, error) {
	if r.loadErr != nil {
		return domain.Catalog{}, r.loadErr
	}
	if r.stored == nil {
		return domain.Catalog{}, domain.ErrNotFound
	}
	return *r.stored, nil
}

// ---- render sink and labels ----

type fakeLabel struct {
	mu       sync.Mutex
	text     string
	writes   int
	detached bool
}

func (l *fakeLabel) SetText(s string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.detached {
		return false
	}
	l.text = s
	l.writes++
	return true
}

func (l *fakeLabel) get() (string, int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.text, l.writes
}

type fakeSink struct {
	renders [][]domain.Card
	labels  [][]*fakeLabel
	clears  int
}

func (s *fakeSink) Render(cards []domain.Card) []domain.TimeLabel {
	s.renders = append(s.renders, cards)
	var own []*fakeLabel
	var out []domain.TimeLabel
	for _, c := range cards {
		if c.TimeZone == "" {
			continue
		}
		l := &fakeLabel{text: c.TimeLabel}
		own = append(own, l)
		out = append(out, l)
	}
	s.labels = append(s.labels, own)
	return out
}

func (s *fakeSink) Clear() { s.clears++ }

// ---- ticker ----

type fakeTicker struct {
	ch      chan time.Time
	mu      sync.Mutex
	stopped bool
}

func (t *fakeTicker) C() <-chan time.Time { return t.ch }

func (t *fakeTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
}

func (t *fakeTicker) isStopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

type tickers struct {
	mu  sync.Mutex
	all []*fakeTicker
}

func (f *tickers) New(time.Duration) app.Ticker {
	f.mu.Lock()
	defer f.mu.Unlock()
	// buffered so a test can send to a ticker nobody reads anymore
	t := &fakeTicker{ch: make(chan time.Time, 1)}
	f.all = append(f.all, t)
	return t
}

func (f *tickers) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.all)
}

func (f *tickers) get(i int) *fakeTicker {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.all[i]
}

// newTestScheduler returns a scheduler driven by fake tickers; every
// completed tick is signalled on the returned channel.
func newTestScheduler() (*app.Scheduler, *tickers, <-chan struct{}) {
	tk := &tickers{}
	ticked := make(chan struct{}, 16)
	s := app.NewScheduler(app.SchedulerOptions{
		Period:    time.Second,
		Now:       func() time.Time { return fixedNow },
		NewTicker: tk.New,
		OnTick:    func() { ticked <- struct{}{} },
	})
	return s, tk, ticked
}
