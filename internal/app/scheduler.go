package app

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"travel_reco/internal/adapters/observability"
	"travel_reco/internal/domain"
)

const DefaultTickPeriod = time.Second

// Ticker is the part of *time.Ticker the scheduler needs.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type TickerFunc func(d time.Duration) Ticker

type stdTicker struct{ t *time.Ticker }

func (s stdTicker) C() <-chan time.Time { return s.t.C }
func (s stdTicker) Stop()               { s.t.Stop() }

func NewStdTicker(d time.Duration) Ticker { return stdTicker{t: time.NewTicker(d)} }

type SchedulerOptions struct {
	Period    time.Duration
	Now       func() time.Time
	NewTicker TickerFunc
	// OnTick runs on the scheduler goroutine after every tick. It must not
	// block on whoever calls Start or Stop.
	OnTick func()
}

// Scheduler keeps the clocks of the current render batch fresh. At most one
// tick stream exists at a time; Start replaces it and Stop ends it.
type Scheduler struct {
	period    time.Duration
	now       func() time.Time
	newTicker TickerFunc
	onTick    func()

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

func NewScheduler(opts SchedulerOptions) *Scheduler {
	s := &Scheduler{
		period:    opts.Period,
		now:       opts.Now,
		newTicker: opts.NewTicker,
		onTick:    opts.OnTick,
	}
	if s.period <= 0 {
		s.period = DefaultTickPeriod
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newTicker == nil {
		s.newTicker = NewStdTicker
	}
	return s
}

// Start cancels any running stream and, when bindings is non-empty, starts a
// new one over a private copy of bindings.
func (s *Scheduler) Start(bindings []domain.TimeZoneBinding) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
	if len(bindings) == 0 {
		return
	}

	bs := append([]domain.TimeZoneBinding(nil), bindings...)
	stop, done := make(chan struct{}), make(chan struct{})
	s.stop, s.done = stop, done
	go s.run(s.newTicker(s.period), bs, stop, done)
	log.Debug().Int("bindings", len(bs)).Dur("period", s.period).Msg("clock scheduler running")
}

// Stop ends the running stream. When it returns no label will be touched
// again by the old stream.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stop != nil
}

func (s *Scheduler) stopLocked() {
	if s.stop == nil {
		return
	}
	close(s.stop)
	<-s.done
	s.stop, s.done = nil, nil
	log.Debug().Msg("clock scheduler idle")
}

func (s *Scheduler) run(t Ticker, bs []domain.TimeZoneBinding, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C():
			// a tick that races a stop loses
			select {
			case <-stop:
				return
			default:
			}
			RefreshLabels(bs, s.now())
			if s.onTick != nil {
				s.onTick()
			}
		}
	}
}

// TickStats counts what one refresh did.
type TickStats struct {
	Updated, Failed, Detached int
}

// RefreshLabels writes the current time into every bound label. A zone that
// cannot be formatted blanks its own label only; detached labels are skipped.
func RefreshLabels(bs []domain.TimeZoneBinding, now time.Time) TickStats {
	var st TickStats
	for _, b := range bs {
		if b.Label == nil {
			continue
		}
		text, err := FormatLocalTime(b.TimeZone, now)
		if err != nil {
			log.Debug().Err(err).Str("tz", b.TimeZone).Msg("clock format failed")
			st.Failed++
			if !b.Label.SetText("") {
				st.Detached++
			}
			continue
		}
		if !b.Label.SetText(b.Prefix + text) {
			st.Detached++
			continue
		}
		st.Updated++
	}
	observability.ObserveClockTick(st.Updated, st.Failed, st.Detached)
	return st
}
