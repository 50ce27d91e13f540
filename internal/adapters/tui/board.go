package tui

import (
	"sync"

	"travel_reco/internal/domain"
)

// Board is the render sink behind the TUI. It is written by the controller
// and the clock scheduler and read by View, so access is locked.
type Board struct {
	mu    sync.Mutex
	gen   int // bumped on every Render/Clear; older labels go stale
	shown bool
	cards []domain.Card
	clock []string // clock text per card, "" when none
}

func NewBoard() *Board { return &Board{} }

func (b *Board) Render(cards []domain.Card) []domain.TimeLabel {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.gen++
	b.shown = true
	b.cards = append([]domain.Card(nil), cards...)
	b.clock = make([]string, len(cards))

	var labels []domain.TimeLabel
	for i, c := range b.cards {
		if c.TimeZone == "" {
			continue
		}
		b.clock[i] = c.TimeLabel
		labels = append(labels, &label{board: b, gen: b.gen, idx: i})
	}
	return labels
}

func (b *Board) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.gen++
	b.shown = false
	b.cards, b.clock = nil, nil
}

// Item is one card as View draws it.
type Item struct {
	Card  domain.Card
	Clock string
}

// Snapshot returns the visible items and whether a result set is on screen
// (shown with no items means "no results").
func (b *Board) Snapshot() (items []Item, shown bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	items = make([]Item, len(b.cards))
	for i, c := range b.cards {
		items[i] = Item{Card: c, Clock: b.clock[i]}
	}
	return items, b.shown
}

type label struct {
	board *Board
	gen   int
	idx   int
}

func (l *label) SetText(text string) bool {
	l.board.mu.Lock()
	defer l.board.mu.Unlock()
	if l.gen != l.board.gen {
		return false
	}
	l.board.clock[l.idx] = text
	return true
}
