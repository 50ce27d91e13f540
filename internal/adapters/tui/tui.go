package tui

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"travel_reco/internal/domain"
)

// Searcher is the part of app.Controller the TUI drives.
type Searcher interface {
	Submit(ctx context.Context, query string) []domain.ResultEntry
	Reset()
	Close()
}

// Options configures the TUI.
type Options struct {
	Controller Searcher
	Board      *Board
	Source     string // shown in the header
}

// ClockMsg tells the model that clock labels changed.
type ClockMsg struct{}

// Redrawer forwards scheduler ticks to a running program. Its zero value
// drops notifications until a program is attached.
type Redrawer struct{ p atomic.Pointer[tea.Program] }

func (r *Redrawer) Attach(p *tea.Program) { r.p.Store(p) }

// Notify never blocks; it is called from the scheduler goroutine.
func (r *Redrawer) Notify() {
	if p := r.p.Load(); p != nil {
		go p.Send(ClockMsg{})
	}
}

// Model is the Bubble Tea model for the search screen.
type Model struct {
	options  Options
	input    textinput.Model
	viewport viewport.Model
	width    int
	height   int

	ready     bool
	quitting  bool
	lastQuery string
	results   int
}

// New creates a new TUI model.
func New(opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "beaches, temples, a country or a city"
	ti.Focus()
	ti.CharLimit = 256
	ti.Prompt = inputPromptStyle.Render("> ")

	vp := viewport.New(80, 20)
	vp.KeyMap = viewport.KeyMap{
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
	}

	if opts.Board == nil {
		opts.Board = NewBoard()
	}
	return Model{options: opts, input: ti, viewport: vp}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.quitting = true
			m.options.Controller.Close()
			return m, tea.Quit
		case tea.KeyEnter:
			return m.handleSubmit()
		case tea.KeyEsc, tea.KeyCtrlR:
			return m.handleReset()
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		headerH, inputH, helpH := 1, 2, 1
		viewH := m.height - headerH - inputH - helpH
		if viewH < 1 {
			viewH = 1
		}
		m.viewport.Width = m.width
		m.viewport.Height = viewH
		m.input.Width = m.width - 4
		m.ready = true
		m.updateViewport()
		return m, nil

	case ClockMsg:
		m.updateViewport()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return "Safe travels!\n"
	}
	if !m.ready {
		return "Initializing..."
	}

	return fmt.Sprintf("%s\n%s\n%s\n%s",
		Header(m.options.Source, m.lastQuery, m.results, m.width),
		m.viewport.View(),
		m.input.View(),
		helpStyle.Render("enter search • esc reset • pgup/pgdn scroll • ctrl+c quit"),
	)
}

func (m *Model) handleSubmit() (tea.Model, tea.Cmd) {
	q := m.input.Value()
	entries := m.options.Controller.Submit(context.Background(), q)
	m.lastQuery = strings.TrimSpace(q)
	m.results = len(entries)
	m.updateViewport()
	m.viewport.GotoTop()
	return m, nil
}

func (m *Model) handleReset() (tea.Model, tea.Cmd) {
	m.options.Controller.Reset()
	m.input.Reset()
	m.input.Focus()
	m.lastQuery = ""
	m.results = 0
	m.updateViewport()
	return m, nil
}

func (m *Model) updateViewport() {
	items, shown := m.options.Board.Snapshot()
	m.viewport.SetContent(RenderCards(items, shown, m.width))
}

// Header renders the top bar.
func Header(source, query string, results, width int) string {
	text := "  travelrec"
	if source != "" {
		text += " · " + source
	}
	if query != "" {
		text += fmt.Sprintf(" · %q: %d result(s)", query, results)
	}
	return headerStyle.Width(width).Render(text + "  ")
}

// RenderCards draws the result list; an empty list that is shown becomes the
// "no results" card.
func RenderCards(items []Item, shown bool, width int) string {
	if !shown {
		return ""
	}
	w := width - 2
	if w < 20 {
		w = 20
	}
	style := cardStyle.Width(w)

	if len(items) == 0 {
		return style.Render(titleStyle.Render(domain.NoResultsTitle) + "\n" + domain.NoResultsHint)
	}

	blocks := make([]string, 0, len(items))
	for _, it := range items {
		e := it.Card.Entry
		lines := []string{titleStyle.Render(e.Name)}
		if e.Description != "" {
			lines = append(lines, e.Description)
		}
		if e.ImageURL != "" {
			lines = append(lines, imageStyle.Render(e.ImageURL))
		}
		if it.Card.TimeZone != "" {
			lines = append(lines, timeStyle.Render(it.Clock))
		}
		blocks = append(blocks, style.Render(strings.Join(lines, "\n")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}
