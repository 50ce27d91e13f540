// Package textsink renders a result batch once, as markdown, for the
// non-interactive -q mode.
package textsink

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"

	"travel_reco/internal/domain"
)

type Options struct {
	// Style is a glamour standard style ("dark", "light", "notty", ...).
	// Empty picks one from the terminal.
	Style    string
	WordWrap int
}

// Printer buffers the last Render and writes it on Flush. Labels stay live
// until Flush so the first clock refresh lands in the output.
type Printer struct {
	w    io.Writer
	opts Options

	mu     sync.Mutex
	gen    int
	shown  bool
	cards  []domain.Card
	clocks []string
}

func New(w io.Writer, opts Options) *Printer {
	if opts.WordWrap <= 0 {
		opts.WordWrap = 80
	}
	return &Printer{w: w, opts: opts}
}

func (p *Printer) Render(cards []domain.Card) []domain.TimeLabel {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.gen++
	p.shown = true
	p.cards = append([]domain.Card(nil), cards...)
	p.clocks = make([]string, len(cards))

	var labels []domain.TimeLabel
	for i, c := range p.cards {
		if c.TimeZone == "" {
			continue
		}
		p.clocks[i] = c.TimeLabel
		labels = append(labels, &line{p: p, gen: p.gen, idx: i})
	}
	return labels
}

func (p *Printer) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen++
	p.shown = false
	p.cards, p.clocks = nil, nil
}

// Markdown returns the buffered batch as markdown.
func (p *Printer) Markdown() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.markdownLocked()
}

func (p *Printer) markdownLocked() string {
	if !p.shown {
		return ""
	}
	var sb strings.Builder
	if len(p.cards) == 0 {
		fmt.Fprintf(&sb, "## %s\n\n%s\n", domain.NoResultsTitle, domain.NoResultsHint)
		return sb.String()
	}
	for i, c := range p.cards {
		fmt.Fprintf(&sb, "## %s\n\n", c.Entry.Name)
		if c.Entry.Description != "" {
			fmt.Fprintf(&sb, "%s\n\n", c.Entry.Description)
		}
		if c.Entry.ImageURL != "" {
			fmt.Fprintf(&sb, "_%s_\n\n", c.Entry.ImageURL)
		}
		if p.clocks[i] != "" {
			fmt.Fprintf(&sb, "**%s**\n\n", strings.TrimSpace(p.clocks[i]))
		}
	}
	return sb.String()
}

// Flush writes the batch and detaches its labels.
func (p *Printer) Flush() error {
	p.mu.Lock()
	md := p.markdownLocked()
	p.gen++
	p.mu.Unlock()

	if md == "" {
		return nil
	}
	r, err := p.renderer()
	if err != nil {
		return fmt.Errorf("markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	_, err = io.WriteString(p.w, out)
	return err
}

func (p *Printer) renderer() (*glamour.TermRenderer, error) {
	style := glamour.WithAutoStyle()
	if p.opts.Style != "" {
		style = glamour.WithStandardStyle(p.opts.Style)
	}
	return glamour.NewTermRenderer(style, glamour.WithWordWrap(p.opts.WordWrap))
}

type line struct {
	p   *Printer
	gen int
	idx int
}

func (l *line) SetText(text string) bool {
	l.p.mu.Lock()
	defer l.p.mu.Unlock()
	if l.gen != l.p.gen {
		return false
	}
	l.p.clocks[l.idx] = text
	return true
}
