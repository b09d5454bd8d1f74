// Package term renders widget views for a terminal.
package term

import (
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/okian/panelkit/internal/domain/widget"
)

const (
	defaultWidth = 40
	minBarWidth  = 4
)

var (
	labelStyle   = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"})
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("74"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	tableHeaders = []string{"ID", "TITLE", "STATUS"}
)

// Renderer turns widget views into styled text.
type Renderer struct {
	width int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithWidth sets the bar width in cells.
func WithWidth(w int) Option {
	return func(r *Renderer) {
		if w >= minBarWidth {
			r.width = w
		}
	}
}

// New creates a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{width: defaultWidth}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Gauge renders the label line above a progress bar.
func (r *Renderer) Gauge(g widget.GaugeView) string {
	bar := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(r.width),
		progress.WithoutPercentage(),
	)
	return lipgloss.JoinVertical(lipgloss.Left,
		labelStyle.Render(g.Text()),
		bar.ViewAs(g.Ratio()),
	)
}

// Summary renders both summary lines.
func (r *Renderer) Summary(s widget.SummaryView) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		mutedStyle.Render(s.Velocity),
		mutedStyle.Render(s.Updated),
	)
}

// Table renders the title and a bordered table of rows.
func (r *Renderer) Table(tv widget.TableView) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(tableHeaders...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, row := range tv.Rows {
		t.Row(row.Cells[:]...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(tv.Title), t.String())
}

// Join stacks rendered blocks with a blank line between them.
func Join(blocks ...string) string {
	kept := blocks[:0:0]
	for _, b := range blocks {
		if strings.TrimSpace(b) != "" {
			kept = append(kept, b)
		}
	}
	return strings.Join(kept, "\n\n")
}
