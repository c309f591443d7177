package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/fraudlens/fraudlens/internal/chart"
)

// Styles holds the lipgloss styles used to draw figures.
type Styles struct {
	Title lipgloss.Style
	Label lipgloss.Style
	Axis  lipgloss.Style
	Frame lipgloss.Style
	Help  lipgloss.Style
	Ramps map[chart.Palette][]lipgloss.Color
}

// Frame geometry: rounded border plus one column of horizontal padding.
const (
	frameLeft   = 2
	frameTop    = 1
	frameHeight = 2
)

// Color ramps run darkest to lightest.
var (
	reds  = []lipgloss.Color{"#67000d", "#a50f15", "#cb181d", "#ef3b2c", "#fb6a4a", "#fc9272", "#fcbba1"}
	blues = []lipgloss.Color{"#08306b", "#08519c", "#2171b5", "#4292c6", "#6baed6", "#9ecae1", "#c6dbef"}
)

// DefaultStyles returns the built-in styles.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().Bold(true),
		Label: lipgloss.NewStyle().Foreground(lipgloss.Color("#bbbbbb")),
		Axis:  lipgloss.NewStyle().Foreground(lipgloss.Color("#828282")),
		Frame: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		Help:  lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")),
		Ramps: map[chart.Palette][]lipgloss.Color{
			chart.PaletteReds:  reds,
			chart.PaletteBlues: blues,
		},
	}
}

// painter applies Styles to one figure. Bars shade from dark to light down the chart.
type painter struct {
	styles Styles
	fig    *chart.Figure
}

func (p painter) Title(s string) string { return p.styles.Title.Render(s) }
func (p painter) Label(s string) string { return p.styles.Label.Render(s) }
func (p painter) Axis(s string) string  { return p.styles.Axis.Render(s) }

func (p painter) Bar(i int, s string) string {
	ramp := p.styles.Ramps[p.fig.Palette]
	if len(ramp) == 0 || s == "" {
		return s
	}
	idx := 0
	if n := len(p.fig.Bars); n > 1 {
		idx = i * (len(ramp) - 1) / (n - 1)
	}
	return lipgloss.NewStyle().Foreground(ramp[idx]).Render(s)
}
