package chart

import (
	"math"
	"strings"
)

// Palette names the color ramp used for bars.
type Palette string

const (
	PaletteReds  Palette = "reds"
	PaletteBlues Palette = "blues"
)

// Layout limits, in terminal cells.
const (
	DefaultWidth  = 100
	MinPlotWidth  = 10
	MaxLabelWidth = 36
	minLabelWidth = 8
)

// Rect is a cell rectangle in figure coordinates.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Bar is one drawn bar and the area that responds to presses.
type Bar struct {
	Label string
	Value float64
	Rect  Rect
}

// Tick is an x axis tick label anchored at column X.
type Tick struct {
	X     int
	Label string
}

// Spec describes a horizontal bar chart before layout.
type Spec struct {
	Title   []string
	XLabel  string
	YLabel  string
	Labels  []string
	Values  []float64
	Width   int
	Palette Palette
}

// Figure is a laid-out horizontal bar chart. Bars are drawn top to bottom in
// slice order and YTickLabels[i] labels Bars[i].
type Figure struct {
	Title       []string
	XLabel      string
	YLabel      string
	Palette     Palette
	Width       int
	Height      int
	LabelWidth  int
	PlotLeft    int
	PlotWidth   int
	AxisRow     int
	Axis        LogAxis
	Bars        []Bar
	YTickLabels []string
	XTicks      []Tick
}

// New lays out spec. Labels and Values must have the same length.
func New(spec Spec) *Figure {
	width := spec.Width
	if width <= 0 {
		width = DefaultWidth
	}

	labelWidth := minLabelWidth
	for _, l := range append([]string{spec.YLabel}, spec.Labels...) {
		if n := len([]rune(l)); n > labelWidth {
			labelWidth = n
		}
	}
	labelWidth = min(labelWidth, MaxLabelWidth)

	plotLeft := labelWidth + 2
	plotWidth := max(width-plotLeft-1, MinPlotWidth)
	width = plotLeft + plotWidth + 1

	f := &Figure{
		Title:       spec.Title,
		XLabel:      spec.XLabel,
		YLabel:      spec.YLabel,
		Palette:     spec.Palette,
		Width:       width,
		LabelWidth:  labelWidth,
		PlotLeft:    plotLeft,
		PlotWidth:   plotWidth,
		Axis:        NewLogAxis(spec.Values),
		YTickLabels: append([]string(nil), spec.Labels...),
	}

	top := f.plotTop()
	for i, label := range spec.Labels {
		v := spec.Values[i]
		f.Bars = append(f.Bars, Bar{
			Label: label,
			Value: v,
			Rect:  Rect{X: plotLeft, Y: top + i, W: f.barLength(v), H: 1},
		})
	}

	f.AxisRow = top + max(len(f.Bars), 1)
	f.Height = f.AxisRow + 3

	for _, d := range f.Axis.Decades() {
		f.XTicks = append(f.XTicks, Tick{X: f.column(d), Label: FormatAmount(d)})
	}
	return f
}

// BarAt hit-tests (x, y) against the bars in draw order. The first bar
// containing the point wins.
func (f *Figure) BarAt(x, y int) (int, bool) {
	for i, b := range f.Bars {
		if b.Rect.Contains(x, y) {
			return i, true
		}
	}
	return -1, false
}

func (f *Figure) plotTop() int {
	return len(f.Title) + 1
}

func (f *Figure) column(v float64) int {
	return f.PlotLeft + int(math.Round(f.Axis.Frac(v)*float64(f.PlotWidth-1)))
}

// barLength is zero for values the log axis cannot show.
func (f *Figure) barLength(v float64) int {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	return f.column(v) - f.PlotLeft + 1
}

// Painter styles the pieces of a figure. Painters must not change visible width.
type Painter interface {
	Title(s string) string
	Label(s string) string
	Bar(index int, s string) string
	Axis(s string) string
}

type plain struct{}

func (plain) Title(s string) string      { return s }
func (plain) Label(s string) string      { return s }
func (plain) Bar(_ int, s string) string { return s }
func (plain) Axis(s string) string       { return s }

// String renders the figure without styling.
func (f *Figure) String() string {
	return f.Render(plain{})
}

// Render draws the figure row by row, one line per cell row.
func (f *Figure) Render(p Painter) string {
	lines := make([]string, 0, f.Height)
	for _, t := range f.Title {
		lines = append(lines, p.Title(center(t, f.Width)))
	}
	lines = append(lines, p.Label(pad(f.YLabel, f.Width)))

	if len(f.Bars) == 0 {
		lines = append(lines, p.Label(pad(strings.Repeat(" ", f.LabelWidth)+" │ (no data)", f.Width)))
	}
	for i, b := range f.Bars {
		label := p.Label(leftPad(truncate(f.YTickLabels[i], f.LabelWidth), f.LabelWidth) + " │")
		bar := strings.Repeat("█", b.Rect.W)
		value := ""
		if room := f.PlotWidth - b.Rect.W; room > 1 {
			value = truncate(" "+FormatAmount(b.Value), room)
		}
		rest := strings.Repeat(" ", f.PlotWidth-b.Rect.W-len([]rune(value))+1)
		lines = append(lines, label+p.Bar(i, bar)+p.Axis(value)+rest)
	}

	lines = append(lines, p.Axis(pad(strings.Repeat(" ", f.LabelWidth+1)+"└"+strings.Repeat("─", f.PlotWidth), f.Width)))
	lines = append(lines, p.Axis(f.tickRow()))
	lines = append(lines, p.Label(pad(strings.Repeat(" ", f.PlotLeft)+center(f.XLabel, f.PlotWidth), f.Width)))
	return strings.Join(lines, "\n")
}

// tickRow places tick labels centered on their columns, dropping any that would overlap.
func (f *Figure) tickRow() string {
	row := []rune(strings.Repeat(" ", f.Width))
	lastEnd := -1
	for _, t := range f.XTicks {
		label := []rune(t.Label)
		start := t.X - len(label)/2
		start = max(0, min(start, f.Width-len(label)))
		if start <= lastEnd {
			continue
		}
		copy(row[start:], label)
		lastEnd = start + len(label)
	}
	return string(row)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

func pad(s string, n int) string {
	s = truncate(s, n)
	return s + strings.Repeat(" ", n-len([]rune(s)))
}

func leftPad(s string, n int) string {
	return strings.Repeat(" ", n-len([]rune(s))) + s
}

func center(s string, n int) string {
	s = truncate(s, n)
	left := (n - len([]rune(s))) / 2
	return pad(strings.Repeat(" ", left)+s, n)
}
