package tui

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fraudlens/fraudlens/internal/aggregate"
	"github.com/fraudlens/fraudlens/internal/chart"
	"github.com/fraudlens/fraudlens/internal/model"
	"github.com/fraudlens/fraudlens/internal/viz"
)

func testFigure(title string) *chart.Figure {
	return chart.New(chart.Spec{
		Title:   []string{title},
		Labels:  []string{"C", "A", "B"},
		Values:  []float64{2e8, 1e8, 5e7},
		Width:   60,
		Palette: chart.PaletteReds,
	})
}

func leftClick(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func TestOpen_View(t *testing.T) {
	s := New()
	_, err := s.Open(testFigure("Overview chart"))
	require.NoError(t, err)

	view := s.View()
	assert.Contains(t, view, "Overview chart")
	assert.Contains(t, view, "q quit")
	assert.Equal(t, 1, s.Windows())
}

func TestOpen_NilFigure(t *testing.T) {
	_, err := New().Open(nil)
	assert.Error(t, err)
}

func TestPress_TranslatesToFigureCoordinates(t *testing.T) {
	s := New()
	w, err := s.Open(testFigure("one"))
	require.NoError(t, err)

	var got []viz.PressEvent
	w.OnPress(func(ev viz.PressEvent) { got = append(got, ev) })

	bar := w.Figure().Bars[1].Rect
	s.Update(leftClick(bar.X+frameLeft, bar.Y+frameTop))

	require.Len(t, got, 1)
	assert.Equal(t, viz.PressEvent{X: bar.X, Y: bar.Y}, got[0])
}

func TestPress_SecondWindow(t *testing.T) {
	s := New()
	first, _ := s.Open(testFigure("one"))
	second, _ := s.Open(testFigure("two"))

	var firstHits, secondHits []viz.PressEvent
	first.OnPress(func(ev viz.PressEvent) { firstHits = append(firstHits, ev) })
	second.OnPress(func(ev viz.PressEvent) { secondHits = append(secondHits, ev) })

	top := first.Figure().Height + frameHeight
	s.Update(leftClick(frameLeft+4, top+frameTop+3))

	assert.Empty(t, firstHits)
	require.Len(t, secondHits, 1)
	assert.Equal(t, viz.PressEvent{X: 4, Y: 3}, secondHits[0])
}

func TestPress_IgnoresOtherMouseEvents(t *testing.T) {
	s := New()
	w, _ := s.Open(testFigure("one"))
	calls := 0
	w.OnPress(func(viz.PressEvent) { calls++ })

	s.Update(tea.MouseMsg{X: frameLeft, Y: frameTop, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	s.Update(tea.MouseMsg{X: frameLeft, Y: frameTop, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	s.Update(tea.MouseMsg{X: frameLeft, Y: frameTop, Action: tea.MouseActionMotion})
	assert.Zero(t, calls)

	// Border and outside of every window.
	s.Update(leftClick(0, 0))
	s.Update(leftClick(frameLeft, 500))
	assert.Zero(t, calls)
}

func TestKeys_CloseKeepsFirstWindow(t *testing.T) {
	s := New()
	s.Open(testFigure("one"))
	s.Open(testFigure("two"))

	s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Equal(t, 1, s.Windows())

	s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, 1, s.Windows())
	assert.Contains(t, s.View(), "one")
}

func TestKeys_Quit(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyCtrlC},
	} {
		_, cmd := New().Update(key)
		require.NotNil(t, cmd, key.String())
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestWindowClose_Idempotent(t *testing.T) {
	s := New()
	w, _ := s.Open(testFigure("one"))
	s.Open(testFigure("two"))

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
	assert.Equal(t, 1, s.Windows())
	assert.NotContains(t, s.View(), "one")
}

func TestControllerOnSurface(t *testing.T) {
	m := decimal.NewFromInt(1_000_000)
	views := aggregate.NewViews([]model.Record{
		{Category: "A", Subcategory: "a1", Amount: decimal.NewFromInt(100).Mul(m)},
		{Category: "B", Subcategory: "b1", Amount: decimal.NewFromInt(20).Mul(m)},
		{Category: "B", Subcategory: "b2", Amount: decimal.NewFromInt(30).Mul(m)},
		{Category: "C", Subcategory: "c1", Amount: decimal.NewFromInt(200).Mul(m)},
	})

	s := New()
	c := viz.NewController(views, s, viz.WithWidth(70))
	require.NoError(t, c.ShowOverview())
	require.Equal(t, 1, s.Windows())

	bar := s.windows[0].fig.Bars[2].Rect
	s.Update(leftClick(bar.X+frameLeft, bar.Y+frameTop))

	require.Equal(t, 2, s.Windows())
	assert.Contains(t, s.View(), "Agency: B")
	_, selected := c.State()
	assert.Equal(t, "B", selected)

	// Clicking another bar replaces the detail window.
	bar = s.windows[0].fig.Bars[0].Rect
	s.Update(leftClick(bar.X+frameLeft, bar.Y+frameTop))
	require.Equal(t, 2, s.Windows())
	assert.Contains(t, s.View(), "Agency: C")
	assert.NotContains(t, s.View(), "Agency: B")

	// Presses on the detail chart do nothing.
	detailTop := s.windows[0].fig.Height + frameHeight
	d := s.windows[1].fig.Bars[0].Rect
	s.Update(leftClick(d.X+frameLeft, detailTop+d.Y+frameTop))
	assert.Equal(t, 2, s.Windows())

	require.NoError(t, c.Close())
	assert.Zero(t, s.Windows())
}

// tenByTen has ten categories of ten subcategories, so overview and detail
// together are taller than a normal terminal.
func tenByTen() *aggregate.Views {
	var records []model.Record
	for i := 0; i < 10; i++ {
		for j := 0; j < 10; j++ {
			records = append(records, model.Record{
				Category:    fmt.Sprintf("Agency %02d", i),
				Subcategory: fmt.Sprintf("Program %02d", j),
				Amount:      decimal.NewFromInt(int64((10-i)*100 + j)).Mul(decimal.NewFromInt(1_000_000)),
			})
		}
	}
	return aggregate.NewViews(records)
}

func TestViewHeight(t *testing.T) {
	s := New()
	c := viz.NewController(tenByTen(), s, viz.WithWidth(80))
	require.NoError(t, c.ShowOverview())
	require.NoError(t, c.ShowDetail("Agency 00"))

	assert.Equal(t, lipgloss.Height(s.View()), s.viewHeight())
}

func TestPress_ClippedView(t *testing.T) {
	s := New()
	c := viz.NewController(tenByTen(), s, viz.WithWidth(80))
	require.NoError(t, c.ShowOverview())
	s.Update(tea.WindowSizeMsg{Width: 120, Height: 30})

	// The overview alone fits, so nothing is clipped yet.
	bar := s.windows[0].fig.Bars[0].Rect
	s.Update(leftClick(bar.X+frameLeft, bar.Y+frameTop))
	_, selected := c.State()
	require.Equal(t, "Agency 00", selected)

	// With the detail open the view is taller than the terminal and its top
	// rows are off screen.
	hidden := s.viewHeight() - 30
	require.Positive(t, hidden)
	assert.Equal(t, hidden, s.clippedRows())

	bar = s.windows[0].fig.Bars[6].Rect
	screenY := bar.Y + frameTop - hidden
	require.GreaterOrEqual(t, screenY, 0)
	s.Update(leftClick(bar.X+frameLeft, screenY))

	_, selected = c.State()
	assert.Equal(t, "Agency 06", selected)
	assert.Equal(t, 2, s.Windows())
}

func TestPress_TallTerminalNotClipped(t *testing.T) {
	s := New()
	s.Open(testFigure("one"))
	s.Update(tea.WindowSizeMsg{Width: 120, Height: 200})
	assert.Zero(t, s.clippedRows())
}

func TestKeys_CloseDetailUpdatesController(t *testing.T) {
	s := New()
	c := viz.NewController(tenByTen(), s, viz.WithWidth(80))
	require.NoError(t, c.ShowOverview())
	require.NoError(t, c.ShowDetail("Agency 03"))

	s.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, 1, s.Windows())
	state, selected := c.State()
	assert.Equal(t, viz.StateOverview, state)
	assert.Empty(t, selected)

	require.NoError(t, c.Close())
	assert.Zero(t, s.Windows())
}

func TestPainter_BarShades(t *testing.T) {
	fig := testFigure("one")
	p := painter{styles: DefaultStyles(), fig: fig}
	assert.Equal(t, "", p.Bar(0, ""))
	assert.Contains(t, p.Bar(2, "██"), "██")
}
