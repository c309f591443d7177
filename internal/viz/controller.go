package viz

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/fraudlens/fraudlens/internal/aggregate"
	"github.com/fraudlens/fraudlens/internal/chart"
)

// Defaults for the number of bars in each chart.
const (
	DefaultTopCategories    = 10
	DefaultTopSubcategories = 10
)

const (
	xLabel           = "Total Fraud Amount ($)"
	categoryLabel    = "Agency"
	subcategoryLabel = "Program or Activity"
)

// State identifies which charts the controller is showing.
type State int

const (
	StateIdle State = iota
	StateOverview
	StateDetail
)

func (s State) String() string {
	switch s {
	case StateOverview:
		return "overview"
	case StateDetail:
		return "detail"
	default:
		return "idle"
	}
}

// Option configures a Controller.
type Option func(*Controller)

// WithTopCategories sets how many categories the overview shows.
func WithTopCategories(n int) Option {
	return func(c *Controller) { c.topCategories = n }
}

// WithTopSubcategories sets how many subcategories a detail chart shows.
func WithTopSubcategories(m int) Option {
	return func(c *Controller) { c.topSubcategories = m }
}

// WithWidth sets the figure width in cells.
func WithWidth(w int) Option {
	return func(c *Controller) { c.width = w }
}

// WithLogger sets the logger for state transitions.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// Controller drives the overview and detail charts. It owns at most one
// window of each kind and replaces the detail window on every drill-down.
type Controller struct {
	views   *aggregate.Views
	surface Surface
	log     zerolog.Logger

	topCategories    int
	topSubcategories int
	width            int

	overview Window
	detail   Window
	selected string
}

// NewController creates a controller over views. Nothing is shown until ShowOverview.
func NewController(views *aggregate.Views, surface Surface, opts ...Option) *Controller {
	c := &Controller{
		views:            views,
		surface:          surface,
		log:              zerolog.Nop(),
		topCategories:    DefaultTopCategories,
		topSubcategories: DefaultTopSubcategories,
		width:            chart.DefaultWidth,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ShowOverview opens the overview chart of the top categories and subscribes
// to presses on it. Any previous overview is closed first.
func (c *Controller) ShowOverview() error {
	top := c.views.Top(c.topCategories)
	labels := make([]string, len(top))
	values := make([]float64, len(top))
	for i, t := range top {
		labels[i] = t.Category
		values[i] = t.Total.InexactFloat64()
	}

	fig := chart.New(chart.Spec{
		Title: []string{
			fmt.Sprintf("Top %d Agencies with Highest Confirmed Fraud", c.topCategories),
			"Click on a bar to see program details",
		},
		XLabel:  xLabel,
		YLabel:  categoryLabel,
		Labels:  labels,
		Values:  values,
		Width:   c.width,
		Palette: chart.PaletteReds,
	})

	if err := c.closeOverview(); err != nil {
		return err
	}
	w, err := c.surface.Open(fig)
	if err != nil {
		return fmt.Errorf("opening overview: %w", err)
	}
	w.OnPress(c.HandlePress)
	c.overview = w

	c.log.Debug().Int("bars", len(top)).Msg("showing overview")
	return nil
}

// ShowDetail replaces the detail chart with the top subcategories of category.
func (c *Controller) ShowDetail(category string) error {
	subs := c.views.Subcategories(category, c.topSubcategories)
	labels := make([]string, len(subs))
	values := make([]float64, len(subs))
	for i, s := range subs {
		labels[i] = s.Subcategory
		values[i] = s.Total.InexactFloat64()
	}

	fig := chart.New(chart.Spec{
		Title: []string{
			fmt.Sprintf("Top %d Programs with Highest Confirmed Fraud", c.topSubcategories),
			"Agency: " + category,
		},
		XLabel:  xLabel,
		YLabel:  subcategoryLabel,
		Labels:  labels,
		Values:  values,
		Width:   c.width,
		Palette: chart.PaletteBlues,
	})

	if err := c.closeDetail(); err != nil {
		return err
	}
	w, err := c.surface.Open(fig)
	if err != nil {
		return fmt.Errorf("opening detail for %s: %w", category, err)
	}
	c.detail = w
	c.selected = category

	c.log.Debug().Str("category", category).Int("bars", len(subs)).Msg("showing detail")
	return nil
}

// HandlePress is the overview press handler. A press on a bar drills into the
// category named by that bar's tick label; anything else is ignored.
func (c *Controller) HandlePress(ev PressEvent) {
	c.dropClosed()
	if c.overview == nil {
		return
	}
	fig := c.overview.Figure()
	i, ok := fig.BarAt(ev.X, ev.Y)
	if !ok {
		return
	}

	category := fig.YTickLabels[i]
	if err := c.ShowDetail(category); err != nil {
		c.log.Error().Err(err).Str("category", category).Msg("drill-down failed")
	}
}

// State reports the current state and, in detail, the selected category.
func (c *Controller) State() (State, string) {
	c.dropClosed()
	switch {
	case c.detail != nil:
		return StateDetail, c.selected
	case c.overview != nil:
		return StateOverview, ""
	default:
		return StateIdle, ""
	}
}

// Close releases both windows.
func (c *Controller) Close() error {
	derr := c.closeDetail()
	oerr := c.closeOverview()
	if derr != nil {
		return derr
	}
	return oerr
}

// dropClosed forgets windows the surface closed on the user's behalf.
func (c *Controller) dropClosed() {
	if c.detail != nil && c.detail.Closed() {
		c.log.Debug().Str("category", c.selected).Msg("detail closed by user")
		c.detail = nil
		c.selected = ""
	}
	if c.overview != nil && c.overview.Closed() {
		c.overview = nil
	}
}

func (c *Controller) closeDetail() error {
	if c.detail == nil {
		return nil
	}
	w := c.detail
	c.detail = nil
	c.selected = ""
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing detail: %w", err)
	}
	return nil
}

func (c *Controller) closeOverview() error {
	if c.overview == nil {
		return nil
	}
	w := c.overview
	c.overview = nil
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing overview: %w", err)
	}
	return nil
}
