package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fraudlens/fraudlens/internal/chart"
	"github.com/fraudlens/fraudlens/internal/viz"
)

const helpText = "click a bar to drill down • x/esc close detail • q quit"

// Surface is a terminal rendering surface. Windows are stacked top to bottom
// in the order they were opened. It is driven by a single bubbletea event loop.
type Surface struct {
	styles  Styles
	windows []*window
	height  int // terminal rows, 0 until the first WindowSizeMsg
}

// New creates an empty surface.
func New() *Surface {
	return &Surface{styles: DefaultStyles()}
}

// Open adds a window showing fig.
func (s *Surface) Open(fig *chart.Figure) (viz.Window, error) {
	if fig == nil {
		return nil, errors.New("nil figure")
	}
	w := &window{surface: s, fig: fig}
	s.windows = append(s.windows, w)
	return w, nil
}

// Windows returns the number of open windows.
func (s *Surface) Windows() int {
	return len(s.windows)
}

// Run shows the surface until the user quits or ctx is cancelled.
func (s *Surface) Run(ctx context.Context) error {
	p := tea.NewProgram(s,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("running terminal UI: %w", err)
	}
	return nil
}

// Init implements tea.Model.
func (s *Surface) Init() tea.Cmd { return nil }

// Update implements tea.Model. Presses are dispatched synchronously.
func (s *Surface) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return s, tea.Quit
		case "x", "esc":
			if len(s.windows) > 1 {
				_ = s.windows[len(s.windows)-1].Close()
			}
		}
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return s, nil
		}
		if w, x, y, ok := s.windowAt(msg.X, msg.Y+s.clippedRows()); ok && w.handler != nil {
			w.handler(viz.PressEvent{X: x, Y: y})
		}
	}
	return s, nil
}

// View implements tea.Model.
func (s *Surface) View() string {
	parts := make([]string, 0, len(s.windows)+1)
	for _, w := range s.windows {
		body := w.fig.Render(painter{styles: s.styles, fig: w.fig})
		parts = append(parts, s.styles.Frame.Render(body))
	}
	parts = append(parts, s.styles.Help.Render(helpText))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// viewHeight is the number of lines View produces.
func (s *Surface) viewHeight() int {
	n := lipgloss.Height(s.styles.Help.Render(helpText))
	for _, w := range s.windows {
		n += w.fig.Height + frameHeight
	}
	return n
}

// clippedRows is how many lines at the top of the view are off screen. The
// renderer keeps only the bottom rows of a view taller than the terminal.
func (s *Surface) clippedRows() int {
	if s.height <= 0 {
		return 0
	}
	return max(0, s.viewHeight()-s.height)
}

// windowAt maps view cell (x, y) to a window and figure-local coordinates.
func (s *Surface) windowAt(x, y int) (*window, int, int, bool) {
	top := 0
	for _, w := range s.windows {
		fx, fy := x-frameLeft, y-top-frameTop
		if fx >= 0 && fx < w.fig.Width && fy >= 0 && fy < w.fig.Height {
			return w, fx, fy, true
		}
		top += w.fig.Height + frameHeight
	}
	return nil, 0, 0, false
}

func (s *Surface) remove(target *window) {
	kept := s.windows[:0]
	for _, w := range s.windows {
		if w != target {
			kept = append(kept, w)
		}
	}
	s.windows = kept
}

type window struct {
	surface *Surface
	fig     *chart.Figure
	handler func(viz.PressEvent)
	closed  bool
}

func (w *window) Figure() *chart.Figure { return w.fig }

func (w *window) OnPress(fn func(viz.PressEvent)) { w.handler = fn }

func (w *window) Closed() bool { return w.closed }

func (w *window) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	w.handler = nil
	w.surface.remove(w)
	return nil
}
