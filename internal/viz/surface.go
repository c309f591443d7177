package viz

import "github.com/fraudlens/fraudlens/internal/chart"

// PressEvent is a pointer press in figure-local cell coordinates.
type PressEvent struct {
	X, Y int
}

// Surface displays figures. Each Open creates a separate window.
type Surface interface {
	Open(fig *chart.Figure) (Window, error)
}

// Window is one figure shown on a Surface.
type Window interface {
	Figure() *chart.Figure
	// OnPress registers the handler for presses inside the window, replacing
	// any previous one. The surface calls it synchronously from its event loop.
	OnPress(fn func(PressEvent))
	// Close releases the window. Closing twice is a no-op.
	Close() error
	// Closed reports whether the window was closed, by its owner or by the user.
	Closed() bool
}
