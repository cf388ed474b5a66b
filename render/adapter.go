package render

import (
	"image"
	"image/color"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol-canvas/model"
)

// CellSize is the default edge length of a cell in surface pixels.
const CellSize = 5

// ErrNotStarted is returned by Frame when Init has not drawn the first frame.
var ErrNotStarted = errors.New("adapter not initialised")

// Surface is anything cells can be painted onto. Pixels that are not
// painted keep their previous colour between frames.
type Surface interface {
	Resize(width, height int) error
	FillRect(r image.Rectangle, c color.Color)
}

// Flusher is implemented by surfaces that buffer their output.
type Flusher interface {
	Flush() error
}

// Palette holds the colours used to draw a grid.
type Palette struct {
	Grid  color.Color
	Dead  color.Color
	Alive color.Color
}

// DefaultPalette draws black cells on white with light grey grid lines.
func DefaultPalette() Palette {
	return Palette{
		Grid:  color.RGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff},
		Dead:  color.White,
		Alive: color.Black,
	}
}

// GridSize returns how many whole cells fit in a viewport.
func GridSize(viewportWidth, viewportHeight, cellSize int) (cols, rows int) {
	if cellSize <= 0 {
		return 0, 0
	}
	return viewportWidth / cellSize, viewportHeight / cellSize
}

// Adapter draws one grid onto one surface. The first frame paints every
// cell; later frames repaint only the cells flipped by the last tick.
type Adapter struct {
	grid     *model.Grid
	surface  Surface
	cellSize int
	palette  Palette
	started  bool
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithCellSize sets the cell edge length in pixels.
func WithCellSize(n int) Option {
	return func(a *Adapter) {
		if n > 0 {
			a.cellSize = n
		}
	}
}

// WithPalette overrides the default colours.
func WithPalette(p Palette) Option {
	return func(a *Adapter) { a.palette = p }
}

// NewAdapter binds grid and surface. Neither is shared with other adapters.
func NewAdapter(grid *model.Grid, surface Surface, opts ...Option) *Adapter {
	a := &Adapter{
		grid:     grid,
		surface:  surface,
		cellSize: CellSize,
		palette:  DefaultPalette(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Grid returns the grid being drawn.
func (a *Adapter) Grid() *model.Grid {
	return a.grid
}

// Bounds returns the surface area covered by the grid.
func (a *Adapter) Bounds() image.Rectangle {
	return image.Rect(0, 0, a.grid.Width()*a.cellSize, a.grid.Height()*a.cellSize)
}

// Init sizes the surface, fills it with the grid colour and paints every cell.
func (a *Adapter) Init() error {
	b := a.Bounds()
	if err := a.surface.Resize(b.Dx(), b.Dy()); err != nil {
		return errors.Wrapf(err, "[Init] failed to size surface to %dx%d", b.Dx(), b.Dy())
	}
	a.surface.FillRect(b, a.palette.Grid)
	for row := range a.grid.Height() {
		for col := range a.grid.Width() {
			a.paint(row, col)
		}
	}
	a.started = true
	return a.flush()
}

// Frame advances the grid one generation and repaints the cells that flipped.
func (a *Adapter) Frame() (model.TickReport, error) {
	if !a.started {
		return model.TickReport{}, errors.WithStack(ErrNotStarted)
	}
	report := a.grid.Tick()
	a.Redraw()
	return report, a.flush()
}

// Redraw repaints the cells flipped by the most recent tick and returns how
// many were painted.
func (a *Adapter) Redraw() (painted int) {
	for row := range a.grid.Height() {
		for col := range a.grid.Width() {
			if a.grid.IsChanged(row, col) {
				a.paint(row, col)
				painted++
			}
		}
	}
	return
}

// Toggle flips the cell and repaints it straight away.
func (a *Adapter) Toggle(row, col int) error {
	a.grid.Toggle(row, col)
	if !a.started {
		return nil
	}
	a.paint(row, col)
	return a.flush()
}

// CellAt maps a surface pixel to the cell under it.
func (a *Adapter) CellAt(x, y int) (row, col int, ok bool) {
	if !image.Pt(x, y).In(a.Bounds()) {
		return 0, 0, false
	}
	return y / a.cellSize, x / a.cellSize, true
}

// cellRect leaves a one pixel border so the grid colour shows between cells.
func (a *Adapter) cellRect(row, col int) image.Rectangle {
	x, y, n := col*a.cellSize, row*a.cellSize, a.cellSize
	if n > 2 {
		return image.Rect(x+1, y+1, x+n-1, y+n-1)
	}
	return image.Rect(x, y, x+n, y+n)
}

func (a *Adapter) paint(row, col int) {
	c := a.palette.Dead
	if a.grid.IsAlive(row, col) {
		c = a.palette.Alive
	}
	a.surface.FillRect(a.cellRect(row, col), c)
}

func (a *Adapter) flush() error {
	if f, ok := a.surface.(Flusher); ok {
		if err := f.Flush(); err != nil {
			return errors.Wrap(err, "[flush] failed to flush surface")
		}
	}
	return nil
}
