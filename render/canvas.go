//go:build ebiten

package render

import (
	"context"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol-canvas/model"
)

// canvasSurface keeps the drawn grid in an offscreen image so pixels of
// unchanged cells survive between frames.
type canvasSurface struct {
	img *ebiten.Image
}

func (s *canvasSurface) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return errors.Errorf("[Resize] invalid canvas size %dx%d", width, height)
	}
	s.img = ebiten.NewImage(width, height)
	return nil
}

func (s *canvasSurface) FillRect(r image.Rectangle, c color.Color) {
	r = r.Intersect(s.img.Bounds())
	if r.Empty() {
		return
	}
	s.img.SubImage(r).(*ebiten.Image).Fill(c)
}

// CanvasGame runs an Adapter as an ebiten.Game. Built for js/wasm it draws
// into the page's canvas once per animation frame.
type CanvasGame struct {
	ctx     context.Context
	adapter *Adapter
	surface *canvasSurface
	onFrame func(model.TickReport)

	paused   bool
	tickOnce bool
}

// Update ticks and paints once per frame. The first call draws the full grid.
func (g *CanvasGame) Update() error {
	if g.ctx.Err() != nil ||
		inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if g.surface.img == nil {
		return g.adapter.Init()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if row, col, ok := g.adapter.CellAt(ebiten.CursorPosition()); ok {
			if err := g.adapter.Toggle(row, col); err != nil {
				return err
			}
		}
	}

	if g.paused && !g.tickOnce {
		return nil
	}
	g.tickOnce = false
	report, err := g.adapter.Frame()
	if err != nil {
		return err
	}
	if g.onFrame != nil {
		g.onFrame(report)
	}
	return nil
}

// Draw copies the offscreen grid onto the screen.
func (g *CanvasGame) Draw(screen *ebiten.Image) {
	if g.surface.img != nil {
		screen.DrawImage(g.surface.img, nil)
	}
}

// Layout returns the logical screen size.
func (g *CanvasGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	b := g.adapter.Bounds()
	return b.Dx(), b.Dy()
}

// RunCanvas draws grid in a window, or the browser canvas on js/wasm, until
// ctx is cancelled or the user quits. onFrame is called after every tick.
func RunCanvas(ctx context.Context, grid *model.Grid, cellSize int, onFrame func(model.TickReport)) error {
	surface := &canvasSurface{}
	game := &CanvasGame{
		ctx:     ctx,
		adapter: NewAdapter(grid, surface, WithCellSize(cellSize)),
		surface: surface,
		onFrame: onFrame,
	}
	b := game.adapter.Bounds()

	ebiten.SetWindowTitle("go-gol-canvas")
	ebiten.SetWindowSize(b.Dx(), b.Dy())
	ebiten.SetTPS(ebiten.SyncWithFPS)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return errors.Wrap(err, "[RunCanvas] canvas renderer stopped")
	}
	return nil
}
