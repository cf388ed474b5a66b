//go:build !ebiten

package render

import (
	"context"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol-canvas/model"
)

// ErrCanvasUnavailable is returned when the binary was built without ebiten.
var ErrCanvasUnavailable = errors.New("the canvas renderer requires building with the 'ebiten' tag")

// RunCanvas always fails in builds without the ebiten tag.
func RunCanvas(context.Context, *model.Grid, int, func(model.TickReport)) error {
	return errors.WithStack(ErrCanvasUnavailable)
}
