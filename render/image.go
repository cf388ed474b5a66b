package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/pkg/errors"
)

// ImageSurface paints into an in-memory RGBA image. It backs headless runs.
type ImageSurface struct {
	img   *image.RGBA
	fills int
}

func NewImageSurface() *ImageSurface {
	return &ImageSurface{}
}

// Resize replaces the image with a transparent one of the given size.
func (s *ImageSurface) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return errors.Errorf("[Resize] invalid image size %dx%d", width, height)
	}
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
	return nil
}

// FillRect paints r, clipped to the image, with c.
func (s *ImageSurface) FillRect(r image.Rectangle, c color.Color) {
	if s.img == nil {
		return
	}
	draw.Draw(s.img, r, image.NewUniform(c), image.Point{}, draw.Src)
	s.fills++
}

// Image returns the backing image, nil before the first Resize.
func (s *ImageSurface) Image() *image.RGBA {
	return s.img
}

// Fills returns how many rectangles have been painted so far.
func (s *ImageSurface) Fills() int {
	return s.fills
}
