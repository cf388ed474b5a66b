package render

import (
	"bufio"
	"image"
	"image/color"
	"io"

	"github.com/jcorbin/anansi/ansi"
)

const (
	// one surface pixel is two terminal columns wide so cells look square
	gridPosBlock = "  "

	// StatusRows are the terminal lines kept above the grid for status text.
	StatusRows = 2
)

// TerminalSurface paints pixels as true-colour ANSI blocks. Only the
// rectangles handed to FillRect are rewritten, so unchanged cells cost nothing.
type TerminalSurface struct {
	out    *bufio.Writer
	bounds image.Rectangle
	buf    []byte
}

func NewTerminalSurface(w io.Writer) *TerminalSurface {
	return &TerminalSurface{out: bufio.NewWriter(w)}
}

// Resize clears the terminal and hides the cursor.
func (s *TerminalSurface) Resize(width, height int) error {
	s.bounds = image.Rect(0, 0, width, height)
	b := ansi.ED.With('2').AppendTo(s.buf[:0])
	b = ansi.CUP.WithPoint(ansi.Pt(1, 1)).AppendTo(b)
	b = ansi.ShowCursor.Reset().AppendTo(b)
	s.buf = b
	_, err := s.out.Write(b)
	return err
}

// FillRect paints r, clipped to the surface, with c.
func (s *TerminalSurface) FillRect(r image.Rectangle, c color.Color) {
	r = r.Intersect(s.bounds)
	if r.Empty() {
		return
	}
	red, green, blue, _ := c.RGBA()
	bg := ansi.RGB(uint8(red>>8), uint8(green>>8), uint8(blue>>8)).BG()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		b := s.cursorTo(s.buf[:0], y+StatusRows, 2*r.Min.X)
		b = bg.AppendTo(b)
		for range r.Dx() {
			b = append(b, gridPosBlock...)
		}
		b = ansi.SGRAttrClear.AppendTo(b)
		s.buf = b
		s.out.Write(b)
	}
}

// Status writes text on one of the status lines above the grid.
func (s *TerminalSurface) Status(line int, text string) {
	if line < 0 || line >= StatusRows {
		return
	}
	b := s.cursorTo(s.buf[:0], line, 0)
	b = ansi.EL.With('2').AppendTo(b)
	s.buf = append(b, text...)
	s.out.Write(s.buf)
}

// Flush pushes buffered output to the terminal.
func (s *TerminalSurface) Flush() error {
	return s.out.Flush()
}

// Close moves the cursor below the grid and shows it again.
func (s *TerminalSurface) Close() error {
	b := s.cursorTo(s.buf[:0], s.bounds.Dy()+StatusRows, 0)
	b = ansi.SGRAttrClear.AppendTo(b)
	b = ansi.ShowCursor.Set().AppendTo(b)
	s.buf = append(b, '\n')
	s.out.Write(s.buf)
	return s.out.Flush()
}

// cursorTo appends a move to a zero-based terminal row and column.
func (s *TerminalSurface) cursorTo(b []byte, row, col int) []byte {
	return ansi.CUP.WithPoint(ansi.Pt(col+1, row+1)).AppendTo(b)
}
