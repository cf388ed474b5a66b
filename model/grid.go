package model

import (
	"crypto/md5"
	"fmt"
	"math/bits"
	"math/rand/v2"
	"strings"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol-canvas/rules"
)

// historySize is how many recent grid hashes are kept for cycle detection.
const historySize = 5

// ErrInvalidDimension is returned when a grid is requested with a zero or
// negative width or height.
var ErrInvalidDimension = errors.New("invalid grid dimension")

// Grid is a toroidal Game of Life board stored one bit per cell.
//
// Cell (row, col) lives at offset row*width+col: byte offset/8, bit offset%8.
// changed holds the cells that flipped during the most recent Tick.
// A Grid is not safe for concurrent use.
type Grid struct {
	width  int
	height int

	cells   []byte
	changed []byte
	prev    []byte // snapshot of cells taken at the start of Tick

	generation int
	history    []string // Store recent grid states for cycle detection
}

// TickReport counts the transitions applied by one Tick.
type TickReport struct {
	Births          int
	Underpopulation int
	Overpopulation  int
}

// Deaths returns the number of live cells that died.
func (r TickReport) Deaths() int {
	return r.Underpopulation + r.Overpopulation
}

// Flipped returns the number of cells whose state changed.
func (r TickReport) Flipped() int {
	return r.Births + r.Deaths()
}

func (r *TickReport) record(f rules.Fate) {
	switch f {
	case rules.Birth:
		r.Births++
	case rules.Underpopulation:
		r.Underpopulation++
	case rules.Overpopulation:
		r.Overpopulation++
	}
}

// NewGrid creates a new grid with every cell dead and no changed cells.
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimension, "[NewGrid] %dx%d", width, height)
	}
	n := storageUnits(width, height)
	return &Grid{
		width:   width,
		height:  height,
		cells:   make([]byte, n),
		changed: make([]byte, n),
		prev:    make([]byte, n),
	}, nil
}

func storageUnits(width, height int) int {
	return (width*height + 7) / 8
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// Generation returns the number of ticks applied since the grid was created
// or last reset.
func (g *Grid) Generation() int {
	return g.generation
}

// index maps a cell to its storage byte and bit mask. Coordinates outside the
// grid panic: they would otherwise alias a neighbouring row.
func (g *Grid) index(row, col int) (int, byte) {
	if row < 0 || row >= g.height || col < 0 || col >= g.width {
		panic(fmt.Sprintf("model: cell (%d, %d) out of range for %dx%d grid", row, col, g.width, g.height))
	}
	offset := row*g.width + col
	return offset / 8, 1 << (offset % 8)
}

func (g *Grid) bit(buf []byte, row, col int) bool {
	i, mask := g.index(row, col)
	return buf[i]&mask != 0
}

// IsAlive reports whether the cell is alive.
func (g *Grid) IsAlive(row, col int) bool {
	return g.bit(g.cells, row, col)
}

// IsChanged reports whether the cell flipped during the most recent Tick.
func (g *Grid) IsChanged(row, col int) bool {
	return g.bit(g.changed, row, col)
}

// SetAlive sets a cell to alive (true) or dead (false)
func (g *Grid) SetAlive(row, col int, alive bool) {
	i, mask := g.index(row, col)
	if alive {
		g.cells[i] |= mask
	} else {
		g.cells[i] &^= mask
	}
}

// Revive makes a cell alive.
func (g *Grid) Revive(row, col int) {
	g.SetAlive(row, col, true)
}

// Kill makes a cell dead.
func (g *Grid) Kill(row, col int) {
	g.SetAlive(row, col, false)
}

// Toggle flips a single cell.
func (g *Grid) Toggle(row, col int) {
	i, mask := g.index(row, col)
	g.cells[i] ^= mask
}

// CountLiveNeighbors counts the live cells among the 8 neighbours of (row, col),
// wrapping around the edges. The cell itself is never counted, and on grids
// narrower than three cells a neighbour reached from both sides counts once.
func (g *Grid) CountLiveNeighbors(row, col int) int {
	g.index(row, col)
	return g.neighbors(g.cells, row, col)
}

// Offsets that reach distinct cells along an axis of the given length. On
// axes shorter than three the -1 and +1 neighbours wrap onto the same cell or
// onto the cell itself.
var (
	spanWide   = []int{-1, 0, 1}
	spanPair   = []int{0, 1}
	spanSingle = []int{0}
)

func span(n int) []int {
	switch n {
	case 1:
		return spanSingle
	case 2:
		return spanPair
	}
	return spanWide
}

// neighbors counts each distinct live cell around (row, col) once. The cell
// itself is never counted, even when the grid is too narrow to hold eight
// separate neighbours.
func (g *Grid) neighbors(buf []byte, row, col int) (count int) {
	cols := span(g.width)
	for _, dr := range span(g.height) {
		r := (row + dr + g.height) % g.height
		for _, dc := range cols {
			if dr == 0 && dc == 0 {
				continue
			}
			if g.bit(buf, r, (col+dc+g.width)%g.width) {
				count++
			}
		}
	}
	return
}

// Tick advances the grid by one generation. Every cell is evaluated against
// the state at the start of the call, and afterwards IsChanged reports
// exactly the cells that flipped.
func (g *Grid) Tick() TickReport {
	copy(g.prev, g.cells)

	var report TickReport
	for row := range g.height {
		for col := range g.width {
			fate := rules.Apply(g.bit(g.prev, row, col), g.neighbors(g.prev, row, col))
			if fate.Flipped() {
				report.record(fate)
				g.Toggle(row, col)
			}
		}
	}

	for i := range g.cells {
		g.changed[i] = g.prev[i] ^ g.cells[i]
	}
	g.generation++
	return report
}

// SeedRandom overwrites every cell with a uniformly random state drawn from r.
// The changed cells of the last tick are left as they were.
func (g *Grid) SeedRandom(r *rand.Rand) {
	for i := 0; i < len(g.cells); i += 8 {
		v := r.Uint64()
		for j := 0; j < 8 && i+j < len(g.cells); j++ {
			g.cells[i+j] = byte(v >> (8 * j))
		}
	}
	g.maskPadding()
	g.history = nil
}

// maskPadding clears the unused bits after the last cell.
func (g *Grid) maskPadding() {
	if rem := (g.width * g.height) % 8; rem != 0 {
		g.cells[len(g.cells)-1] &= byte(1)<<rem - 1
	}
}

// Clear kills every cell and forgets the last tick's changes.
func (g *Grid) Clear() {
	clear(g.cells)
	clear(g.changed)
	g.history = nil
}

// reset returns the grid to its freshly constructed state.
func (g *Grid) reset() {
	g.Clear()
	clear(g.prev)
	g.generation = 0
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() int {
	return popcount(g.cells)
}

// ChangedCells returns the number of cells flipped by the most recent Tick.
func (g *Grid) ChangedCells() int {
	return popcount(g.changed)
}

func popcount(buf []byte) (count int) {
	for _, b := range buf {
		count += bits.OnesCount8(b)
	}
	return
}

// String draws the grid one row per line, ■ for live cells and □ for dead ones.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(g.height * (g.width*len("■") + 1))
	for row := range g.height {
		for col := range g.width {
			if g.IsAlive(row, col) {
				sb.WriteString("■")
			} else {
				sb.WriteString("□")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// GetGridHash returns an MD5 hash of the current grid state
func (g *Grid) GetGridHash() string {
	return fmt.Sprintf("%x", md5.Sum(g.cells))
}

// UpdateHistory adds current state to history and maintains size
func (g *Grid) UpdateHistory() {
	g.history = append(g.history, g.GetGridHash())

	if len(g.history) > historySize {
		g.history = g.history[1:]
	}
}

// IsStagnant reports whether the most recently recorded state repeats one of
// the three before it: a still life or an oscillator of period 2 or 3.
func (g *Grid) IsStagnant() bool {
	last := len(g.history) - 1
	if last < 1 {
		return false
	}
	for k := 1; k <= 3 && last-k >= 0; k++ {
		if g.history[last-k] == g.history[last] {
			return true
		}
	}
	return false
}
