package model

import "math/rand/v2"

// glider travels down and to the right, one cell every four generations.
var glider = [][]bool{
	{false, true, false},
	{false, false, true},
	{true, true, true},
}

// wrap folds any coordinate back onto the torus.
func (g *Grid) wrap(row, col int) (int, int) {
	return (row%g.height + g.height) % g.height, (col%g.width + g.width) % g.width
}

// Place writes pattern with its top-left corner at (row, col), wrapping
// around the edges. Every cell of the pattern is written, dead ones included.
func (g *Grid) Place(row, col int, pattern [][]bool) {
	for dr, line := range pattern {
		for dc, alive := range line {
			r, c := g.wrap(row+dr, col+dc)
			g.SetAlive(r, c, alive)
		}
	}
}

// AddGlider adds a glider pattern at the specified position
func (g *Grid) AddGlider(row, col int) {
	g.Place(row, col, glider)
}

// AddBlinker adds a horizontal blinker starting at the specified position
func (g *Grid) AddBlinker(row, col int) {
	g.Place(row, col, [][]bool{{true, true, true}})
}

// InjectRandomLife revives count randomly chosen cells to break stagnation
func (g *Grid) InjectRandomLife(r *rand.Rand, count int) {
	for range count {
		g.Revive(r.IntN(g.height), r.IntN(g.width))
	}
}

// Randomize revives each cell with probability density, leaving live cells alive
func (g *Grid) Randomize(r *rand.Rand, density float64) {
	for row := range g.height {
		for col := range g.width {
			if r.Float64() < density {
				g.Revive(row, col)
			}
		}
	}
}

// ResetWithInterestingPatterns clears the grid, places a few gliders and
// blinkers, then scatters random life at the given density
func (g *Grid) ResetWithInterestingPatterns(r *rand.Rand, density float64) {
	g.Clear()

	if g.width >= 10 && g.height >= 10 {
		g.AddGlider(5, 5)
		if g.width >= 20 && g.height >= 15 {
			g.AddGlider(5, g.width-8)
		}

		g.AddBlinker(g.height/4, g.width/4)
		if g.width >= 30 {
			g.AddBlinker(3*g.height/4, 3*g.width/4)
		}
	}

	g.Randomize(r, density)
}
