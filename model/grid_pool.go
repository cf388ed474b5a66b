package model

import "sync"

// GridToPool returns a grid to the pool for reuse
func GridToPool(grid *Grid, pool *GridPool) {
	if pool == nil || grid == nil {
		return
	}

	pool.Put(grid)
}

// GridPool recycles grids between simulation restarts. Dimensions never
// change on a pooled grid: Get only hands back a grid of the requested size.
type GridPool struct {
	pool sync.Pool
}

func NewGridPool() *GridPool {
	return &GridPool{}
}

// Get retrieves a cleared grid of the given size, allocating one when the
// pool has none that fits.
func (p *GridPool) Get(width, height int) (*Grid, error) {
	if g, ok := p.pool.Get().(*Grid); ok && g.width == width && g.height == height {
		return g, nil
	}
	return NewGrid(width, height)
}

// Put returns a grid to the pool, clearing its state
func (p *GridPool) Put(g *Grid) {
	g.reset()
	p.pool.Put(g)
}
