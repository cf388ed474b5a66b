package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol-canvas/model"
	"github.com/sheikhrachel/go-gol-canvas/render"
	"github.com/sheikhrachel/go-gol-canvas/utils"
)

// simulation owns one grid and drives it frame by frame. Nothing in it is
// shared with other simulations except the grid pool.
type simulation struct {
	id     int
	config utils.Config
	rng    *rand.Rand
	pool   *model.GridPool
	grid   *model.Grid
	stats  *utils.Stats

	generation     int
	stagnantCount  int
	lastRestartGen int
	lastFrameTime  time.Time
}

// newSimulation sizes a grid to the configured viewport and seeds it.
func newSimulation(config utils.Config, id int, pool *model.GridPool) (*simulation, error) {
	if pool == nil {
		pool = model.NewGridPool()
	}
	s := &simulation{
		id:            id,
		config:        config,
		rng:           utils.NewRNG(utils.DeriveSeed(config.Seed, id)),
		pool:          pool,
		stats:         utils.NewStats(),
		lastFrameTime: time.Now(),
	}
	grid, err := s.newGrid()
	if err != nil {
		return nil, err
	}
	s.grid = grid
	return s, nil
}

// newGrid takes a grid from the pool and seeds it according to the config.
func (s *simulation) newGrid() (*model.Grid, error) {
	cols, rows := render.GridSize(s.config.ViewportWidth, s.config.ViewportHeight, s.config.CellSize)
	grid, err := s.pool.Get(cols, rows)
	if err != nil {
		return nil, errors.Wrapf(err, "[newGrid] viewport %dx%d with %dpx cells",
			s.config.ViewportWidth, s.config.ViewportHeight, s.config.CellSize)
	}
	if s.config.SeedMode == utils.SeedPatterns {
		grid.ResetWithInterestingPatterns(s.rng, s.config.RandomDensity)
	} else {
		grid.SeedRandom(s.rng)
	}
	grid.UpdateHistory()
	return grid, nil
}

// record updates stats and stagnation tracking after a tick.
func (s *simulation) record(report model.TickReport) {
	s.generation++
	livingCells := s.grid.CountLivingCells()

	frameStart := time.Now()
	s.stats.Update(s.generation, livingCells, report.Births, report.Deaths(), frameStart.Sub(s.lastFrameTime))
	s.lastFrameTime = frameStart

	s.grid.UpdateHistory()
	if s.grid.IsStagnant() {
		s.stagnantCount++
	} else {
		s.stagnantCount = 0
	}
}

// status describes the current grid the way the terminal status line shows it.
func (s *simulation) status() (livingCells int, density float64, status string) {
	livingCells = s.grid.CountLivingCells()
	density = float64(livingCells) / float64(s.grid.Width()*s.grid.Height()) * 100

	status = "Active"
	if s.stagnantCount > 0 {
		status = fmt.Sprintf("Stagnant (%d)", s.stagnantCount)
	}
	if livingCells == 0 {
		status = "Extinct"
	}
	return
}

// checkRestartConditions determines if the game should restart
func checkRestartConditions(livingCells, stagnantCount int, config utils.Config) (bool, string) {
	if livingCells == 0 {
		return true, "extinction"
	}
	if stagnantCount >= config.StagnationThreshold {
		return true, "stagnation detected"
	}
	return false, ""
}

// intervene restarts or nudges a dead or stuck grid. It reports whether the
// cells were changed outside a tick, in which case the surface needs a full
// repaint.
func (s *simulation) intervene() (bool, string, error) {
	shouldRestart, reason := checkRestartConditions(s.grid.CountLivingCells(), s.stagnantCount, s.config)
	if shouldRestart && s.config.AutoRestart {
		return true, reason, s.restart()
	}
	if s.stagnantCount >= 2 && s.stagnantCount < s.config.StagnationThreshold && s.config.InjectionCount > 0 {
		// Inject some life to try to break the stagnation
		s.grid.InjectRandomLife(s.rng, s.config.InjectionCount)
		return true, "injected life", nil
	}
	return false, "", nil
}

// restart swaps in a freshly seeded grid and returns the old one to the pool.
func (s *simulation) restart() error {
	grid, err := s.newGrid()
	if err != nil {
		return err
	}
	model.GridToPool(s.grid, s.pool)
	s.grid = grid
	s.stagnantCount = 0
	s.lastRestartGen = s.generation
	s.stats.Restarts++
	return nil
}

// done reports whether the generation limit has been reached.
func (s *simulation) done() bool {
	return s.config.MaxGenerations > 0 && s.generation >= s.config.MaxGenerations
}

// loop runs "tick, draw, wait" until ctx is cancelled or the generation limit
// is reached. afterFrame, when set, runs after drawing each frame and again
// after a full repaint.
func (s *simulation) loop(ctx context.Context, surface render.Surface, opts []render.Option, afterFrame func()) error {
	adapter := render.NewAdapter(s.grid, surface, opts...)
	if err := adapter.Init(); err != nil {
		return errors.Wrapf(err, "[loop] simulation %d failed to start", s.id)
	}

	for !s.done() {
		if !wait(ctx, s.config.FrameRate) {
			return nil
		}

		report, err := adapter.Frame()
		if err != nil {
			return errors.Wrapf(err, "[loop] simulation %d frame %d", s.id, s.generation)
		}
		s.record(report)
		if afterFrame != nil {
			afterFrame()
		}

		repaint, _, err := s.intervene()
		if err != nil {
			return err
		}
		if repaint {
			adapter = render.NewAdapter(s.grid, surface, opts...)
			if err := adapter.Init(); err != nil {
				return errors.Wrapf(err, "[loop] simulation %d failed to repaint", s.id)
			}
			// the repaint cleared anything afterFrame drew
			if afterFrame != nil {
				afterFrame()
			}
		}
	}
	return nil
}

// wait blocks for d and reports whether the loop should keep going. A zero
// delay only checks for cancellation.
func wait(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// displayGameStatus writes the status lines above the terminal grid.
func displayGameStatus(surface *render.TerminalSurface, s *simulation) {
	livingCells, density, status := s.status()
	surface.Status(0, fmt.Sprintf("Gen: %d | Living: %d | Density: %.1f%% | Changed: %d | Status: %s",
		s.generation, livingCells, density, s.stats.ChangedCells, status))
	surface.Status(1, fmt.Sprintf("Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs | Since restart: %d",
		s.stats.GenerationsPerSecond, s.stats.AveragePopulation, time.Since(s.stats.StartTime).Seconds(),
		s.generation-s.lastRestartGen))
}
