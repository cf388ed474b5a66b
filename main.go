package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-gol-canvas/model"
	"github.com/sheikhrachel/go-gol-canvas/render"
	"github.com/sheikhrachel/go-gol-canvas/utils"
)

const defaultConfigPath = "config.json"

func main() {
	log.SetFlags(0)
	log.SetPrefix("go-gol: ")

	config, err := loadConfig(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatal(err)
	}

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, config, os.Stdout); err != nil {
		stop()
		log.Fatalf("%+v", err)
	}
}

// loadConfig reads the JSON config named by -config, falling back to defaults
// when it does not exist, then applies the remaining flags on top.
func loadConfig(args []string) (utils.Config, error) {
	path := defaultConfigPath
	scan := flag.NewFlagSet("go-gol", flag.ContinueOnError)
	scan.SetOutput(io.Discard)
	scan.StringVar(&path, "config", path, "")
	scratch := utils.DefaultConfig()
	scratch.Bind(scan)
	// errors surface from the real parse below
	_ = scan.Parse(args)

	config, err := utils.LoadConfig(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, syscall.ENOSYS) {
			return config, err
		}
		log.Printf("Using default configuration (%s not found)", path)
		config = utils.DefaultConfig()
	}

	flags := flag.NewFlagSet("go-gol", flag.ContinueOnError)
	flags.String("config", path, "JSON configuration file")
	config.Bind(flags)
	if err = flags.Parse(args); err != nil {
		return config, errors.Wrap(err, "[loadConfig] invalid flags")
	}
	return config, config.Validate()
}

// run starts the configured renderer and blocks until it finishes.
func run(ctx context.Context, config utils.Config, out io.Writer) error {
	switch config.Renderer {
	case utils.RendererCanvas:
		return runCanvas(ctx, config)
	case utils.RendererHeadless:
		return runHeadless(ctx, config, out)
	default:
		return runTerminal(ctx, config, out)
	}
}

// runTerminal draws a single simulation with ANSI colours, one character
// pair per cell.
func runTerminal(ctx context.Context, config utils.Config, out io.Writer) error {
	sim, err := newSimulation(config, 0, nil)
	if err != nil {
		return err
	}
	displayGameInfo(config, sim)

	surface := render.NewTerminalSurface(out)
	defer surface.Close()

	return sim.loop(ctx, surface, []render.Option{render.WithCellSize(1)}, func() {
		displayGameStatus(surface, sim)
		if err := surface.Flush(); err != nil {
			log.Printf("Error writing status: %v", err)
		}
	})
}

// runCanvas hands a single simulation to the ebiten canvas renderer.
func runCanvas(ctx context.Context, config utils.Config) error {
	sim, err := newSimulation(config, 0, nil)
	if err != nil {
		return err
	}
	displayGameInfo(config, sim)
	return render.RunCanvas(ctx, sim.grid, config.CellSize, sim.record)
}

// runHeadless runs every configured simulation concurrently, each on its own
// grid and in-memory image, and prints a summary line per simulation.
func runHeadless(ctx context.Context, config utils.Config, out io.Writer) error {
	pool := model.NewGridPool()
	sims := make([]*simulation, config.Simulations)
	for i := range sims {
		sim, err := newSimulation(config, i, pool)
		if err != nil {
			return errors.Wrapf(err, "[runHeadless] simulation %d", i)
		}
		sims[i] = sim
	}

	eg, egc := errgroup.WithContext(ctx)
	for _, sim := range sims {
		eg.Go(func() error {
			return sim.loop(egc, render.NewImageSurface(), []render.Option{render.WithCellSize(config.CellSize)}, nil)
		})
	}

	start := time.Now()
	if err := eg.Wait(); err != nil {
		return err
	}

	for _, sim := range sims {
		livingCells, density, status := sim.status()
		fmt.Fprintf(out, "sim %d: %d generations | Living: %d (%.1f%%) | Status: %s | Births: %d | Deaths: %d | Restarts: %d\n",
			sim.id, sim.generation, livingCells, density, status, sim.stats.Births, sim.stats.Deaths, sim.stats.Restarts)
	}
	fmt.Fprintf(out, "Final stats: %d simulations in %.1f seconds\n", len(sims), time.Since(start).Seconds())
	return nil
}

// displayGameInfo logs the initial game information
func displayGameInfo(config utils.Config, sim *simulation) {
	log.Printf("Renderer: %s | Seed mode: %s | Auto restart: %v",
		config.Renderer, config.SeedMode, config.AutoRestart)
	log.Printf("Grid: %dx%d | Initial living cells: %d",
		sim.grid.Width(), sim.grid.Height(), sim.grid.CountLivingCells())
}
