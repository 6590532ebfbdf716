package main

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-ocean/internal/config"
	"github.com/Faultbox/midgard-ocean/internal/engine/debug"
	"github.com/Faultbox/midgard-ocean/internal/logger"
	"github.com/Faultbox/midgard-ocean/pkg/ocean"
)

// common holds the flags every simulation command accepts.
type common struct {
	configPath string
	size       int
	seed       int64
	backend    string
	verbose    bool
}

func (c *common) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "Path to config file")
	fs.IntVar(&c.size, "size", 0, "Grid size override")
	fs.Int64Var(&c.seed, "seed", 0, "Random seed override")
	fs.StringVar(&c.backend, "backend", "", "Compute backend: cpu, serial or opencl")
	fs.BoolVar(&c.verbose, "v", false, "Log to stderr")
}

// load resolves the config and sets up logging.
func (c *common) load() (*config.Config, error) {
	cfg, err := config.LoadFile(c.configPath)
	if err != nil {
		return nil, err
	}
	if c.size > 0 {
		cfg.Ocean.Size = c.size
	}
	if c.seed != 0 {
		cfg.Ocean.Seed = c.seed
	}
	if c.backend != "" {
		cfg.Compute.Backend = c.backend
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if c.verbose {
		if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func (c *common) pipeline() (*ocean.Pipeline, *config.Config, error) {
	cfg, err := c.load()
	if err != nil {
		return nil, nil, err
	}
	p, err := ocean.New(cfg.Params(), cfg.PipelineOptions(logger.Named("ocean"))...)
	if err != nil {
		return nil, nil, err
	}
	return p, cfg, nil
}

func cmdRender(args []string, out io.Writer) error {
	var c common
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	c.register(fs)
	t := fs.Float64("t", 0, "Simulation time in seconds")
	output := fs.String("o", "ocean.png", "Output PNG path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	p, _, err := c.pipeline()
	if err != nil {
		return err
	}
	defer p.Close()

	h, err := p.Step(float32(*t))
	if err != nil {
		return err
	}
	if err := debug.WriteHeightPNG(*output, h); err != nil {
		return fmt.Errorf("writing %s: %w", *output, err)
	}

	lo, hi := h.Range()
	fmt.Fprintf(out, "Wrote %s (%dx%d, t=%.3fs, heights %.4f..%.4f)\n", *output, h.N, h.N, *t, lo, hi)
	return nil
}

func cmdBench(args []string, out io.Writer) error {
	var c common
	fs := flag.NewFlagSet("bench", flag.ContinueOnError)
	c.register(fs)
	steps := fs.Int("steps", 100, "Number of steps")
	dt := fs.Float64("dt", 1.0/60, "Time between steps")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *steps < 1 {
		return fmt.Errorf("steps must be at least 1, got %d", *steps)
	}

	setup := time.Now()
	p, cfg, err := c.pipeline()
	if err != nil {
		return err
	}
	defer p.Close()
	setupTime := time.Since(setup)

	var fastest, slowest, total time.Duration
	for i := 0; i < *steps; i++ {
		start := time.Now()
		if _, err := p.Step(float32(float64(i) * *dt)); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		d := time.Since(start)
		total += d
		if i == 0 || d < fastest {
			fastest = d
		}
		if d > slowest {
			slowest = d
		}
	}

	logger.Info("bench finished", zap.Int("steps", *steps), zap.Duration("total", total))

	summary := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(cellStyle).
		Headers("Metric", "Value").
		Row("Size", fmt.Sprint(cfg.Ocean.Size)).
		Row("Backend", cfg.Compute.Backend).
		Row("Setup", setupTime.String()).
		Row("Steps", fmt.Sprint(*steps)).
		Row("Mean", (total / time.Duration(*steps)).String()).
		Row("Fastest", fastest.String()).
		Row("Slowest", slowest.String())
	_, err = fmt.Fprintln(out, summary.Render())
	return err
}

func cmdTwiddle(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("twiddle", flag.ContinueOnError)
	size := fs.Int("size", 8, "Grid size (power of two)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	t, err := ocean.BuildTwiddles(*size)
	if err != nil {
		return err
	}

	// Borderless so the dump stays one line per entry and easy to diff.
	dump := table.New().
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		StyleFunc(cellStyle).
		Headers("stage", "y", "cos", "sin", "a", "b")
	for stage := 0; stage < t.Stages; stage++ {
		for y := 0; y < t.N; y++ {
			e := t.At(stage, y)
			dump.Row(
				fmt.Sprint(stage), fmt.Sprint(y),
				fmt.Sprintf("%.6f", e.Cos), fmt.Sprintf("%.6f", e.Sin),
				fmt.Sprint(e.A), fmt.Sprint(e.B),
			)
		}
	}
	_, err = fmt.Fprintln(out, dump.Render())
	return err
}

func cellStyle(_, _ int) lipgloss.Style {
	return lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1).Align(lipgloss.Right)
}

func cmdConfig(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	path := fs.String("config", "", "Path to config file")
	save := fs.String("save", "", "Write the config to this path instead of printing it")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadFile(*path)
	if err != nil {
		return err
	}
	if *save != "" {
		if err := cfg.SaveTo(*save); err != nil {
			return err
		}
		fmt.Fprintf(out, "Saved %s\n", *save)
		return nil
	}

	data, err := cfg.YAML()
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
