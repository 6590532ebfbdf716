package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagSize       = flag.Int("size", 0, "Grid size N (power of two)")
	flagAmplitude  = flag.Float64("amplitude", 0, "Phillips amplitude A")
	flagWind       = flag.Float64("wind", 0, "Wind intensity (m/s)")
	flagSeed       = flag.Int64("seed", 0, "Random seed (0 = random)")
	flagBackend    = flag.String("backend", "", "Compute backend: cpu, serial or opencl")
	flagWorkers    = flag.Int("workers", -1, "CPU workers (0 = GOMAXPROCS)")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Graphics.ShowFPS = true
	}
	if *flagSize > 0 {
		cfg.Ocean.Size = *flagSize
	}
	if *flagAmplitude > 0 {
		cfg.Ocean.Amplitude = float32(*flagAmplitude)
	}
	if *flagWind > 0 {
		cfg.Ocean.WindIntensity = float32(*flagWind)
	}
	if *flagSeed != 0 {
		cfg.Ocean.Seed = *flagSeed
	}
	if *flagBackend != "" {
		cfg.Compute.Backend = *flagBackend
	}
	if *flagWorkers >= 0 {
		cfg.Compute.Workers = *flagWorkers
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
}
