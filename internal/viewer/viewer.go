// Package viewer implements the interactive ocean viewer loop.
package viewer

import (
	"errors"
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-ocean/internal/config"
	"github.com/Faultbox/midgard-ocean/internal/engine/camera"
	"github.com/Faultbox/midgard-ocean/internal/engine/debug"
	"github.com/Faultbox/midgard-ocean/internal/engine/heightmap"
	"github.com/Faultbox/midgard-ocean/internal/engine/input"
	"github.com/Faultbox/midgard-ocean/internal/engine/renderer"
	"github.com/Faultbox/midgard-ocean/internal/engine/scene"
	"github.com/Faultbox/midgard-ocean/internal/engine/window"
	"github.com/Faultbox/midgard-ocean/internal/logger"
	"github.com/Faultbox/midgard-ocean/pkg/ocean"
)

const title = "Midgard Ocean"

// Viewer owns the window, the GL resources and the ocean pipeline.
type Viewer struct {
	cfg     *config.Config
	log     *zap.Logger
	running bool

	window    *window.Window
	renderer  *renderer.Renderer
	input     *input.Input
	camera    *camera.OrbitCamera
	ocean     *scene.OceanRenderer
	heightDbg *scene.HeightDebugRenderer
	texture   *heightmap.Texture
	shots     *debug.ScreenshotCapture

	pipeline  *ocean.Pipeline
	showDebug bool
	mouseLook bool
	elapsed   float32
	anomalies int
}

// New opens the window and builds the pipeline.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		cfg: cfg,
		log: logger.Named("viewer"),
	}

	pipeline, err := ocean.New(cfg.Params(), cfg.PipelineOptions(logger.Named("ocean"))...)
	if err != nil {
		return nil, fmt.Errorf("creating ocean: %w", err)
	}
	v.pipeline = pipeline

	// Window creates the OpenGL context
	v.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	}, logger.Named("window"))
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	width, height := v.window.Size()
	if v.renderer, err = renderer.New(renderer.Config{Width: width, Height: height}, logger.Named("renderer")); err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	patchSize := cfg.Ocean.Scale
	v.ocean, err = scene.NewOceanRenderer(scene.OceanConfig{
		GridSize:    cfg.Ocean.Size,
		PatchSize:   patchSize,
		Tiles:       cfg.Graphics.Tiles,
		HeightScale: cfg.Graphics.HeightScale,
	})
	if err != nil {
		v.Close()
		return nil, err
	}
	if v.heightDbg, err = scene.NewHeightDebugRenderer(); err != nil {
		v.Close()
		return nil, err
	}

	v.texture = heightmap.New(cfg.Ocean.Size)
	v.camera = camera.NewOrbitCamera(patchSize)
	v.input = input.New()
	v.shots = debug.NewScreenshotCapture("screenshots", "ocean")

	v.log.Info("viewer initialized",
		zap.Int("size", cfg.Ocean.Size),
		zap.Int("tiles", cfg.Graphics.Tiles),
		zap.String("backend", cfg.Compute.Backend),
	)
	return v, nil
}

// Run starts the main loop. It returns when the window is closed or
// Escape is pressed.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting viewer loop")

	for v.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		// 1. Process input
		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()

		// 2. Simulate
		v.updateCamera()
		v.elapsed += dt
		if err := v.step(); err != nil {
			return err
		}

		// 3. Render
		v.render()
		if v.input.IsKeyPressed(sdl.SCANCODE_F12) {
			v.screenshot()
		}

		// 4. Present (swap buffers)
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps", zap.Int("count", frameCount), zap.Float32("dt_ms", dt*1000))
			if v.cfg.Graphics.ShowFPS {
				v.window.SetTitle(fmt.Sprintf("%s - %d FPS", title, frameCount))
			}
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (v *Viewer) handleEvents() {
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			v.renderer.Resize(v.window.Size())
		case input.EventKeyDown:
			switch event.Key {
			case sdl.SCANCODE_ESCAPE:
				v.running = false
			case sdl.SCANCODE_F:
				v.showDebug = !v.showDebug
				v.log.Debug("height view toggled", zap.Bool("on", v.showDebug))
			case sdl.SCANCODE_M:
				v.mouseLook = !v.mouseLook
				v.window.SetRelativeMouse(v.mouseLook)
				v.input.SetLook(v.mouseLook)
			}
		}
	}
}

func (v *Viewer) updateCamera() {
	dx, dy := v.input.Drag()
	v.camera.HandleDrag(dx, dy)
	if w := v.input.Wheel(); w != 0 {
		v.camera.HandleZoom(w)
	}
	v.camera.HandleMovement(
		v.input.Axis(sdl.SCANCODE_W, sdl.SCANCODE_S),
		v.input.Axis(sdl.SCANCODE_D, sdl.SCANCODE_A),
		v.input.Axis(sdl.SCANCODE_E, sdl.SCANCODE_Q),
	)
}

// step advances the ocean. A numeric anomaly keeps the previous frame on
// screen; any other error stops the loop.
func (v *Viewer) step() error {
	h, err := v.pipeline.Step(v.elapsed)
	switch {
	case err == nil:
		v.texture.Upload(h)
	case errors.Is(err, ocean.ErrNumericAnomaly):
		v.anomalies++
		if v.anomalies == 1 || v.anomalies%100 == 0 {
			v.log.Warn("keeping previous height field", zap.Int("count", v.anomalies), zap.Error(err))
		}
	default:
		return fmt.Errorf("ocean step: %w", err)
	}
	return nil
}

func (v *Viewer) render() {
	v.renderer.Begin()
	if v.showDebug {
		lo, hi := v.pipeline.Height().Range()
		v.heightDbg.Render(v.texture, lo, hi)
		return
	}
	vp := v.camera.ViewProjection(v.window.Aspect())
	v.ocean.Render(vp, v.camera.Position(), v.texture)
}

func (v *Viewer) screenshot() {
	pixels, w, h := v.renderer.ReadPixels()
	name, err := v.shots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		v.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", name))
}

// Close releases GL resources, the window and the pipeline.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.texture != nil {
		v.texture.Delete()
	}
	if v.heightDbg != nil {
		v.heightDbg.Destroy()
	}
	if v.ocean != nil {
		v.ocean.Destroy()
	}
	if v.window != nil {
		v.window.Close()
	}
	if v.pipeline != nil {
		if err := v.pipeline.Close(); err != nil {
			v.log.Warn("closing pipeline", zap.Error(err))
		}
	}
}
