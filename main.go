package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/xlab/closer"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// scenesDir holds the bundled scene files
const scenesDir = "scenes"

// config holds the parsed command line
type config struct {
	Scene    string
	Width    int
	Aspect   float64
	Samples  int
	Depth    int
	Seed     int64
	Workers  int
	TileSize int
	Passes   int
	Grid     int
	Out      string
	LogLevel string
	Watch    bool
	List     bool
	Help     bool
}

func parseFlags(args []string, errOut io.Writer) (config, *flag.FlagSet, error) {
	var cfg config
	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	fs.SetOutput(errOut)

	fs.StringVar(&cfg.Scene, "scene", "default", "Built-in scene (default, single, final), scene file name in scenes/, or path to a .toml file")
	fs.IntVar(&cfg.Width, "width", 0, "Image width in pixels (0 = scene default)")
	fs.Float64Var(&cfg.Aspect, "aspect", 0, "Aspect ratio width/height (0 = scene default)")
	fs.IntVar(&cfg.Samples, "samples", 0, "Samples per pixel (0 = scene default)")
	fs.IntVar(&cfg.Depth, "depth", 0, "Maximum ray bounce depth (0 = scene default)")
	fs.Int64Var(&cfg.Seed, "seed", 42, "Random seed for sampling and random scene layouts")
	fs.IntVar(&cfg.Workers, "workers", 0, "Number of parallel workers (0 = CPU count)")
	fs.IntVar(&cfg.TileSize, "tile", 64, "Tile size in pixels")
	fs.IntVar(&cfg.Passes, "passes", 1, "Number of progressive passes; every pass is written to the output file")
	fs.IntVar(&cfg.Grid, "grid", 2, "Half-width of the final scene's small sphere grid")
	fs.StringVar(&cfg.Out, "out", "", "Output file (.png, .ppm or .bmp); default output/<scene>/render_<timestamp>.png")
	fs.StringVar(&cfg.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	fs.BoolVar(&cfg.Watch, "watch", false, "Re-render whenever the scene file changes")
	fs.BoolVar(&cfg.List, "list", false, "List available scenes and exit")
	fs.BoolVar(&cfg.Help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return cfg, fs, err
	}

	// Sanitize numeric flags
	cfg.Width = max(cfg.Width, 0)
	cfg.Samples = max(cfg.Samples, 0)
	cfg.Depth = max(cfg.Depth, 0)
	cfg.Passes = core.Clamp(cfg.Passes, 1, 100)
	cfg.Grid = core.Clamp(cfg.Grid, 1, 50)
	cfg.TileSize = core.Clamp(cfg.TileSize, 8, 1024)

	if cfg.Watch && !isSceneFile(cfg.Scene) && resolveSceneFile(cfg.Scene) == "" {
		return cfg, fs, fmt.Errorf("-watch needs a scene file, %q is built in", cfg.Scene)
	}
	return cfg, fs, nil
}

func printHelp(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Monte Carlo Path Tracer")
	fmt.Fprintln(w, "Usage: pathtracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Built-in scenes:")
	fmt.Fprintln(w, "  default - Diffuse, glass and metal spheres with depth of field")
	fmt.Fprintln(w, "  single  - A single diffuse sphere")
	fmt.Fprintln(w, "  final   - Random sphere field (size set by -grid)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output will be saved to output/<scene>/render_<timestamp>.png unless -out is given")
}

func isSceneFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), scene.SceneFileExt)
}

// resolveSceneFile maps a bare name to a bundled scene file, or "" if there is none
func resolveSceneFile(name string) string {
	if name == "" || isSceneFile(name) {
		return ""
	}
	path := filepath.Join(scenesDir, name+scene.SceneFileExt)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// createScene resolves a built-in scene, a scene file path, or a bundled scene file name
func createScene(cfg config) (*scene.Scene, error) {
	opts := scene.Options{
		Grid: cfg.Grid,
		Seed: cfg.Seed,
		Camera: renderer.CameraConfig{
			Width:       cfg.Width,
			AspectRatio: cfg.Aspect,
		},
	}

	s, err := scene.Create(cfg.Scene, opts)
	if errors.Is(err, scene.ErrUnknownScene) {
		if path := resolveSceneFile(cfg.Scene); path != "" {
			return scene.Create(path, opts)
		}
	}
	return s, err
}

// renderOptions builds the renderer options from the scene and command line
func renderOptions(s *scene.Scene, cfg config, logger *log.Logger) renderer.Options {
	base := renderer.DefaultOptions()
	base.Progressive.TileSize = cfg.TileSize
	base.Progressive.MaxPasses = cfg.Passes
	base.Progressive.NumWorkers = cfg.Workers
	base.Progressive.Seed = cfg.Seed
	base.Logger = logger

	return s.RenderOptions(base, renderer.SamplingConfig{
		SamplesPerPixel: cfg.Samples,
		MaxDepth:        cfg.Depth,
	})
}

// outputPath returns the -out file, or a timestamped file under output/<scene>/
func outputPath(cfg config, sceneName string, now time.Time) string {
	if cfg.Out != "" {
		return cfg.Out
	}
	dirName := strings.TrimSuffix(filepath.Base(sceneName), filepath.Ext(sceneName))
	timestamp := now.Format("20060102_150405")
	return filepath.Join("output", dirName, fmt.Sprintf("render_%s.png", timestamp))
}

// renderScene renders the configured scene and writes every pass to the output file
func renderScene(ctx context.Context, cfg config, logger *log.Logger) (string, error) {
	s, err := createScene(cfg)
	if err != nil {
		return "", err
	}

	// Stop rendering further passes as soon as one cannot be written
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := renderOptions(s, cfg, logger)
	camera := renderer.NewCamera(s.CameraConfig)
	filename := outputPath(cfg, s.Name, time.Now())

	logger.Info("Rendering scene",
		"scene", s.Name,
		"spheres", s.GetPrimitiveCount(),
		"width", camera.ImageWidth(),
		"height", camera.ImageHeight(),
		"samples", opts.Sampling.SamplesPerPixel,
		"depth", opts.Sampling.MaxDepth)

	startTime := time.Now()
	pr := renderer.NewProgressiveRaytracer(s.World, camera, opts)
	passes, errs := pr.RenderProgressive(ctx)

	for pass := range passes {
		if err := output.WriteFile(filename, pass.Buffer); err != nil {
			cancel()
			// Drain so the render goroutine can finish
			for range passes {
			}
			return "", err
		}
		logger.Debug("Wrote pass", "pass", pass.PassNumber, "file", filename)
	}
	if err := <-errs; err != nil {
		return "", err
	}

	logger.Info("Render completed", "elapsed", time.Since(startTime).Round(time.Millisecond), "file", filename)
	return filename, nil
}

func listScenes(w io.Writer) error {
	scenes, err := scene.ListAllScenes(scenesDir)
	if err != nil {
		return err
	}
	for _, info := range scenes {
		id := info.ID
		if info.Type == scene.TypeFile {
			id = strings.TrimSuffix(filepath.Base(info.FilePath), scene.SceneFileExt)
		}
		fmt.Fprintf(w, "  %-16s %-8s %s\n", id, info.Type, info.Description)
	}
	return nil
}

// watchScene renders once, then again whenever the scene file changes, until interrupted
func watchScene(cfg config, logger *log.Logger) {
	path := cfg.Scene
	if !isSceneFile(path) {
		path = resolveSceneFile(path)
	}
	cfg.Scene = path

	ctx, cancel := context.WithCancel(context.Background())
	closer.Bind(cancel)

	render := func(string) {
		if _, err := renderScene(ctx, cfg, logger); err != nil {
			logger.Error("Render failed", "err", err)
		}
	}

	go func() {
		render(path)
		logger.Info("Watching for changes, press Ctrl+C to stop", "file", path)
		if err := scene.Watch(ctx, path, render); err != nil {
			logger.Error("Watch stopped", "err", err)
			closer.Close()
		}
	}()

	closer.Hold()
}

func main() {
	cfg, fs, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if cfg.Help {
		printHelp(os.Stdout, fs)
		return
	}

	if cfg.List {
		if err := listScenes(os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	level, err := core.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -log-level: %v\n", err)
		os.Exit(2)
	}
	logger := core.NewLogger(os.Stderr, level)

	if cfg.Watch {
		watchScene(cfg, logger)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if _, err := renderScene(ctx, cfg, logger); err != nil {
		logger.Error("Render failed", "err", err)
		stop()
		os.Exit(1)
	}
}
