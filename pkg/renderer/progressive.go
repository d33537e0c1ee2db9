package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// ProgressiveConfig contains configuration for progressive rendering
type ProgressiveConfig struct {
	TileSize       int   // Size of each tile (64x64 recommended)
	InitialSamples int   // Samples for first pass (1 recommended)
	MaxPasses      int   // Maximum number of passes
	NumWorkers     int   // Number of parallel workers (0 = use CPU count)
	Seed           int64 // Base seed; tile n draws from Seed+n
}

// DefaultProgressiveConfig returns sensible default values
func DefaultProgressiveConfig() ProgressiveConfig {
	return ProgressiveConfig{
		TileSize:       64,
		InitialSamples: 1,
		MaxPasses:      7,
		NumWorkers:     0, // Auto-detect CPU count
		Seed:           42,
	}
}

// Options bundles everything a render needs besides the scene and camera
type Options struct {
	Sampling    SamplingConfig
	Progressive ProgressiveConfig
	Background  Background
	Logger      *log.Logger // nil discards log output
}

// DefaultOptions returns the default sampling, tiling and sky settings
func DefaultOptions() Options {
	return Options{
		Sampling:    DefaultSamplingConfig(),
		Progressive: DefaultProgressiveConfig(),
		Background:  DefaultBackground(),
	}
}

// withDefaults replaces non-positive counts and an unset sky with default values
func (o Options) withDefaults() Options {
	defaults := DefaultOptions()
	if o.Sampling.SamplesPerPixel <= 0 {
		o.Sampling.SamplesPerPixel = defaults.Sampling.SamplesPerPixel
	}
	if o.Sampling.MaxDepth <= 0 {
		o.Sampling.MaxDepth = defaults.Sampling.MaxDepth
	}
	if o.Progressive.TileSize <= 0 {
		o.Progressive.TileSize = defaults.Progressive.TileSize
	}
	if o.Progressive.InitialSamples <= 0 {
		o.Progressive.InitialSamples = defaults.Progressive.InitialSamples
	}
	o.Progressive.InitialSamples = min(o.Progressive.InitialSamples, o.Sampling.SamplesPerPixel)
	if o.Progressive.MaxPasses <= 0 {
		o.Progressive.MaxPasses = defaults.Progressive.MaxPasses
	}
	if o.Background == (Background{}) {
		o.Background = defaults.Background
	}
	o.Logger = core.LoggerOrDiscard(o.Logger)
	return o
}

// ProgressiveRaytracer manages progressive rendering with multiple passes
type ProgressiveRaytracer struct {
	width, height int
	sampling      SamplingConfig
	config        ProgressiveConfig
	tiles         []*Tile        // Tile management
	pixelStats    [][]PixelStats // Shared pixel statistics array (global image coordinates)
	raytracer     *Raytracer     // Shared read-only raytracer
	workerPool    *WorkerPool    // Worker pool for parallel processing
	logger        *log.Logger
}

// NewProgressiveRaytracer creates a new progressive raytracer. Call Close when done
// unless RenderProgressive is used, which closes it itself.
func NewProgressiveRaytracer(world geometry.Hittable, camera *Camera, opts Options) *ProgressiveRaytracer {
	opts = opts.withDefaults()

	raytracer := NewRaytracer(world, camera, opts.Sampling)
	raytracer.SetBackground(opts.Background)

	width, height := camera.ImageWidth(), camera.ImageHeight()
	tiles := NewTileGrid(width, height, opts.Progressive.TileSize, opts.Progressive.Seed)

	return &ProgressiveRaytracer{
		width:      width,
		height:     height,
		sampling:   opts.Sampling,
		config:     opts.Progressive,
		tiles:      tiles,
		pixelStats: newPixelStatsGrid(width, height),
		raytracer:  raytracer,
		workerPool: NewWorkerPool(raytracer, opts.Progressive.NumWorkers, len(tiles)),
		logger:     opts.Logger.With("render", uuid.NewString()[:8]),
	}
}

// getSamplesForPass calculates the target total samples for a given pass
func (pr *ProgressiveRaytracer) getSamplesForPass(passNumber int) int {
	maxSamples := pr.sampling.SamplesPerPixel

	// Special case: if only 1 pass, use all samples
	if pr.config.MaxPasses == 1 || passNumber >= pr.config.MaxPasses {
		return maxSamples
	}

	// First pass is a quick preview
	if passNumber == 1 {
		return pr.config.InitialSamples
	}

	// Divide remaining samples evenly across remaining passes
	remainingSamples := maxSamples - pr.config.InitialSamples
	remainingPasses := pr.config.MaxPasses - 1
	samplesPerPass := remainingSamples / remainingPasses

	return min(maxSamples, pr.config.InitialSamples+(passNumber-1)*samplesPerPass)
}

// RenderPass renders a single progressive pass using parallel processing
func (pr *ProgressiveRaytracer) RenderPass(ctx context.Context, passNumber int) (PixelBuffer, RenderStats, error) {
	targetSamples := pr.getSamplesForPass(passNumber)

	pr.logger.Debugf("Pass %d: target %d samples per pixel (using %d workers)",
		passNumber, targetSamples, pr.workerPool.GetNumWorkers())

	pr.workerPool.Start()

	for taskID, tile := range pr.tiles {
		pr.workerPool.SubmitTask(TileTask{
			Tile:          tile,
			PassNumber:    passNumber,
			TargetSamples: targetSamples,
			TaskID:        taskID,
			PixelStats:    pr.pixelStats,
			ctx:           ctx,
		})
	}

	// Collect every result, even after an error, so no stale result leaks into the next pass
	var firstErr error
	for i := 0; i < len(pr.tiles); i++ {
		result, ok := pr.workerPool.GetResult()
		if !ok {
			return nil, RenderStats{}, fmt.Errorf("worker pool closed unexpectedly")
		}
		if result.Error != nil {
			if firstErr == nil {
				firstErr = result.Error
			}
			continue
		}
		pr.tiles[result.TaskID].PassesCompleted++
	}
	if firstErr != nil {
		return nil, RenderStats{}, fmt.Errorf("pass %d: %w", passNumber, firstErr)
	}

	buf, stats := pr.assembleCurrentImage(targetSamples)
	return buf, stats, nil
}

// PassResult contains the result of a single pass
type PassResult struct {
	PassNumber int
	Buffer     PixelBuffer
	Stats      RenderStats
	Elapsed    time.Duration
	IsLast     bool
}

// RenderProgressive renders every pass on a background goroutine, sending each result as it
// completes. Both channels are closed when rendering stops; at most one error is sent.
func (pr *ProgressiveRaytracer) RenderProgressive(ctx context.Context) (<-chan PassResult, <-chan error) {
	passChan := make(chan PassResult, 1)
	errChan := make(chan error, 1)

	go func() {
		defer close(errChan)
		defer close(passChan)
		defer pr.Close()

		pr.logger.Infof("Starting progressive rendering: %dx%d, up to %d passes",
			pr.width, pr.height, pr.config.MaxPasses)

		for pass := 1; pass <= pr.config.MaxPasses; pass++ {
			if err := ctx.Err(); err != nil {
				pr.logger.Warnf("Rendering cancelled before pass %d", pass)
				errChan <- err
				return
			}

			startTime := time.Now()
			buf, stats, err := pr.RenderPass(ctx, pass)
			if err != nil {
				errChan <- err
				return
			}

			elapsed := time.Since(startTime)
			pr.logger.Infof("Pass %d completed in %v (%.1f samples/pixel)", pass, elapsed, stats.AverageSamples)

			isLast := pass == pr.config.MaxPasses || stats.MinSamples >= pr.sampling.SamplesPerPixel
			select {
			case passChan <- PassResult{PassNumber: pass, Buffer: buf, Stats: stats, Elapsed: elapsed, IsLast: isLast}:
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}

			if isLast {
				return
			}
		}
	}()

	return passChan, errChan
}

// Close stops the worker pool
func (pr *ProgressiveRaytracer) Close() {
	pr.workerPool.Stop()
}

// assembleCurrentImage creates a buffer from the current state of the shared pixel stats
// and calculates render statistics in a single pass
func (pr *ProgressiveRaytracer) assembleCurrentImage(targetSamples int) (PixelBuffer, RenderStats) {
	stats := newRenderStats(pr.width*pr.height, targetSamples)
	for y := range pr.pixelStats {
		for x := range pr.pixelStats[y] {
			stats.addPixel(pr.pixelStats[y][x].SampleCount)
		}
	}
	stats.finalize()

	return pixelBufferFromStats(pr.pixelStats), stats
}

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID              int             // Unique tile identifier
	Bounds          image.Rectangle // Pixel bounds (x0,y0,x1,y1)
	PassesCompleted int             // Number of passes completed for this tile
	Sampler         core.Sampler    // Tile-owned sampler, never shared between goroutines
}

// NewTile creates a new tile whose sampler is seeded from seed and the tile ID
func NewTile(id int, bounds image.Rectangle, seed int64) *Tile {
	return &Tile{
		ID:      id,
		Bounds:  bounds,
		Sampler: core.NewSeededSampler(seed + int64(id)),
	}
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int, seed int64) []*Tile {
	var tiles []*Tile
	tileID := 0

	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1), seed))
			tileID++
		}
	}

	return tiles
}
