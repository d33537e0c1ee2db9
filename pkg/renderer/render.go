package renderer

import (
	"context"
	"time"

	"github.com/df07/go-pathtracer/pkg/geometry"
)

// Render produces the final image in a single pass over the tile grid.
// Every pixel receives exactly opts.Sampling.SamplesPerPixel samples.
func Render(ctx context.Context, world geometry.Hittable, cameraConfig CameraConfig, opts Options) (PixelBuffer, RenderStats, error) {
	opts.Progressive.MaxPasses = 1

	camera := NewCamera(cameraConfig)
	pr := NewProgressiveRaytracer(world, camera, opts)
	defer pr.Close()

	start := time.Now()
	buf, stats, err := pr.RenderPass(ctx, 1)
	if err != nil {
		return nil, RenderStats{}, err
	}

	pr.logger.Info("Render complete",
		"width", camera.ImageWidth(),
		"height", camera.ImageHeight(),
		"samples", stats.TotalSamples,
		"elapsed", time.Since(start).Round(time.Millisecond))
	return buf, stats, nil
}
