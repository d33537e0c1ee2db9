package renderer

import (
	"image"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// hitRange excludes t near zero so scattered rays do not re-hit their own surface
var hitRange = core.NewInterval(0.001, math.Inf(1))

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
}

// Background is the vertical sky gradient seen by rays that escape the scene
type Background struct {
	Bottom core.Vec3 // Color looking straight down
	Top    core.Vec3 // Color looking straight up
}

// DefaultBackground returns the white-to-light-blue sky
func DefaultBackground() Background {
	return Background{
		Bottom: core.NewVec3(1.0, 1.0, 1.0),
		Top:    core.NewVec3(0.5, 0.7, 1.0),
	}
}

// Raytracer evaluates pixel colors for a scene. It holds no mutable state and can be
// shared between goroutines as long as each uses its own sampler.
type Raytracer struct {
	world      geometry.Hittable
	camera     *Camera
	config     SamplingConfig
	background Background
}

// NewRaytracer creates a new raytracer with the default sky
func NewRaytracer(world geometry.Hittable, camera *Camera, config SamplingConfig) *Raytracer {
	return &Raytracer{
		world:      world,
		camera:     camera,
		config:     config,
		background: DefaultBackground(),
	}
}

// SetBackground replaces the sky gradient
func (rt *Raytracer) SetBackground(background Background) {
	rt.background = background
}

// Camera returns the camera rays are generated from
func (rt *Raytracer) Camera() *Camera {
	return rt.camera
}

// backgroundGradient returns a gradient color based on ray direction
func (rt *Raytracer) backgroundGradient(r core.Ray) core.Vec3 {
	unitDirection := r.Direction.Normalize()

	// Map y from [-1,1] to [0,1]
	a := 0.5 * (unitDirection.Y + 1.0)
	return rt.background.Bottom.Lerp(rt.background.Top, a)
}

// RayColor returns the radiance arriving along r, following at most depth bounces
func (rt *Raytracer) RayColor(r core.Ray, depth int, sampler core.Sampler) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{}
	}

	hit, isHit := rt.world.Hit(r, hitRange)
	if !isHit {
		return rt.backgroundGradient(r)
	}

	scatter, didScatter := hit.Material.Scatter(r, hit, sampler)
	if !didScatter {
		return core.Vec3{} // Material absorbed the ray
	}

	return scatter.Attenuation.MultiplyVec(rt.RayColor(scatter.Scattered, depth-1, sampler))
}

// samplePixel traces one jittered camera ray through pixel (i, j)
func (rt *Raytracer) samplePixel(i, j int, sampler core.Sampler) core.Vec3 {
	ray := rt.camera.GetRay(i, j, sampler)
	return rt.RayColor(ray, rt.config.MaxDepth, sampler)
}

// RenderBounds tops up every pixel inside bounds to targetSamples samples.
// Pixels outside bounds are never touched, so disjoint bounds can render concurrently.
func (rt *Raytracer) RenderBounds(bounds image.Rectangle, pixelStats [][]PixelStats, sampler core.Sampler, targetSamples int) RenderStats {
	stats := newRenderStats(bounds.Dx()*bounds.Dy(), targetSamples)

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			ps := &pixelStats[j][i]
			before := ps.SampleCount
			for ps.SampleCount < targetSamples {
				ps.AddSample(rt.samplePixel(i, j, sampler))
			}
			stats.addPixel(ps.SampleCount - before)
		}
	}

	stats.finalize()
	return stats
}

// RenderPass renders the whole image on the calling goroutine, row by row
func (rt *Raytracer) RenderPass(sampler core.Sampler) (PixelBuffer, RenderStats) {
	width, height := rt.camera.ImageWidth(), rt.camera.ImageHeight()
	pixelStats := newPixelStatsGrid(width, height)

	stats := rt.RenderBounds(image.Rect(0, 0, width, height), pixelStats, sampler, rt.config.SamplesPerPixel)
	return pixelBufferFromStats(pixelStats), stats
}
