package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// smallSphereRadius is the radius of every randomly placed sphere
const smallSphereRadius = 0.2

// NewFinalScene creates the random sphere field: small spheres on a (2*grid)x(2*grid)
// lattice around three large spheres. The layout is a pure function of grid and sampler.
func NewFinalScene(grid int, sampler core.Sampler) *Scene {
	cameraConfig := renderer.CameraConfig{
		Center:        core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		Width:         1200,
		AspectRatio:   16.0 / 9.0,
		VFov:          20.0,
		Aperture:      0.6,
		FocusDistance: 10.0,
	}

	world := geometry.NewHittableList()

	groundMaterial := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	world.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, groundMaterial))

	// Keep the small spheres clear of the large metal sphere
	clearing := core.NewVec3(4, smallSphereRadius, 0)

	for a := -grid; a < grid; a++ {
		for b := -grid; b < grid; b++ {
			chooseMat := sampler.Get1D()
			jitter := sampler.Get2D()
			center := core.NewVec3(float64(a)+0.9*jitter.X, smallSphereRadius, float64(b)+0.9*jitter.Y)

			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			var sphereMaterial material.Material
			switch {
			case chooseMat < 0.8:
				// Diffuse
				albedo := core.RandomVec3(sampler).MultiplyVec(core.RandomVec3(sampler))
				sphereMaterial = material.NewLambertian(albedo)
			case chooseMat < 0.95:
				// Metal
				albedo := core.RandomVec3Range(sampler, 0.5, 1)
				fuzz := core.RandomFloat(sampler, 0, 0.5)
				sphereMaterial = material.NewMetal(albedo, fuzz)
			default:
				// Glass
				sphereMaterial = material.NewDielectric(1.5)
			}

			world.Add(geometry.NewSphere(center, smallSphereRadius, sphereMaterial))
		}
	}

	world.Add(geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)))
	world.Add(geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))))
	world.Add(geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)))

	return &Scene{
		Name:         "final",
		CameraConfig: cameraConfig,
		World:        world,
		Sampling:     renderer.SamplingConfig{SamplesPerPixel: 500, MaxDepth: 50},
		Background:   renderer.DefaultBackground(),
	}
}
