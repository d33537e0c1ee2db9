package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// NewDefaultScene creates a default scene with three spheres on a large ground sphere
func NewDefaultScene() *Scene {
	cameraConfig := renderer.CameraConfig{
		Center:        core.NewVec3(-2, 2, 1), // Looking down at the spheres from the left
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		Width:         400,
		AspectRatio:   16.0 / 9.0,
		VFov:          20.0,
		Aperture:      10.0, // Strong depth of field blur
		FocusDistance: 3.4,
	}

	// Create materials
	materialGround := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	materialCenter := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	materialGlass := material.NewDielectric(1.5)
	materialBubble := material.NewDielectric(1.0 / 1.5) // Air inside glass
	materialGold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 1.0)

	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, materialGround),
		geometry.NewSphere(core.NewVec3(0, 0, -1.2), 0.5, materialCenter),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, materialGlass),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.4, materialBubble),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, materialGold),
	)

	return &Scene{
		Name:         "default",
		CameraConfig: cameraConfig,
		World:        world,
		Sampling:     renderer.DefaultSamplingConfig(),
		Background:   renderer.DefaultBackground(),
	}
}

// NewSingleSphereScene creates a single diffuse sphere in front of a camera at the origin
func NewSingleSphereScene() *Scene {
	return &Scene{
		Name:         "single",
		CameraConfig: renderer.DefaultCameraConfig(),
		World: geometry.NewHittableList(
			geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
		),
		Sampling:   renderer.DefaultSamplingConfig(),
		Background: renderer.DefaultBackground(),
	}
}
