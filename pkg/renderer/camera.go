package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-pathtracer/pkg/core"
)

// CameraConfig describes the camera's placement and lens
type CameraConfig struct {
	Center        core.Vec3 // Camera position (look-from)
	LookAt        core.Vec3 // Point the camera looks at
	Up            core.Vec3 // Up hint, need not be perpendicular to the view direction
	Width         int       // Image width in pixels
	AspectRatio   float64   // Width over height
	VFov          float64   // Vertical field of view in degrees
	Aperture      float64   // Defocus cone angle in degrees, 0 = pinhole
	FocusDistance float64   // Distance to the plane of perfect focus, 0 = distance to LookAt
}

// DefaultCameraConfig returns a pinhole camera at the origin looking down -z
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Center:        core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		Width:         400,
		AspectRatio:   16.0 / 9.0,
		VFov:          90.0,
		Aperture:      0.0,
		FocusDistance: 0.0,
	}
}

// MergeCameraConfig returns base with every non-zero field of override applied on top.
// Zero means unset, so an override cannot turn a depth-of-field camera into a pinhole
// with Aperture 0; build a new CameraConfig for that.
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	var zero core.Vec3
	result := base
	if override.Center != zero {
		result.Center = override.Center
	}
	if override.LookAt != zero {
		result.LookAt = override.LookAt
	}
	if override.Up != zero {
		result.Up = override.Up
	}
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.Aperture != 0 {
		result.Aperture = override.Aperture
	}
	if override.FocusDistance != 0 {
		result.FocusDistance = override.FocusDistance
	}
	return result
}

// withLensDefaults fills the zero-valued fields that have no meaningful zero
func withLensDefaults(config CameraConfig) CameraConfig {
	defaults := DefaultCameraConfig()
	if config.Up == (core.Vec3{}) {
		config.Up = defaults.Up
	}
	if config.Width <= 0 {
		config.Width = defaults.Width
	}
	if config.AspectRatio <= 0 {
		config.AspectRatio = defaults.AspectRatio
	}
	if config.VFov <= 0 {
		config.VFov = defaults.VFov
	}
	return config
}

// Camera generates rays for rendering. All fields are derived once and never change.
type Camera struct {
	config      CameraConfig
	imageWidth  int
	imageHeight int

	center      core.Vec3 // Camera center
	pixel00     core.Vec3 // Location of pixel (0, 0)
	pixelDeltaU core.Vec3 // Offset to the pixel to the right
	pixelDeltaV core.Vec3 // Offset to the pixel below

	u, v, w core.Vec3 // Camera frame basis vectors

	defocusDiskU core.Vec3 // Defocus disk horizontal radius
	defocusDiskV core.Vec3 // Defocus disk vertical radius
}

// NewCamera creates a camera. A zero Up, Width, AspectRatio or VFov takes its
// DefaultCameraConfig value; Center and LookAt are used as given.
func NewCamera(config CameraConfig) *Camera {
	config = withLensDefaults(config)

	imageHeight := max(1, int(float64(config.Width)/config.AspectRatio))

	focusDistance := config.FocusDistance
	if focusDistance <= 0 {
		focusDistance = config.Center.Subtract(config.LookAt).Length()
	}

	// Viewport dimensions
	theta := mgl64.DegToRad(config.VFov)
	viewportHeight := 2 * math.Tan(theta/2) * focusDistance
	viewportWidth := viewportHeight * (float64(config.Width) / float64(imageHeight))

	// Orthonormal camera basis
	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	// Vectors across the horizontal and down the vertical viewport edges
	viewportU := u.Multiply(viewportWidth)
	viewportV := v.Negate().Multiply(viewportHeight)

	pixelDeltaU := viewportU.Divide(float64(config.Width))
	pixelDeltaV := viewportV.Divide(float64(imageHeight))

	viewportUpperLeft := config.Center.
		Subtract(w.Multiply(focusDistance)).
		Subtract(viewportU.Divide(2)).
		Subtract(viewportV.Divide(2))
	pixel00 := viewportUpperLeft.Add(pixelDeltaU.Add(pixelDeltaV).Multiply(0.5))

	camera := &Camera{
		config:      config,
		imageWidth:  config.Width,
		imageHeight: imageHeight,
		center:      config.Center,
		pixel00:     pixel00,
		pixelDeltaU: pixelDeltaU,
		pixelDeltaV: pixelDeltaV,
		u:           u,
		v:           v,
		w:           w,
	}

	if config.Aperture > 0 {
		defocusRadius := focusDistance * math.Tan(mgl64.DegToRad(config.Aperture/2))
		camera.defocusDiskU = u.Multiply(defocusRadius)
		camera.defocusDiskV = v.Multiply(defocusRadius)
	}

	return camera
}

// GetRay returns a ray for pixel (i, j), jittered uniformly inside the pixel square.
// With a non-zero aperture the origin is sampled from the defocus disk.
func (c *Camera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	// pixel00 is a pixel center, so shift the sample into [-0.5, 0.5)
	offset := sampler.Get2D()
	pixelSample := c.pixel00.
		Add(c.pixelDeltaU.Multiply(float64(i) + offset.X - 0.5)).
		Add(c.pixelDeltaV.Multiply(float64(j) + offset.Y - 0.5))

	origin := c.center
	if c.config.Aperture > 0 {
		origin = c.defocusDiskSample(sampler)
	}

	return core.NewRay(origin, pixelSample.Subtract(origin))
}

// defocusDiskSample returns a random point on the camera's defocus disk
func (c *Camera) defocusDiskSample(sampler core.Sampler) core.Vec3 {
	p := core.RandomInUnitDisk(sampler)
	return c.center.Add(c.defocusDiskU.Multiply(p.X)).Add(c.defocusDiskV.Multiply(p.Y))
}

// ImageWidth returns the rendered image width in pixels
func (c *Camera) ImageWidth() int {
	return c.imageWidth
}

// ImageHeight returns the rendered image height in pixels
func (c *Camera) ImageHeight() int {
	return c.imageHeight
}

// Center returns the camera position
func (c *Camera) Center() core.Vec3 {
	return c.center
}

// Config returns the resolved configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// GetCameraForward returns the unit direction the camera looks along
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.w.Negate()
}
