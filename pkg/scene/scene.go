package scene

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

var (
	// ErrUnknownScene is returned when a name is neither a built-in scene nor a scene file
	ErrUnknownScene = errors.New("unknown scene")
	// ErrUnknownMaterial is returned when a sphere references a material that was never defined
	ErrUnknownMaterial = errors.New("unknown material")
	// ErrInvalidScene is returned when a scene fails validation
	ErrInvalidScene = errors.New("invalid scene")
)

// SceneFileExt is the extension of scene description files
const SceneFileExt = ".toml"

// Scene contains all the elements needed for rendering
type Scene struct {
	Name         string
	CameraConfig renderer.CameraConfig
	World        *geometry.HittableList
	Sampling     renderer.SamplingConfig
	Background   renderer.Background
}

// Options tweak how a scene is created
type Options struct {
	Grid   int                   // Half-width of the final scene's small sphere grid
	Seed   int64                 // Seed for randomly laid out scenes
	Camera renderer.CameraConfig // Non-zero fields override the scene's camera
}

// DefaultOptions returns the options used when none are given
func DefaultOptions() Options {
	return Options{
		Grid: 2,
		Seed: 42,
	}
}

// BuiltinNames lists the scenes that Create can build without a file
func BuiltinNames() []string {
	return []string{"default", "single", "final"}
}

// Create resolves name to a built-in scene or, if it ends in .toml, loads it from disk
func Create(name string, opts Options) (*Scene, error) {
	var s *Scene
	switch {
	case name == "default":
		s = NewDefaultScene()
	case name == "single":
		s = NewSingleSphereScene()
	case name == "final":
		grid := opts.Grid
		if grid <= 0 {
			grid = DefaultOptions().Grid
		}
		s = NewFinalScene(grid, core.NewSeededSampler(opts.Seed))
	case strings.EqualFold(filepath.Ext(name), SceneFileExt):
		loaded, err := LoadFile(name)
		if err != nil {
			return nil, err
		}
		s = loaded
	default:
		return nil, fmt.Errorf("%w: %q (built-in scenes: %s)", ErrUnknownScene, name, strings.Join(BuiltinNames(), ", "))
	}

	s.CameraConfig = renderer.MergeCameraConfig(s.CameraConfig, opts.Camera)
	if err := Validate(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks that the scene can be rendered
func Validate(s *Scene) error {
	var errs []error

	cam := s.CameraConfig
	if cam.Center == cam.LookAt {
		errs = append(errs, fmt.Errorf("camera center and look_at are both %v", cam.Center))
	} else if up := cam.Up; up != (core.Vec3{}) && up.Cross(cam.Center.Subtract(cam.LookAt)).NearZero() {
		errs = append(errs, fmt.Errorf("camera up %v is parallel to the view direction", up))
	}
	if cam.Width < 0 {
		errs = append(errs, fmt.Errorf("image width %d is negative", cam.Width))
	}
	if cam.AspectRatio < 0 {
		errs = append(errs, fmt.Errorf("aspect ratio %g is negative", cam.AspectRatio))
	}
	if cam.VFov < 0 || cam.VFov >= 180 {
		errs = append(errs, fmt.Errorf("vertical field of view %g must be in [0, 180), 0 = default", cam.VFov))
	}
	if cam.Aperture < 0 || cam.FocusDistance < 0 {
		errs = append(errs, fmt.Errorf("aperture %g and focus distance %g must not be negative", cam.Aperture, cam.FocusDistance))
	}
	if s.Sampling.SamplesPerPixel < 0 || s.Sampling.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("samples %d and depth %d must not be negative", s.Sampling.SamplesPerPixel, s.Sampling.MaxDepth))
	}

	if s.World == nil {
		errs = append(errs, errors.New("scene has no world"))
	} else {
		for i, object := range s.World.Objects {
			sphere, ok := object.(*geometry.Sphere)
			if !ok {
				continue
			}
			if sphere.Radius <= 0 {
				errs = append(errs, fmt.Errorf("sphere %d has non-positive radius %g", i, sphere.Radius))
			}
			if sphere.Material == nil {
				errs = append(errs, fmt.Errorf("sphere %d has no material", i))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w %q: %w", ErrInvalidScene, s.Name, errors.Join(errs...))
	}
	return nil
}

// RenderOptions returns base with the scene's sampling and sky applied.
// Positive fields of override win over the scene's sampling values.
func (s *Scene) RenderOptions(base renderer.Options, override renderer.SamplingConfig) renderer.Options {
	base.Sampling = s.Sampling
	if override.SamplesPerPixel > 0 {
		base.Sampling.SamplesPerPixel = override.SamplesPerPixel
	}
	if override.MaxDepth > 0 {
		base.Sampling.MaxDepth = override.MaxDepth
	}
	base.Background = s.Background
	return base
}

// GetPrimitiveCount returns the number of objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	if s.World == nil {
		return 0
	}
	return s.World.Len()
}
