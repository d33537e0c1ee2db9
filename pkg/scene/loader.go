package scene

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Material kinds accepted in scene files
const (
	KindLambertian = "lambertian"
	KindMetal      = "metal"
	KindDielectric = "dielectric"
)

type vec3 [3]float64

func (v vec3) toVec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

type fileCamera struct {
	Center        *vec3   `toml:"center"`
	LookAt        *vec3   `toml:"look_at"`
	Up            *vec3   `toml:"up"`
	Width         int     `toml:"width"`
	AspectRatio   float64 `toml:"aspect_ratio"`
	VFov          float64 `toml:"vfov"`
	Aperture      float64 `toml:"aperture"`
	FocusDistance float64 `toml:"focus_distance"`
}

type fileRender struct {
	SamplesPerPixel int `toml:"samples_per_pixel"`
	MaxDepth        int `toml:"max_depth"`
}

type fileBackground struct {
	Bottom *vec3 `toml:"bottom"`
	Top    *vec3 `toml:"top"`
}

type fileMaterial struct {
	Kind            string  `toml:"kind"`
	Albedo          vec3    `toml:"albedo"`
	Fuzz            float64 `toml:"fuzz"`
	RefractionIndex float64 `toml:"refraction_index"`
}

type fileSphere struct {
	Center   vec3    `toml:"center"`
	Radius   float64 `toml:"radius"`
	Material string  `toml:"material"`
}

// sceneFile mirrors the TOML layout of a scene description
type sceneFile struct {
	Name       string                  `toml:"name"`
	Camera     fileCamera              `toml:"camera"`
	Render     fileRender              `toml:"render"`
	Background fileBackground          `toml:"background"`
	Materials  map[string]fileMaterial `toml:"materials"`
	Spheres    []fileSphere            `toml:"spheres"`
}

// LoadFile reads a TOML scene description from path
func LoadFile(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer f.Close()

	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Load decodes a TOML scene description. Unknown keys are rejected.
func Load(r io.Reader) (*Scene, error) {
	var file sceneFile
	decoder := toml.NewDecoder(r).DisallowUnknownFields()
	if err := decoder.Decode(&file); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidScene, strict.String())
		}
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}
	return file.build()
}

func (f *sceneFile) build() (*Scene, error) {
	materials, err := f.buildMaterials()
	if err != nil {
		return nil, err
	}

	world := geometry.NewHittableList()
	for i, sphere := range f.Spheres {
		mat, ok := materials[sphere.Material]
		if !ok {
			return nil, fmt.Errorf("sphere %d: %w %q", i, ErrUnknownMaterial, sphere.Material)
		}
		world.Add(geometry.NewSphere(sphere.Center.toVec3(), sphere.Radius, mat))
	}

	sampling := renderer.DefaultSamplingConfig()
	if f.Render.SamplesPerPixel != 0 {
		sampling.SamplesPerPixel = f.Render.SamplesPerPixel
	}
	if f.Render.MaxDepth != 0 {
		sampling.MaxDepth = f.Render.MaxDepth
	}

	background := renderer.DefaultBackground()
	if f.Background.Bottom != nil {
		background.Bottom = f.Background.Bottom.toVec3()
	}
	if f.Background.Top != nil {
		background.Top = f.Background.Top.toVec3()
	}

	return &Scene{
		Name:         f.Name,
		CameraConfig: f.Camera.applyTo(renderer.DefaultCameraConfig()),
		World:        world,
		Sampling:     sampling,
		Background:   background,
	}, nil
}

// buildMaterials creates each named material once so spheres share them
func (f *sceneFile) buildMaterials() (map[string]material.Material, error) {
	names := make([]string, 0, len(f.Materials))
	for name := range f.Materials {
		names = append(names, name)
	}
	sort.Strings(names)

	materials := make(map[string]material.Material, len(names))
	for _, name := range names {
		def := f.Materials[name]
		switch strings.ToLower(def.Kind) {
		case KindLambertian:
			materials[name] = material.NewLambertian(def.Albedo.toVec3())
		case KindMetal:
			materials[name] = material.NewMetal(def.Albedo.toVec3(), def.Fuzz)
		case KindDielectric:
			if def.RefractionIndex <= 0 {
				return nil, fmt.Errorf("%w: material %q needs a positive refraction_index", ErrInvalidScene, name)
			}
			materials[name] = material.NewDielectric(def.RefractionIndex)
		default:
			return nil, fmt.Errorf("%w: material %q has unknown kind %q (want %s, %s or %s)",
				ErrInvalidScene, name, def.Kind, KindLambertian, KindMetal, KindDielectric)
		}
	}
	return materials, nil
}

// applyTo overrides the fields of base that the file sets. Vectors are kept even when
// zero, so a camera can look at the origin.
func (c fileCamera) applyTo(base renderer.CameraConfig) renderer.CameraConfig {
	if c.Center != nil {
		base.Center = c.Center.toVec3()
	}
	if c.LookAt != nil {
		base.LookAt = c.LookAt.toVec3()
	}
	if c.Up != nil {
		base.Up = c.Up.toVec3()
	}
	return renderer.MergeCameraConfig(base, renderer.CameraConfig{
		Width:         c.Width,
		AspectRatio:   c.AspectRatio,
		VFov:          c.VFov,
		Aperture:      c.Aperture,
		FocusDistance: c.FocusDistance,
	})
}
