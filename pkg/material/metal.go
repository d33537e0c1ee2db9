package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Metal represents a metallic material with specular reflection
type Metal struct {
	Albedo core.Vec3 // Metal color
	Fuzz   float64   // 0.0 = perfect mirror, 1.0 = very fuzzy
}

// NewMetal creates a new metal material, clamping fuzz to [0, 1]
func NewMetal(albedo core.Vec3, fuzz float64) *Metal {
	return &Metal{Albedo: albedo, Fuzz: core.Clamp(fuzz, 0, 1)}
}

// Scatter reflects the ray about the normal, perturbs it by the fuzz radius and
// renormalizes it. Rays perturbed into the surface are absorbed.
func (m *Metal) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	reflected := core.Reflect(rayIn.Direction, hit.Normal).Normalize()
	reflected = reflected.Add(core.RandomUnitVector(sampler).Multiply(m.Fuzz))

	// Fuzz exactly cancelling the reflection leaves no direction to follow
	if reflected.NearZero() {
		return ScatterResult{Scattered: core.NewRay(hit.Point, reflected), Attenuation: m.Albedo}, false
	}

	scattered := core.NewRay(hit.Point, reflected.Normalize())

	return ScatterResult{
		Scattered:   scattered,
		Attenuation: m.Albedo,
	}, scattered.Direction.Dot(hit.Normal) > 0
}

func (m *Metal) sealed() {}
