package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestMetalPerfectMirror(t *testing.T) {
	albedo := core.NewVec3(0.8, 0.8, 0.8)
	metal := NewMetal(albedo, 0.0)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	ray := core.NewRay(core.NewVec3(-1, 1, 0), core.NewVec3(1, -1, 0))
	hit := &HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		FrontFace: true,
		Material:  metal,
	}

	result, scattered := metal.Scatter(ray, hit, sampler)
	if !scattered {
		t.Fatal("Mirror reflection above the surface should scatter")
	}

	expected := core.NewVec3(1, 1, 0).Normalize()
	if result.Scattered.Direction.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected reflection %v, got %v", expected, result.Scattered.Direction)
	}
	if result.Attenuation != albedo {
		t.Errorf("Expected attenuation %v, got %v", albedo, result.Attenuation)
	}
}

func TestMetalAbsorbsWhenFuzzPointsIntoSurface(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.9, 0.9, 0.9), 1.0)

	// Grazing incidence: the reflection is almost tangent to the surface
	ray := core.NewRay(core.NewVec3(-1, 0.01, 0), core.NewVec3(1, -0.01, 0))
	hit := &HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		FrontFace: true,
		Material:  metal,
	}

	// (0.5, 0, 0.5) maps to the fuzz vector (0,-1,0), pushing the reflection below the surface
	sampler := core.NewSequenceSampler(0.5, 0, 0.5)
	result, scattered := metal.Scatter(ray, hit, sampler)

	if scattered {
		t.Errorf("Expected absorption, got scattered direction %v", result.Scattered.Direction)
	}
	if result.Scattered.Direction.Dot(hit.Normal) > 0 {
		t.Errorf("Absorbed ray should point into the surface, got %v", result.Scattered.Direction)
	}
}

func TestMetalFuzzClamping(t *testing.T) {
	tests := []struct {
		fuzz     float64
		expected float64
	}{
		{-0.5, 0},
		{0.3, 0.3},
		{2.0, 1.0},
	}

	for _, tt := range tests {
		m := NewMetal(core.NewVec3(1, 1, 1), tt.fuzz)
		if math.Abs(m.Fuzz-tt.expected) > 1e-12 {
			t.Errorf("NewMetal(fuzz=%f): expected %f, got %f", tt.fuzz, tt.expected, m.Fuzz)
		}
	}
}

func TestMetalFuzzedDirectionIsUnitLength(t *testing.T) {
	metal := NewMetal(core.NewVec3(1, 1, 1), 1.0)

	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	hit := &HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		FrontFace: true,
		Material:  metal,
	}

	// (0.5, ~1, 0.5) maps to the fuzz vector (0,1,0), doubling the reflection before renormalizing
	result, scattered := metal.Scatter(ray, hit, core.NewSequenceSampler(0.5, 1-1e-12, 0.5))
	if !scattered {
		t.Fatal("Reflection away from the surface should scatter")
	}
	if l := result.Scattered.Direction.Length(); math.Abs(l-1) > 1e-9 {
		t.Errorf("Expected unit scattered direction, got length %f", l)
	}

	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))
	for i := 0; i < 1000; i++ {
		result, scattered := metal.Scatter(ray, hit, sampler)
		if scattered && math.Abs(result.Scattered.Direction.Length()-1) > 1e-9 {
			t.Fatalf("Expected unit scattered direction, got length %f", result.Scattered.Direction.Length())
		}
	}
}

func TestMetalCancelledFuzzIsAbsorbed(t *testing.T) {
	metal := NewMetal(core.NewVec3(1, 1, 1), 1.0)

	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	hit := &HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 1, 0), FrontFace: true, Material: metal}

	// (0.5, 0, 0.5) maps to (0,-1,0), exactly cancelling the reflection (0,1,0)
	if _, scattered := metal.Scatter(ray, hit, core.NewSequenceSampler(0.5, 0, 0.5)); scattered {
		t.Error("Expected absorption when the fuzz cancels the reflection")
	}
}
