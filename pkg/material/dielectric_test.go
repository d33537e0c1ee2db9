package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestDielectricBasicBehavior(t *testing.T) {
	// Create a glass material (refractive index of 1.5)
	glass := NewDielectric(1.5)

	rayDirection := core.NewVec3(1, -1, 0).Normalize() // 45-degree angle
	ray := core.Ray{Origin: core.NewVec3(0, 1, 0), Direction: rayDirection}

	hit := &HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0), // Normal pointing up
		T:         1.0,
		FrontFace: true,
		Material:  glass,
	}

	hasReflection := false
	hasRefraction := false

	for seed := int64(0); seed < 1000 && (!hasReflection || !hasRefraction); seed++ {
		sampler := core.NewRandomSampler(rand.New(rand.NewSource(seed)))
		result, scattered := glass.Scatter(ray, hit, sampler)

		if !scattered {
			t.Fatal("Dielectric should always scatter")
		}
		if result.Attenuation != core.NewVec3(1, 1, 1) {
			t.Fatalf("Expected white attenuation, got %v", result.Attenuation)
		}

		if result.Scattered.Direction.Y > 0 {
			hasReflection = true
		} else {
			hasRefraction = true
		}
	}

	if !hasRefraction {
		t.Error("Expected to see refraction in at least some cases")
	}
	if !hasReflection {
		t.Error("Expected to see reflection in at least some cases")
	}
}

func TestDielectricSchlickChoice(t *testing.T) {
	glass := NewDielectric(1.5)
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(1, -1, 0).Normalize())
	hit := &HitRecord{Normal: core.NewVec3(0, 1, 0), FrontFace: true, Material: glass}

	cosTheta := 1 / math.Sqrt2
	reflectance := Reflectance(cosTheta, 1/1.5)

	tests := []struct {
		name    string
		draw    float64
		reflect bool
	}{
		{"draw below reflectance reflects", reflectance / 2, true},
		{"draw above reflectance refracts", (reflectance + 1) / 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _ := glass.Scatter(ray, hit, core.NewSequenceSampler(tt.draw))
			reflected := result.Scattered.Direction.Y > 0
			if reflected != tt.reflect {
				t.Errorf("Expected reflect=%v, got direction %v", tt.reflect, result.Scattered.Direction)
			}
		})
	}
}

func TestDielectricTotalInternalReflection(t *testing.T) {
	glass := NewDielectric(1.5)

	// Exiting glass at 60 degrees: 1.5 * sin(60°) > 1, refraction is impossible
	dir := core.NewVec3(math.Sin(math.Pi/3), math.Cos(math.Pi/3), 0)
	ray := core.NewRay(core.NewVec3(0, -1, 0), dir)
	hit := &HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, -1, 0), // back face, normal flipped toward the ray
		FrontFace: false,
		Material:  glass,
	}

	// A draw of 0.999 would refract if refraction were possible
	result, scattered := glass.Scatter(ray, hit, core.NewSequenceSampler(0.999))
	if !scattered {
		t.Fatal("Dielectric should always scatter")
	}
	if result.Scattered.Direction.Y >= 0 {
		t.Errorf("Expected total internal reflection back into the glass, got %v", result.Scattered.Direction)
	}
}

func TestReflectance(t *testing.T) {
	// Normal incidence on glass reflects about 4%
	r := Reflectance(1.0, 1.0/1.5)
	if math.Abs(r-0.04) > 1e-9 {
		t.Errorf("Expected 0.04 at normal incidence, got %f", r)
	}
	// Grazing incidence reflects everything
	if r := Reflectance(0, 1.0/1.5); math.Abs(r-1) > 1e-9 {
		t.Errorf("Expected 1 at grazing incidence, got %f", r)
	}
}
