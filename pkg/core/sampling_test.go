package core

import (
	"math"
	"math/rand"
	"testing"
)

func TestRandomInUnitDisk(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(42)))

	for i := 0; i < 10000; i++ {
		p := RandomInUnitDisk(sampler)
		if p.X*p.X+p.Y*p.Y >= 1 {
			t.Fatalf("Sample %d outside unit disk: %v", i, p)
		}
		if p.Z != 0 {
			t.Fatalf("Disk sample should have z=0, got %v", p)
		}
	}
}

func TestRandomInUnitDisk_RejectsOutsideSquareCorners(t *testing.T) {
	// (1,1) maps to a corner of the square and must be rejected; (0.75,0.5) maps to (0.5,0)
	sampler := NewSequenceSampler(1, 1, 0.75, 0.5)
	p := RandomInUnitDisk(sampler)
	if p != NewVec3(0.5, 0, 0) {
		t.Errorf("Expected (0.5,0,0), got %v", p)
	}
}

func TestRandomUnitVector(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(42)))

	var sum Vec3
	const n = 20000
	for i := 0; i < n; i++ {
		v := RandomUnitVector(sampler)
		if math.Abs(v.Length()-1) > 1e-9 {
			t.Fatalf("Expected unit vector, got length %f", v.Length())
		}
		sum = sum.Add(v)
	}

	// Uniform directions average out to roughly zero
	mean := sum.Divide(n)
	if mean.Length() > 0.05 {
		t.Errorf("Unit vectors look biased, mean = %v", mean)
	}
}

func TestRandomUnitVector_RejectsDegenerateCandidates(t *testing.T) {
	// First candidate is the exact origin (0.5 maps to 0), which must be rejected
	sampler := NewSequenceSampler(0.5, 0.5, 0.5, 1, 0.5, 0.5)
	v := RandomUnitVector(sampler)
	if !vecNear(v, NewVec3(1, 0, 0), tolerance) {
		t.Errorf("Expected (1,0,0), got %v", v)
	}
}

func TestRandomOnHemisphere(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(7)))
	normal := NewVec3(0, 0, 1)

	for i := 0; i < 1000; i++ {
		v := RandomOnHemisphere(sampler, normal)
		if v.Dot(normal) < 0 {
			t.Fatalf("Hemisphere sample points below the surface: %v", v)
		}
	}
}

func TestRandomVec3Range(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(3)))
	bounds := NewInterval(0.5, 1)

	for i := 0; i < 1000; i++ {
		v := RandomVec3Range(sampler, 0.5, 1)
		for _, c := range []float64{v.X, v.Y, v.Z} {
			if !bounds.Contains(c) || c == 1 {
				t.Fatalf("Component %f outside [0.5, 1)", c)
			}
		}
	}
}

func TestSequenceSampler_Wraps(t *testing.T) {
	s := NewSequenceSampler(0.1, 0.2)
	got := []float64{s.Get1D(), s.Get1D(), s.Get1D()}
	expected := []float64{0.1, 0.2, 0.1}
	for i := range got {
		if got[i] != expected[i] {
			t.Errorf("Value %d: expected %f, got %f", i, expected[i], got[i])
		}
	}
}
