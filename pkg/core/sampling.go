package core

import (
	"math"
	"math/rand"
)

// minUnitVectorLengthSquared rejects candidates so short that normalizing them would blow up
const minUnitVectorLengthSquared = 1e-160

// Vec2 represents a 2D sample
type Vec2 struct {
	X, Y float64
}

// NewVec2 creates a new Vec2
func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
	Get3D() Vec3
}

// RandomSampler wraps a standard Go random generator.
// It is not safe for concurrent use; give each goroutine its own.
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with its own generator seeded with seed
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// Get3D returns three random float64 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float64(), r.random.Float64(), r.random.Float64())
}

// RandomFloat returns a random value in [min, max)
func RandomFloat(sampler Sampler, min, max float64) float64 {
	return min + (max-min)*sampler.Get1D()
}

// RandomVec3 returns a vector with every component in [0, 1)
func RandomVec3(sampler Sampler) Vec3 {
	return sampler.Get3D()
}

// RandomVec3Range returns a vector with every component in [min, max)
func RandomVec3Range(sampler Sampler, min, max float64) Vec3 {
	p := sampler.Get3D()
	return NewVec3(
		min+(max-min)*p.X,
		min+(max-min)*p.Y,
		min+(max-min)*p.Z,
	)
}

// RandomUnitVector returns a uniformly distributed direction on the unit sphere
func RandomUnitVector(sampler Sampler) Vec3 {
	for {
		// Generate random point in [-1,1]³ cube and keep it if inside the unit sphere
		p := RandomVec3Range(sampler, -1, 1)
		lensq := p.LengthSquared()
		if minUnitVectorLengthSquared < lensq && lensq <= 1 {
			return p.Divide(math.Sqrt(lensq))
		}
	}
}

// RandomOnHemisphere returns a unit vector in the hemisphere around normal
func RandomOnHemisphere(sampler Sampler, normal Vec3) Vec3 {
	onUnitSphere := RandomUnitVector(sampler)
	if onUnitSphere.Dot(normal) > 0 {
		return onUnitSphere
	}
	return onUnitSphere.Negate()
}

// RandomInUnitDisk generates a random point in a unit disk (for depth of field)
func RandomInUnitDisk(sampler Sampler) Vec3 {
	for {
		// Generate random point in [-1,1] x [-1,1] square
		s := sampler.Get2D()
		p := NewVec3(2*s.X-1, 2*s.Y-1, 0)
		// Accept if inside unit disk
		if p.LengthSquared() < 1 {
			return p
		}
	}
}

// SequenceSampler replays a fixed list of values in order, wrapping around at the end.
// It makes branch choices in sampling code reproducible and easy to script.
type SequenceSampler struct {
	values []float64
	next   int
}

// NewSequenceSampler creates a sampler that returns values in order
func NewSequenceSampler(values ...float64) *SequenceSampler {
	if len(values) == 0 {
		values = []float64{0}
	}
	return &SequenceSampler{values: values}
}

// Get1D returns the next scripted value
func (s *SequenceSampler) Get1D() float64 {
	v := s.values[s.next]
	s.next = (s.next + 1) % len(s.values)
	return v
}

// Get2D returns the next two scripted values
func (s *SequenceSampler) Get2D() Vec2 {
	x := s.Get1D()
	return NewVec2(x, s.Get1D())
}

// Get3D returns the next three scripted values
func (s *SequenceSampler) Get3D() Vec3 {
	x := s.Get1D()
	y := s.Get1D()
	return NewVec3(x, y, s.Get1D())
}
