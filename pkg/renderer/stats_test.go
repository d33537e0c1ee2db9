package renderer

import (
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestPixelStatsAverage(t *testing.T) {
	var ps PixelStats

	if ps.GetColor() != (core.Vec3{}) {
		t.Errorf("Pixel without samples should be black, got %v", ps.GetColor())
	}

	ps.AddSample(core.NewVec3(1, 0, 0.25))
	ps.AddSample(core.NewVec3(0, 0, 0.25))
	ps.AddSample(core.NewVec3(0, 1, 0.25))
	ps.AddSample(core.NewVec3(0, 0, 0.25))

	if ps.SampleCount != 4 {
		t.Fatalf("Expected 4 samples, got %d", ps.SampleCount)
	}
	if got := ps.GetColor(); got != core.NewVec3(0.25, 0.25, 0.25) {
		t.Errorf("Expected average (0.25, 0.25, 0.25), got %v", got)
	}
	if got := ps.GammaColor(); got != core.NewVec3(0.5, 0.5, 0.5) {
		t.Errorf("Expected gamma color (0.5, 0.5, 0.5), got %v", got)
	}
}

func TestRenderStatsAccumulate(t *testing.T) {
	stats := newRenderStats(4, 10)
	for _, samples := range []int{10, 10, 4, 8} {
		stats.addPixel(samples)
	}
	stats.finalize()

	if stats.TotalSamples != 32 {
		t.Errorf("Expected 32 samples, got %d", stats.TotalSamples)
	}
	if stats.MinSamples != 4 || stats.MaxSamplesUsed != 10 {
		t.Errorf("Expected min 4 and max 10, got %d and %d", stats.MinSamples, stats.MaxSamplesUsed)
	}
	if stats.AverageSamples != 8 {
		t.Errorf("Expected average 8, got %f", stats.AverageSamples)
	}
}

func TestPixelBufferFromStats(t *testing.T) {
	grid := newPixelStatsGrid(3, 2)
	grid[1][2].AddSample(core.NewVec3(0.25, 1, -0.5))

	buf := pixelBufferFromStats(grid)

	if buf.Width() != 3 || buf.Height() != 2 {
		t.Fatalf("Expected 3x2 buffer, got %dx%d", buf.Width(), buf.Height())
	}
	if got := buf.At(2, 1); got != core.NewVec3(0.5, 1, 0) {
		t.Errorf("Expected gamma-encoded (0.5, 1, 0), got %v", got)
	}
	if got := buf.At(0, 0); got != (core.Vec3{}) {
		t.Errorf("Unsampled pixel should be black, got %v", got)
	}

	if empty := NewPixelBuffer(0, 0); empty.Width() != 0 || empty.Height() != 0 {
		t.Errorf("Expected empty buffer, got %dx%d", empty.Width(), empty.Height())
	}
}
