package renderer

import "github.com/df07/go-pathtracer/pkg/core"

// PixelBuffer holds gamma-encoded colors indexed [row][column].
// Channels are normally in [0, 1]; sinks clamp before quantizing.
type PixelBuffer [][]core.Vec3

// NewPixelBuffer allocates a black buffer of the given size
func NewPixelBuffer(width, height int) PixelBuffer {
	buf := make(PixelBuffer, height)
	for y := range buf {
		buf[y] = make([]core.Vec3, width)
	}
	return buf
}

// Width returns the number of columns
func (b PixelBuffer) Width() int {
	if len(b) == 0 {
		return 0
	}
	return len(b[0])
}

// Height returns the number of rows
func (b PixelBuffer) Height() int {
	return len(b)
}

// At returns the color at column x, row y
func (b PixelBuffer) At(x, y int) core.Vec3 {
	return b[y][x]
}

func pixelBufferFromStats(pixelStats [][]PixelStats) PixelBuffer {
	height := len(pixelStats)
	width := 0
	if height > 0 {
		width = len(pixelStats[0])
	}

	buf := NewPixelBuffer(width, height)
	for y := range pixelStats {
		for x := range pixelStats[y] {
			buf[y][x] = pixelStats[y][x].GammaColor()
		}
	}
	return buf
}
