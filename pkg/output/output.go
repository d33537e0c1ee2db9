// Package output encodes rendered pixel buffers as image files.
package output

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// ErrUnsupportedFormat is returned for file extensions with no encoder
var ErrUnsupportedFormat = errors.New("unsupported output format")

// intensity keeps quantized channels below 256
var intensity = core.NewInterval(0.0, 0.9999)

// ToByte quantizes a gamma-encoded channel to 0..255
func ToByte(v float64) uint8 {
	return uint8(255.999 * intensity.Clamp(v))
}

// ToRGBA converts a pixel buffer to an opaque RGBA image
func ToRGBA(buf renderer.PixelBuffer) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, buf.Width(), buf.Height()))
	for y := 0; y < buf.Height(); y++ {
		for x := 0; x < buf.Width(); x++ {
			c := buf.At(x, y)
			img.SetRGBA(x, y, color.RGBA{R: ToByte(c.X), G: ToByte(c.Y), B: ToByte(c.Z), A: 255})
		}
	}
	return img
}

// WritePPM writes buf as a plain-text P3 image, one pixel per line, top row first
func WritePPM(w io.Writer, buf renderer.PixelBuffer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", buf.Width(), buf.Height()); err != nil {
		return err
	}
	for y := 0; y < buf.Height(); y++ {
		for x := 0; x < buf.Width(); x++ {
			c := buf.At(x, y)
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", ToByte(c.X), ToByte(c.Y), ToByte(c.Z)); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// WritePNG writes buf as a PNG image
func WritePNG(w io.Writer, buf renderer.PixelBuffer) error {
	return png.Encode(w, ToRGBA(buf))
}

// WriteBMP writes buf as a BMP image
func WriteBMP(w io.Writer, buf renderer.PixelBuffer) error {
	return bmp.Encode(w, ToRGBA(buf))
}

// Encoder writes a pixel buffer in one image format
type Encoder func(w io.Writer, buf renderer.PixelBuffer) error

var encoders = map[string]Encoder{
	".ppm": WritePPM,
	".png": WritePNG,
	".bmp": WriteBMP,
}

// EncoderFor returns the encoder matching the extension of path
func EncoderFor(path string) (Encoder, error) {
	ext := strings.ToLower(filepath.Ext(path))
	enc, ok := encoders[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q (use .ppm, .png or .bmp)", ErrUnsupportedFormat, ext)
	}
	return enc, nil
}

// WriteFile encodes buf into path, choosing the format from its extension.
// Parent directories are created as needed.
func WriteFile(path string, buf renderer.PixelBuffer) (err error) {
	enc, err := EncoderFor(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("failed to close output file: %w", closeErr)
		}
	}()

	if err := enc(file, buf); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}
