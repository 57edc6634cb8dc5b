// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
)

// TextureStagingData holds RGBA pixel data for a texture pending GPU upload.
type TextureStagingData struct {
	// Pixels is the RGBA pixel data, 4 bytes per pixel, row-major.
	Pixels []byte
	// Width is the width of the texture in pixels.
	Width uint32
	// Height is the height of the texture in pixels.
	Height uint32
}

// ImageSource names an image to decode: either embedded bytes or a file on disk.
type ImageSource struct {
	// Name identifies the image in logs and texture labels.
	Name string

	// Path is the file path of the image. Used when Data is empty.
	Path string

	// Data holds the encoded image bytes (PNG or JPEG).
	Data []byte
}

// Decode decodes the image source into an RGBA image.
// Uses either embedded Data bytes or loads from Path on disk.
// Supports PNG and JPEG formats.
// Reference: https://pkg.go.dev/image
//
// Returns:
//   - *image.RGBA: the decoded image
//   - error: error if decoding fails
func (s *ImageSource) Decode() (*image.RGBA, error) {
	if s == nil {
		return nil, fmt.Errorf("image source is nil")
	}

	var img image.Image
	var err error

	if len(s.Data) > 0 {
		img, _, err = image.Decode(bytes.NewReader(s.Data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode embedded image %s: %w", s.Name, err)
		}
	} else if s.Path != "" {
		file, fileErr := os.Open(s.Path)
		if fileErr != nil {
			return nil, fmt.Errorf("failed to open image file %s: %w", s.Path, fileErr)
		}
		defer file.Close()

		img, _, err = image.Decode(file)
		if err != nil {
			return nil, fmt.Errorf("failed to decode image file %s: %w", s.Path, err)
		}
	} else {
		return nil, fmt.Errorf("image source %s has neither data nor path", s.Name)
	}

	if rgba, ok := img.(*image.RGBA); ok {
		return rgba, nil
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	return rgba, nil
}

// StagingFromRGBA wraps an RGBA image as texture staging data. The pixel slice is shared.
//
// Parameters:
//   - img: the source image
//
// Returns:
//   - TextureStagingData: the staging data
func StagingFromRGBA(img *image.RGBA) TextureStagingData {
	b := img.Bounds()
	pixels := img.Pix
	if img.Stride != 4*b.Dx() {
		pixels = make([]byte, 0, 4*b.Dx()*b.Dy())
		for y := 0; y < b.Dy(); y++ {
			row := img.Pix[y*img.Stride : y*img.Stride+4*b.Dx()]
			pixels = append(pixels, row...)
		}
	}
	return TextureStagingData{
		Pixels: pixels,
		Width:  uint32(b.Dx()),
		Height: uint32(b.Dy()),
	}
}
