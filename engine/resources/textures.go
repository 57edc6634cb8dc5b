package resources

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/perlin"
)

// Material texture names.
const (
	MaterialStone  = "stone"
	MaterialWood   = "wood"
	MaterialMarble = "marble"
	MaterialWhite  = "white"
)

// noiseField samples seeded Perlin noise over a size x size grid, remapped to [0, 1].
func noiseField(size int, seed int64, frequency float64) []float64 {
	p := perlin.NewPerlin(2, 2, 3, seed)
	field := make([]float64, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			n := p.Noise2D(float64(x)/float64(size)*frequency, float64(y)/float64(size)*frequency)
			field[y*size+x] = math.Max(0, math.Min(1, 0.5+0.5*n))
		}
	}
	return field
}

func gray(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, v*255)))
}

// GenerateMaterial renders a procedural material texture.
//
// Parameters:
//   - name: one of MaterialStone, MaterialWood, MaterialMarble or MaterialWhite
//   - size: the texture edge length in pixels
//   - seed: the noise seed
//
// Returns:
//   - *image.RGBA: the texture
//   - error: an error for unknown material names
func GenerateMaterial(name string, size int, seed int64) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	switch name {
	case MaterialWhite:
		for i := range img.Pix {
			img.Pix[i] = 0xFF
		}
		return img, nil

	case MaterialStone:
		coarse := noiseField(size, seed, 6)
		fine := noiseField(size, seed+1, 24)
		for i := range coarse {
			v := 0.45 + 0.35*coarse[i] + 0.2*fine[i]
			img.Pix[i*4+0] = gray(v)
			img.Pix[i*4+1] = gray(v * 0.97)
			img.Pix[i*4+2] = gray(v * 0.92)
			img.Pix[i*4+3] = 0xFF
		}
		return adjust.Contrast(blur.Gaussian(img, 1), 0.2), nil

	case MaterialWood:
		warp := noiseField(size, seed, 3)
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				fx := float64(x)/float64(size) - 0.5
				fy := float64(y)/float64(size) - 0.5
				rings := math.Sqrt(fx*fx+fy*fy)*24 + 4*warp[y*size+x]
				grain := 0.5 + 0.5*math.Sin(rings*2*math.Pi)
				img.SetRGBA(x, y, color.RGBA{
					R: gray(0.45 + 0.25*grain),
					G: gray(0.28 + 0.15*grain),
					B: gray(0.12 + 0.08*grain),
					A: 0xFF,
				})
			}
		}
		return blur.Gaussian(img, 0.8), nil

	case MaterialMarble:
		turbulence := noiseField(size, seed, 5)
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				u := float64(x) / float64(size)
				vein := math.Abs(math.Sin((u*4 + 3*turbulence[y*size+x]) * math.Pi))
				v := 0.75 + 0.25*math.Pow(vein, 0.3)
				img.SetRGBA(x, y, color.RGBA{R: gray(v), G: gray(v), B: gray(v * 1.02), A: 0xFF})
			}
		}
		return adjust.Apply(img, func(c color.RGBA) color.RGBA {
			c.B = uint8(math.Min(255, float64(c.B)+6))
			return c
		}), nil
	}
	return nil, fmt.Errorf("unknown material %q", name)
}

// builtinImageNames lists the target images generated when no image directory is configured.
var builtinImageNames = []string{"sunrise", "rings", "aurora", "checker"}

// GenerateTargetImage renders one of the built-in target images.
//
// Parameters:
//   - name: one of the built-in image names
//   - size: the image edge length in pixels
//   - seed: the noise seed
//
// Returns:
//   - *image.RGBA: the image
//   - error: an error for unknown image names
func GenerateTargetImage(name string, size int, seed int64) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	s := float64(size)

	switch name {
	case "sunrise":
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				fy := float64(y) / s
				dx, dy := float64(x)/s-0.5, fy-0.6
				sun := math.Max(0, 1-math.Sqrt(dx*dx+dy*dy)*6)
				img.SetRGBA(x, y, color.RGBA{
					R: gray(0.3 + 0.7*fy + sun),
					G: gray(0.2 + 0.4*fy + 0.8*sun),
					B: gray(0.6 - 0.4*fy + 0.3*sun),
					A: 0xFF,
				})
			}
		}
		return blur.Gaussian(img, 2), nil

	case "rings":
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				dx, dy := float64(x)/s-0.5, float64(y)/s-0.5
				r := math.Sqrt(dx*dx + dy*dy)
				band := 0.5 + 0.5*math.Cos(r*40)
				img.SetRGBA(x, y, color.RGBA{R: gray(band), G: gray(0.3 + 0.5*band*(1-r)), B: gray(1 - band), A: 0xFF})
			}
		}
		return img, nil

	case "aurora":
		field := noiseField(size, seed, 4)
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				n := field[y*size+x]
				fy := float64(y) / s
				img.SetRGBA(x, y, color.RGBA{R: gray(0.1 * n), G: gray(n * (1 - fy)), B: gray(0.3 + 0.5*n*fy), A: 0xFF})
			}
		}
		return adjust.Saturation(blur.Gaussian(img, 3), 0.4), nil

	case "checker":
		cell := max(size/8, 1)
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				c := color.RGBA{R: 0xE8, G: 0xD2, B: 0x6A, A: 0xFF}
				if (x/cell+y/cell)%2 == 1 {
					c = color.RGBA{R: 0x2A, G: 0x4B, B: 0x8C, A: 0xFF}
				}
				img.SetRGBA(x, y, c)
			}
		}
		return img, nil
	}
	return nil, fmt.Errorf("unknown built-in image %q", name)
}
