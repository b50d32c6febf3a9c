// Package features computes aggregate colour statistics over image regions.
//
// The statistics feed the pixel-based emotion heuristic used when no face
// expression model is available. All functions are pure.
package features

import (
	"errors"
	"image"

	"github.com/disintegration/imaging"
)

// MinRegionPixels is the smallest region ExtractRegion will analyse before
// falling back to the whole image.
const MinRegionPixels = 16

// contrastDelta is the brightness deviation (0-255 scale) that counts a
// pixel as contrasting with the region mean.
const contrastDelta = 20

// ErrEmptyRegion is returned when there are no pixels to analyse.
var ErrEmptyRegion = errors.New("features: empty region")

// Features holds colour statistics for a pixel region
type Features struct {
	MeanR      float64 `json:"mean_r"`
	MeanG      float64 `json:"mean_g"`
	MeanB      float64 `json:"mean_b"`
	Brightness float64 `json:"brightness"`
	Warmth     float64 `json:"warmth"`
	Saturation float64 `json:"saturation"`
	Contrast   float64 `json:"contrast"`
	Pixels     int     `json:"pixels"`
}

// Extract computes Features over a packed RGBA buffer (4 bytes per pixel).
// Trailing bytes that do not form a whole pixel are ignored.
func Extract(pix []uint8) Features {
	n := len(pix) / 4
	if n == 0 {
		return Features{}
	}

	var r, g, b, brightness float64
	for i := 0; i < n*4; i += 4 {
		pr, pg, pb := float64(pix[i]), float64(pix[i+1]), float64(pix[i+2])
		r += pr
		g += pg
		b += pb
		brightness += (pr + pg + pb) / 3
	}

	count := float64(n)
	r /= count
	g /= count
	b /= count
	brightness /= count

	// Bright and dark outliers are counted separately, then summed
	var brightPixels, darkPixels int
	for i := 0; i < n*4; i += 4 {
		pb := (float64(pix[i]) + float64(pix[i+1]) + float64(pix[i+2])) / 3
		if pb > brightness+contrastDelta {
			brightPixels++
		}
		if pb < brightness-contrastDelta {
			darkPixels++
		}
	}

	return Features{
		MeanR:      r,
		MeanG:      g,
		MeanB:      b,
		Brightness: brightness,
		Warmth:     (r - b) / 255,
		Saturation: max(r, g, b) - min(r, g, b),
		Contrast:   float64(brightPixels+darkPixels) / count,
		Pixels:     n,
	}
}

// FaceRegion estimates where a face usually sits in a photo: the
// central-upper block starting at 25% width and 10% height, spanning half
// the width and 40% of the height. No actual face localisation happens.
func FaceRegion(bounds image.Rectangle) image.Rectangle {
	w, h := bounds.Dx(), bounds.Dy()
	x := bounds.Min.X + int(float64(w)*0.25)
	y := bounds.Min.Y + int(float64(h)*0.1)
	return image.Rect(x, y, x+int(float64(w)*0.5), y+int(float64(h)*0.4))
}

// ExtractRegion extracts Features from a region of img. The region is
// clamped to the image bounds; when fewer than MinRegionPixels remain the
// whole image is analysed instead.
func ExtractRegion(img image.Image, region image.Rectangle) (Features, error) {
	if img == nil {
		return Features{}, ErrEmptyRegion
	}
	bounds := img.Bounds()
	if bounds.Empty() {
		return Features{}, ErrEmptyRegion
	}

	region = region.Intersect(bounds)
	if region.Dx()*region.Dy() < MinRegionPixels {
		region = bounds
	}

	// imaging.Crop yields non-premultiplied pixels, matching what a canvas
	// getImageData call would report
	cropped := imaging.Crop(img, region)
	return Extract(packed(cropped)), nil
}

// packed returns the NRGBA pixels without row padding
func packed(img *image.NRGBA) []uint8 {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if img.Stride == w*4 {
		return img.Pix[:w*h*4]
	}
	out := make([]uint8, 0, w*h*4)
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		out = append(out, row...)
	}
	return out
}
