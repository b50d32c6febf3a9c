package compose

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"strings"

	"github.com/chai2010/webp"
)

// Format is an output raster encoding
type Format string

// Output formats
const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	WebP Format = "webp"
)

// ParseFormat maps a format name or file extension onto a Format
func ParseFormat(s string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".") {
	case "", "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "webp":
		return WebP, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, s)
	}
}

// Extension returns the file extension for the format, without a dot
func (f Format) Extension() string {
	if f == JPEG {
		return "jpg"
	}
	return string(f)
}

// ContentType returns the MIME type for the format
func (f Format) ContentType() string {
	return "image/" + string(f)
}

// Encode writes img in the given format. quality is in [0,1] and applies
// to the lossy formats.
func Encode(w io.Writer, img image.Image, format Format, quality float64) error {
	q := int(math.Round(min(max(quality, 0), 1) * 100))

	switch format {
	case PNG, "":
		return png.Encode(w, img)
	case JPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: max(q, 1)})
	case WebP:
		return webp.Encode(w, img, &webp.Options{Quality: float32(q)})
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}
