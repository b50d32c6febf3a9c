package compose

import "strings"

// Layout constants
const (
	LineHeight = 30
	Padding    = 20
	// WrapRatio is the share of the canvas width a line may occupy
	WrapRatio = 0.8
)

// TextLayout is a caption wrapped for a canvas
type TextLayout struct {
	Lines        []string
	LineHeight   float64
	TotalHeight  float64
	MaxLineWidth float64
	Padding      float64
}

// Scale returns the factor that fits the longer side of a w x h image
// within maxSide. Images already within maxSide keep a factor of 1.
func Scale(w, h, maxSide int) float64 {
	longest := max(w, h)
	if maxSide <= 0 || longest <= maxSide {
		return 1
	}
	return float64(maxSide) / float64(longest)
}

// CanvasSize returns the output canvas size for a source image. Scaled
// dimensions are truncated to whole pixels.
func CanvasSize(w, h, maxSide int) (int, int) {
	s := Scale(w, h, maxSide)
	cw := int(float64(w) * s)
	ch := int(float64(h) * s)
	return cw, ch
}

// Layout greedily wraps text into lines no wider than WrapRatio of
// canvasWidth. A word wider than the limit is placed alone on its own
// line. measure returns the rendered width of a string.
func Layout(text string, canvasWidth float64, measure func(string) float64) TextLayout {
	limit := canvasWidth * WrapRatio

	var lines []string
	current := ""
	for _, word := range strings.Fields(text) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}

		if measure(candidate) <= limit {
			current = candidate
			continue
		}

		if current != "" {
			lines = append(lines, current)
			current = word
		} else {
			lines = append(lines, word)
		}
	}
	if current != "" {
		lines = append(lines, current)
	}

	var widest float64
	for _, line := range lines {
		widest = max(widest, measure(line))
	}

	return TextLayout{
		Lines:        lines,
		LineHeight:   LineHeight,
		TotalHeight:  float64(len(lines) * LineHeight),
		MaxLineWidth: widest,
		Padding:      Padding,
	}
}
