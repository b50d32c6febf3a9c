package compose

import (
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

// strokeSteps is how many offset copies approximate a text outline
const strokeSteps = 16

var fallbackColor = color.NRGBA{0x80, 0x80, 0x80, 0xff}

// parseHexColor parses #RGB or #RRGGBB. Malformed input yields gray.
func parseHexColor(s string) color.NRGBA {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return fallbackColor
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fallbackColor
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

func withAlpha(c color.NRGBA, a uint8) color.NRGBA {
	c.A = a
	return c
}

// alpha converts a 0-1 opacity to an 8-bit alpha
func alpha(a float64) uint8 {
	return uint8(math.Round(min(max(a, 0), 1) * 255))
}

func rectOf(x, y, w, h float64) image.Rectangle {
	return image.Rect(
		int(math.Floor(x)), int(math.Floor(y)),
		int(math.Ceil(x+w)), int(math.Ceil(y+h)),
	)
}

// blurLayer paints onto a transparent layer covering area, blurs it and
// composites the result onto dc shifted by (dx, dy). blur follows the
// canvas shadowBlur convention, where the gaussian sigma is half of it.
func blurLayer(dc *gg.Context, area image.Rectangle, blur float64, dx, dy int, paint func(*gg.Context)) {
	sigma := blur / 2
	r := area.Inset(-int(math.Ceil(sigma*3)) - 1)
	if r.Empty() {
		return
	}

	layer := gg.NewContext(r.Dx(), r.Dy())
	layer.Translate(-float64(r.Min.X), -float64(r.Min.Y))
	paint(layer)

	var out image.Image = layer.Image()
	if sigma > 0 {
		out = imaging.Blur(out, sigma)
	}
	dc.DrawImage(out, r.Min.X+dx, r.Min.Y+dy)
}

// textPaint describes how a block of lines is drawn
type textPaint struct {
	fill        color.Color
	stroke      color.Color
	strokeWidth float64
}

// drawLines draws lines centered on x, the first baseline at y
func drawLines(dc *gg.Context, face font.Face, lines []string, x, y, lineHeight float64, p textPaint) {
	dc.SetFontFace(face)
	for i, line := range lines {
		ly := y + float64(i)*lineHeight
		if p.stroke != nil && p.strokeWidth > 0 {
			strokeText(dc, line, x, ly, p.strokeWidth, p.stroke)
		}
		dc.SetColor(p.fill)
		dc.DrawStringAnchored(line, x, ly, 0.5, 0)
	}
}

// strokeText outlines s by drawing copies around a circle of half the
// stroke width
func strokeText(dc *gg.Context, s string, x, y, width float64, c color.Color) {
	r := width / 2
	dc.SetColor(c)
	for i := 0; i < strokeSteps; i++ {
		a := 2 * math.Pi * float64(i) / strokeSteps
		dc.DrawStringAnchored(s, x+r*math.Cos(a), y+r*math.Sin(a), 0.5, 0)
	}
}
