package compose

import (
	"image/color"
	"math"
	"strings"

	"github.com/fogleman/gg"
)

// Style is a caption container design
type Style string

// Caption container styles
const (
	Bubble Style = "bubble"
	Comic  Style = "comic"
	Modern Style = "modern"
	Neon   Style = "neon"
	Retro  Style = "retro"
)

// Styles returns every container style
func Styles() []Style {
	return []Style{Bubble, Comic, Modern, Neon, Retro}
}

// ParseStyle maps a name onto a Style. Unknown names render as bubble.
func ParseStyle(s string) Style {
	style := Style(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := renderers[style]; ok {
		return style
	}
	return Bubble
}

// frame is what a container renderer draws from
type frame struct {
	layout TextLayout
	accent color.NRGBA
	faces  *faceSet
	pick   func() float64
}

type renderFunc func(dc *gg.Context, f *frame)

var renderers = map[Style]renderFunc{
	Bubble: drawBubble,
	Comic:  drawComic,
	Modern: drawModern,
	Neon:   drawNeon,
	Retro:  drawRetro,
}

var retroPalette = []string{"#FF6B9D", "#45B7D1", "#96CEB4", "#FFEAA7", "#DDA0DD"}

var (
	black = color.NRGBA{0, 0, 0, 0xff}
	white = color.NRGBA{0xff, 0xff, 0xff, 0xff}
)

// captionBox is the container rectangle: centered, near the top, sized
// to the wrapped text plus padding
func captionBox(dc *gg.Context, l TextLayout) (x, y, w, h float64) {
	w = l.MaxLineWidth + l.Padding*2
	h = l.TotalHeight + l.Padding*1.5
	x = (float64(dc.Width()) - w) / 2
	y = min(40, float64(dc.Height())*0.1)
	return x, y, w, h
}

func drawBubble(dc *gg.Context, f *frame) {
	l := f.layout
	x, y, w, h := captionBox(dc, l)
	tipX := x + w/2

	tail := func(c *gg.Context) {
		c.MoveTo(tipX-20, y+h)
		c.LineTo(tipX, y+h+25)
		c.LineTo(tipX+20, y+h)
		c.ClosePath()
	}

	blurLayer(dc, rectOf(x, y, w, h+25), 15, 0, 8, func(c *gg.Context) {
		c.DrawRoundedRectangle(x, y, w, h, 20)
		tail(c)
		c.SetColor(color.NRGBA{0, 0, 0, alpha(0.3)})
		c.Fill()
	})

	grad := gg.NewLinearGradient(x, y, x, y+h)
	grad.AddColorStop(0, color.NRGBA{255, 255, 255, alpha(0.95)})
	grad.AddColorStop(0.5, color.NRGBA{248, 248, 248, alpha(0.95)})
	grad.AddColorStop(1, color.NRGBA{240, 240, 240, alpha(0.95)})

	dc.SetLineWidth(4)
	dc.DrawRoundedRectangle(x, y, w, h, 20)
	dc.SetFillStyle(grad)
	dc.FillPreserve()
	dc.SetStrokeStyle(gg.NewSolidPattern(f.accent))
	dc.Stroke()

	tail(dc)
	dc.SetFillStyle(grad)
	dc.FillPreserve()
	dc.Stroke()

	drawLines(dc, f.faces.text, l.Lines, x+w/2, y+l.Padding, l.LineHeight, textPaint{
		fill:        color.NRGBA{0x33, 0x33, 0x33, 0xff},
		stroke:      color.NRGBA{255, 255, 255, alpha(0.8)},
		strokeWidth: 3,
	})
}

func drawComic(dc *gg.Context, f *frame) {
	l := f.layout
	const spikes = 12

	cx := float64(dc.Width()) / 2
	cy := min(80, float64(dc.Height())*0.15) + l.TotalHeight/2
	radius := max((l.MaxLineWidth+60)/2, (l.TotalHeight+40)/2)

	for i := 0; i < spikes*2; i++ {
		r := radius * 0.8
		if i%2 == 0 {
			r = radius * 1.2
		}
		angle := float64(i) * math.Pi / spikes
		px := cx + math.Cos(angle)*r
		py := cy + math.Sin(angle)*r*0.7
		if i == 0 {
			dc.MoveTo(px, py)
		} else {
			dc.LineTo(px, py)
		}
	}
	dc.ClosePath()
	dc.SetColor(color.NRGBA{0xff, 0xff, 0x00, 0xff})
	dc.FillPreserve()
	dc.SetColor(black)
	dc.SetLineWidth(6)
	dc.Stroke()

	upper := make([]string, len(l.Lines))
	for i, line := range l.Lines {
		upper[i] = strings.ToUpper(line)
	}
	drawLines(dc, f.faces.comic, upper, cx, cy-l.TotalHeight/2+10, l.LineHeight, textPaint{
		fill:        black,
		stroke:      white,
		strokeWidth: 2,
	})
}

func drawModern(dc *gg.Context, f *frame) {
	l := f.layout
	x, y, w, h := captionBox(dc, l)

	// halo
	dc.DrawRoundedRectangle(x-2, y-2, w+4, h+4, 30)
	dc.SetColor(color.NRGBA{255, 255, 255, alpha(0.1)})
	dc.Fill()

	grad := gg.NewLinearGradient(x, y, x+w, y+h)
	grad.AddColorStop(0, withAlpha(f.accent, 0x90))
	grad.AddColorStop(0.5, withAlpha(f.accent, 0xB0))
	grad.AddColorStop(1, withAlpha(f.accent, 0x70))

	dc.DrawRoundedRectangle(x, y, w, h, 25)
	dc.SetFillStyle(grad)
	dc.FillPreserve()
	dc.SetStrokeStyle(gg.NewSolidPattern(color.NRGBA{255, 255, 255, alpha(0.3)}))
	dc.SetLineWidth(1)
	dc.Stroke()

	textX, textY := x+w/2, y+l.Padding
	blurLayer(dc, rectOf(x, y, w, h), 3, 0, 1, func(c *gg.Context) {
		drawLines(c, f.faces.text, l.Lines, textX, textY, l.LineHeight, textPaint{
			fill: color.NRGBA{0, 0, 0, alpha(0.3)},
		})
	})
	drawLines(dc, f.faces.text, l.Lines, textX, textY, l.LineHeight, textPaint{fill: white})
}

func drawNeon(dc *gg.Context, f *frame) {
	l := f.layout
	x, y, w, h := captionBox(dc, l)

	glow := func(c *gg.Context) {
		c.DrawRoundedRectangle(x, y, w, h, 15)
		c.SetColor(withAlpha(f.accent, alpha(0.8)))
		c.FillPreserve()
		c.SetColor(f.accent)
		c.SetLineWidth(3)
		c.Stroke()
	}
	blurLayer(dc, rectOf(x, y, w, h), 20, 0, 0, glow)

	dc.DrawRoundedRectangle(x, y, w, h, 15)
	dc.SetColor(color.NRGBA{0, 0, 0, alpha(0.8)})
	dc.FillPreserve()
	dc.SetColor(f.accent)
	dc.SetLineWidth(3)
	dc.Stroke()

	textX, textY := x+w/2, y+l.Padding
	paint := textPaint{fill: f.accent}
	blurLayer(dc, rectOf(x, y, w, h), 10, 0, 0, func(c *gg.Context) {
		drawLines(c, f.faces.mono, l.Lines, textX, textY, l.LineHeight, paint)
	})
	drawLines(dc, f.faces.mono, l.Lines, textX, textY, l.LineHeight, paint)
}

func drawRetro(dc *gg.Context, f *frame) {
	l := f.layout
	x, y, w, h := captionBox(dc, l)
	top := parseHexColor(retroPalette[paletteIndex(f.pick(), len(retroPalette))])

	// stacked drop shadow, top layer last
	for i := 8; i >= 0; i-- {
		offset := float64(i * 2)
		if i == 0 {
			dc.SetColor(top)
		} else {
			dc.SetColor(color.NRGBA{0, 0, 0, alpha(0.1 * float64(8-i))})
		}
		dc.DrawRoundedRectangle(x+offset, y+offset, w, h, 10)
		dc.Fill()
	}

	dc.DrawRoundedRectangle(x, y, w, h, 10)
	dc.SetColor(black)
	dc.SetLineWidth(4)
	dc.Stroke()

	drawLines(dc, f.faces.casual, l.Lines, x+w/2, y+l.Padding, l.LineHeight, textPaint{fill: black})
}

func paletteIndex(u float64, n int) int {
	i := int(u * float64(n))
	return min(max(i, 0), n-1)
}
