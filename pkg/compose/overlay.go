package compose

import (
	"fmt"
	"image/color"
	"math"

	"github.com/fogleman/gg"

	"github.com/menta2k/moodmeme/pkg/emotion"
)

// Badge geometry
const (
	badgeWidth  = 180
	badgeHeight = 50
	badgeMargin = 15
)

// DefaultWatermark is drawn when watermarking is enabled without a text
const DefaultWatermark = "MoodMeme.ai"

// drawBadge draws the emotion badge in the bottom-right corner
func drawBadge(dc *gg.Context, faces *faceSet, emo emotion.Result) {
	x := float64(dc.Width() - badgeWidth - badgeMargin)
	y := float64(dc.Height() - badgeHeight - badgeMargin)

	grad := gg.NewLinearGradient(x, y, x, y+badgeHeight)
	grad.AddColorStop(0, color.NRGBA{0, 0, 0, alpha(0.8)})
	grad.AddColorStop(1, color.NRGBA{0, 0, 0, alpha(0.6)})
	dc.DrawRoundedRectangle(x, y, badgeWidth, badgeHeight, 8)
	dc.SetFillStyle(grad)
	dc.Fill()

	// Go fonts carry no emoji glyphs, so the icon sits on a disc of the
	// emotion color
	dc.DrawCircle(x+20, y+24, 10)
	dc.SetColor(parseHexColor(emo.Color))
	dc.Fill()
	if icon := renderable(faces.glyphs, emo.Icon); icon != "" {
		dc.SetFontFace(faces.icon)
		dc.SetColor(white)
		dc.DrawString(icon, x+10, y+30)
	}

	dc.SetFontFace(faces.label)
	dc.SetColor(white)
	dc.DrawString(emo.Description, x+40, y+20)

	dc.SetFontFace(faces.detail)
	dc.SetColor(color.NRGBA{0xcc, 0xcc, 0xcc, 0xff})
	dc.DrawString(fmt.Sprintf("%d%% sure", int(math.Round(emo.Confidence*100))), x+40, y+35)
}

// drawWatermark draws text in the bottom-left corner
func drawWatermark(dc *gg.Context, faces *faceSet, text string) {
	dc.SetFontFace(faces.stamp)
	dc.SetColor(color.NRGBA{255, 255, 255, alpha(0.7)})
	dc.DrawString(text, 15, float64(dc.Height()-15))
}
