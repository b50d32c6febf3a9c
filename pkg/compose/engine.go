// Package compose renders a captioned meme on top of a photo.
//
// The engine scales the photo, wraps the caption, draws one of five caption
// containers, adds the emotion badge and an optional watermark, then
// encodes the canvas.
package compose

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math/rand/v2"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	_ "golang.org/x/image/webp"

	"github.com/menta2k/moodmeme/pkg/emotion"
)

// DefaultMaxWidth is the default bound on the longer canvas side
const DefaultMaxWidth = 1200

var (
	// ErrDecode is returned when the source image cannot be decoded
	ErrDecode = errors.New("compose: failed to decode image")
	// ErrUnsupportedFormat is returned for unknown output formats
	ErrUnsupportedFormat = errors.New("compose: unsupported output format")
)

// Options controls a single composition
type Options struct {
	MaxWidth     int     `json:"max_width"`
	Quality      float64 `json:"quality"`
	AddWatermark bool    `json:"add_watermark"`
	Watermark    string  `json:"watermark,omitempty"`
	FontSize     float64 `json:"font_size"`
	FontFamily   string  `json:"font_family"`
	Format       Format  `json:"format"`
}

// DefaultOptions returns the default composition options
func DefaultOptions() Options {
	return Options{
		MaxWidth:     DefaultMaxWidth,
		Quality:      0.9,
		AddWatermark: true,
		Watermark:    DefaultWatermark,
		FontSize:     24,
		FontFamily:   DefaultFontFamily,
		Format:       PNG,
	}
}

func (o Options) normalized() Options {
	def := DefaultOptions()
	if o.MaxWidth <= 0 {
		o.MaxWidth = def.MaxWidth
	}
	if o.Quality <= 0 || o.Quality > 1 {
		o.Quality = def.Quality
	}
	if o.FontSize <= 0 {
		o.FontSize = def.FontSize
	}
	if o.FontFamily == "" {
		o.FontFamily = def.FontFamily
	}
	if o.Watermark == "" {
		o.Watermark = def.Watermark
	}
	// Aliases such as jpg or .png become the canonical name; an unknown
	// format is kept so CreateMeme can report it
	if f, err := ParseFormat(string(o.Format)); err == nil {
		o.Format = f
	}
	return o
}

// Result is one rendered meme plus the inputs it was made from
type Result struct {
	Data    []byte
	Image   image.Image
	Width   int
	Height  int
	Emotion emotion.Result
	Text    string
	Style   Style
	Format  Format
}

// Info is the metadata of a Result without the raster
type Info struct {
	Width       int            `json:"width"`
	Height      int            `json:"height"`
	Emotion     emotion.Result `json:"emotion"`
	Text        string         `json:"text"`
	Style       Style          `json:"style"`
	Format      Format         `json:"format"`
	ContentType string         `json:"content_type"`
}

// Info returns the metadata of the result
func (r *Result) Info() Info {
	return Info{
		Width:       r.Width,
		Height:      r.Height,
		Emotion:     r.Emotion,
		Text:        r.Text,
		Style:       r.Style,
		Format:      r.Format,
		ContentType: r.Format.ContentType(),
	}
}

// Engine renders memes. Each call draws on its own canvas, so an Engine
// may be shared between goroutines.
type Engine struct {
	fonts *fontCache
	pick  func() float64
}

// Option configures an Engine
type Option func(*Engine)

// WithRand sets the source of uniform [0,1) values used by the retro
// palette pick
func WithRand(pick func() float64) Option {
	return func(e *Engine) { e.pick = pick }
}

// New creates an Engine
func New(opts ...Option) *Engine {
	e := &Engine{
		fonts: newFontCache(),
		pick:  rand.Float64,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CreateMemeFromBytes decodes data and composes a meme from it
func (e *Engine) CreateMemeFromBytes(data []byte, emo emotion.Result, text string, style Style, opts Options) (*Result, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return e.CreateMeme(img, emo, text, style, opts)
}

// CreateMeme composes a meme from a decoded image
func (e *Engine) CreateMeme(img image.Image, emo emotion.Result, text string, style Style, opts Options) (*Result, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrDecode)
	}
	format, err := ParseFormat(string(opts.Format))
	if err != nil {
		return nil, err
	}
	opts.Format = format
	opts = opts.normalized()
	if _, ok := renderers[style]; !ok {
		style = Bubble
	}

	canvas, err := e.Render(img, emo, text, style, opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := Encode(&buf, canvas, opts.Format, opts.Quality); err != nil {
		return nil, fmt.Errorf("failed to encode meme: %w", err)
	}

	b := canvas.Bounds()
	return &Result{
		Data:    buf.Bytes(),
		Image:   canvas,
		Width:   b.Dx(),
		Height:  b.Dy(),
		Emotion: emo,
		Text:    text,
		Style:   style,
		Format:  opts.Format,
	}, nil
}

// Render draws the meme and returns the canvas without encoding it
func (e *Engine) Render(img image.Image, emo emotion.Result, text string, style Style, opts Options) (image.Image, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrDecode)
	}
	opts = opts.normalized()

	faces, err := e.fonts.faceSet(opts.FontFamily, opts.FontSize)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	w, h := CanvasSize(b.Dx(), b.Dy(), opts.MaxWidth)
	w, h = max(w, 1), max(h, 1)

	var src image.Image
	if w == b.Dx() && h == b.Dy() {
		src = imaging.Clone(img)
	} else {
		src = imaging.Resize(img, w, h, imaging.Lanczos)
	}

	dc := gg.NewContext(w, h)
	dc.DrawImage(src, 0, 0)

	dc.SetFontFace(faces.text)
	measure := func(s string) float64 {
		width, _ := dc.MeasureString(s)
		return width
	}
	layout := Layout(renderable(faces.glyphs, text), float64(w), measure)

	render, ok := renderers[style]
	if !ok {
		render = drawBubble
	}
	render(dc, &frame{
		layout: layout,
		accent: parseHexColor(emo.Color),
		faces:  faces,
		pick:   e.pick,
	})

	drawBadge(dc, faces, emo)
	if opts.AddWatermark {
		drawWatermark(dc, faces, opts.Watermark)
	}

	return dc.Image(), nil
}
