// Package moodmeme turns a photo into a captioned meme.
//
// The pipeline has three stages, each usable on its own:
//
//  1. Emotion analysis (pkg/emotion): a face expression model when one is
//     configured and reachable, otherwise a pixel heuristic over the area
//     where a face usually sits
//  2. Caption selection (pkg/caption): a weighted random pick from a
//     per-emotion corpus, optionally mixed with time-of-day and
//     detection-context lines
//  3. Composition (pkg/compose): the caption laid out inside one of five
//     decorative containers, plus an emotion badge and a watermark
//
// Basic usage:
//
//	gen := moodmeme.New()
//	res, err := gen.GenerateFromFile(ctx, "photo.jpg", moodmeme.DefaultGenerateOptions())
//	if err != nil {
//		log.Fatal(err)
//	}
//	os.WriteFile("photo_meme.png", res.Data, 0644)
//
// A Generator holds one analyzer, one caption selector and one engine and
// may be shared between goroutines.
package moodmeme

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"github.com/menta2k/moodmeme/pkg/caption"
	"github.com/menta2k/moodmeme/pkg/compose"
	"github.com/menta2k/moodmeme/pkg/emotion"
	"github.com/menta2k/moodmeme/pkg/features"
	"github.com/menta2k/moodmeme/pkg/processing"
)

// Version of the moodmeme library
const Version = "1.0.0"

// Generator runs the full photo-to-meme pipeline
type Generator struct {
	model     emotion.FaceModel
	analyzer  *emotion.Analyzer
	selector  *caption.Selector
	engine    *compose.Engine
	processor *processing.Processor
	logger    *slog.Logger
}

// Option configures a Generator
type Option func(*Generator)

// WithAnalyzer uses a preconfigured analyzer. It takes precedence over
// WithModel.
func WithAnalyzer(a *emotion.Analyzer) Option {
	return func(g *Generator) { g.analyzer = a }
}

// WithModel sets the face expression model of the default analyzer
func WithModel(m emotion.FaceModel) Option {
	return func(g *Generator) { g.model = m }
}

// WithSelector uses a preconfigured caption selector
func WithSelector(s *caption.Selector) Option {
	return func(g *Generator) { g.selector = s }
}

// WithEngine uses a preconfigured composition engine
func WithEngine(e *compose.Engine) Option {
	return func(g *Generator) { g.engine = e }
}

// WithLogger sets the logger for analyzer failover diagnostics
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// New creates a Generator. Without a model only pixel analysis is used.
func New(opts ...Option) *Generator {
	g := &Generator{
		processor: processing.NewProcessor(),
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.analyzer == nil {
		aopts := []emotion.Option{emotion.WithLogger(g.logger)}
		if g.model != nil {
			aopts = append(aopts, emotion.WithModel(g.model))
		}
		g.analyzer = emotion.New(aopts...)
	}
	if g.selector == nil {
		g.selector = caption.New()
	}
	if g.engine == nil {
		g.engine = compose.New()
	}
	return g
}

// GenerateOptions controls one pipeline run
type GenerateOptions struct {
	// Style is the container style. Unknown styles render as bubble.
	Style compose.Style
	// Text skips caption selection when set
	Text    string
	Caption caption.Options
	Compose compose.Options
	// UseEmotionContext adds lines about how the emotion was detected to
	// the caption pool
	UseEmotionContext bool
}

// DefaultGenerateOptions returns bubble style with mixed captions
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		Style:             compose.Bubble,
		Caption:           caption.DefaultOptions(),
		Compose:           compose.DefaultOptions(),
		UseEmotionContext: true,
	}
}

// Result is a composed meme and the face region the heuristic reads
type Result struct {
	compose.Result
	FaceRegion image.Rectangle
}

// Warmup runs the model availability check ahead of the first analysis
func (g *Generator) Warmup(ctx context.Context) bool {
	return g.analyzer.Warmup(ctx)
}

// Analyze estimates the emotion shown in img
func (g *Generator) Analyze(ctx context.Context, img image.Image) (emotion.Result, error) {
	return g.analyzer.Analyze(ctx, img)
}

// Caption picks a caption for emo
func (g *Generator) Caption(emo emotion.Result, opts caption.Options) string {
	return g.selector.Generate(emo, opts)
}

// Compose renders a meme for an already analyzed image. An empty
// opts.Text selects a fresh caption, so calling Compose again with the
// same emotion yields a new variant.
func (g *Generator) Compose(img image.Image, emo emotion.Result, opts GenerateOptions) (*Result, error) {
	text := opts.Text
	if text == "" {
		copts := opts.Caption
		if opts.UseEmotionContext && copts.CustomContext == nil {
			copts.CustomContext = &emo
		}
		text = g.selector.Generate(emo, copts)
	}

	meme, err := g.engine.CreateMeme(img, emo, text, opts.Style, opts.Compose)
	if err != nil {
		return nil, fmt.Errorf("composition failed: %w", err)
	}
	return &Result{
		Result:     *meme,
		FaceRegion: features.FaceRegion(img.Bounds()),
	}, nil
}

// Generate runs analysis, caption selection and composition on img
func (g *Generator) Generate(ctx context.Context, img image.Image, opts GenerateOptions) (*Result, error) {
	emo, err := g.Analyze(ctx, img)
	if err != nil {
		return nil, fmt.Errorf("emotion analysis failed: %w", err)
	}
	return g.Compose(img, emo, opts)
}

// GenerateFromFile loads an image from a path or URL and runs Generate
func (g *Generator) GenerateFromFile(ctx context.Context, source string, opts GenerateOptions) (*Result, error) {
	img, err := g.processor.LoadImageSmart(source)
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}
	return g.Generate(ctx, img, opts)
}

// GenerateFromBytes decodes data and runs Generate
func (g *Generator) GenerateFromBytes(ctx context.Context, data []byte, opts GenerateOptions) (*Result, error) {
	img, err := g.processor.DecodeImage(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", compose.ErrDecode, err)
	}
	return g.Generate(ctx, img, opts)
}
