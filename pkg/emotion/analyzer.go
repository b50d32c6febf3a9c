// Package emotion estimates an emotion label from a photo.
//
// Analysis has two paths. The primary path asks an external FaceModel for
// per-face expression probabilities. When no model is configured, the model
// fails to load, detection errors out, or no face is found, the Analyzer
// silently falls back to a pixel heuristic over the area where a face
// usually sits. The fallback always produces a label.
package emotion

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/menta2k/moodmeme/pkg/features"
)

// ErrEmptyImage is returned for nil or zero-area images
var ErrEmptyImage = errors.New("emotion: empty image")

// FaceModel is an external face expression detector
type FaceModel interface {
	// Load prepares the model. It is called at most once per Analyzer.
	Load(ctx context.Context) error
	// Detect returns zero or more faces with expression probabilities.
	Detect(ctx context.Context, img image.Image) ([]Detection, error)
}

// Analyzer runs emotion analysis. It is safe for concurrent use; the model
// availability check runs once and is memoized.
type Analyzer struct {
	model  FaceModel
	draw   func() float64
	logger *slog.Logger

	loadOnce sync.Once
	loaded   bool
}

// Option configures an Analyzer
type Option func(*Analyzer)

// WithModel sets the primary-path face model
func WithModel(m FaceModel) Option {
	return func(a *Analyzer) { a.model = m }
}

// WithRand sets the source of uniform [0,1) values used by the heuristic's
// catch-all rule. The default is unseeded.
func WithRand(draw func() float64) Option {
	return func(a *Analyzer) { a.draw = draw }
}

// WithLogger sets the logger used for failover diagnostics
func WithLogger(l *slog.Logger) Option {
	return func(a *Analyzer) { a.logger = l }
}

// New creates an Analyzer. Without WithModel only the pixel heuristic is used.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		draw:   rand.Float64,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Warmup runs the model availability check if it has not run yet and
// reports whether the primary path is available.
func (a *Analyzer) Warmup(ctx context.Context) bool {
	a.loadOnce.Do(func() {
		if a.model == nil {
			return
		}
		if err := a.model.Load(ctx); err != nil {
			a.logger.Warn("face model unavailable, using pixel analysis", slog.String("error", err.Error()))
			return
		}
		a.loaded = true
	})
	return a.loaded
}

// Analyze estimates the emotion shown in img
func (a *Analyzer) Analyze(ctx context.Context, img image.Image) (Result, error) {
	if img == nil || img.Bounds().Empty() {
		return Result{}, ErrEmptyImage
	}

	if a.Warmup(ctx) {
		if r, ok := a.analyzeModel(ctx, img); ok {
			return r, nil
		}
	}
	return a.AnalyzePixels(img)
}

// AnalyzePixels runs only the pixel heuristic
func (a *Analyzer) AnalyzePixels(img image.Image) (Result, error) {
	if img == nil || img.Bounds().Empty() {
		return Result{}, ErrEmptyImage
	}
	f, err := features.ExtractRegion(img, features.FaceRegion(img.Bounds()))
	if err != nil {
		return Result{}, ErrEmptyImage
	}
	return FromFeatures(f, a.draw), nil
}

func (a *Analyzer) analyzeModel(ctx context.Context, img image.Image) (Result, bool) {
	detections, err := a.model.Detect(ctx, img)
	if err != nil {
		a.logger.Debug("face detection failed, using pixel analysis", slog.String("error", err.Error()))
		return Result{}, false
	}
	if len(detections) == 0 {
		a.logger.Debug("no face detected, using pixel analysis")
		return Result{}, false
	}
	return FromDetection(detections[0]), true
}
