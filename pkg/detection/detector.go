package detection

import (
	"context"
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/menta2k/moodmeme/pkg/client"
	"github.com/menta2k/moodmeme/pkg/emotion"
	"github.com/menta2k/moodmeme/pkg/processing"
)

// SimpleTestPrompt for testing if the model can see images
const SimpleTestPrompt = `What do you see in this image? Describe it briefly.`

// DefaultPrompt is the default prompt for face expression detection
const DefaultPrompt = `You are a facial expression rater.

Return JSON only:
{
  "faces": [
    {
      "box": {"x": 0.0, "y": 0.0, "w": 0.0, "h": 0.0},
      "expressions": {
        "happy": 0.0,
        "sad": 0.0,
        "angry": 0.0,
        "fearful": 0.0,
        "disgusted": 0.0,
        "surprised": 0.0,
        "neutral": 0.0
      }
    }
  ]
}

HARD RULES
- One entry per clearly visible human face, largest face first.
- Box coordinates are normalized to [0,1] (NOT pixels).
- Expression values are probabilities in [0,1] and should sum to 1.
- Use only the seven expression keys above.
- If no face is visible, return {"faces": []}.
- JSON only. No markdown, no code fences, no comments, no trailing commas.`

const (
	// DefaultMaxFaces bounds model calls per image when a locator is set
	DefaultMaxFaces = 3
	// DefaultSendMaxDim is the longest side sent to the model
	DefaultSendMaxDim = 768
	// DefaultSendQuality is the JPEG quality of the image sent to the model
	DefaultSendQuality = 85
)

// FaceLocator finds face rectangles, largest first
type FaceLocator interface {
	Find(img image.Image) []image.Rectangle
}

// ExpressionDetector asks a vision model for face expressions. It
// implements emotion.FaceModel.
type ExpressionDetector struct {
	client    client.VisionClient
	processor *processing.Processor
	model     string
	prompt    string
	locator   FaceLocator
	maxFaces  int
	maxDim    int
	quality   int
}

var _ emotion.FaceModel = (*ExpressionDetector)(nil)

// Option configures an ExpressionDetector
type Option func(*ExpressionDetector)

// WithFaceLocator gates detection on a local face finder. Each located face
// is cropped and rated on its own.
func WithFaceLocator(l FaceLocator) Option {
	return func(d *ExpressionDetector) { d.locator = l }
}

// WithPrompt replaces DefaultPrompt
func WithPrompt(prompt string) Option {
	return func(d *ExpressionDetector) { d.prompt = prompt }
}

// WithImageSize sets the longest side and JPEG quality of images sent to
// the model. Non-positive values keep the defaults.
func WithImageSize(maxDim, quality int) Option {
	return func(d *ExpressionDetector) {
		if maxDim > 0 {
			d.maxDim = maxDim
		}
		if quality > 0 {
			d.quality = quality
		}
	}
}

// WithMaxFaces bounds how many located faces are rated
func WithMaxFaces(n int) Option {
	return func(d *ExpressionDetector) {
		if n > 0 {
			d.maxFaces = n
		}
	}
}

// NewExpressionDetector creates a detector for the given backend and model
func NewExpressionDetector(c client.VisionClient, model string, opts ...Option) *ExpressionDetector {
	d := &ExpressionDetector{
		client:    c,
		processor: processing.NewProcessor(),
		model:     model,
		prompt:    DefaultPrompt,
		maxFaces:  DefaultMaxFaces,
		maxDim:    DefaultSendMaxDim,
		quality:   DefaultSendQuality,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Load checks that the backend answers
func (d *ExpressionDetector) Load(ctx context.Context) error {
	if d.client == nil {
		return fmt.Errorf("no vision client configured")
	}
	if d.model == "" {
		return fmt.Errorf("no vision model configured")
	}
	return d.client.Ping(ctx)
}

// Detect returns one detection per rated face
func (d *ExpressionDetector) Detect(ctx context.Context, img image.Image) ([]emotion.Detection, error) {
	if d.locator == nil {
		return d.detectWhole(ctx, img)
	}

	faces := d.locator.Find(img)
	if len(faces) == 0 {
		return nil, nil
	}
	if len(faces) > d.maxFaces {
		faces = faces[:d.maxFaces]
	}

	var detections []emotion.Detection
	for _, rect := range faces {
		crop, err := d.processor.CropToRect(img, rect)
		if err != nil {
			continue
		}
		expressions, err := d.rate(ctx, crop)
		if err != nil {
			return nil, err
		}
		if len(expressions) == 0 {
			continue
		}
		detections = append(detections, emotion.Detection{Box: rect, Expressions: expressions})
	}
	return detections, nil
}

func (d *ExpressionDetector) detectWhole(ctx context.Context, img image.Image) ([]emotion.Detection, error) {
	imgB64, err := d.processor.PrepareImageForModel(img, "jpg", d.maxDim, d.quality)
	if err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	report, err := d.client.DetectExpressions(ctx, d.model, d.prompt, imgB64)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	var detections []emotion.Detection
	for _, face := range report.Faces {
		expressions := NormalizeExpressions(face.Expressions)
		if len(expressions) == 0 {
			continue
		}
		box := bounds
		if !face.Box.Empty() {
			if r := face.Box.ToRect(bounds); !r.Empty() {
				box = r
			}
		}
		detections = append(detections, emotion.Detection{Box: box, Expressions: expressions})
	}
	return detections, nil
}

// rate asks the model about a single cropped face
func (d *ExpressionDetector) rate(ctx context.Context, face image.Image) (map[string]float64, error) {
	imgB64, err := d.processor.PrepareImageForModel(face, "jpg", d.maxDim, d.quality)
	if err != nil {
		return nil, fmt.Errorf("failed to encode face: %w", err)
	}

	report, err := d.client.DetectExpressions(ctx, d.model, d.prompt, imgB64)
	if err != nil {
		return nil, err
	}
	if len(report.Faces) == 0 {
		return nil, nil
	}
	return NormalizeExpressions(report.Faces[0].Expressions), nil
}

// TestVision tests if the model can actually see the image with a simple prompt
func (d *ExpressionDetector) TestVision(ctx context.Context, img image.Image) (string, error) {
	imgB64, err := d.processor.PrepareImageForModel(img, "jpg", d.maxDim, d.quality)
	if err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	return d.client.SimpleQuery(ctx, d.model, SimpleTestPrompt, imgB64)
}

// NormalizeExpressions keeps the known expression keys, clamps values to
// [0,1] and rescales the distribution when it sums above 1
func NormalizeExpressions(raw map[string]float64) map[string]float64 {
	known := make(map[string]bool)
	for _, name := range emotion.ModelVocabulary() {
		known[name] = true
	}

	out := make(map[string]float64, len(raw))
	sum := 0.0
	for k, v := range raw {
		name := strings.ToLower(strings.TrimSpace(k))
		if !known[name] || math.IsNaN(v) {
			continue
		}
		v = clamp(v, 0, 1)
		out[name] += v
		sum += v
	}

	if sum > 1 {
		for k, v := range out {
			out[k] = clamp(v/sum, 0, 1)
		}
	}
	return out
}

// clamp ensures a value is within the given bounds
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
