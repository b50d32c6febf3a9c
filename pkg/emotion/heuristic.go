package emotion

import (
	"math"

	"github.com/menta2k/moodmeme/pkg/features"
)

const (
	// MaxConfidence caps every reported confidence
	MaxConfidence = 0.95

	// FallbackDiscount scales pixel-based confidences, which lack real face detection
	FallbackDiscount = 0.8
)

// Classify maps pixel features onto a label and its pre-cap confidence.
// Rules are checked in order and overlap, so the first match wins. draw
// supplies the uniform [0,1) value used when no rule matches.
func Classify(f features.Features, draw func() float64) (Label, float64) {
	b, w, s, c := f.Brightness, f.Warmth, f.Saturation, f.Contrast

	switch {
	case b > 160 && w > 0.15 && s > 30:
		return Happy, 0.75 + math.Min(0.20, (b-160)/200)
	case b < 80 || (w < -0.10 && s < 20):
		return Sad, 0.70 + math.Min(0.20, (80-b)/80)
	case c > 0.30 && s > 40:
		return Surprised, 0.65 + math.Min(0.25, c-0.30)
	case w > 0.20 && s > 50 && b < 120:
		return Angry, 0.70 + math.Min(0.20, w-0.20)
	case math.Abs(w) < 0.05 && s < 15:
		return Neutral, 0.80 + math.Min(0.15, (15-s)/15)
	case b > 130 && c > 0.25:
		return Excited, 0.65 + math.Min(0.20, (b-130)/100)
	case b > 100 && w < 0 && s < 25:
		return Calm, 0.70 + math.Min(0.20, (25-s)/25)
	default:
		return Confused, 0.60 + draw()*0.20
	}
}

// FromFeatures builds a fallback-path Result: the classified confidence is
// capped, then discounted.
func FromFeatures(f features.Features, draw func() float64) Result {
	label, confidence := Classify(f, draw)
	confidence = math.Min(MaxConfidence, confidence) * FallbackDiscount

	r := newResult(label, clampConfidence(confidence))
	r.AnalysisData = &AnalysisData{
		Brightness: math.Round(f.Brightness),
		Warmth:     math.Round(f.Warmth*100) / 100,
		Saturation: math.Round(f.Saturation),
		Contrast:   math.Round(f.Contrast*100) / 100,
	}
	return r
}

// FromDetection builds a primary-path Result from a model detection
func FromDetection(d Detection) Result {
	name, p := topExpression(d.Expressions)

	r := newResult(MapModelLabel(name), clampConfidence(p))
	r.FaceDetected = true
	r.RawExpressions = make(map[string]float64, len(d.Expressions))
	for k, v := range d.Expressions {
		r.RawExpressions[k] = v
	}
	return r
}

// topExpression returns the most probable expression. Vocabulary labels are
// scanned first, in order; a later label must be strictly greater to win.
func topExpression(expressions map[string]float64) (string, float64) {
	best, bestP := "", math.Inf(-1)
	seen := make(map[string]bool, len(expressions))

	for _, name := range ModelVocabulary() {
		p, ok := expressions[name]
		if !ok {
			continue
		}
		seen[name] = true
		if p > bestP {
			best, bestP = name, p
		}
	}
	for _, name := range sortedKeys(expressions) {
		if seen[name] {
			continue
		}
		if p := expressions[name]; p > bestP {
			best, bestP = name, p
		}
	}

	if best == "" {
		return string(Neutral), 0
	}
	return best, bestP
}

func clampConfidence(c float64) float64 {
	if math.IsNaN(c) || c < 0 {
		return 0
	}
	return math.Min(MaxConfidence, c)
}
