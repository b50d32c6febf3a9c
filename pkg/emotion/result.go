package emotion

import (
	"image"
	"sort"
)

// AnalysisData carries the raw pixel statistics behind a fallback result
type AnalysisData struct {
	Brightness float64 `json:"brightness"`
	Warmth     float64 `json:"warmth"`
	Saturation float64 `json:"saturation"`
	Contrast   float64 `json:"contrast"`
}

// Result is the outcome of one emotion analysis. It is built fresh per
// call and never modified afterwards.
type Result struct {
	Label          Label              `json:"emotion"`
	Confidence     float64            `json:"confidence"`
	Description    string             `json:"description"`
	Icon           string             `json:"icon"`
	Color          string             `json:"color"`
	FaceDetected   bool               `json:"face_detected"`
	RawExpressions map[string]float64 `json:"raw_expressions,omitempty"`
	AnalysisData   *AnalysisData      `json:"analysis_data,omitempty"`
}

// Metadata returns the presentation metadata carried by the result
func (r Result) Metadata() Metadata {
	return Metadata{Description: r.Description, Icon: r.Icon, Color: r.Color}
}

// NewResult builds a Result for a label with its fixed metadata. Useful
// for callers that pick the emotion themselves.
func NewResult(l Label, confidence float64) Result {
	return newResult(l, clampConfidence(confidence))
}

func newResult(l Label, confidence float64) Result {
	m := MetadataFor(l)
	return Result{
		Label:       l,
		Confidence:  confidence,
		Description: m.Description,
		Icon:        m.Icon,
		Color:       m.Color,
	}
}

// Detection is one face reported by a FaceModel
type Detection struct {
	Box         image.Rectangle
	Expressions map[string]float64
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
