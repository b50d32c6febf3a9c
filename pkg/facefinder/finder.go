// Package facefinder locates faces with a pigo cascade classifier.
package facefinder

import (
	"errors"
	"fmt"
	"image"
	"os"
	"sort"

	"github.com/disintegration/imaging"
	pigo "github.com/esimov/pigo/core"
)

// MinQuality is the detection score below which a hit is discarded
const MinQuality = 20.0

// ErrNoCascade is returned when no usable cascade was supplied
var ErrNoCascade = errors.New("facefinder: no usable cascade")

// Finder finds faces in images. It is safe for concurrent use.
type Finder struct {
	classifier *pigo.Pigo
	minQuality float64
}

// New creates a Finder from the bytes of a pigo facefinder cascade
func New(cascade []byte) (*Finder, error) {
	if len(cascade) == 0 {
		return nil, ErrNoCascade
	}

	classifier, err := unpack(cascade)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoCascade, err)
	}
	return &Finder{classifier: classifier, minQuality: MinQuality}, nil
}

// NewFromFile creates a Finder from a cascade file on disk
func NewFromFile(path string) (*Finder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoCascade, err)
	}
	return New(data)
}

// unpack guards against malformed cascades, which pigo reads without
// bounds checks
func unpack(cascade []byte) (classifier *pigo.Pigo, err error) {
	defer func() {
		if r := recover(); r != nil {
			classifier, err = nil, fmt.Errorf("malformed cascade: %v", r)
		}
	}()
	return pigo.NewPigo().Unpack(cascade)
}

// Find returns face rectangles in image coordinates, largest first
func (f *Finder) Find(img image.Image) []image.Rectangle {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return nil
	}

	// pigo reads pixels from the origin
	src := img
	if bounds.Min != (image.Point{}) {
		src = imaging.Clone(img)
	}

	minDimension := min(width, height)
	params := pigo.CascadeParams{
		MinSize:     max(int(float64(minDimension)*0.05), 20),
		MaxSize:     minDimension,
		ShiftFactor: 0.1,
		ScaleFactor: 1.1,
		ImageParams: pigo.ImageParams{
			Pixels: pigo.RgbToGrayscale(src),
			Rows:   height,
			Cols:   width,
			Dim:    width,
		},
	}

	dets := f.classifier.RunCascade(params, 0.0)
	dets = f.classifier.ClusterDetections(dets, 0.2)

	faces := selectFaces(dets, f.minQuality)
	rects := make([]image.Rectangle, 0, len(faces))
	for _, det := range faces {
		r := expand(det, image.Rect(0, 0, width, height))
		if r.Empty() {
			continue
		}
		rects = append(rects, r.Add(bounds.Min))
	}
	return rects
}

// selectFaces keeps confident detections, largest first
func selectFaces(dets []pigo.Detection, minQuality float64) []pigo.Detection {
	var faces []pigo.Detection
	for _, det := range dets {
		if float64(det.Q) > minQuality {
			faces = append(faces, det)
		}
	}
	sort.SliceStable(faces, func(i, j int) bool {
		return faces[i].Scale > faces[j].Scale
	})
	return faces
}

// expand grows a detection by 50% to cover forehead and chin, clamped to
// bounds. pigo tends to report only the eyes-nose-mouth core.
func expand(det pigo.Detection, bounds image.Rectangle) image.Rectangle {
	half := int(float64(det.Scale)*1.5) / 2
	box := image.Rect(det.Col-half, det.Row-half, det.Col+half, det.Row+half)
	return box.Intersect(bounds)
}
