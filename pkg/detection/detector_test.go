package detection

import (
	"context"
	"errors"
	"image"
	"image/color"
	"math"
	"sync"
	"testing"

	"github.com/menta2k/moodmeme/pkg/emotion"
	"github.com/menta2k/moodmeme/pkg/types"
)

type fakeClient struct {
	mu      sync.Mutex
	pingErr error
	err     error
	report  *types.ExpressionReport
	calls   int
	images  []string
}

func (f *fakeClient) Ping(ctx context.Context) error { return f.pingErr }

func (f *fakeClient) SimpleQuery(ctx context.Context, model, prompt, imgB64 string) (string, error) {
	return "a test pattern", f.err
}

func (f *fakeClient) DetectExpressions(ctx context.Context, model, prompt, imgB64 string) (*types.ExpressionReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.images = append(f.images, imgB64)
	if f.err != nil {
		return nil, f.err
	}
	return f.report, nil
}

type fixedLocator []image.Rectangle

func (l fixedLocator) Find(img image.Image) []image.Rectangle { return l }

func testImage(w, h int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{uint8(x), uint8(y), 128, 255})
		}
	}
	return img
}

func TestLoad(t *testing.T) {
	d := NewExpressionDetector(&fakeClient{}, "llava")
	if err := d.Load(context.Background()); err != nil {
		t.Errorf("Load failed: %v", err)
	}

	down := NewExpressionDetector(&fakeClient{pingErr: errors.New("connection refused")}, "llava")
	if err := down.Load(context.Background()); err == nil {
		t.Error("Expected Load to fail when the backend is down")
	}

	noModel := NewExpressionDetector(&fakeClient{}, "")
	if err := noModel.Load(context.Background()); err == nil {
		t.Error("Expected Load to fail without a model name")
	}
}

func TestDetectWholeImage(t *testing.T) {
	fc := &fakeClient{report: &types.ExpressionReport{Faces: []types.FaceReport{
		{
			Box:         types.Box{X: 0.25, Y: 0.25, W: 0.5, H: 0.5},
			Expressions: map[string]float64{"Happy": 0.8, "neutral": 0.2},
		},
		{Expressions: map[string]float64{"sad": 0.9}},
		{Expressions: map[string]float64{"bored": 1}}, // nothing usable
	}}}

	d := NewExpressionDetector(fc, "llava")
	dets, err := d.Detect(context.Background(), testImage(200, 100))
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if len(dets) != 2 {
		t.Fatalf("Expected 2 detections, got %d", len(dets))
	}
	if want := image.Rect(50, 25, 150, 75); dets[0].Box != want {
		t.Errorf("Box = %v, want %v", dets[0].Box, want)
	}
	if dets[0].Expressions["happy"] != 0.8 {
		t.Errorf("Expected lower-cased happy key, got %v", dets[0].Expressions)
	}
	if want := image.Rect(0, 0, 200, 100); dets[1].Box != want {
		t.Errorf("Face without box should cover the image, got %v", dets[1].Box)
	}
	if fc.calls != 1 {
		t.Errorf("Expected 1 model call, got %d", fc.calls)
	}

	r := emotion.FromDetection(dets[0])
	if r.Label != emotion.Happy || !r.FaceDetected {
		t.Errorf("Unexpected result %+v", r)
	}
}

func TestDetectWithLocator(t *testing.T) {
	fc := &fakeClient{report: &types.ExpressionReport{Faces: []types.FaceReport{
		{Expressions: map[string]float64{"surprised": 0.7}},
	}}}

	faces := fixedLocator{
		image.Rect(10, 10, 60, 60),
		image.Rect(100, 10, 140, 50),
		image.Rect(20, 60, 50, 90),
		image.Rect(150, 60, 180, 90),
	}
	d := NewExpressionDetector(fc, "llava", WithFaceLocator(faces))

	dets, err := d.Detect(context.Background(), testImage(200, 100))
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if len(dets) != DefaultMaxFaces {
		t.Fatalf("Expected %d detections, got %d", DefaultMaxFaces, len(dets))
	}
	if fc.calls != DefaultMaxFaces {
		t.Errorf("Expected one model call per face, got %d", fc.calls)
	}
	for i, det := range dets {
		if det.Box != faces[i] {
			t.Errorf("Detection %d box = %v, want %v", i, det.Box, faces[i])
		}
	}
}

func TestDetectLocatorFindsNothing(t *testing.T) {
	fc := &fakeClient{report: &types.ExpressionReport{}}
	d := NewExpressionDetector(fc, "llava", WithFaceLocator(fixedLocator(nil)))

	dets, err := d.Detect(context.Background(), testImage(64, 64))
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if len(dets) != 0 {
		t.Errorf("Expected no detections, got %d", len(dets))
	}
	if fc.calls != 0 {
		t.Errorf("Model should not be called without faces, got %d calls", fc.calls)
	}
}

func TestDetectClientError(t *testing.T) {
	fc := &fakeClient{err: errors.New("timeout")}
	d := NewExpressionDetector(fc, "llava")
	if _, err := d.Detect(context.Background(), testImage(32, 32)); err == nil {
		t.Error("Expected client error to propagate")
	}
}

func TestImageSizeLimit(t *testing.T) {
	fc := &fakeClient{report: &types.ExpressionReport{}}
	small := NewExpressionDetector(fc, "llava", WithImageSize(32, 50))
	if _, err := small.Detect(context.Background(), testImage(400, 300)); err != nil {
		t.Fatalf("Detect failed: %v", err)
	}

	large := NewExpressionDetector(fc, "llava", WithImageSize(1024, 95))
	if _, err := large.Detect(context.Background(), testImage(400, 300)); err != nil {
		t.Fatalf("Detect failed: %v", err)
	}

	if len(fc.images[0]) >= len(fc.images[1]) {
		t.Errorf("Downscaled payload (%d bytes) should be smaller than full size (%d bytes)",
			len(fc.images[0]), len(fc.images[1]))
	}
}

func TestNormalizeExpressions(t *testing.T) {
	tests := []struct {
		name string
		in   map[string]float64
		want map[string]float64
	}{
		{
			name: "valid distribution untouched",
			in:   map[string]float64{"happy": 0.6, "sad": 0.4},
			want: map[string]float64{"happy": 0.6, "sad": 0.4},
		},
		{
			name: "unknown keys dropped",
			in:   map[string]float64{"happy": 0.5, "bored": 0.5},
			want: map[string]float64{"happy": 0.5},
		},
		{
			name: "keys lower-cased",
			in:   map[string]float64{" Angry ": 0.3},
			want: map[string]float64{"angry": 0.3},
		},
		{
			name: "values clamped",
			in:   map[string]float64{"neutral": -0.2, "fearful": 0.4},
			want: map[string]float64{"neutral": 0, "fearful": 0.4},
		},
		{
			name: "rescaled above one",
			in:   map[string]float64{"happy": 3, "sad": 1},
			want: map[string]float64{"happy": 0.5, "sad": 0.5},
		},
		{
			name: "percent style values",
			in:   map[string]float64{"happy": 0.9, "surprised": 0.6},
			want: map[string]float64{"happy": 0.6, "surprised": 0.4},
		},
		{
			name: "empty",
			in:   nil,
			want: map[string]float64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeExpressions(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("NormalizeExpressions() = %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if math.Abs(got[k]-v) > 1e-9 {
					t.Errorf("%s = %v, want %v", k, got[k], v)
				}
			}
		})
	}
}

func TestTestVision(t *testing.T) {
	d := NewExpressionDetector(&fakeClient{}, "llava")
	answer, err := d.TestVision(context.Background(), testImage(16, 16))
	if err != nil || answer == "" {
		t.Errorf("TestVision() = %q, %v", answer, err)
	}
}
