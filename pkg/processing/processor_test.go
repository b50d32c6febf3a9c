package processing

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
)

func solidImage(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func pngBytes(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode PNG: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeImage(t *testing.T) {
	p := NewProcessor()

	img, err := p.DecodeImage(pngBytes(t, solidImage(10, 8, color.White)))
	if err != nil {
		t.Fatalf("DecodeImage failed: %v", err)
	}
	if img.Bounds().Dx() != 10 || img.Bounds().Dy() != 8 {
		t.Errorf("Unexpected bounds %v", img.Bounds())
	}

	if _, err := p.DecodeImage([]byte("not an image")); err == nil {
		t.Error("Expected error for garbage data")
	}
}

func TestPrepareImageForModel(t *testing.T) {
	p := NewProcessor()
	src := solidImage(400, 200, color.NRGBA{200, 100, 50, 255})

	tests := []struct {
		name   string
		format string
		maxDim int
		wantW  int
		wantH  int
	}{
		{"jpeg downscaled", "jpg", 100, 100, 50},
		{"png downscaled", "png", 100, 100, 50},
		{"no limit", "jpg", 0, 400, 200},
		{"already small", "jpg", 1000, 400, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b64, err := p.PrepareImageForModel(src, tt.format, tt.maxDim, 80)
			if err != nil {
				t.Fatalf("PrepareImageForModel failed: %v", err)
			}
			data, err := base64.StdEncoding.DecodeString(b64)
			if err != nil {
				t.Fatalf("Invalid base64: %v", err)
			}
			cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("Invalid image payload: %v", err)
			}
			if cfg.Width != tt.wantW || cfg.Height != tt.wantH {
				t.Errorf("Size = %dx%d, want %dx%d", cfg.Width, cfg.Height, tt.wantW, tt.wantH)
			}
			wantFormat := "jpeg"
			if tt.format == "png" {
				wantFormat = "png"
			}
			if format != wantFormat {
				t.Errorf("Format = %s, want %s", format, wantFormat)
			}
		})
	}
}

func TestCropToRect(t *testing.T) {
	p := NewProcessor()
	src := solidImage(100, 100, color.White)

	crop, err := p.CropToRect(src, image.Rect(80, 80, 150, 150))
	if err != nil {
		t.Fatalf("CropToRect failed: %v", err)
	}
	if crop.Bounds().Dx() != 20 || crop.Bounds().Dy() != 20 {
		t.Errorf("Expected crop clamped to 20x20, got %v", crop.Bounds())
	}

	if _, err := p.CropToRect(src, image.Rect(200, 200, 300, 300)); err == nil {
		t.Error("Expected error for rectangle outside the image")
	}
}

func TestValidateImage(t *testing.T) {
	p := NewProcessor()

	tests := []struct {
		name    string
		img     image.Image
		minSize int
		wantErr bool
	}{
		{"valid", solidImage(100, 100, color.White), 50, false},
		{"too narrow", solidImage(30, 100, color.White), 50, true},
		{"exact", solidImage(50, 50, color.White), 50, false},
		{"nil", nil, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.ValidateImage(tt.img, tt.minSize)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateImage() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetImageInfo(t *testing.T) {
	info := NewProcessor().GetImageInfo(solidImage(300, 150, color.Black))
	if info.Width != 300 || info.Height != 150 || info.Area != 45000 || info.AspectRatio != 2 {
		t.Errorf("Unexpected info %+v", info)
	}
}

func TestSaveAndLoadImage(t *testing.T) {
	p := NewProcessor()
	dir := t.TempDir()
	src := solidImage(40, 30, color.NRGBA{10, 200, 10, 255})

	for _, format := range []string{"png", "jpg", "webp"} {
		t.Run(format, func(t *testing.T) {
			path := filepath.Join(dir, "out."+format)
			if err := p.SaveImage(src, path, format, 90, false); err != nil {
				t.Fatalf("SaveImage failed: %v", err)
			}
			img, err := p.LoadImage(path)
			if err != nil {
				t.Fatalf("LoadImage failed: %v", err)
			}
			if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 30 {
				t.Errorf("Unexpected bounds %v", img.Bounds())
			}
		})
	}

	if _, err := p.LoadImage(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoadImageFromURL(t *testing.T) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, solidImage(20, 20, color.White), nil); err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/photo.jpg":
			if ua := r.Header.Get("User-Agent"); ua == "" {
				t.Error("Expected a User-Agent header")
			}
			w.Header().Set("Content-Type", "image/jpeg")
			_, _ = w.Write(buf.Bytes())
		case "/page.html":
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html></html>"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	p := NewProcessor()
	img, err := p.LoadImageSmart(srv.URL + "/photo.jpg")
	if err != nil {
		t.Fatalf("LoadImageSmart failed: %v", err)
	}
	if img.Bounds().Dx() != 20 {
		t.Errorf("Unexpected bounds %v", img.Bounds())
	}

	if _, err := p.LoadImageFromURL(srv.URL + "/page.html"); err == nil {
		t.Error("Expected error for non-image content type")
	}
	if _, err := p.LoadImageFromURL(srv.URL + "/missing.jpg"); err == nil {
		t.Error("Expected error for 404")
	}
	if _, err := p.LoadImageFromURL("ftp://example.com/a.jpg"); err == nil {
		t.Error("Expected error for unsupported scheme")
	}
}

func TestCreateDebugOverlay(t *testing.T) {
	p := NewProcessor()
	src := solidImage(200, 200, color.Black)

	region := image.Rect(50, 40, 150, 140)
	face := image.Rect(10, 10, 60, 60)
	out := p.CreateDebugOverlay(src, region, []image.Rectangle{face})

	gold := color.NRGBA{255, 204, 0, 255}
	green := color.NRGBA{0, 255, 0, 255}

	if got := color.NRGBAModel.Convert(out.At(100, 40)); got != gold {
		t.Errorf("Expected region outline at top edge, got %v", got)
	}
	if got := color.NRGBAModel.Convert(out.At(10, 30)); got != green {
		t.Errorf("Expected face outline at left edge, got %v", got)
	}
	if got := color.NRGBAModel.Convert(out.At(100, 90)); got == gold {
		t.Error("Region interior should not be painted")
	}
	if src.At(100, 40) != (color.NRGBA{0, 0, 0, 255}) {
		t.Error("Source image must not be modified")
	}
}
