package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsImageFile(t *testing.T) {
	tests := map[string]bool{
		"cat.jpg":      true,
		"cat.JPEG":     true,
		"dog.webp":     true,
		"notes.txt":    false,
		"archive":      false,
		"photo.png.gz": false,
	}
	for name, want := range tests {
		if got := IsImageFile(name); got != want {
			t.Errorf("IsImageFile(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestSourceName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/photos/smile.jpg", "smile"},
		{"https://example.com/img/party.png?size=large", "party"},
		{"https://example.com/", "image"},
		{"weird:name.png", "weird_name"},
	}
	for _, tt := range tests {
		if got := SourceName(tt.in); got != tt.want {
			t.Errorf("SourceName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMemeOutputPaths(t *testing.T) {
	paths := MemeOutputPaths("/in/smile.jpg", "/out", "", "_meme", "webp")
	if paths.Meme != filepath.Join("/out", "smile_meme.webp") {
		t.Errorf("Meme = %s", paths.Meme)
	}
	if paths.Metadata != filepath.Join("/out", "smile_meme.json") {
		t.Errorf("Metadata = %s", paths.Metadata)
	}
	if paths.Debug != filepath.Join("/out", "smile_meme_debug.png") {
		t.Errorf("Debug = %s", paths.Debug)
	}

	if got := GenerateOutputFilename("https://x.test/a", "o", "p_", "", ""); got != filepath.Join("o", "p_a.png") {
		t.Errorf("URL output = %s", got)
	}
}

func TestListImageFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.png", "a.jpg", "sub/c.webp", "readme.md"} {
		path := filepath.Join(dir, name)
		if err := EnsureDir(filepath.Dir(path)); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	files, err := ListImageFiles(dir)
	if err != nil {
		t.Fatalf("ListImageFiles failed: %v", err)
	}
	want := []string{
		filepath.Join(dir, "a.jpg"),
		filepath.Join(dir, "b.png"),
		filepath.Join(dir, "sub", "c.webp"),
	}
	if len(files) != len(want) {
		t.Fatalf("Got %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %s, want %s", i, files[i], want[i])
		}
	}

	if !DirExists(dir) || DirExists(files[0]) || !FileExists(files[0]) {
		t.Error("Exists helpers disagree with the filesystem")
	}
}

func TestFormatFileSize(t *testing.T) {
	tests := map[int64]string{
		512:     "512 B",
		2048:    "2.0 KB",
		5 << 20: "5.0 MB",
	}
	for size, want := range tests {
		if got := FormatFileSize(size); got != want {
			t.Errorf("FormatFileSize(%d) = %s, want %s", size, got, want)
		}
	}
}
