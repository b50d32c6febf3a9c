package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default config should be valid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"unknown backend", func(c *Config) { c.Analyzer.Backend = "openai" }},
		{"backend without model", func(c *Config) { c.Analyzer.Backend = "ollama"; c.Analyzer.Model = "" }},
		{"send quality", func(c *Config) { c.Analyzer.SendQuality = 0 }},
		{"text style", func(c *Config) { c.Caption.Style = "poetic" }},
		{"meme style", func(c *Config) { c.Compose.Style = "vaporwave" }},
		{"max width", func(c *Config) { c.Compose.MaxWidth = 0 }},
		{"quality", func(c *Config) { c.Compose.Quality = 1.5 }},
		{"font size", func(c *Config) { c.Compose.FontSize = 0 }},
		{"format", func(c *Config) { c.Compose.Format = "tiff" }},
		{"workers", func(c *Config) { c.Output.Workers = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.modify(c)
			if err := c.Validate(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	c := Default()
	c.Compose.Style = "neon"
	c.Output.Workers = 2
	if err := c.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile failed: %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if loaded.Compose.Style != "neon" || loaded.Output.Workers != 2 {
		t.Errorf("Round trip lost values: %+v", loaded)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"compose":{"style":"retro"}}`), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if c.Compose.Style != "retro" {
		t.Errorf("Expected retro style, got %s", c.Compose.Style)
	}
	if c.Compose.MaxWidth != 1200 || c.Output.Suffix != "_meme" {
		t.Errorf("Defaults not kept: %+v", c)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadFromFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromFile(bad); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Chdir(t.TempDir()) // no stray .env
	t.Setenv("MOODMEME_BACKEND", "ollama")
	t.Setenv("MOODMEME_MODEL", "llava:13b")
	t.Setenv("MOODMEME_MAX_WIDTH", "800")
	t.Setenv("MOODMEME_QUALITY", "0.75")
	t.Setenv("MOODMEME_ADD_WATERMARK", "false")
	t.Setenv("MOODMEME_WORKERS", "not-a-number")

	c := Default()
	c.ApplyEnv()

	if c.Analyzer.Backend != "ollama" || c.Analyzer.Model != "llava:13b" {
		t.Errorf("Analyzer overrides not applied: %+v", c.Analyzer)
	}
	if c.Compose.MaxWidth != 800 || c.Compose.Quality != 0.75 || c.Compose.AddWatermark {
		t.Errorf("Compose overrides not applied: %+v", c.Compose)
	}
	if c.Output.Workers != 4 {
		t.Errorf("Invalid integer should keep the default, got %d", c.Output.Workers)
	}
}

func TestApplyEnvDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("MOODMEME_STYLE=comic\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)
	t.Setenv("MOODMEME_STYLE", "")
	os.Unsetenv("MOODMEME_STYLE")

	c := Default()
	c.ApplyEnv()
	if c.Compose.Style != "comic" {
		t.Errorf("Expected style from .env, got %s", c.Compose.Style)
	}
}
