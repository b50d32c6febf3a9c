package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Analyzer AnalyzerConfig `json:"analyzer"`
	Caption  CaptionConfig  `json:"caption"`
	Compose  ComposeConfig  `json:"compose"`
	Output   OutputConfig   `json:"output"`
}

// AnalyzerConfig holds configuration for emotion analysis
type AnalyzerConfig struct {
	Backend     string `json:"backend"` // none, ollama or llamacpp
	URL         string `json:"url"`
	Model       string `json:"model"`
	CascadePath string `json:"cascade_path"`
	SendMaxDim  int    `json:"send_max_dim"`
	SendQuality int    `json:"send_quality"`
}

// CaptionConfig holds configuration for caption selection
type CaptionConfig struct {
	Style              string `json:"style"`
	IncludeTimeContext bool   `json:"include_time_context"`
	IncludeEmoji       bool   `json:"include_emoji"`
}

// ComposeConfig holds configuration for meme composition
type ComposeConfig struct {
	Style        string  `json:"style"`
	MaxWidth     int     `json:"max_width"`
	Quality      float64 `json:"quality"`
	AddWatermark bool    `json:"add_watermark"`
	Watermark    string  `json:"watermark"`
	FontSize     float64 `json:"font_size"`
	FontFamily   string  `json:"font_family"`
	Format       string  `json:"format"`
}

// OutputConfig holds configuration for output generation
type OutputConfig struct {
	OutputDir string `json:"output_dir"`
	Workers   int    `json:"workers"`
	Debug     bool   `json:"debug"`
	Prefix    string `json:"prefix"`
	Suffix    string `json:"suffix"`
}

var (
	backends     = []string{"none", "ollama", "llamacpp"}
	textStyles   = []string{"simple", "contextual", "trendy", "mixed"}
	memeStyles   = []string{"bubble", "comic", "modern", "neon", "retro"}
	imageFormats = []string{"png", "jpeg", "jpg", "webp"}
)

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Analyzer: AnalyzerConfig{
			Backend:     "none",
			URL:         "",
			Model:       "llava",
			SendMaxDim:  768,
			SendQuality: 85,
		},
		Caption: CaptionConfig{
			Style:              "mixed",
			IncludeTimeContext: true,
			IncludeEmoji:       true,
		},
		Compose: ComposeConfig{
			Style:        "bubble",
			MaxWidth:     1200,
			Quality:      0.9,
			AddWatermark: true,
			Watermark:    "MoodMeme.ai",
			FontSize:     24,
			FontFamily:   "go",
			Format:       "png",
		},
		Output: OutputConfig{
			OutputDir: "./output",
			Workers:   4,
			Debug:     false,
			Prefix:    "",
			Suffix:    "_meme",
		},
	}
}

// LoadFromFile loads configuration from a JSON file. Fields missing from
// the file keep their default values.
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overrides configuration from MOODMEME_* environment variables.
// A .env file in the working directory is loaded first when present;
// variables already set in the environment win over it.
func (c *Config) ApplyEnv() {
	_ = godotenv.Load()

	c.Analyzer.Backend = getEnv("MOODMEME_BACKEND", c.Analyzer.Backend)
	c.Analyzer.URL = getEnv("MOODMEME_URL", c.Analyzer.URL)
	c.Analyzer.Model = getEnv("MOODMEME_MODEL", c.Analyzer.Model)
	c.Analyzer.CascadePath = getEnv("MOODMEME_CASCADE", c.Analyzer.CascadePath)
	c.Analyzer.SendMaxDim = getEnvInt("MOODMEME_SEND_MAX_DIM", c.Analyzer.SendMaxDim)
	c.Analyzer.SendQuality = getEnvInt("MOODMEME_SEND_QUALITY", c.Analyzer.SendQuality)

	c.Caption.Style = getEnv("MOODMEME_TEXT_STYLE", c.Caption.Style)
	c.Caption.IncludeTimeContext = getEnvBool("MOODMEME_TIME_CONTEXT", c.Caption.IncludeTimeContext)
	c.Caption.IncludeEmoji = getEnvBool("MOODMEME_EMOJI", c.Caption.IncludeEmoji)

	c.Compose.Style = getEnv("MOODMEME_STYLE", c.Compose.Style)
	c.Compose.MaxWidth = getEnvInt("MOODMEME_MAX_WIDTH", c.Compose.MaxWidth)
	c.Compose.Quality = getEnvFloat("MOODMEME_QUALITY", c.Compose.Quality)
	c.Compose.AddWatermark = getEnvBool("MOODMEME_ADD_WATERMARK", c.Compose.AddWatermark)
	c.Compose.Watermark = getEnv("MOODMEME_WATERMARK", c.Compose.Watermark)
	c.Compose.FontSize = getEnvFloat("MOODMEME_FONT_SIZE", c.Compose.FontSize)
	c.Compose.FontFamily = getEnv("MOODMEME_FONT_FAMILY", c.Compose.FontFamily)
	c.Compose.Format = getEnv("MOODMEME_FORMAT", c.Compose.Format)

	c.Output.OutputDir = getEnv("MOODMEME_OUTPUT_DIR", c.Output.OutputDir)
	c.Output.Workers = getEnvInt("MOODMEME_WORKERS", c.Output.Workers)
	c.Output.Debug = getEnvBool("MOODMEME_DEBUG", c.Output.Debug)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if !oneOf(c.Analyzer.Backend, backends) {
		return fmt.Errorf("analyzer.backend must be one of %s", strings.Join(backends, ", "))
	}

	if c.Analyzer.Backend != "none" && c.Analyzer.Model == "" {
		return fmt.Errorf("analyzer.model is required for backend %s", c.Analyzer.Backend)
	}

	if c.Analyzer.SendMaxDim < 0 {
		return fmt.Errorf("analyzer.send_max_dim cannot be negative")
	}

	if c.Analyzer.SendQuality < 1 || c.Analyzer.SendQuality > 100 {
		return fmt.Errorf("analyzer.send_quality must be between 1 and 100")
	}

	if !oneOf(c.Caption.Style, textStyles) {
		return fmt.Errorf("caption.style must be one of %s", strings.Join(textStyles, ", "))
	}

	if !oneOf(c.Compose.Style, memeStyles) {
		return fmt.Errorf("compose.style must be one of %s", strings.Join(memeStyles, ", "))
	}

	if c.Compose.MaxWidth < 1 {
		return fmt.Errorf("compose.max_width must be positive")
	}

	if c.Compose.Quality <= 0 || c.Compose.Quality > 1 {
		return fmt.Errorf("compose.quality must be in (0, 1]")
	}

	if c.Compose.FontSize <= 0 {
		return fmt.Errorf("compose.font_size must be positive")
	}

	if !oneOf(c.Compose.Format, imageFormats) {
		return fmt.Errorf("compose.format must be one of %s", strings.Join(imageFormats, ", "))
	}

	if c.Output.Workers < 1 {
		return fmt.Errorf("output.workers must be positive")
	}

	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "moodmeme", "config.json")
}

func oneOf(value string, allowed []string) bool {
	value = strings.ToLower(value)
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
