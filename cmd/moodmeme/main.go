package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/menta2k/moodmeme"
	"github.com/menta2k/moodmeme/internal/config"
	"github.com/menta2k/moodmeme/internal/logging"
	"github.com/menta2k/moodmeme/internal/utils"
	"github.com/menta2k/moodmeme/pkg/caption"
	"github.com/menta2k/moodmeme/pkg/client"
	"github.com/menta2k/moodmeme/pkg/compose"
	"github.com/menta2k/moodmeme/pkg/detection"
	"github.com/menta2k/moodmeme/pkg/emotion"
	"github.com/menta2k/moodmeme/pkg/facefinder"
	"github.com/menta2k/moodmeme/pkg/llamacpp"
	"github.com/menta2k/moodmeme/pkg/ollama"
	"github.com/menta2k/moodmeme/pkg/processing"
)

// flags holds raw command-line values; only flags set explicitly override
// the configuration
type flags struct {
	in, outDir, configPath string
	style, textStyle       string
	backend, url, model    string
	cascade                string
	format                 string
	quality                float64
	maxWidth               int
	watermark              bool
	emoji, timeContext     bool
	text                   string
	workers                int
	debug                  bool
}

func main() {
	var f flags
	defaults := config.Default()

	flag.StringVar(&f.in, "in", "", "input image path, URL or directory (jpg/png/webp)")
	flag.StringVar(&f.outDir, "out", defaults.Output.OutputDir, "output directory")
	flag.StringVar(&f.configPath, "config", "", "config file (default "+config.GetConfigPath()+" when present)")

	flag.StringVar(&f.style, "style", defaults.Compose.Style, "meme style: bubble|comic|modern|neon|retro")
	flag.StringVar(&f.textStyle, "textstyle", defaults.Caption.Style, "caption style: simple|contextual|trendy|mixed")
	flag.StringVar(&f.text, "text", "", "caption text (skips caption selection)")
	flag.BoolVar(&f.emoji, "emoji", defaults.Caption.IncludeEmoji, "keep emoji in captions")
	flag.BoolVar(&f.timeContext, "time", defaults.Caption.IncludeTimeContext, "mix time-of-day phrases into captions")

	flag.StringVar(&f.backend, "backend", defaults.Analyzer.Backend, "face expression backend: none|ollama|llamacpp")
	flag.StringVar(&f.url, "url", "", "server URL (defaults: ollama=http://localhost:11434, llamacpp=http://localhost:8080)")
	flag.StringVar(&f.model, "model", defaults.Analyzer.Model, "vision model name")
	flag.StringVar(&f.cascade, "cascade", "", "pigo facefinder cascade file; faces are located locally before rating")

	flag.StringVar(&f.format, "format", defaults.Compose.Format, "output format: png|jpeg|webp")
	flag.Float64Var(&f.quality, "quality", defaults.Compose.Quality, "JPEG/WebP quality (0..1]")
	flag.IntVar(&f.maxWidth, "maxwidth", defaults.Compose.MaxWidth, "longest output side (px)")
	flag.BoolVar(&f.watermark, "watermark", defaults.Compose.AddWatermark, "draw the watermark")

	flag.IntVar(&f.workers, "workers", defaults.Output.Workers, "images processed concurrently")
	flag.BoolVar(&f.debug, "debug", false, "debug logging and face-region overlay images")

	flag.Parse()
	if f.in == "" {
		log.Fatalf("usage: %s -in photo.jpg|URL|dir [-style bubble|comic|modern|neon|retro] [-backend none|ollama|llamacpp] [-out outdir] [-format png|jpeg|webp]", filepath.Base(os.Args[0]))
	}

	level := slog.LevelInfo
	if f.debug {
		level = slog.LevelDebug
	}
	logger := logging.InitLogger(os.Stderr, level, false)

	cfg, err := loadConfig(f.configPath)
	if err != nil {
		log.Fatal(err)
	}
	cfg.ApplyEnv()
	applyFlags(cfg, f)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	if err := os.MkdirAll(cfg.Output.OutputDir, 0o755); err != nil {
		log.Fatal(err)
	}

	sources, err := collectSources(f.in)
	if err != nil {
		log.Fatal(err)
	}
	if len(sources) == 0 {
		log.Fatalf("no images found in %s", f.in)
	}

	finder := loadFinder(cfg.Analyzer.CascadePath, logger)
	model, err := buildModel(cfg.Analyzer, finder)
	if err != nil {
		log.Fatal(err)
	}

	gen := moodmeme.New(moodmeme.WithModel(model), moodmeme.WithLogger(logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if model != nil && !gen.Warmup(ctx) {
		logger.Warn("face model unavailable, memes use pixel analysis", slog.String("backend", cfg.Analyzer.Backend))
	}

	opts, err := generateOptions(cfg, f.text)
	if err != nil {
		log.Fatal(err)
	}

	r := &runner{
		gen:       gen,
		processor: processing.NewProcessor(),
		finder:    finder,
		cfg:       cfg,
		opts:      opts,
		logger:    logger,
	}

	var failed atomic.Int32
	var g errgroup.Group
	g.SetLimit(cfg.Output.Workers)
	for _, src := range sources {
		g.Go(func() error {
			if err := r.process(ctx, src); err != nil {
				failed.Add(1)
				logger.Error("meme failed", slog.String("source", src), slog.String("error", err.Error()))
			}
			return nil
		})
	}
	_ = g.Wait()

	logger.Info("done", slog.Int("images", len(sources)), slog.Int("failed", int(failed.Load())))
	if failed.Load() > 0 {
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	if def := config.GetConfigPath(); utils.FileExists(def) {
		return config.LoadFromFile(def)
	}
	return config.Default(), nil
}

func applyFlags(cfg *config.Config, f flags) {
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "out":
			cfg.Output.OutputDir = f.outDir
		case "style":
			cfg.Compose.Style = strings.ToLower(f.style)
		case "textstyle":
			cfg.Caption.Style = strings.ToLower(f.textStyle)
		case "emoji":
			cfg.Caption.IncludeEmoji = f.emoji
		case "time":
			cfg.Caption.IncludeTimeContext = f.timeContext
		case "backend":
			cfg.Analyzer.Backend = strings.ToLower(f.backend)
		case "url":
			cfg.Analyzer.URL = f.url
		case "model":
			cfg.Analyzer.Model = f.model
		case "cascade":
			cfg.Analyzer.CascadePath = f.cascade
		case "format":
			cfg.Compose.Format = strings.ToLower(f.format)
		case "quality":
			cfg.Compose.Quality = f.quality
		case "maxwidth":
			cfg.Compose.MaxWidth = f.maxWidth
		case "watermark":
			cfg.Compose.AddWatermark = f.watermark
		case "workers":
			cfg.Output.Workers = f.workers
		case "debug":
			cfg.Output.Debug = f.debug
		}
	})
}

func collectSources(in string) ([]string, error) {
	if utils.IsURL(in) || !utils.DirExists(in) {
		return []string{in}, nil
	}
	return utils.ListImageFiles(in)
}

func loadFinder(path string, logger *slog.Logger) *facefinder.Finder {
	if path == "" {
		return nil
	}
	finder, err := facefinder.NewFromFile(path)
	if err != nil {
		logger.Warn("face finder disabled", slog.String("cascade", path), slog.String("error", err.Error()))
		return nil
	}
	return finder
}

// buildModel returns nil when no backend is configured
func buildModel(cfg config.AnalyzerConfig, finder *facefinder.Finder) (emotion.FaceModel, error) {
	var visionClient client.VisionClient
	var err error

	switch cfg.Backend {
	case "", "none":
		return nil, nil
	case "ollama":
		visionClient, err = ollama.NewClient(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to create Ollama client: %w", err)
		}
	case "llamacpp":
		visionClient, err = llamacpp.NewClient(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to create llama.cpp client: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown backend: %s (use 'none', 'ollama' or 'llamacpp')", cfg.Backend)
	}

	opts := []detection.Option{detection.WithImageSize(cfg.SendMaxDim, cfg.SendQuality)}
	if finder != nil {
		opts = append(opts, detection.WithFaceLocator(finder))
	} else if cfg.CascadePath != "" {
		// An unusable cascade disables the model path rather than the
		// gate, so the heuristic takes over
		return unavailable{err: facefinder.ErrNoCascade}, nil
	}
	return detection.NewExpressionDetector(visionClient, cfg.Model, opts...), nil
}

// unavailable is a FaceModel that never loads
type unavailable struct{ err error }

func (u unavailable) Load(ctx context.Context) error { return u.err }

func (u unavailable) Detect(ctx context.Context, img image.Image) ([]emotion.Detection, error) {
	return nil, u.err
}

func generateOptions(cfg *config.Config, text string) (moodmeme.GenerateOptions, error) {
	format, err := compose.ParseFormat(cfg.Compose.Format)
	if err != nil {
		return moodmeme.GenerateOptions{}, err
	}

	opts := moodmeme.DefaultGenerateOptions()
	opts.Style = compose.ParseStyle(cfg.Compose.Style)
	opts.Text = text
	opts.Caption = caption.Options{
		Style:              caption.TextStyle(strings.ToLower(cfg.Caption.Style)),
		IncludeTimeContext: cfg.Caption.IncludeTimeContext,
		IncludeEmoji:       cfg.Caption.IncludeEmoji,
	}
	opts.Compose = compose.Options{
		MaxWidth:     cfg.Compose.MaxWidth,
		Quality:      cfg.Compose.Quality,
		AddWatermark: cfg.Compose.AddWatermark,
		Watermark:    cfg.Compose.Watermark,
		FontSize:     cfg.Compose.FontSize,
		FontFamily:   cfg.Compose.FontFamily,
		Format:       format,
	}
	return opts, nil
}

type runner struct {
	gen       *moodmeme.Generator
	processor *processing.Processor
	finder    *facefinder.Finder
	cfg       *config.Config
	opts      moodmeme.GenerateOptions
	logger    *slog.Logger
}

func (r *runner) process(ctx context.Context, src string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	img, err := r.processor.LoadImageSmart(src)
	if err != nil {
		return err
	}
	if err := r.processor.ValidateImage(img, 8); err != nil {
		return err
	}

	res, err := r.gen.Generate(ctx, img, r.opts)
	if err != nil {
		return err
	}

	out := r.cfg.Output
	paths := utils.MemeOutputPaths(src, out.OutputDir, out.Prefix, out.Suffix, res.Format.Extension())
	if err := os.WriteFile(paths.Meme, res.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write meme: %w", err)
	}

	js, err := json.MarshalIndent(res.Info(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	if err := os.WriteFile(paths.Metadata, js, 0o644); err != nil {
		return fmt.Errorf("failed to write metadata: %w", err)
	}

	r.logger.Info("wrote meme",
		slog.String("file", paths.Meme),
		slog.String("emotion", string(res.Emotion.Label)),
		slog.Float64("confidence", res.Emotion.Confidence),
		slog.Bool("face", res.Emotion.FaceDetected),
		slog.String("text", res.Text),
		slog.String("size", utils.FormatFileSize(int64(len(res.Data)))),
	)

	if out.Debug {
		var faces []image.Rectangle
		if r.finder != nil {
			faces = r.finder.Find(img)
		}
		overlay := r.processor.CreateDebugOverlay(img, res.FaceRegion, faces)
		if err := r.processor.SaveImage(overlay, paths.Debug, "png", 0, false); err != nil {
			// The meme itself was written
			r.logger.Warn("debug overlay save failed", slog.String("file", paths.Debug), slog.String("error", err.Error()))
		} else {
			r.logger.Debug("wrote debug overlay", slog.String("file", paths.Debug))
		}
	}
	return nil
}
