package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/clipsmith/clipsmith-go/internal/adapter"
	"github.com/clipsmith/clipsmith-go/internal/app"
	"github.com/clipsmith/clipsmith-go/internal/config"
	"github.com/clipsmith/clipsmith-go/internal/constants"
	"github.com/clipsmith/clipsmith-go/internal/domain"
	"github.com/clipsmith/clipsmith-go/internal/service"
	"github.com/clipsmith/clipsmith-go/internal/transcript"
	"github.com/clipsmith/clipsmith-go/internal/util"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

type cliOptions struct {
	platform  string
	length    string
	niche     string
	language  string
	sourceURL string
	pageURL   string
	outDir    string
	asJSON    bool
}

func main() {
	opts := cliOptions{}
	flag.StringVar(&opts.platform, "platform", "", "target platform (TikTok, Reels, Shorts)")
	flag.StringVar(&opts.length, "length", "", "preferred clip length (15s, 30s, 60s)")
	flag.StringVar(&opts.niche, "niche", "", "content niche, e.g. Podcast")
	flag.StringVar(&opts.language, "language", "", "output language")
	flag.StringVar(&opts.sourceURL, "source", "", "source video URL for download commands")
	flag.StringVar(&opts.pageURL, "url", "", "fetch the transcript from a web page instead of a file")
	flag.StringVar(&opts.outDir, "out", "", "directory to write per-clip metadata and a download script")
	flag.BoolVar(&opts.asJSON, "json", false, "print the raw analysis outcome as JSON")
	flag.Usage = usage
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := util.NewLogger(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	buildCtx, buildCancel := context.WithTimeout(context.Background(), 30*time.Second)
	container, err := app.Build(buildCtx, cfg, logger)
	buildCancel()
	if err != nil {
		logger.Error("Failed to assemble application services", zap.Error(err))
		os.Exit(1)
	}
	defer container.Close()

	settings := buildSettings(opts)
	if !settings.Platform.IsValid() {
		fmt.Fprintf(os.Stderr, "Unknown platform: %s\n", opts.platform)
		os.Exit(2)
	}
	if !settings.ClipLength.IsValid() {
		fmt.Fprintf(os.Stderr, "Unknown clip length: %s\n", opts.length)
		os.Exit(2)
	}

	ctx := context.Background()

	inputs := flag.Args()
	if opts.pageURL != "" {
		if len(inputs) > 0 {
			fmt.Fprintln(os.Stderr, "-url cannot be combined with file arguments")
			os.Exit(2)
		}
		if err := runPage(ctx, container, settings, opts); err != nil {
			logger.Error("Analysis failed", zap.Error(err))
			os.Exit(1)
		}
		return
	}

	if len(inputs) == 0 {
		inputs = []string{"-"}
	}

	if len(inputs) == 1 {
		if err := runOne(ctx, container, settings, opts, inputs[0]); err != nil {
			logger.Error("Analysis failed", zap.String("input", inputs[0]), zap.Error(err))
			os.Exit(1)
		}
		return
	}

	if failed := runBatch(ctx, container, settings, opts, inputs, os.Stdout); failed > 0 {
		logger.Error("Batch finished with failures", zap.Int("failed", failed))
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: clipsmith [flags] [transcript files...]

Analyzes transcripts for viral clip candidates. Reads from stdin when no
file is given; passing several files runs them as a batch. Use "-" for
stdin explicitly.

Flags:
`)
	flag.PrintDefaults()
}

func buildSettings(opts cliOptions) domain.AnalysisSettings {
	settings := domain.DefaultSettings()
	if opts.platform != "" {
		settings.Platform = domain.Platform(opts.platform)
	}
	if opts.length != "" {
		settings.ClipLength = domain.ClipLength(opts.length)
	}
	if opts.niche != "" {
		settings.Niche = opts.niche
	}
	if opts.language != "" {
		settings.Language = opts.language
	}
	settings.SourceURL = opts.sourceURL
	return settings
}

func runPage(ctx context.Context, container *app.Container, settings domain.AnalysisSettings, opts cliOptions) error {
	text, err := transcript.FetchFromURL(ctx, opts.pageURL)
	if err != nil {
		return err
	}
	return analyze(ctx, container, settings, opts, text, "", os.Stdout)
}

func runOne(ctx context.Context, container *app.Container, settings domain.AnalysisSettings, opts cliOptions, path string) error {
	text, err := transcript.LoadFile(path)
	if err != nil {
		return err
	}
	return analyze(ctx, container, settings, opts, text, "", os.Stdout)
}

// runBatch analyzes several transcript files concurrently. Each item buffers
// its own output and only the final print happens under the mutex, so the
// generation calls overlap up to the pool bound.
func runBatch(ctx context.Context, container *app.Container, settings domain.AnalysisSettings, opts cliOptions, paths []string, out io.Writer) int {
	p := pool.New().WithMaxGoroutines(constants.BatchConfig.Concurrency)

	var (
		outputMu sync.Mutex
		failed   int
	)

	for _, path := range paths {
		path := path
		p.Go(func() {
			var buf bytes.Buffer
			text, err := transcript.LoadFile(path)
			if err == nil {
				err = analyze(ctx, container, settings, opts, text, labelFor(path), &buf)
			}

			outputMu.Lock()
			defer outputMu.Unlock()
			if err != nil {
				container.Logger.Error("Batch item failed", zap.String("input", path), zap.Error(err))
				failed++
				return
			}
			fmt.Fprintf(out, "==> %s\n", path)
			buf.WriteTo(out)
		})
	}

	p.Wait()
	return failed
}

func analyze(ctx context.Context, container *app.Container, settings domain.AnalysisSettings, opts cliOptions, text, label string, out io.Writer) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("transcript is empty")
	}

	if settings.SourceURL != "" && container.Source != nil {
		// Lookup yields nil without error for URLs it cannot resolve.
		if video, err := container.Source.Lookup(ctx, settings.SourceURL); err != nil {
			container.Logger.Warn("Source lookup failed", zap.Error(err))
		} else if video != nil {
			fmt.Fprintf(out, "Source: %s / %s (%s)\n\n", video.Channel, video.Title, video.Duration)
		}
	}

	outcome, err := container.Analyzer.Analyze(ctx, text, settings)
	if err != nil {
		return err
	}

	if opts.asJSON {
		data, err := json.MarshalIndent(outcome, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
	} else {
		fmt.Fprintln(out, container.Formatter.FormatResult(outcome.Result, settings.SourceURL))
		if len(outcome.Flags) > 0 {
			fmt.Fprintln(out, container.Formatter.FormatFlags(outcome.Flags))
		}
	}

	if opts.outDir != "" {
		if err := exportOutcome(opts.outDir, label, outcome, settings.SourceURL); err != nil {
			return err
		}
	}

	return nil
}

// exportOutcome writes one metadata JSON per clip plus a download script
// when a source URL is available.
func exportOutcome(dir, label string, outcome *service.AnalysisOutcome, sourceURL string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	for i := range outcome.Result.Clips {
		clip := &outcome.Result.Clips[i]
		payload, err := adapter.ExportClipMetadata(clip)
		if err != nil {
			return err
		}
		name := clip.ClipID + ".json"
		if label != "" {
			name = label + "_" + name
		}
		if err := os.WriteFile(filepath.Join(dir, name), []byte(payload), 0o644); err != nil {
			return err
		}
	}

	commands := adapter.DownloadCommands(outcome.Result, sourceURL)
	if len(commands) == 0 {
		return nil
	}

	var script strings.Builder
	script.WriteString("#!/bin/sh\n")
	for i := range outcome.Result.Clips {
		if cmd, ok := commands[outcome.Result.Clips[i].ClipID]; ok {
			script.WriteString(cmd)
			script.WriteString("\n")
		}
	}

	scriptName := "download_clips.sh"
	if label != "" {
		scriptName = label + "_" + scriptName
	}
	return os.WriteFile(filepath.Join(dir, scriptName), []byte(script.String()), 0o755)
}

func labelFor(path string) string {
	if path == "-" {
		return "stdin"
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
