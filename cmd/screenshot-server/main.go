// Package main provides the CLI entry point for the screenshot server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ideamans/go-l10n"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/HollaG/youtube-screenshot-server/pkg/adapters/badgerquota"
	"github.com/HollaG/youtube-screenshot-server/pkg/adapters/ffmpegcapture"
	"github.com/HollaG/youtube-screenshot-server/pkg/adapters/filesink"
	"github.com/HollaG/youtube-screenshot-server/pkg/adapters/ggimaging"
	"github.com/HollaG/youtube-screenshot-server/pkg/adapters/httpfetch"
	"github.com/HollaG/youtube-screenshot-server/pkg/adapters/logger"
	"github.com/HollaG/youtube-screenshot-server/pkg/adapters/memquota"
	"github.com/HollaG/youtube-screenshot-server/pkg/adapters/mp4probe"
	"github.com/HollaG/youtube-screenshot-server/pkg/adapters/nullsink"
	"github.com/HollaG/youtube-screenshot-server/pkg/adapters/osfilesystem"
	"github.com/HollaG/youtube-screenshot-server/pkg/adapters/smartrenderer"
	"github.com/HollaG/youtube-screenshot-server/pkg/adapters/ytdlpsource"
	"github.com/HollaG/youtube-screenshot-server/pkg/adapters/ziparchive"
	"github.com/HollaG/youtube-screenshot-server/pkg/config"
	"github.com/HollaG/youtube-screenshot-server/pkg/orchestrator"
	"github.com/HollaG/youtube-screenshot-server/pkg/ports"
	"github.com/HollaG/youtube-screenshot-server/pkg/server"
	"github.com/HollaG/youtube-screenshot-server/pkg/stages/compose"
	"github.com/HollaG/youtube-screenshot-server/pkg/stages/crop"
	"github.com/HollaG/youtube-screenshot-server/pkg/stages/extract"
	"github.com/HollaG/youtube-screenshot-server/pkg/stages/fetch"
	"github.com/HollaG/youtube-screenshot-server/pkg/stages/pack"
	"github.com/HollaG/youtube-screenshot-server/pkg/stages/probe"
	"github.com/HollaG/youtube-screenshot-server/pkg/workspace"
)

var version = "dev"

func main() {
	// Load .env file if it exists; environment variables may also be set
	// directly.
	godotenv.Load()

	app := &cli.App{
		Name:    "screenshot-server",
		Usage:   "Capture video frames at timestamps and deliver them as a ZIP with a composed PDF",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML configuration file",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error, quiet)",
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			runCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration from the optional file
// and CLI overrides.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Defaults()

	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
		cfg = loaded
	}

	if level := c.String("log-level"); level != "" {
		cfg.LogLevel = level
	}
	return cfg, nil
}

// components bundles everything needed to run the pipeline.
type components struct {
	orch    *orchestrator.Orchestrator
	quota   ports.QuotaStore
	source  ports.VideoSource
	cleanup func() error
}

// buildComponents wires adapters, stages and the orchestrator from config.
func buildComponents(cfg config.Config, log ports.Logger) (*components, error) {
	fs := osfilesystem.New()
	imaging := ggimaging.New()
	source := ytdlpsource.New(cfg.Tools.YtdlpPath, log)
	downloader := httpfetch.New(cfg.ReadTimeout())
	capturer := ffmpegcapture.New(cfg.Tools.FFmpegPath, cfg.Tools.FFprobePath, log)
	prober := mp4probe.New()
	archiver := ziparchive.New()

	renderer, info, err := smartrenderer.New(smartrenderer.Options{
		ChromePath:    cfg.Tools.ChromePath,
		AllowFallback: cfg.Tools.RendererFallback,
		Logger:        log,
	})
	if err != nil {
		return nil, fmt.Errorf("select renderer: %w", err)
	}
	log.Debug("Using %s renderer backend", string(info.Backend))

	var sink ports.DebugSink
	if cfg.Debug.Enabled {
		if err := fs.MkdirAll(cfg.Debug.Dir); err != nil {
			return nil, fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(cfg.Debug.Dir, fs)
	} else {
		sink = nullsink.New()
	}

	var quota ports.QuotaStore
	cleanup := func() error { return nil }
	switch strings.ToLower(cfg.Quota.Store) {
	case "badger":
		store, err := badgerquota.Open(cfg.Quota.BadgerDir, cfg.Quota.Limit, cfg.QuotaWindow())
		if err != nil {
			return nil, err
		}
		quota = store
		cleanup = store.Close
	default:
		quota = memquota.New(cfg.Quota.Limit, cfg.QuotaWindow())
	}

	workspaces := workspace.NewManager(cfg.Pipeline.WorkspaceRoot, fs)

	orch := orchestrator.New(
		fetch.NewStage(source, downloader, log, cfg.RetryDelay()),
		probe.NewStage(capturer, prober, log),
		extract.NewStage(capturer, fs, sink, log),
		crop.NewStage(imaging, fs, sink, log, cfg.Pipeline.CropWorkers),
		compose.NewStage(renderer, fs, sink, log, compose.Options{
			PageWidthPx:        cfg.Document.PageWidthPx,
			MarginVerticalPx:   cfg.Document.MarginVerticalPx,
			MarginHorizontalPx: cfg.Document.MarginHorizontalPx,
			RenderTimeout:      cfg.RenderTimeout(),
		}),
		pack.NewStage(archiver, fs, log),
		source,
		quota,
		workspaces,
		sink,
		log,
		orchestrator.Config{
			RequestTimeout: cfg.RequestTimeout(),
			KeepWorkspace:  cfg.Pipeline.KeepWorkspace,
		},
	)

	return &components{
		orch:    orch,
		quota:   quota,
		source:  source,
		cleanup: cleanup,
	}, nil
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "listen",
				Usage: "Listen address (overrides config)",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			if addr := c.String("listen"); addr != "" {
				cfg.Server.ListenAddr = addr
			}

			base := logrus.New()
			base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
			if lv, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
				base.SetLevel(lv)
			}
			log := logger.NewLogrus(base, ports.ParseLogLevel(cfg.LogLevel))

			comps, err := buildComponents(cfg, log)
			if err != nil {
				return err
			}
			defer comps.cleanup()

			srv := server.NewServer(cfg.Server, comps.orch, comps.quota, comps.source, base)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Start()
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				log.Warn(l10n.T("Interrupted, shutting down..."))
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			}
		},
	}
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run one capture job from the command line",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "url",
				Usage:    "Video URL to capture",
				Required: true,
			},
			&cli.Float64SliceFlag{
				Name:     "timestamp",
				Aliases:  []string{"t"},
				Usage:    "Timestamp in seconds (repeatable)",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   "screenshots.zip",
				Usage:   "Output ZIP file path",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Save intermediate artifacts to the debug directory",
			},
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "Suppress all log output",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			if c.Bool("debug") {
				cfg.Debug.Enabled = true
			}

			var log ports.Logger
			if c.Bool("quiet") {
				log = logger.NewNoop()
			} else {
				log = logger.NewConsole(ports.ParseLogLevel(cfg.LogLevel))
			}

			comps, err := buildComponents(cfg, log)
			if err != nil {
				return err
			}
			defer comps.cleanup()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			result, err := comps.orch.Run(ctx, orchestrator.Request{
				Identity:   "local",
				SourceURL:  c.String("url"),
				Timestamps: c.Float64Slice("timestamp"),
			})
			if err != nil {
				return err
			}

			outputPath := c.String("output")
			if err := os.WriteFile(outputPath, result.Archive, 0644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			log.Info(l10n.F("Output saved to %s", outputPath))
			return nil
		},
	}
}
