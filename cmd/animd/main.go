package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"animd/internal/catalog"
	"animd/internal/common/fsutil"
	"animd/internal/config"
	"animd/internal/httpapi"
	"animd/internal/sched"
	"animd/internal/wsbridge"
)

func main() {
	// Flags with environment variable defaults
	defaultAddr := ":8089"
	if v := os.Getenv("ANIMD_ADDR"); v != "" {
		defaultAddr = v
	}
	defaultLevel := "info"
	if v := os.Getenv("ANIMD_LOG_LEVEL"); v != "" {
		defaultLevel = v
	}
	addr := flag.String("addr", defaultAddr, "HTTP listen address, e.g. :8089")
	configPath := flag.String("config", os.Getenv("ANIMD_CONFIG"), "Config file path (.yaml/.yml/.json/.toml)")
	catalogPath := flag.String("catalog", os.Getenv("ANIMD_CATALOG"), "Effect catalog overriding built-in durations and curves")
	logLevel := flag.String("log-level", defaultLevel, "Log level: debug, info, warn or error")
	corsEnabled := flag.Bool("cors-enabled", false, "Enable CORS for cross-origin UI pages")
	corsOrigins := flag.String("cors-origins", "", "Comma-separated allowed origins (implies --cors-enabled)")
	flag.Parse()

	explicit := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	var cfg config.Config
	if *configPath != "" {
		fatalLog := zerolog.New(os.Stderr)
		path, err := fsutil.ExpandHome(*configPath)
		if err != nil {
			fatalLog.Fatal().Err(err).Str("path", *configPath).Msg("resolve config path")
		}
		c, err := config.Load(path)
		if err != nil {
			fatalLog.Fatal().Err(err).Str("path", path).Msg("load config")
		}
		cfg = c
	}
	// Explicit flags win over the config file.
	if cfg.Addr == "" || explicit["addr"] {
		cfg.Addr = *addr
	}
	if cfg.CatalogPath == "" || explicit["catalog"] {
		cfg.CatalogPath = *catalogPath
	}
	if cfg.LogLevel == "" || explicit["log-level"] {
		cfg.LogLevel = *logLevel
	}

	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(lvl)

	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		path, err := fsutil.ExpandHome(cfg.CatalogPath)
		if err != nil {
			logger.Fatal().Err(err).Str("path", cfg.CatalogPath).Msg("resolve catalog path")
		}
		if !fsutil.PathExists(path) {
			logger.Fatal().Str("path", path).Msg("catalog file not found")
		}
		cat, err = catalog.Load(path)
		if err != nil {
			logger.Fatal().Err(err).Str("path", path).Msg("load catalog")
		}
	}

	origins := cfg.AllowedOrigins
	if explicit["cors-origins"] || len(origins) == 0 {
		origins = splitCSV(*corsOrigins)
	}
	if *corsEnabled || len(origins) > 0 {
		httpapi.SetCORSOptions(true, origins,
			[]string{"GET", "POST", "DELETE", "OPTIONS"},
			[]string{"Content-Type", "X-Log-Level"})
	}

	// The websocket bridge doubles as renderer and event sink.
	bridge := wsbridge.New(logger)
	s := sched.NewWithConfig(sched.Config{
		Renderer:         bridge,
		Catalog:          cat,
		Logger:           &logger,
		Events:           bridge,
		FrameInterval:    time.Duration(cfg.FrameIntervalMs) * time.Millisecond,
		Backoff:          time.Duration(cfg.BackoffMs) * time.Millisecond,
		CompletionBuffer: time.Duration(cfg.CompletionBufferMs) * time.Millisecond,
	})

	httpapi.SetLogger(logger)
	mux := httpapi.NewMux(s, bridge)
	srv := &http.Server{Addr: cfg.Addr, Handler: mux}

	go func() {
		logger.Info().Str("addr", cfg.Addr).Msg("animd listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown")
	}
	s.Close()
	bridge.Close()
}

// splitCSV splits a comma-separated flag value, dropping blank entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
