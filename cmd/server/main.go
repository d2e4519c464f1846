package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benvon/wifi-api/internal/config"
	"github.com/benvon/wifi-api/internal/devreload"
	"github.com/benvon/wifi-api/internal/logger"
	"github.com/benvon/wifi-api/internal/server"
	"github.com/benvon/wifi-api/internal/telemetry"
	"github.com/benvon/wifi-api/internal/version"
	"go.uber.org/zap"
)

func main() {
	debugFlag := flag.Bool("debug", false, "Enable debug logging (includes CORS decisions)")
	configPath := flag.String("config", os.Getenv(config.ConfigPathEnv), "Path to a YAML config file")
	noReload := flag.Bool("no-reload", false, "Disable restarting when the binary or watched paths change")
	flag.Parse()

	cfg, err := config.LoadFile(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	cfg.ServerDebugMode = cfg.ServerDebugMode || *debugFlag
	if *noReload {
		cfg.ServerReload = false
	}

	zapLogger, err := logger.New(cfg.LogFormat, cfg.ServerDebugMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() {
		// Sync on stderr returns EINVAL on some platforms
		_ = logger.Sync(zapLogger)
	}()

	reloads := reloadCount()
	zapLogger.Info("starting_server",
		zap.String("version", version.Version),
		zap.String("addr", cfg.Addr()),
		zap.Bool("debug_mode", cfg.ServerDebugMode),
		zap.Bool("reload", cfg.ServerReload),
		zap.Int("reload_count", reloads),
		zap.Strings("allowed_origins", cfg.AllowedOrigins),
		zap.Bool("otel_enabled", cfg.OTELEnabled),
	)

	tracing := false
	if cfg.OTELEnabled {
		if cfg.OTELEndpoint == "" {
			zapLogger.Warn("otel_enabled_but_endpoint_not_configured")
		} else {
			tp, err := telemetry.InitTracer(context.Background(), telemetry.ServiceName, version.Version, cfg.OTELEndpoint)
			if err != nil {
				zapLogger.Warn("failed_to_initialize_otel_tracer", zap.Error(err))
			} else {
				tracing = true
				zapLogger.Info("otel_tracer_initialized", zap.String("endpoint", cfg.OTELEndpoint))
				defer func() {
					shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer shutdownCancel()
					if err := telemetry.Shutdown(shutdownCtx, tp); err != nil {
						zapLogger.Error("failed_to_shutdown_otel_tracer", zap.Error(err))
					}
				}()
			}
		}
	}

	srv, err := server.New(cfg, zapLogger, server.WithTracing(tracing))
	if err != nil {
		zapLogger.Fatal("failed_to_build_server", zap.Error(err))
	}
	if m := srv.Metrics(); m != nil && reloads > 0 {
		m.ReloadsTotal.Add(float64(reloads))
	}

	ln, err := srv.Listen()
	if err != nil {
		zapLogger.Fatal("server_failed_to_start", zap.Error(err))
	}

	go func() {
		if err := srv.Serve(ln); err != nil {
			zapLogger.Fatal("server_failed", zap.Error(err))
		}
	}()

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()

	changed := make(chan string, 1)
	if cfg.ServerReload {
		paths := watchPaths(cfg, zapLogger)
		watcher := devreload.NewWatcher(paths, cfg.ReloadInterval, zapLogger, func(path string) {
			select {
			case changed <- path:
			default:
			}
		})
		go watcher.Start(watchCtx)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	restart := false
	shutdownTimeout := 30 * time.Second
	select {
	case sig := <-quit:
		zapLogger.Info("server_shutting_down", zap.String("signal", sig.String()))
	case path := <-changed:
		zapLogger.Info("server_reloading", zap.String("changed", path))
		restart = true
		shutdownTimeout = 5 * time.Second
	}
	watchCancel()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("server_forced_to_shutdown", zap.Error(err))
	}

	if restart {
		_ = logger.Sync(zapLogger)
		if err := restartProcess(reloads + 1); err != nil {
			zapLogger.Fatal("server_reload_failed", zap.Error(err))
		}
	}

	zapLogger.Info("server_exited")
}
