package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"thirdcoast.systems/tubemeta/cmd/api/internal/web"
	"thirdcoast.systems/tubemeta/internal/config"
	"thirdcoast.systems/tubemeta/internal/extract"
	"thirdcoast.systems/tubemeta/pkg/ytdlp"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("Starting metadata service")

	conf, err := config.LoadConfig(ctx)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Probe the yt-dlp binary up front so a missing install fails loudly at
	// startup instead of on the first request.
	probe := ytdlp.New()
	probe.Path = conf.YTDLPPath
	versionCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	version, err := probe.Version(versionCtx)
	cancel()
	if err != nil {
		slog.Warn("yt-dlp not reachable; extraction requests will fail", "path", conf.YTDLPPath, "error", err)
	} else {
		slog.Info("yt-dlp ready", "version", version)
	}

	e := web.NewWebserver(conf, extract.NewYTDLP(conf.YTDLPPath))

	addr := ":" + strconv.Itoa(conf.WebServerPort)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)
	}()

	slog.Info("Listening", "addr", addr)
	if err := e.Start(addr); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		// Echo returns an error on Shutdown; treat it as normal if context is done.
		if ctx.Err() != nil {
			return
		}
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
