package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DevOps-In-Motion/buildalert/common/id"
	"github.com/DevOps-In-Motion/buildalert/common/logger"
	"github.com/DevOps-In-Motion/buildalert/common/otel"
	"github.com/DevOps-In-Motion/buildalert/core/config"
	"github.com/DevOps-In-Motion/buildalert/internal/chat"
	"github.com/DevOps-In-Motion/buildalert/internal/http/handler"
	httprouter "github.com/DevOps-In-Motion/buildalert/internal/http/router"
	"github.com/DevOps-In-Motion/buildalert/internal/llm"
	"github.com/DevOps-In-Motion/buildalert/internal/service"
)

func main() {
	fmt.Printf("%s\n", banner)
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		// Can't use slog yet, OTel failed before logger setup
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "buildalert starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)
	if err := id.Init(1); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	ollama, err := llm.NewClient(cfg.Ollama)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create ollama client", "error", err)
		os.Exit(1)
	}
	slog.InfoContext(ctx, "ollama configured", "url", cfg.Ollama.URL, "model", cfg.Ollama.Model)

	slack := chat.NewSlackClient(cfg.Slack, cfg.RequestTimeout)
	if !slack.Configured() {
		slog.WarnContext(ctx, "SLACK_BOT_TOKEN not set, notifications will fail until configured")
	}

	notifications := service.NewNotificationService(ollama, slack, slack, slog.Default())

	router := httprouter.Setup(httprouter.RouterConfig{
		ServiceName:  cfg.OTel.ServiceName,
		OTelEnabled:  cfg.OTel.Enabled(),
		IsProduction: cfg.IsProduction(),
	},
		handler.NewWebhookHandler(notifications),
		handler.NewHealthHandler(ollama, slack.Configured()),
	)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.Ollama.Timeout + 30*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

const banner = `
██████╗ ██╗   ██╗██╗██╗     ██████╗  █████╗ ██╗     ███████╗██████╗ ████████╗
██╔══██╗██║   ██║██║██║     ██╔══██╗██╔══██╗██║     ██╔════╝██╔══██╗╚══██╔══╝
██████╔╝██║   ██║██║██║     ██║  ██║███████║██║     █████╗  ██████╔╝   ██║
██╔══██╗██║   ██║██║██║     ██║  ██║██╔══██║██║     ██╔══╝  ██╔══██╗   ██║
██████╔╝╚██████╔╝██║███████╗██████╔╝██║  ██║███████╗███████╗██║  ██║   ██║
╚═════╝  ╚═════╝ ╚═╝╚══════╝╚═════╝ ╚═╝  ╚═╝╚══════╝╚══════╝╚═╝  ╚═╝   ╚═╝
`
