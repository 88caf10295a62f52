package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/DevOps-In-Motion/buildalert/core/config"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/trace"
)

func Setup(cfg config.Config) {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}
	if cfg.IsDevelopment() {
		opts.Level = slog.LevelDebug
	}

	if cfg.IsProduction() && cfg.OTel.Enabled() {
		handler = otelslog.NewHandler(
			cfg.OTel.ServiceName,
			otelslog.WithLoggerProvider(global.GetLoggerProvider()),
		)
	} else if cfg.IsProduction() {
		handler = NewRequestHandler(slog.NewJSONHandler(os.Stdout, opts))
	} else {
		handler = NewRequestHandler(slog.NewTextHandler(os.Stdout, opts))
	}

	slog.SetDefault(slog.New(handler))
}

// RequestHandler enriches every record with the OTel trace/span identifiers
// and the request-scoped fields carried in the context, so handlers and the
// pipeline never thread request_id through call signatures by hand.
type RequestHandler struct {
	slog.Handler
}

func NewRequestHandler(h slog.Handler) *RequestHandler {
	return &RequestHandler{Handler: h}
}

func (h *RequestHandler) Handle(ctx context.Context, r slog.Record) error {
	if span := trace.SpanFromContext(ctx); span.SpanContext().IsValid() {
		sc := span.SpanContext()
		r.AddAttrs(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}

	fields := GetLogFields(ctx)
	if fields.RequestID != "" {
		r.AddAttrs(slog.String("request_id", fields.RequestID))
	}
	if fields.Repo != "" {
		r.AddAttrs(slog.String("repo", fields.Repo))
	}
	if fields.Stage != "" {
		r.AddAttrs(slog.String("stage", fields.Stage))
	}
	if fields.Component != "" {
		r.AddAttrs(slog.String("component", fields.Component))
	}

	return h.Handler.Handle(ctx, r)
}

func (h *RequestHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &RequestHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *RequestHandler) WithGroup(name string) slog.Handler {
	return &RequestHandler{Handler: h.Handler.WithGroup(name)}
}
