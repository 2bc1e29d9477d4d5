package logging

import (
	"context"
	"io"
	"log/slog"
	"regexp"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

type Environment string

const (
	EnvDev     Environment = "dev"
	EnvStaging Environment = "staging"
	EnvProd    Environment = "prod"
)

// Module names the functional area a log line belongs to.
type Module string

type ServiceInfo struct {
	Name     string
	Version  string
	Revision string
}

const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

var requestIDPattern = regexp.MustCompile(`^[A-Za-z0-9._:-]{1,128}$`)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}

// ValidateAndExtractRequestID returns the inbound id when it is well formed and a new one otherwise.
func ValidateAndExtractRequestID(requestID string) string {
	if requestIDPattern.MatchString(requestID) {
		return requestID
	}
	return uuid.NewString()
}

type HandlerConfig struct {
	Service       ServiceInfo
	Environment   Environment
	GCPProjectID  string
	DefaultModule Module
	Level         slog.Leveler
}

// NewLogger builds the JSON logger every component shares.
func NewLogger(w io.Writer, cfg HandlerConfig) *slog.Logger {
	level := cfg.Level
	if level == nil {
		level = slog.LevelInfo
		if cfg.Environment == EnvDev {
			level = slog.LevelDebug
		}
	}

	base := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	attrs := []slog.Attr{
		slog.String("service", cfg.Service.Name),
		slog.String("version", cfg.Service.Version),
		slog.String("env", string(cfg.Environment)),
	}
	if cfg.Service.Revision != "" {
		attrs = append(attrs, slog.String("revision", cfg.Service.Revision))
	}
	if cfg.DefaultModule != "" {
		attrs = append(attrs, slog.String("module", string(cfg.DefaultModule)))
	}

	return slog.New(&contextHandler{
		next:      base.WithAttrs(attrs),
		projectID: cfg.GCPProjectID,
	})
}

type contextHandler struct {
	next      slog.Handler
	projectID string
}

func (h *contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if requestID := RequestIDFromContext(ctx); requestID != "" {
		r.AddAttrs(slog.String("request_id", requestID))
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		r.AddAttrs(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
		r.AddAttrs(gcpTraceAttrs(ctx, h.projectID)...)
	}
	return h.next.Handle(ctx, r)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{next: h.next.WithAttrs(attrs), projectID: h.projectID}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{next: h.next.WithGroup(name), projectID: h.projectID}
}

// ParseLevel maps LOG_LEVEL values onto slog levels.
func ParseLevel(s string) (slog.Level, bool) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, false
	}
	return level, true
}
