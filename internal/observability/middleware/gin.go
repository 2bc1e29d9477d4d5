package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/KasumiMercury/primind-slot-scheduler/internal/observability/logging"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/observability/metrics"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/observability/tracing"
)

type GinConfig struct {
	SkipPaths   []string
	Module      logging.Module
	TracerName  string
	HTTPMetrics *metrics.HTTPMetrics
}

// Gin traces, logs and measures every request and propagates the request id.
func Gin(cfg GinConfig) gin.HandlerFunc {
	tracer := otel.Tracer(cfg.TracerName)

	return func(c *gin.Context) {
		requestID := logging.ValidateAndExtractRequestID(c.GetHeader(logging.RequestIDHeader))
		c.Header(logging.RequestIDHeader, requestID)

		ctx := logging.WithRequestID(c.Request.Context(), requestID)
		ctx = tracing.ExtractFromHTTPRequest(ctx, c.Request)

		if slices.Contains(cfg.SkipPaths, c.Request.URL.Path) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
			return
		}

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}

		ctx, span := tracer.Start(ctx, c.Request.Method+" "+route,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.request.method", c.Request.Method),
				attribute.String("http.route", route),
				attribute.String("request_id", requestID),
			),
		)
		defer span.End()

		c.Request = c.Request.WithContext(ctx)
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		duration := time.Since(start)
		span.SetAttributes(attribute.Int("http.response.status_code", status))
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}

		cfg.HTTPMetrics.RecordRequest(ctx, c.Request.Method, route, status, duration)

		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		} else if status >= http.StatusBadRequest {
			level = slog.LevelWarn
		}
		slog.Default().With(slog.String("module", string(cfg.Module))).Log(ctx, level, "http request",
			slog.String("method", c.Request.Method),
			slog.String("route", route),
			slog.Int("status", status),
			slog.Duration("duration", duration),
		)
	}
}

// PanicRecoveryGin turns a handler panic into a 500 and records it.
func PanicRecoveryGin(httpMetrics *metrics.HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				ctx := c.Request.Context()
				route := c.FullPath()

				span := trace.SpanFromContext(ctx)
				span.RecordError(fmt.Errorf("panic: %v", rec))
				span.SetStatus(codes.Error, "panic")

				httpMetrics.RecordPanic(ctx, route)

				slog.ErrorContext(ctx, "panic recovered",
					slog.String("route", route),
					slog.String("panic", fmt.Sprint(rec)),
					slog.String("stack", string(debug.Stack())),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error":   "internal",
					"message": "internal server error",
				})
			}
		}()
		c.Next()
	}
}
