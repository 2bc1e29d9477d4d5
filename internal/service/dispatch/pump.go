package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const defaultRunTimeout = time.Minute

// Pump runs Dispatch on a cron schedule. Runs never overlap: a tick that
// fires while the previous run is still going is skipped.
type Pump struct {
	cron       *cron.Cron
	service    *Service
	runTimeout time.Duration
}

func NewPump(service *Service, spec string, runTimeout time.Duration) (*Pump, error) {
	if runTimeout <= 0 {
		runTimeout = defaultRunTimeout
	}

	logger := cronLogger{}
	p := &Pump{
		cron: cron.New(
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		service:    service,
		runTimeout: runTimeout,
	}

	if _, err := p.cron.AddFunc(spec, p.run); err != nil {
		return nil, fmt.Errorf("parse dispatch schedule %q: %w", spec, err)
	}
	return p, nil
}

func (p *Pump) Start() {
	p.cron.Start()
}

// Stop prevents further runs and waits for the current one, bounded by ctx.
func (p *Pump) Stop(ctx context.Context) error {
	done := p.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pump) run() {
	ctx, cancel := context.WithTimeout(context.Background(), p.runTimeout)
	defer cancel()

	result, err := p.service.Dispatch(ctx)
	if err != nil {
		attrs := []any{slog.String("error", err.Error())}
		if result != nil {
			attrs = append(attrs,
				slog.Int("dispatched_count", result.DispatchedCount),
				slog.Int("failed_count", result.FailedCount),
			)
		}
		slog.WarnContext(ctx, "scheduled dispatch failed", attrs...)
	}
}

// cronLogger routes cron's internal logging to slog.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...any) {
	slog.Debug("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...any) {
	slog.Error("cron: "+msg, append([]any{slog.String("error", err.Error())}, keysAndValues...)...)
}
