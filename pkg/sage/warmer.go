package sage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/weathersage/sage/pkg/logger"
)

// DefaultSchedule runs at the top of every hour.
const DefaultSchedule = "0 * * * *"

// WarmerOption configures a Warmer.
type WarmerOption func(*Warmer)

// WithWarmerLogger sets the logger.
func WithWarmerLogger(l *slog.Logger) WarmerOption {
	return func(w *Warmer) {
		if l != nil {
			w.logger = logger.Component(l, "warmer")
		}
	}
}

// WithWarmTimeout bounds each warm-up run. Default: 2 minutes.
func WithWarmTimeout(d time.Duration) WarmerOption {
	return func(w *Warmer) {
		if d > 0 {
			w.timeout = d
		}
	}
}

// WithWarmOnStart computes the summary immediately when the warmer starts.
func WithWarmOnStart() WarmerOption {
	return func(w *Warmer) {
		w.warmOnStart = true
	}
}

// Warmer precomputes the hourly summary on a cron schedule.
type Warmer struct {
	svc         *Service
	cron        *cron.Cron
	logger      *slog.Logger
	schedule    string
	timeout     time.Duration
	warmOnStart bool
}

// NewWarmer creates a warmer for svc. An empty schedule uses DefaultSchedule.
func NewWarmer(svc *Service, schedule string, opts ...WarmerOption) (*Warmer, error) {
	if schedule == "" {
		schedule = DefaultSchedule
	}

	w := &Warmer{
		svc:      svc,
		logger:   logger.NewNope(),
		schedule: schedule,
		timeout:  2 * time.Minute,
	}
	for _, opt := range opts {
		opt(w)
	}

	w.cron = cron.New(cron.WithLocation(svc.location))
	if _, err := w.cron.AddFunc(schedule, func() { w.Warm(context.Background()) }); err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidSchedule, schedule, err)
	}

	return w, nil
}

// Warm computes the current hour's summary, logging failures.
func (w *Warmer) Warm(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	start := time.Now()
	if _, err := w.svc.Summary(ctx); err != nil {
		w.logger.ErrorContext(ctx, "warm-up failed", slog.Any("error", err))
		return
	}
	w.logger.InfoContext(ctx, "summary warmed",
		slog.Time("hour", w.svc.Hour()),
		slog.Duration("duration", time.Since(start)),
	)
}

// Start starts the scheduler. It matches the startup hook signature.
func (w *Warmer) Start(ctx context.Context) error {
	w.cron.Start()
	w.logger.InfoContext(ctx, "warmer started", slog.String("schedule", w.schedule))

	if w.warmOnStart {
		go w.Warm(context.WithoutCancel(ctx))
	}
	return nil
}

// Stop stops the scheduler and waits for a running warm-up, bounded by ctx.
func (w *Warmer) Stop(ctx context.Context) error {
	done := w.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
