package middlewares

import (
	"log/slog"
	"runtime"

	"github.com/weathersage/sage/internal"
)

// DefaultStackSize bounds the captured stack trace, in bytes.
const DefaultStackSize = 4096

// RecoverConfig configures the recover middleware.
type RecoverConfig struct {
	StackSize         int
	DisablePrintStack bool
}

// RecoverOption configures RecoverConfig.
type RecoverOption func(*RecoverConfig)

// WithRecoverStackSize sets the maximum stack trace size.
func WithRecoverStackSize(size int) RecoverOption {
	return func(cfg *RecoverConfig) {
		if size > 0 {
			cfg.StackSize = size
		}
	}
}

// WithRecoverDisablePrintStack turns off stack capture.
func WithRecoverDisablePrintStack() RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.DisablePrintStack = true
	}
}

// Recover turns a handler panic into a *PanicError for the ErrorHandler.
func Recover(opts ...RecoverOption) internal.Middleware {
	cfg := &RecoverConfig{StackSize: DefaultStackSize}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				pe := &PanicError{Value: r}
				attrs := []any{
					slog.Any("panic", r),
					slog.String("method", c.Request().Method),
					slog.String("path", c.Request().URL.Path),
				}
				if !cfg.DisablePrintStack {
					buf := make([]byte, cfg.StackSize)
					pe.Stack = buf[:runtime.Stack(buf, false)]
					attrs = append(attrs, slog.String("stack", string(pe.Stack)))
				}

				c.LogError("panic recovered", attrs...)
				err = pe
			}()

			return next(c)
		}
	}
}
