package middlewares

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/weathersage/sage/internal"
)

// DefaultTimeout is the default request timeout.
const DefaultTimeout = 30 * time.Second

// TimeoutConfig configures the timeout middleware.
type TimeoutConfig struct {
	Timeout time.Duration
}

// TimeoutOption configures TimeoutConfig.
type TimeoutOption func(*TimeoutConfig)

// ErrResponseClosed is returned to a handler that writes after its request
// timed out. The response belongs to the error handler by then.
var ErrResponseClosed = errors.New("middlewares: response closed after timeout")

// Timeout returns middleware that enforces a request timeout.
// If the handler does not complete within the timeout, a TimeoutError is returned
// to be handled by the global ErrorHandler.
//
// The handler runs with a request context carrying the deadline, so calls
// made with c.Context() are cancelled too. The handler goroutine itself keeps
// running until it returns. Once the deadline passes, the response helpers of
// its Context (Render, Page, JSON, String, NoContent, Redirect) return
// ErrResponseClosed instead of writing. Writes made directly through
// Response() or ResponseWriter() are not guarded.
func Timeout(timeout time.Duration, opts ...TimeoutOption) internal.Middleware {
	cfg := &TimeoutConfig{
		Timeout: timeout,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			ctx, cancel := context.WithTimeout(c.Context(), cfg.Timeout)
			defer cancel()

			tc := &timeoutContext{requestContext: c, ctx: ctx}

			done := make(chan error, 1)
			go func() {
				done <- next(tc)
			}()

			select {
			case err := <-done:
				return err
			case <-ctx.Done():
				tc.close()
				if errors.Is(ctx.Err(), context.DeadlineExceeded) {
					c.LogWarn("request timeout", "timeout", cfg.Timeout.String())
					return &TimeoutError{Duration: cfg.Timeout}
				}
				return ctx.Err()
			}
		}
	}
}

// requestContext names the embedded field so Context() can be overridden.
type requestContext = internal.Context

// timeoutContext overrides the request context seen by the handler.
// Response helpers hold mu while writing, so close waits for a write in
// progress and blocks every later one.
type timeoutContext struct {
	requestContext
	ctx    context.Context
	mu     sync.Mutex
	closed bool
}

func (c *timeoutContext) Context() context.Context    { return c.ctx }
func (c *timeoutContext) Deadline() (time.Time, bool) { return c.ctx.Deadline() }
func (c *timeoutContext) Done() <-chan struct{}       { return c.ctx.Done() }
func (c *timeoutContext) Err() error                  { return c.ctx.Err() }
func (c *timeoutContext) Value(key any) any           { return c.ctx.Value(key) }

func (c *timeoutContext) close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

func (c *timeoutContext) write(fn func() error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrResponseClosed
	}
	return fn()
}

func (c *timeoutContext) Render(code int, component internal.Component) error {
	return c.write(func() error { return c.requestContext.Render(code, component) })
}

func (c *timeoutContext) Page(code int, page internal.Component) error {
	return c.write(func() error { return c.requestContext.Page(code, page) })
}

func (c *timeoutContext) JSON(code int, v any) error {
	return c.write(func() error { return c.requestContext.JSON(code, v) })
}

func (c *timeoutContext) String(code int, s string) error {
	return c.write(func() error { return c.requestContext.String(code, s) })
}

func (c *timeoutContext) NoContent(code int) error {
	return c.write(func() error { return c.requestContext.NoContent(code) })
}

func (c *timeoutContext) Redirect(code int, url string) error {
	return c.write(func() error { return c.requestContext.Redirect(code, url) })
}
