package sage

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/weathersage/sage/internal"
	"github.com/weathersage/sage/pkg/health"
	"github.com/weathersage/sage/pkg/logger"
)

// Type aliases - public API
type (
	// App orchestrates the application lifecycle.
	// It manages HTTP routing, middleware, the page layout, and graceful shutdown.
	App = internal.App

	// Router is the interface handlers use to declare routes.
	Router = internal.Router

	// Context provides request/response access and helper methods.
	Context = internal.Context

	// Handler declares routes on a router.
	Handler = internal.Handler

	// HandlerFunc is the signature for route handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc to add cross-cutting concerns.
	Middleware = internal.Middleware

	// ErrorHandler handles errors returned from handlers.
	ErrorHandler = internal.ErrorHandler

	// Layout wraps a page in the document shell.
	Layout = internal.Layout

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// Component is a renderable template.
	Component = internal.Component

	// HealthOption configures health check endpoints.
	HealthOption = internal.HealthOption

	// ContextExtractor extracts a slog attribute from context.
	ContextExtractor = logger.ContextExtractor

	// ResponseWriter wraps http.ResponseWriter with HTMX support.
	ResponseWriter = internal.ResponseWriter

	// HTTPError is an error carrying an HTTP status code.
	HTTPError = internal.HTTPError

	// HTTPErrorOption configures an HTTPError.
	HTTPErrorOption = internal.HTTPErrorOption
)

// ErrNilComponent is returned when rendering a nil component.
var ErrNilComponent = internal.ErrNilComponent

// Constructors

// New creates a new application with the given options.
// The App is immutable after creation.
//
// Example:
//
//	app := sage.New(
//	    sage.WithLayout(shell.Layout),
//	    sage.WithMiddleware(middlewares.RequestID()),
//	    sage.WithHandlers(handlers.NewPagesHandler()),
//	)
//
//	err := app.Run(":8080", sage.Logger(log))
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// App options

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithHTTPMiddleware adds plain net/http middleware that runs before any
// framework middleware.
func WithHTTPMiddleware(mw ...func(http.Handler) http.Handler) Option {
	return internal.WithHTTPMiddleware(mw...)
}

// WithHandlers registers handlers that declare routes.
// Each handler's Routes method is called during setup.
func WithHandlers(h ...Handler) Option {
	return internal.WithHandlers(h...)
}

// WithLayout sets the document shell used by Context.Page.
func WithLayout(l Layout) Option {
	return internal.WithLayout(l)
}

// WithStaticFiles mounts fsys/subDir at pattern.
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return internal.WithStaticFiles(pattern, fsys, subDir)
}

// WithErrorHandler sets a custom error handler for handler errors.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithNotFoundHandler sets a custom 404 handler.
func WithNotFoundHandler(h HandlerFunc) Option {
	return internal.WithNotFoundHandler(h)
}

// WithMethodNotAllowedHandler sets a custom 405 handler.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return internal.WithMethodNotAllowedHandler(h)
}

// WithHealthChecks enables /health/live and /health/ready.
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

// WithLogger sets the logger used by request contexts.
func WithLogger(l *slog.Logger) Option {
	return internal.WithLogger(l)
}

// WithStartupHook registers a function to run before serving requests.
func WithStartupHook(fn func(context.Context) error) Option {
	return internal.WithStartupHook(fn)
}

// WithShutdownHook registers a cleanup function to run during shutdown.
func WithShutdownHook(fn func(context.Context) error) Option {
	return internal.WithShutdownHook(fn)
}

// Health options

// WithLivenessPath sets a custom liveness endpoint path.
func WithLivenessPath(path string) HealthOption {
	return internal.WithLivenessPath(path)
}

// WithReadinessPath sets a custom readiness endpoint path.
func WithReadinessPath(path string) HealthOption {
	return internal.WithReadinessPath(path)
}

// WithReadinessCheck adds a named readiness check.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// Run options

// Logger sets the server logger.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout sets the graceful shutdown timeout. Default: 30s.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// WriteTimeout sets the HTTP server write timeout. Default: 60s.
func WriteTimeout(d time.Duration) RunOption {
	return internal.WriteTimeout(d)
}

// StartupHook registers a function to run during server startup.
func StartupHook(fn func(context.Context) error) RunOption {
	return internal.StartupHook(fn)
}

// ShutdownHook registers a cleanup function to run during shutdown.
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// WithContext sets the base context for signal handling.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

// Errors

// NewHTTPError creates an HTTPError.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

// AsHTTPError returns the HTTPError in err's chain, or nil.
func AsHTTPError(err error) *HTTPError {
	return internal.AsHTTPError(err)
}

// WithTitle sets the error page title.
func WithTitle(title string) HTTPErrorOption {
	return internal.WithTitle(title)
}

// WithRequestID attaches the request ID to the error.
func WithRequestID(id string) HTTPErrorOption {
	return internal.WithRequestID(id)
}

// WithError sets the wrapped error.
func WithError(err error) HTTPErrorOption {
	return internal.WithError(err)
}

// ContextValue returns the value stored under key, or the zero value of T.
func ContextValue[T any](c Context, key any) T {
	return internal.ContextValue[T](c, key)
}
