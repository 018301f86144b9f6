// Package logger builds the process *slog.Logger: JSON to stdout, optionally
// teed to Sentry, with request-scoped attributes pulled from the context.
//
// # Context Extractors
//
// A ContextExtractor reads one attribute from the context on every log call.
// The HTTP host registers the request ID extractor so entries logged with the
// request context carry "request_id":
//
//	log := logger.New(middlewares.RequestIDExtractor())
//	log.InfoContext(ctx, "summary served", slog.Time("hour", hour))
//	// {"level":"INFO","msg":"summary served","hour":"…","request_id":"…"}
//
// NewLogHandlerDecorator applies the same extraction to any slog.Handler.
//
// # Sentry
//
// NewWithSentry reads SentryConfig (env tags SENTRY_DSN, SENTRY_ENVIRONMENT,
// SENTRY_RELEASE, LOG_LEVEL). Errors become Sentry issues; warnings are sent as
// Sentry logs. Without a DSN only stdout is used:
//
//	log := logger.NewWithSentry(cfg.Log, middlewares.RequestIDExtractor())
//	app := sage.New(sage.WithShutdownHook(logger.SentryFlush()))
//
// # Components
//
// Component tags a child logger so the shell, the forecast client and the
// summariser can be filtered apart:
//
//	log = logger.Component(log, "forecast")
//
// NewNope discards everything and is the default for every constructor that
// takes an optional logger.
package logger
