// Package middlewares provides HTTP middleware for Weather Sage.
//
// # Request ID
//
// RequestID assigns an ID to each request for tracing. Upstream IDs from
// X-Request-ID style headers are kept; otherwise a UUID is generated.
//
//	app := sage.New(
//	    sage.WithLogger(logger.New(middlewares.RequestIDExtractor())),
//	    sage.WithMiddleware(middlewares.RequestID()),
//	)
//
// # Recover
//
// Recover converts panics into a *PanicError for the global ErrorHandler,
// so a panicking page still gets an error page instead of a dropped
// connection:
//
//	sage.WithErrorHandler(func(c sage.Context, err error) error {
//	    if pe, ok := middlewares.AsPanicError(err); ok {
//	        c.LogError("panic", "value", pe.Value)
//	    }
//	    return c.Page(http.StatusInternalServerError, views.ErrorPage(...))
//	})
//
// # Timeout
//
// Timeout bounds handler execution and returns a *TimeoutError when the
// deadline passes. The summary fragment uses it so a slow LLM reply turns
// into a retry hint rather than a hung request.
//
//	r.GET("/summary", h.summary, middlewares.Timeout(20*time.Second))
package middlewares
