// Package internal provides the core types and implementation for the Weather
// Sage web host.
//
// This package is internal and should not be used directly. Import
// "github.com/weathersage/sage" instead, which re-exports the public API.
//
// # Core Types
//
//   - App: Orchestrates HTTP routing, the page layout, and graceful shutdown
//   - Context: Provides request/response access and rendering helpers
//   - Router: Interface handlers use to declare routes
//   - Handler: Interface implemented by types that declare routes on a router
//   - HandlerFunc: Signature for individual route handlers that return errors
//   - Middleware: Wraps handlers to add cross-cutting concerns
//   - Layout: Wraps a page in the document shell
//
// # Pages and the Layout
//
// The App is configured with exactly one Layout. Context.Page invokes it once
// per full-page render, passing the page as its children:
//
//	func (h *Pages) home(c internal.Context) error {
//	    return c.Page(http.StatusOK, views.Home())
//	}
//
// HTMX requests skip the layout and receive the bare fragment. Values a
// layout's collaborators need per request (the query client) are installed
// by plain net/http middleware registered with WithHTTPMiddleware, so both
// paths see the same request-scoped instance.
//
// # Rendering
//
// Render buffers the component before writing. A component that fails leaves
// the response untouched and its error reaches the ErrorHandler, which can
// still choose a status code and render an error page.
//
// # Server Runtime
//
//	err := app.Run(":8080",
//	    internal.Logger(log),
//	    internal.StartupHook(warmer.Start),
//	    internal.ShutdownHook(warmer.Stop),
//	)
//
// SIGINT/SIGTERM trigger graceful shutdown: the HTTP server drains, then
// shutdown hooks run in registration order within the shutdown timeout.
package internal
