// Package sage is the web host of Weather Sage.
//
// It wraps chi with a small handler model: handlers return errors, pages are
// rendered as templ components, and one configured Layout wraps every full
// page. The root document shell lives in pkg/shell; the data-fetching client
// the shell provides to pages lives in pkg/query.
//
// # Quick Start
//
//	router := query.NewRouter()
//	svc.Register(router)
//	link := query.LocalLink(router)
//
//	s := shell.New(shell.WithProvider(query.NewProvider(query.WithLink(link))))
//
//	app := sage.New(
//	    sage.WithLayout(func(children sage.Component) sage.Component {
//	        return s.Layout(children)
//	    }),
//	    sage.WithHTTPMiddleware(query.Middleware(link)),
//	    sage.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    sage.WithStaticFiles("/static/", shell.Assets(), "assets"),
//	    sage.WithHandlers(handlers.NewPages(), handlers.NewAPI(router)),
//	    sage.WithHealthChecks(),
//	)
//
//	err := app.Run(":8080", sage.Logger(log))
//
// # Handlers
//
//	type Pages struct{}
//
//	func (h *Pages) Routes(r sage.Router) {
//	    r.GET("/", h.home)
//	}
//
//	func (h *Pages) home(c sage.Context) error {
//	    return c.Page(http.StatusOK, views.Home())
//	}
//
// Page renders the component inside the Layout. HTMX requests get the bare
// component so it can be swapped into the current document.
//
// # Errors
//
// A handler error reaches the ErrorHandler. Return an *HTTPError to choose
// the status code; other errors map to 500. Rendering is buffered, so a
// component that fails halfway never leaves a partial document behind.
//
// # Shutdown
//
// SIGINT and SIGTERM drain the HTTP server, then run shutdown hooks in
// registration order within ShutdownTimeout.
package sage
