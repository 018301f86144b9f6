package internal

// Handler declares routes on a router.
//
// Example:
//
//	type PagesHandler struct {
//	    summaries *sage.Service
//	}
//
//	func (h *PagesHandler) Routes(r sage.Router) {
//	    r.GET("/", h.home)
//	    r.GET("/summary", h.summary)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the signature for route handlers.
// It receives a Context and returns an error.
// Returning a non-nil error triggers the error handler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler handles errors returned from handlers.
type ErrorHandler func(Context, error) error

// Layout wraps a page component in the document shell.
// It is called once per full-page render with the page as its children.
type Layout func(children Component) Component
