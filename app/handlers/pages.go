package handlers

import (
	"net/http"
	"time"

	"github.com/weathersage/sage"
	"github.com/weathersage/sage/app/views"
	"github.com/weathersage/sage/middlewares"
	"github.com/weathersage/sage/pkg/query"
	pkgsage "github.com/weathersage/sage/pkg/sage"
)

// DefaultSummaryTimeout bounds the landing page and the HTMX summary
// refresh. It must stay below the server write timeout (60s by default).
const DefaultSummaryTimeout = 50 * time.Second

// PagesOption configures the page handler.
type PagesOption func(*PagesHandler)

// WithSummaryTimeout sets the timeout of the routes that compute a summary.
func WithSummaryTimeout(d time.Duration) PagesOption {
	return func(h *PagesHandler) {
		if d > 0 {
			h.timeout = d
		}
	}
}

// PagesHandler serves the forecast pages.
// Summaries are read through the request's query client, so the page and the
// provider rendered by the layout share one client.
type PagesHandler struct {
	timeout time.Duration
}

// NewPagesHandler creates the page handler.
func NewPagesHandler(opts ...PagesOption) *PagesHandler {
	h := &PagesHandler{timeout: DefaultSummaryTimeout}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes declares the page routes.
func (h *PagesHandler) Routes(r sage.Router) {
	r.GET("/", h.home, middlewares.Timeout(h.timeout))
	r.GET("/summary", h.summary, middlewares.Timeout(h.timeout))
}

// home renders the landing page inside the document shell.
func (h *PagesHandler) home(c sage.Context) error {
	sum, err := query.Call[pkgsage.Summary](c, pkgsage.ProcedureSummary, nil)
	if err != nil {
		return err
	}
	return c.Page(http.StatusOK, views.Home(sum))
}

// summary renders the summary card for HTMX polling.
// Plain browser requests are sent to the landing page.
func (h *PagesHandler) summary(c sage.Context) error {
	if !c.IsHTMX() {
		return c.Redirect(http.StatusSeeOther, "/")
	}

	sum, err := query.Call[pkgsage.Summary](c, pkgsage.ProcedureSummary, nil)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, views.SummaryCard(sum))
}
