package htmx

import "net/http"

// Request headers sent by HTMX.
const (
	HeaderHXRequest = "HX-Request"
	HeaderHXTarget  = "HX-Target"
	HeaderHXBoosted = "HX-Boosted"
)

// Response headers understood by HTMX.
const (
	HeaderHXRedirect = "HX-Redirect"
	HeaderHXRefresh  = "HX-Refresh"
	HeaderHXTrigger  = "HX-Trigger"
)

// IsHTMX returns true if the request originated from HTMX.
// Boosted navigations are full page loads and are not treated as fragments.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get(HeaderHXRequest) == "true" && r.Header.Get(HeaderHXBoosted) != "true"
}

// Redirect performs a redirect for both HTMX and regular requests.
// HTMX needs a 2xx response; the browser follows HX-Redirect client-side.
func Redirect(w http.ResponseWriter, r *http.Request, targetURL string, status int) {
	if IsHTMX(r) {
		w.Header().Set(HeaderHXRedirect, targetURL)
		w.WriteHeader(http.StatusOK)
		return
	}

	http.Redirect(w, r, targetURL, status)
}

// Trigger sets the HX-Trigger response header so the client fires event.
func Trigger(w http.ResponseWriter, event string) {
	if event != "" {
		w.Header().Set(HeaderHXTrigger, event)
	}
}
