// Package htmx detects HTMX requests and writes the few response headers the
// application relies on.
//
// Fragments such as the forecast summary card are refreshed with hx-get; the
// hosting framework uses IsHTMX to decide between a full document (rendered
// inside the root shell) and a bare fragment.
package htmx
