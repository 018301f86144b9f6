// Package handlers declares the Weather Sage routes: the forecast pages, the
// query API and the error pages.
package handlers
