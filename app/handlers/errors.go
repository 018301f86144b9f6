package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/weathersage/sage"
	"github.com/weathersage/sage/app/views"
	"github.com/weathersage/sage/middlewares"
	"github.com/weathersage/sage/pkg/query"
)

const (
	msgInternal = "Something went wrong while reading the skies."
	msgTimeout  = "The sage took too long to answer. Please try again."
	msgNotFound = "The page you're looking for doesn't exist."
	msgMethod   = "This HTTP method is not allowed for this resource."
)

// HandleError renders handler errors.
// HTMX requests get an inline message; others get a full error page.
func HandleError(c sage.Context, err error) error {
	herr := toHTTPError(err)
	herr.RequestID = middlewares.GetRequestID(c)

	if herr.Code >= http.StatusInternalServerError {
		c.LogError("request failed",
			slog.Int("status", herr.Code),
			slog.Any("error", err),
		)
	}

	return renderError(c, herr)
}

// HandleNotFound renders the 404 page.
func HandleNotFound(c sage.Context) error {
	return renderError(c, sage.NewHTTPError(http.StatusNotFound, msgNotFound,
		sage.WithRequestID(middlewares.GetRequestID(c))))
}

// HandleMethodNotAllowed renders the 405 page.
func HandleMethodNotAllowed(c sage.Context) error {
	return renderError(c, sage.NewHTTPError(http.StatusMethodNotAllowed, msgMethod,
		sage.WithRequestID(middlewares.GetRequestID(c))))
}

func renderError(c sage.Context, herr *sage.HTTPError) error {
	if c.IsHTMX() {
		return c.Render(herr.Code, views.ErrorContent(herr.Message))
	}

	page := views.ErrorPage(herr.Code, herr.StatusText(), herr.Message, herr.RequestID)
	if err := c.Page(herr.Code, page); err != nil {
		// The layout itself failed; serve the page without it.
		c.LogError("error page layout failed", slog.Any("error", err))
		return c.Render(herr.Code, page)
	}
	return nil
}

// toHTTPError maps an error to the status and message shown to users.
// Messages of unexpected errors are never shown.
func toHTTPError(err error) *sage.HTTPError {
	if herr := sage.AsHTTPError(err); herr != nil {
		return sage.NewHTTPError(herr.Code, herr.Message, sage.WithTitle(herr.Title), sage.WithError(err))
	}

	var qerr *query.Error
	if errors.As(err, &qerr) {
		msg := qerr.Message
		if qerr.Status() >= http.StatusInternalServerError && qerr.Code != query.CodeServiceUnavailable {
			msg = msgInternal
		}
		return sage.NewHTTPError(qerr.Status(), msg, sage.WithError(err))
	}

	// Recover and Timeout errors carry their own status.
	var coded interface{ StatusCode() int }
	if errors.As(err, &coded) {
		msg := msgInternal
		if middlewares.IsTimeoutError(err) {
			msg = msgTimeout
		}
		return sage.NewHTTPError(coded.StatusCode(), msg, sage.WithError(err))
	}

	return sage.NewHTTPError(http.StatusInternalServerError, msgInternal, sage.WithError(err))
}
