package middlewares_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/weathersage/sage/internal"
	"github.com/weathersage/sage/pkg/htmx"
)

// testContext is a minimal internal.Context backed by a recorder.
type testContext struct {
	response http.ResponseWriter
	request  *http.Request
	values   map[any]any
	errors   []string
}

func newTestContext(w http.ResponseWriter, r *http.Request) *testContext {
	return &testContext{
		response: w,
		request:  r,
		values:   make(map[any]any),
	}
}

func (c *testContext) Request() *http.Request        { return c.request }
func (c *testContext) Response() http.ResponseWriter { return c.response }
func (c *testContext) Context() context.Context      { return c.request.Context() }
func (c *testContext) Param(string) string           { return "" }
func (c *testContext) Query(name string) string      { return c.request.URL.Query().Get(name) }

func (c *testContext) QueryDefault(name, defaultValue string) string {
	if v := c.Query(name); v != "" {
		return v
	}
	return defaultValue
}

func (c *testContext) Header(name string) string    { return c.request.Header.Get(name) }
func (c *testContext) SetHeader(name, value string) { c.response.Header().Set(name, value) }

func (c *testContext) JSON(code int, v any) error {
	c.response.WriteHeader(code)
	return json.NewEncoder(c.response).Encode(v)
}

func (c *testContext) String(code int, s string) error {
	c.response.WriteHeader(code)
	_, err := c.response.Write([]byte(s))
	return err
}

func (c *testContext) NoContent(code int) error { c.response.WriteHeader(code); return nil }

func (c *testContext) Redirect(code int, url string) error {
	http.Redirect(c.response, c.request, url, code)
	return nil
}

func (c *testContext) Error(code int, message string, opts ...internal.HTTPErrorOption) *internal.HTTPError {
	err := internal.NewHTTPError(code, message)
	for _, opt := range opts {
		opt(err)
	}
	return err
}

func (c *testContext) IsHTMX() bool { return htmx.IsHTMX(c.request) }

func (c *testContext) Render(code int, component internal.Component) error {
	c.response.WriteHeader(code)
	return component.Render(c.request.Context(), c.response)
}

func (c *testContext) Page(code int, page internal.Component) error { return c.Render(code, page) }
func (c *testContext) Written() bool                                { return false }
func (c *testContext) Logger() *slog.Logger                         { return slog.Default() }
func (c *testContext) LogDebug(string, ...any)                      {}
func (c *testContext) LogInfo(string, ...any)                       {}
func (c *testContext) LogWarn(msg string, _ ...any)                 { c.errors = append(c.errors, msg) }
func (c *testContext) LogError(msg string, _ ...any)                { c.errors = append(c.errors, msg) }

func (c *testContext) Set(key, value any) {
	c.values[key] = value
	c.request = c.request.WithContext(context.WithValue(c.request.Context(), key, value))
}

func (c *testContext) Get(key any) any { return c.values[key] }

func (c *testContext) ResponseWriter() *internal.ResponseWriter { return nil }
func (c *testContext) Deadline() (time.Time, bool)              { return c.request.Context().Deadline() }
func (c *testContext) Done() <-chan struct{}                    { return c.request.Context().Done() }
func (c *testContext) Err() error                               { return c.request.Context().Err() }
func (c *testContext) Value(key any) any                        { return c.request.Context().Value(key) }

var _ internal.Context = (*testContext)(nil)
