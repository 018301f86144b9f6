package sage_test

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/require"

	"github.com/weathersage/sage"
)

// pagesHandler is a simple handler for testing.
type pagesHandler struct{}

func (h *pagesHandler) Routes(r sage.Router) {
	r.GET("/", h.home)
	r.GET("/broken", h.broken)
	r.GET("/missing", h.missing)
	r.GET("/panic-free/{name}", h.param)
	r.Route("/api", func(r sage.Router) {
		r.GET("/ping", h.ping)
	})
}

func (h *pagesHandler) home(c sage.Context) error {
	return c.Page(http.StatusOK, templ.Raw("<p>Hello</p>"))
}

func (h *pagesHandler) broken(c sage.Context) error {
	failing := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, _ = io.WriteString(w, "<p>half")
		return errors.New("render failed")
	})
	return c.Page(http.StatusOK, failing)
}

func (h *pagesHandler) missing(c sage.Context) error {
	return sage.NewHTTPError(http.StatusNotFound, "no such forecast")
}

func (h *pagesHandler) param(c sage.Context) error {
	return c.String(http.StatusOK, c.Param("name")+"|"+c.QueryDefault("q", "none"))
}

func (h *pagesHandler) ping(c sage.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func testLayout(children sage.Component) sage.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<html lang="en"><body>`); err != nil {
			return err
		}
		if err := children.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</body></html>")
		return err
	})
}

func do(t *testing.T, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestApp_Page(t *testing.T) {
	t.Parallel()

	app := sage.New(
		sage.WithLayout(testLayout),
		sage.WithHandlers(&pagesHandler{}),
	)

	t.Run("full page uses layout", func(t *testing.T) {
		t.Parallel()

		rec := do(t, app, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, `<html lang="en"><body><p>Hello</p></body></html>`, rec.Body.String())
		require.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	})

	t.Run("htmx request gets fragment", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("HX-Request", "true")
		rec := do(t, app, req)
		require.Equal(t, "<p>Hello</p>", rec.Body.String())
	})

	t.Run("boosted request gets full page", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("HX-Request", "true")
		req.Header.Set("HX-Boosted", "true")
		rec := do(t, app, req)
		require.True(t, strings.HasPrefix(rec.Body.String(), "<html"))
	})
}

func TestApp_PageWithoutLayout(t *testing.T) {
	t.Parallel()

	app := sage.New(sage.WithHandlers(&pagesHandler{}))
	rec := do(t, app, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, "<p>Hello</p>", rec.Body.String())
}

func TestApp_Errors(t *testing.T) {
	t.Parallel()

	t.Run("failed render writes nothing and reaches error handler", func(t *testing.T) {
		t.Parallel()

		var handled error
		app := sage.New(
			sage.WithLayout(testLayout),
			sage.WithHandlers(&pagesHandler{}),
			sage.WithErrorHandler(func(c sage.Context, err error) error {
				handled = err
				return c.String(http.StatusInternalServerError, "error page")
			}),
		)

		rec := do(t, app, httptest.NewRequest(http.MethodGet, "/broken", nil))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Equal(t, "error page", rec.Body.String())
		require.EqualError(t, handled, "render failed")
	})

	t.Run("default handler uses HTTPError code", func(t *testing.T) {
		t.Parallel()

		app := sage.New(sage.WithHandlers(&pagesHandler{}))
		rec := do(t, app, httptest.NewRequest(http.MethodGet, "/missing", nil))
		require.Equal(t, http.StatusNotFound, rec.Code)

		rec = do(t, app, httptest.NewRequest(http.MethodGet, "/broken", nil))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.NotContains(t, rec.Body.String(), "half")
	})

	t.Run("custom not found", func(t *testing.T) {
		t.Parallel()

		app := sage.New(
			sage.WithHandlers(&pagesHandler{}),
			sage.WithNotFoundHandler(func(c sage.Context) error {
				return c.String(http.StatusNotFound, "lost in the fog")
			}),
		)
		rec := do(t, app, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Equal(t, "lost in the fog", rec.Body.String())
	})

	t.Run("AsHTTPError unwraps", func(t *testing.T) {
		t.Parallel()

		base := errors.New("upstream")
		herr := sage.NewHTTPError(http.StatusServiceUnavailable, "try later",
			sage.WithError(base), sage.WithTitle("Cloudy"), sage.WithRequestID("r1"))
		wrapped := errors.Join(errors.New("ctx"), herr)

		got := sage.AsHTTPError(wrapped)
		require.NotNil(t, got)
		require.Equal(t, "Cloudy", got.StatusText())
		require.Equal(t, "r1", got.RequestID)
		require.ErrorIs(t, got, base)
		require.Nil(t, sage.AsHTTPError(base))
	})
}

func TestApp_RoutingHelpers(t *testing.T) {
	t.Parallel()

	app := sage.New(sage.WithHandlers(&pagesHandler{}))

	rec := do(t, app, httptest.NewRequest(http.MethodGet, "/panic-free/exeter?q=rain", nil))
	require.Equal(t, "exeter|rain", rec.Body.String())

	rec = do(t, app, httptest.NewRequest(http.MethodGet, "/panic-free/exeter", nil))
	require.Equal(t, "exeter|none", rec.Body.String())

	rec = do(t, app, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

type ctxKey struct{}

func TestApp_Middleware(t *testing.T) {
	t.Parallel()

	var order []string
	var mu sync.Mutex
	record := func(name string) sage.Middleware {
		return func(next sage.HandlerFunc) sage.HandlerFunc {
			return func(c sage.Context) error {
				mu.Lock()
				order = append(order, name)
				mu.Unlock()
				return next(c)
			}
		}
	}

	httpMW := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, "from-http")))
		})
	}

	var seen string
	app := sage.New(
		sage.WithHTTPMiddleware(httpMW),
		sage.WithMiddleware(record("first"), record("second")),
		sage.WithHandlers(handlerFunc(func(r sage.Router) {
			r.GET("/", func(c sage.Context) error {
				seen, _ = c.Value(ctxKey{}).(string)
				return c.NoContent(http.StatusNoContent)
			}, record("route"))
		})),
	)

	rec := do(t, app, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, []string{"first", "second", "route"}, order)
	require.Equal(t, "from-http", seen)
}

type handlerFunc func(r sage.Router)

func (f handlerFunc) Routes(r sage.Router) { f(r) }

func TestApp_ContextValues(t *testing.T) {
	t.Parallel()

	app := sage.New(sage.WithHandlers(handlerFunc(func(r sage.Router) {
		r.GET("/", func(c sage.Context) error {
			c.Set(ctxKey{}, 42)
			require.Equal(t, 42, sage.ContextValue[int](c, ctxKey{}))
			require.Empty(t, sage.ContextValue[string](c, ctxKey{}))
			return c.NoContent(http.StatusOK)
		})
	})))

	rec := do(t, app, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestApp_StaticFiles(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"assets/globals.css": {Data: []byte("body{}")},
	}
	app := sage.New(sage.WithStaticFiles("/static/", fsys, "assets"))

	rec := do(t, app, httptest.NewRequest(http.MethodGet, "/static/globals.css", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "body{}", rec.Body.String())
	require.Contains(t, rec.Header().Get("Cache-Control"), "immutable")

	rec = do(t, app, httptest.NewRequest(http.MethodGet, "/static/", nil))
	require.Equal(t, http.StatusNotFound, rec.Code, "no directory listing")
}

func TestApp_HealthChecks(t *testing.T) {
	t.Parallel()

	var healthy = true
	var mu sync.Mutex
	app := sage.New(sage.WithHealthChecks(
		sage.WithReadinessCheck("redis", func(context.Context) error {
			mu.Lock()
			defer mu.Unlock()
			if !healthy {
				return errors.New("down")
			}
			return nil
		}),
	))

	rec := do(t, app, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, app, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	mu.Lock()
	healthy = false
	mu.Unlock()

	rec = do(t, app, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestApp_Run(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	var mu sync.Mutex
	var events []string
	hook := func(name string) func(context.Context) error {
		return func(context.Context) error {
			mu.Lock()
			events = append(events, name)
			mu.Unlock()
			return nil
		}
	}

	app := sage.New(
		sage.WithHandlers(&pagesHandler{}),
		sage.WithStartupHook(hook("app-start")),
		sage.WithShutdownHook(hook("app-stop")),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- app.Run(addr,
			sage.WithContext(ctx),
			sage.StartupHook(hook("run-start")),
			sage.ShutdownHook(hook("run-stop")),
			sage.ShutdownTimeout(time.Second),
		)
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/api/ping")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"app-start", "run-start", "app-stop", "run-stop"}, events)
}

// slowHandler answers after a fixed delay.
type slowHandler struct{ delay time.Duration }

func (h slowHandler) Routes(r sage.Router) {
	r.GET("/slow", func(c sage.Context) error {
		time.Sleep(h.delay)
		return c.String(http.StatusOK, "done")
	})
	r.GET("/fast", func(c sage.Context) error {
		return c.String(http.StatusOK, "done")
	})
}

func TestApp_RunWriteTimeout(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	app := sage.New(sage.WithHandlers(slowHandler{delay: 300 * time.Millisecond}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- app.Run(addr,
			sage.WithContext(ctx),
			sage.WriteTimeout(50*time.Millisecond),
			sage.ShutdownTimeout(time.Second),
		)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/fast")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Get("http://" + addr + "/slow")
	if err == nil {
		_ = resp.Body.Close()
	}
	require.Error(t, err, "responses past the write timeout are cut off")
}

func TestApp_RunStartupFailure(t *testing.T) {
	t.Parallel()

	var stopped bool
	app := sage.New(
		sage.WithStartupHook(func(context.Context) error { return errors.New("no forecast key") }),
		sage.WithShutdownHook(func(context.Context) error { stopped = true; return nil }),
	)

	err := app.Run("127.0.0.1:0")
	require.EqualError(t, err, "no forecast key")
	require.True(t, stopped, "shutdown hooks run after a failed startup")
}
