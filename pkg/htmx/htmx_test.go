package htmx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/weathersage/sage/pkg/htmx"
)

func TestIsHTMX(t *testing.T) {
	t.Parallel()

	t.Run("plain request", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		require.False(t, htmx.IsHTMX(req))
	})

	t.Run("htmx request", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(htmx.HeaderHXRequest, "true")
		require.True(t, htmx.IsHTMX(req))
	})

	t.Run("boosted navigation is a full page", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(htmx.HeaderHXRequest, "true")
		req.Header.Set(htmx.HeaderHXBoosted, "true")
		require.False(t, htmx.IsHTMX(req))
	})
}

func TestRedirect(t *testing.T) {
	t.Parallel()

	t.Run("regular request uses Location", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		htmx.Redirect(rec, req, "/home", http.StatusSeeOther)

		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "/home", rec.Header().Get("Location"))
	})

	t.Run("htmx request uses HX-Redirect with 200", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(htmx.HeaderHXRequest, "true")
		rec := httptest.NewRecorder()

		htmx.Redirect(rec, req, "/home", http.StatusSeeOther)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "/home", rec.Header().Get(htmx.HeaderHXRedirect))
	})
}

func TestTrigger(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	htmx.Trigger(rec, "summary:refreshed")
	require.Equal(t, "summary:refreshed", rec.Header().Get(htmx.HeaderHXTrigger))

	rec = httptest.NewRecorder()
	htmx.Trigger(rec, "")
	require.Empty(t, rec.Header().Get(htmx.HeaderHXTrigger))
}
