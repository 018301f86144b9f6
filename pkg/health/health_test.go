package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/weathersage/sage/pkg/health"
)

func TestLivenessHandler(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	health.LivenessHandler()(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "OK", rec.Body.String())
}

func TestReadinessHandler(t *testing.T) {
	t.Parallel()

	t.Run("healthy checks", func(t *testing.T) {
		t.Parallel()

		h := health.ReadinessHandler(health.Checks{
			"redis": func(context.Context) error { return nil },
		})
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "OK", rec.Body.String())
	})

	t.Run("failing check reports json detail", func(t *testing.T) {
		t.Parallel()

		h := health.ReadinessHandler(health.Checks{
			"redis":    func(context.Context) error { return errors.New("connection refused") },
			"upstream": func(context.Context) error { return nil },
		})
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/health/ready?format=json", nil))

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var resp health.Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, health.StatusUnhealthy, resp.Status)
		require.Equal(t, health.StatusUnhealthy, resp.Checks["redis"].Status)
		require.Equal(t, "connection refused", resp.Checks["redis"].Error)
		require.Equal(t, health.StatusHealthy, resp.Checks["upstream"].Status)
	})
}

func TestRun_Timeout(t *testing.T) {
	t.Parallel()

	resp := health.Run(context.Background(), health.Checks{
		"slow": func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		},
	}, health.WithTimeout(10*time.Millisecond))

	require.Equal(t, health.StatusUnhealthy, resp.Status)
	require.Contains(t, resp.Checks["slow"].Error, health.ErrCheckTimeout.Error())
}
