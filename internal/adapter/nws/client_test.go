package nws

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sahilb1203/aquaalert-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUserAgent = "aquaalert-backend-test/1.0"

func testClient(baseURL string) *Client {
	c := NewClient(testUserAgent, 5*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
	c.baseURL = baseURL
	return c
}

const activeAlertsBody = `{
	"features": [
		{"properties": {"event": "Flash Flood Warning", "severity": "Severe", "status": "Actual"}},
		{"properties": {"event": "Coastal Flood Advisory", "severity": "Minor", "status": "Actual"}},
		{"properties": {"event": "Flood Watch", "severity": "Moderate", "status": "Test"}}
	]
}`

func TestActiveAlerts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/alerts/active", r.URL.Path)
		assert.Equal(t, "40.7395,-74.0300", r.URL.Query().Get("point"))
		assert.Equal(t, "actual", r.URL.Query().Get("status"))
		assert.Equal(t, testUserAgent, r.Header.Get("User-Agent"))
		assert.Equal(t, "application/geo+json", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/geo+json")
		_, _ = w.Write([]byte(activeAlertsBody))
	}))
	defer srv.Close()

	alerts, err := testClient(srv.URL).ActiveAlerts(context.Background(), 40.7395, -74.03)
	require.NoError(t, err)

	// The "Test" status feature is filtered out.
	require.Len(t, alerts, 2)
	assert.Equal(t, domain.Alert{Event: "Flash Flood Warning", Severity: "Severe"}, alerts[0])
	assert.Equal(t, domain.Alert{Event: "Coastal Flood Advisory", Severity: "Minor"}, alerts[1])
}

func TestActiveAreaAlerts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "NJ", r.URL.Query().Get("area"))
		assert.Empty(t, r.URL.Query().Get("point"))

		_, _ = w.Write([]byte(`{"features":[{"properties":{"event":"Flood Warning","severity":"Moderate","status":"Actual"}}]}`))
	}))
	defer srv.Close()

	alerts, err := testClient(srv.URL).ActiveAreaAlerts(context.Background(), "nj")
	require.NoError(t, err)

	require.Len(t, alerts, 1)
	assert.Equal(t, "Flood Warning", alerts[0].Event)
}

func TestActiveAlerts_NoAlerts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"features":[]}`))
	}))
	defer srv.Close()

	alerts, err := testClient(srv.URL).ActiveAlerts(context.Background(), 40.7395, -74.03)
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestActiveAlerts_MissingSeverity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"features":[{"properties":{"event":"Flood Advisory","status":"Actual"}}]}`))
	}))
	defer srv.Close()

	alerts, err := testClient(srv.URL).ActiveAlerts(context.Background(), 40.7395, -74.03)
	require.NoError(t, err)

	require.Len(t, alerts, 1)
	assert.Empty(t, alerts[0].Severity)
}

func TestActiveAlerts_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"title":"Service Unavailable"}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).ActiveAlerts(context.Background(), 40.7395, -74.03)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}

func TestActiveAlerts_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).ActiveAlerts(context.Background(), 40.7395, -74.03)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}
