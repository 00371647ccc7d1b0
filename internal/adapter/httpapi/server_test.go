package httpapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahilb1203/aquaalert-backend/internal/adapter/httpapi"
	"github.com/sahilb1203/aquaalert-backend/internal/assessment"
	"github.com/sahilb1203/aquaalert-backend/internal/domain"
)

type mockAssessor struct {
	result      domain.RiskAssessment
	assessErr   error
	advice      string
	adviseErr   error
	readyErr    error
	lastAddress string
	lastSpecs   string
}

func (m *mockAssessor) Assess(_ context.Context, address string) (domain.RiskAssessment, error) {
	m.lastAddress = address
	return m.result, m.assessErr
}

func (m *mockAssessor) Advise(_ context.Context, address, specs string) (domain.RiskAssessment, string, error) {
	m.lastAddress = address
	m.lastSpecs = specs
	return m.result, m.advice, m.adviseErr
}

func (m *mockAssessor) CheckReadiness(_ context.Context) error { return m.readyErr }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(a *mockAssessor, origins ...string) *httpapi.Server {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return httpapi.NewServer(":0", a, origins, discardLogger())
}

func sampleAssessment() domain.RiskAssessment {
	return domain.RiskAssessment{
		ID:               "c9a4e1c2-0000-0000-0000-000000000000",
		Address:          "100 Washington St, Hoboken NJ",
		Lat:              40.7395,
		Lon:              -74.03,
		RegionCode:       "NJ",
		ElevationM:       7.0,
		AvgMonthlyRainMM: 82.0,
		BaseTier:         domain.TierLow,
		Tier:             domain.TierLow,
		Tips:             domain.TipsFor(domain.TierLow),
	}
}

func TestRootReturnsGreeting(t *testing.T) {
	srv := newTestServer(&mockAssessor{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Hello AquaAlert!", body["message"])
}

func TestRiskReturnsAssessment(t *testing.T) {
	mock := &mockAssessor{result: sampleAssessment()}
	srv := newTestServer(mock)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/risk?address=100+Washington+St,+Hoboken+NJ", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "100 Washington St, Hoboken NJ", mock.lastAddress)

	var body domain.RiskAssessment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, domain.TierLow, body.Tier)
	assert.Equal(t, domain.TipsFor(domain.TierLow), body.Tips)
	assert.NotEqual(t, domain.TipsFor(domain.TierModerate), body.Tips)
}

func TestRiskValidation(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{"missing address", "/risk"},
		{"empty address", "/risk?address="},
		{"too short", "/risk?address=ab"},
		{"whitespace only", "/risk?address=%20%20%20%20"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(&mockAssessor{})
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)

			srv.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestRiskErrorMapping(t *testing.T) {
	t.Run("unknown address returns 404", func(t *testing.T) {
		srv := newTestServer(&mockAssessor{assessErr: domain.ErrAddressNotFound})
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/risk?address=nowhere+at+all", nil)

		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("upstream failure returns 502", func(t *testing.T) {
		srv := newTestServer(&mockAssessor{assessErr: fmt.Errorf("elevation lookup: %w", errors.New("timeout"))})
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/risk?address=100+Washington+St", nil)

		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadGateway, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.NotContains(t, body["error"], "timeout")
	})
}

func TestAdvice(t *testing.T) {
	t.Run("returns assessment and advice", func(t *testing.T) {
		mock := &mockAssessor{result: sampleAssessment(), advice: "- Keep gutters clear."}
		srv := newTestServer(mock)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/advice",
			strings.NewReader(`{"address":"100 Washington St, Hoboken NJ","specs":"finished basement"}`))

		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "finished basement", mock.lastSpecs)

		var body struct {
			Assessment domain.RiskAssessment `json:"assessment"`
			Advice     string                `json:"advice"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "- Keep gutters clear.", body.Advice)
		assert.Equal(t, domain.TierLow, body.Assessment.Tier)
	})

	t.Run("rejects invalid JSON", func(t *testing.T) {
		srv := newTestServer(&mockAssessor{})
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/advice", strings.NewReader("{not json"))

		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects short address", func(t *testing.T) {
		srv := newTestServer(&mockAssessor{})
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/advice", strings.NewReader(`{"address":"ab"}`))

		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("returns 503 when generation is disabled", func(t *testing.T) {
		srv := newTestServer(&mockAssessor{adviseErr: assessment.ErrAdviceDisabled})
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/advice", strings.NewReader(`{"address":"100 Washington St"}`))

		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("unknown address returns 404", func(t *testing.T) {
		srv := newTestServer(&mockAssessor{adviseErr: domain.ErrAddressNotFound})
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/advice", strings.NewReader(`{"address":"nowhere at all"}`))

		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestCORS(t *testing.T) {
	t.Run("wildcard allows any origin", func(t *testing.T) {
		srv := newTestServer(&mockAssessor{})
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://aquaalert.example")

		srv.ServeHTTP(rec, req)

		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("explicit origin list reflects matches only", func(t *testing.T) {
		srv := newTestServer(&mockAssessor{}, "https://app.aquaalert.example")

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://app.aquaalert.example")
		srv.ServeHTTP(rec, req)
		assert.Equal(t, "https://app.aquaalert.example", rec.Header().Get("Access-Control-Allow-Origin"))

		rec = httptest.NewRecorder()
		req = httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://evil.example")
		srv.ServeHTTP(rec, req)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight returns 204", func(t *testing.T) {
		srv := newTestServer(&mockAssessor{})
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/advice", nil)
		req.Header.Set("Origin", "https://aquaalert.example")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)

		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
	})
}

func TestHealthzReturns200(t *testing.T) {
	srv := newTestServer(&mockAssessor{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyz(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		srv := newTestServer(&mockAssessor{})
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("not ready", func(t *testing.T) {
		srv := newTestServer(&mockAssessor{readyErr: fmt.Errorf("not ready yet")})
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "not ready yet", body["error"])
	})
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(&mockAssessor{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
