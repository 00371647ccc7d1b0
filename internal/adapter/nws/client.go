// Package nws implements domain.AlertProvider using the National Weather
// Service alerts API (api.weather.gov).
package nws

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sahilb1203/aquaalert-backend/internal/domain"
)

const defaultBaseURL = "https://api.weather.gov"

// Client queries active NWS alerts. The API requires a User-Agent
// identifying the application and a contact.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates an NWS alerts client.
func NewClient(userAgent string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL:   defaultBaseURL,
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// ActiveAlerts returns active alerts whose polygon covers the coordinate.
func (c *Client) ActiveAlerts(ctx context.Context, lat, lon float64) ([]domain.Alert, error) {
	params := url.Values{
		"point":  {fmt.Sprintf("%.4f,%.4f", lat, lon)},
		"status": {"actual"},
	}
	return c.fetch(ctx, params)
}

// ActiveAreaAlerts returns active alerts for a two-letter region code,
// e.g. a US state or marine area.
func (c *Client) ActiveAreaAlerts(ctx context.Context, regionCode string) ([]domain.Alert, error) {
	params := url.Values{
		"area":   {strings.ToUpper(regionCode)},
		"status": {"actual"},
	}
	return c.fetch(ctx, params)
}

func (c *Client) fetch(ctx context.Context, params url.Values) ([]domain.Alert, error) {
	fullURL := c.baseURL + "/alerts/active?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/geo+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("alerts request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("nws API error: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var nwsResp response
	if err := json.NewDecoder(resp.Body).Decode(&nwsResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	alerts := make([]domain.Alert, 0, len(nwsResp.Features))
	for _, f := range nwsResp.Features {
		// The status filter is passed upstream, but older deployments have
		// been seen ignoring it; keep only actual alerts either way.
		if !strings.EqualFold(f.Properties.Status, "actual") {
			continue
		}
		alerts = append(alerts, domain.Alert{
			Event:    f.Properties.Event,
			Severity: f.Properties.Severity,
		})
	}
	return alerts, nil
}

// NWS API response types (GeoJSON feature collection).

type response struct {
	Features []feature `json:"features"`
}

type feature struct {
	Properties properties `json:"properties"`
}

type properties struct {
	Event    string `json:"event"`
	Severity string `json:"severity"`
	Status   string `json:"status"`
}
