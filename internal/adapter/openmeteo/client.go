// Package openmeteo implements domain.ElevationProvider and
// domain.RainfallProvider using the Open-Meteo elevation and historical
// weather archive APIs. Neither endpoint requires credentials.
package openmeteo

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
)

const (
	defaultElevationBaseURL = "https://api.open-meteo.com/v1/elevation"
	defaultArchiveBaseURL   = "https://archive-api.open-meteo.com/v1/archive"
)

// Client queries Open-Meteo for terrain elevation and daily precipitation.
type Client struct {
	elevationBaseURL string
	archiveBaseURL   string
	userAgent        string
	elevationClient  *http.Client
	archiveClient    *http.Client
	logger           *slog.Logger
}

// NewClient creates an Open-Meteo client. Elevation and archive lookups get
// separate timeouts: a year of daily precipitation is a much larger response.
func NewClient(userAgent string, elevationTimeout, rainfallTimeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		elevationBaseURL: defaultElevationBaseURL,
		archiveBaseURL:   defaultArchiveBaseURL,
		userAgent:        userAgent,
		elevationClient:  &http.Client{Timeout: elevationTimeout},
		archiveClient:    &http.Client{Timeout: rainfallTimeout},
		logger:           logger,
	}
}

// Elevation returns the terrain elevation in meters for a coordinate.
func (c *Client) Elevation(ctx context.Context, lat, lon float64) (float64, error) {
	params := url.Values{
		"latitude":  {fmt.Sprintf("%.6f", lat)},
		"longitude": {fmt.Sprintf("%.6f", lon)},
	}

	var resp elevationResponse
	if err := c.getJSON(ctx, c.elevationClient, c.elevationBaseURL+"?"+params.Encode(), &resp); err != nil {
		return 0, fmt.Errorf("elevation lookup: %w", err)
	}

	if len(resp.Elevation) == 0 {
		return 0, fmt.Errorf("elevation lookup: empty result for %.4f,%.4f", lat, lon)
	}
	return resp.Elevation[0], nil
}

// MonthlyPrecipitation returns the twelve monthly sums (mm) of daily
// precipitation for the reference year, aggregated from the archive's daily
// precipitation_sum series.
func (c *Client) MonthlyPrecipitation(ctx context.Context, lat, lon float64, year int) ([]float64, error) {
	params := url.Values{
		"latitude":   {fmt.Sprintf("%.6f", lat)},
		"longitude":  {fmt.Sprintf("%.6f", lon)},
		"start_date": {fmt.Sprintf("%d-01-01", year)},
		"end_date":   {fmt.Sprintf("%d-12-31", year)},
		"daily":      {"precipitation_sum"},
		"timezone":   {"UTC"},
	}

	var resp archiveResponse
	if err := c.getJSON(ctx, c.archiveClient, c.archiveBaseURL+"?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("rainfall lookup: %w", err)
	}

	if len(resp.Daily.Time) == 0 || len(resp.Daily.Time) != len(resp.Daily.PrecipitationSum) {
		return nil, fmt.Errorf("rainfall lookup: malformed series for %.4f,%.4f (%d dates, %d values)",
			lat, lon, len(resp.Daily.Time), len(resp.Daily.PrecipitationSum))
	}

	return sumByMonth(resp.Daily.Time, resp.Daily.PrecipitationSum)
}

// sumByMonth buckets daily values into twelve monthly sums by the month field
// of their ISO dates ("2022-07-14" → July). Null precipitation entries are
// skipped: the archive reports null for days with no measurement.
func sumByMonth(dates []string, values []*float64) ([]float64, error) {
	monthly := make([]float64, 12)
	for i, date := range dates {
		if values[i] == nil {
			continue
		}
		var y, m, d int
		if _, err := fmt.Sscanf(date, "%d-%d-%d", &y, &m, &d); err != nil || m < 1 || m > 12 {
			return nil, fmt.Errorf("rainfall lookup: bad date %q in series", date)
		}
		monthly[m-1] += *values[i]
	}
	return monthly, nil
}

func (c *Client) getJSON(ctx context.Context, client *http.Client, fullURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("open-meteo API error: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Open-Meteo API response types.

type elevationResponse struct {
	Elevation []float64 `json:"elevation"`
}

type archiveResponse struct {
	Daily dailySeries `json:"daily"`
}

type dailySeries struct {
	Time             []string   `json:"time"`
	PrecipitationSum []*float64 `json:"precipitation_sum"`
}
