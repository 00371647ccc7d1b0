// Package nominatim implements domain.Geocoder using the OpenStreetMap
// Nominatim search API.
package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sahilb1203/aquaalert-backend/internal/domain"
)

// Client is a Nominatim geocoding client. The public instance requires a
// descriptive User-Agent per the Nominatim usage policy.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a Nominatim client against the given base URL
// (e.g. https://nominatim.openstreetmap.org).
func NewClient(baseURL, userAgent string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Geocode resolves a free-text address to coordinates and a two-letter
// region code. Returns domain.ErrAddressNotFound when Nominatim has no match.
func (c *Client) Geocode(ctx context.Context, address string) (domain.GeocodedAddress, error) {
	params := url.Values{
		"q":              {address},
		"format":         {"jsonv2"},
		"limit":          {"1"},
		"addressdetails": {"1"},
	}
	fullURL := c.baseURL + "/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return domain.GeocodedAddress{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.GeocodedAddress{}, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return domain.GeocodedAddress{}, fmt.Errorf("nominatim API error: status %d: %s", resp.StatusCode, body)
	}

	var places []place
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return domain.GeocodedAddress{}, fmt.Errorf("decode response: %w", err)
	}

	if len(places) == 0 {
		return domain.GeocodedAddress{}, domain.ErrAddressNotFound
	}

	p := places[0]
	lat, errLat := strconv.ParseFloat(p.Lat, 64)
	lon, errLon := strconv.ParseFloat(p.Lon, 64)
	if errLat != nil || errLon != nil {
		return domain.GeocodedAddress{}, fmt.Errorf("nominatim returned unparseable coordinates %q,%q", p.Lat, p.Lon)
	}

	return domain.GeocodedAddress{
		Lat:         lat,
		Lon:         lon,
		DisplayName: p.DisplayName,
		RegionCode:  regionCode(p.Address.ISO3166Lvl4),
	}, nil
}

// regionCode extracts the two-letter subdivision from an ISO 3166-2 code,
// e.g. "US-NJ" → "NJ". Returns "" for anything else.
func regionCode(iso string) string {
	parts := strings.Split(iso, "-")
	if len(parts) != 2 || len(parts[1]) != 2 {
		return ""
	}
	return strings.ToUpper(parts[1])
}

// Nominatim API response types.

type place struct {
	Lat         string  `json:"lat"`
	Lon         string  `json:"lon"`
	DisplayName string  `json:"display_name"`
	Address     address `json:"address"`
}

type address struct {
	ISO3166Lvl4 string `json:"ISO3166-2-lvl4"`
}
