// Package geocode resolves coordinates to display addresses. The
// provider is optional and strictly best-effort: a failure degrades the
// stored address string and must never block or fail a check-in/out.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Geocoder resolves a coordinate to a human-readable address.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (string, error)
}

// Disabled is the no-op geocoder used when no provider is configured.
type Disabled struct{}

func (Disabled) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	return "", nil
}

// HTTPGeocoder queries a Nominatim-compatible reverse endpoint.
type HTTPGeocoder struct {
	baseURL string
	client  *http.Client
}

func NewHTTPGeocoder(baseURL string, timeout time.Duration) *HTTPGeocoder {
	return &HTTPGeocoder{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
}

func (g *HTTPGeocoder) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	endpoint := fmt.Sprintf("%s/reverse?format=jsonv2&lat=%s&lon=%s",
		g.baseURL,
		url.QueryEscape(fmt.Sprintf("%f", lat)),
		url.QueryEscape(fmt.Sprintf("%f", lon)),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build reverse geocode request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("reverse geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("reverse geocode returned status %d", resp.StatusCode)
	}

	var body reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode reverse geocode response: %w", err)
	}

	return body.DisplayName, nil
}
