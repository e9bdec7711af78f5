package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/jezhtech/fc-fleet-sub002/pkg/geo"
	"github.com/jezhtech/fc-fleet-sub002/pkg/httpclient"
	"github.com/jezhtech/fc-fleet-sub002/pkg/logger"
)

const (
	googleMapsBaseURL        = "https://maps.googleapis.com/maps/api"
	googleDirectionsEndpoint = "/directions/json"

	// ProviderNameGoogle identifies the Google Directions provider.
	ProviderNameGoogle = "google"
)

// GoogleProvider resolves routes through the Google Directions API.
type GoogleProvider struct {
	apiKey string
	client *httpclient.Client
}

// NewGoogleProvider creates a Google Directions routing provider.
func NewGoogleProvider(cfg Config) *GoogleProvider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = googleMapsBaseURL
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 10
	}

	return &GoogleProvider{
		apiKey: cfg.APIKey,
		client: httpclient.NewClient(baseURL, time.Duration(timeout)*time.Second, httpclient.WithDefaultRetry()),
	}
}

// Name returns the provider name.
func (g *GoogleProvider) Name() string {
	return ProviderNameGoogle
}

// googleDirectionsResponse is the subset of the Directions payload we read.
type googleDirectionsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Routes       []struct {
		Legs []struct {
			Distance struct {
				Value int `json:"value"` // meters
			} `json:"distance"`
			Duration struct {
				Value int `json:"value"` // seconds
			} `json:"duration"`
		} `json:"legs"`
	} `json:"routes"`
}

// GetRoute fetches driving distance and duration for a coordinate pair.
func (g *GoogleProvider) GetRoute(ctx context.Context, origin, destination geo.Point) (*Route, error) {
	params := url.Values{}
	params.Set("origin", formatPoint(origin))
	params.Set("destination", formatPoint(destination))
	params.Set("mode", "driving")
	params.Set("units", "metric")
	params.Set("departure_time", "now")
	params.Set("key", g.apiKey)

	resp, err := g.client.Get(ctx, googleDirectionsEndpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("google directions request failed: %w", err)
	}

	var payload googleDirectionsResponse
	if err := json.Unmarshal(resp, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse directions response: %w", err)
	}

	if payload.Status != "OK" {
		return nil, fmt.Errorf("google directions error: %s - %s", payload.Status, payload.ErrorMessage)
	}
	if len(payload.Routes) == 0 || len(payload.Routes[0].Legs) == 0 {
		return nil, fmt.Errorf("google directions returned no routes")
	}

	var meters, seconds int
	for _, leg := range payload.Routes[0].Legs {
		meters += leg.Distance.Value
		seconds += leg.Duration.Value
	}

	route := &Route{
		DistanceKm:      float64(meters) / 1000.0,
		DurationMinutes: float64(seconds) / 60.0,
		Source:          ProviderNameGoogle,
	}

	logger.DebugContext(ctx, "resolved route via google directions",
		zap.Float64("distance_km", route.DistanceKm),
		zap.Float64("duration_min", route.DurationMinutes),
	)

	return route, nil
}

func formatPoint(p geo.Point) string {
	return fmt.Sprintf("%.6f,%.6f", p.Lat, p.Lng)
}
