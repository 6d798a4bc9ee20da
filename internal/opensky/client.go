// Package opensky fetches live state-vector snapshots from the OpenSky
// Network and matches callsigns against them.
package opensky

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jengzang/flighttrack-backend-go/internal/models"
)

const (
	// DefaultBaseURL is the OpenSky REST API root.
	DefaultBaseURL = "https://opensky-network.org/api"

	// DefaultTimeout bounds one snapshot fetch. The snapshot is fetched once
	// per batch, so a hung upstream must not stall the whole batch.
	DefaultTimeout = 12 * time.Second
)

// Client fetches state-vector snapshots from the OpenSky API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL overrides the API endpoint (useful for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-fetch timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// NewClient creates an OpenSky client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// stateResponse mirrors the JSON shape of /states/all: each state is a
// positional array whose slots may be null.
type stateResponse struct {
	Time   int64           `json:"time"`
	States [][]interface{} `json:"states"`
}

// FetchStates retrieves the current snapshot of all broadcasting aircraft.
func (c *Client) FetchStates(ctx context.Context) (*models.TelemetrySnapshot, error) {
	url := fmt.Sprintf("%s/states/all", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var raw stateResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	return parseStates(raw), nil
}

// State vector array offsets, per the OpenSky API documentation.
const (
	idxICAO24        = 0
	idxCallsign      = 1
	idxOriginCountry = 2
	idxLastContact   = 4
	idxLongitude     = 5
	idxLatitude      = 6
	idxBaroAltitude  = 7
	idxOnGround      = 8
	idxVelocity      = 9
	idxTrueTrack     = 10
	idxGeoAltitude   = 13
)

func parseStates(raw stateResponse) *models.TelemetrySnapshot {
	snap := &models.TelemetrySnapshot{
		Time:   raw.Time,
		States: make([]models.StateVector, 0, len(raw.States)),
	}
	for _, s := range raw.States {
		// A row needs at least the positional fields through on_ground.
		if len(s) <= idxOnGround {
			continue
		}
		sv := models.StateVector{
			ICAO24:        stringAt(s, idxICAO24),
			Callsign:      stringAt(s, idxCallsign),
			OriginCountry: stringAt(s, idxOriginCountry),
			Longitude:     floatAt(s, idxLongitude),
			Latitude:      floatAt(s, idxLatitude),
			BaroAltitude:  floatAt(s, idxBaroAltitude),
			OnGround:      boolAt(s, idxOnGround),
			Velocity:      floatAt(s, idxVelocity),
			TrueTrack:     floatAt(s, idxTrueTrack),
			GeoAltitude:   floatAt(s, idxGeoAltitude),
		}
		if lc := floatAt(s, idxLastContact); lc != nil {
			sv.LastContact = int64(*lc)
		}
		snap.States = append(snap.States, sv)
	}
	return snap
}

func stringAt(s []interface{}, i int) string {
	if i < len(s) {
		if v, ok := s[i].(string); ok {
			return v
		}
	}
	return ""
}

func floatAt(s []interface{}, i int) *float64 {
	if i < len(s) {
		if v, ok := s[i].(float64); ok {
			return &v
		}
	}
	return nil
}

func boolAt(s []interface{}, i int) bool {
	if i < len(s) {
		if v, ok := s[i].(bool); ok {
			return v
		}
	}
	return false
}
