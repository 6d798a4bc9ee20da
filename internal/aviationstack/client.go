// Package aviationstack queries the AviationStack flights API for the
// commercial status of a flight code. Lookups are best-effort: every failure
// mode is reported as an error tag on the result, never as a batch abort.
package aviationstack

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/jengzang/flighttrack-backend-go/internal/models"
	"github.com/jengzang/flighttrack-backend-go/internal/repository"
)

const (
	// DefaultBaseURL is the AviationStack flights endpoint.
	DefaultBaseURL = "http://api.aviationstack.com/v1/flights"

	// Timeouts for the primary (flight_iata) and fallback (flight_icao)
	// queries. The fallback is shorter: it runs after the primary already
	// spent its budget.
	primaryTimeout  = 10 * time.Second
	fallbackTimeout = 8 * time.Second

	// DefaultCacheTTL is how long a fetched record is reused before the
	// upstream is asked again.
	DefaultCacheTTL = 90 * time.Second
)

// Client queries the commercial flight status API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	cache      *repository.StatusCacheRepository
	cacheTTL   time.Duration
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

// WithCache enables the sqlite-backed response cache.
func WithCache(cache *repository.StatusCacheRepository, ttl time.Duration) ClientOption {
	return func(c *Client) {
		c.cache = cache
		if ttl > 0 {
			c.cacheTTL = ttl
		}
	}
}

// NewClient creates an AviationStack client. An empty API key is allowed:
// lookups then short-circuit with the no_api_key tag without calling out.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: primaryTimeout},
		cacheTTL:   DefaultCacheTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// apiResponse mirrors the envelope of the flights endpoint.
type apiResponse struct {
	Data []models.CommercialFlight `json:"data"`
}

// Lookup fetches the commercial record for a flight code. Exactly one of the
// results is meaningful: a record with an empty tag, or nil with a tag
// explaining why (no_api_key, no_code, no_data, upstream_error).
func (c *Client) Lookup(ctx context.Context, flightCode string) (*models.CommercialFlight, models.ErrorTag) {
	if c.apiKey == "" {
		return nil, models.ErrTagNoAPIKey
	}
	if flightCode == "" {
		return nil, models.ErrTagNoCode
	}

	if rec := c.cached(flightCode); rec != nil {
		return rec, ""
	}

	// Primary lookup by IATA code, fallback by ICAO code. Both queries use
	// the same derived code; which namespace it belongs to depends on how
	// the callsign converted.
	rec, err := c.query(ctx, "flight_iata", flightCode, primaryTimeout)
	if err != nil {
		log.Printf("AviationStack error for %s: %v", flightCode, err)
		return nil, models.ErrTagUpstreamError
	}
	if rec == nil {
		rec, err = c.query(ctx, "flight_icao", flightCode, fallbackTimeout)
		if err != nil {
			log.Printf("AviationStack fallback error for %s: %v", flightCode, err)
			return nil, models.ErrTagUpstreamError
		}
	}
	if rec == nil {
		return nil, models.ErrTagNoData
	}

	c.store(flightCode, rec)
	return rec, ""
}

// query performs one request against the flights endpoint. A reachable
// upstream with zero records returns (nil, nil).
func (c *Client) query(ctx context.Context, param, code string, timeout time.Duration) (*models.CommercialFlight, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	q := url.Values{}
	q.Set("access_key", c.apiKey)
	q.Set(param, code)
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var parsed apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	if len(parsed.Data) == 0 {
		return nil, nil
	}
	return &parsed.Data[0], nil
}

// cached returns a fresh cached record, or nil. Cache errors only log:
// the cache is an optimization, never a failure mode.
func (c *Client) cached(flightCode string) *models.CommercialFlight {
	if c.cache == nil {
		return nil
	}
	payload, ok, err := c.cache.Get(flightCode, c.cacheTTL)
	if err != nil {
		log.Printf("Status cache read failed for %s: %v", flightCode, err)
		return nil
	}
	if !ok {
		return nil
	}
	var rec models.CommercialFlight
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		log.Printf("Status cache entry corrupt for %s: %v", flightCode, err)
		return nil
	}
	return &rec
}

func (c *Client) store(flightCode string, rec *models.CommercialFlight) {
	if c.cache == nil {
		return
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		return
	}
	if err := c.cache.Put(flightCode, string(payload)); err != nil {
		log.Printf("Status cache write failed for %s: %v", flightCode, err)
	}
}
