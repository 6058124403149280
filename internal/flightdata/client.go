// Package flightdata implements the HTTP client for the FlightRadar24
// compatible flight list API.
//
// The primary purpose of this package is to abstract the upstream JSON
// endpoint and translate its raw payloads into model.Flight values,
// including the quirks the endpoint is known for: scheduled times as Unix
// seconds in UTC, a data field that may be an array or an object, and
// airline names that are missing or the literal string "None".
package flightdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/mmr-tortoise/flightcal/internal/model"
)

const (
	// DefaultBaseURL is the production flight list endpoint host.
	DefaultBaseURL = "https://api.flightradar24.com"

	// listPath is the flight list endpoint. Query parameters select the
	// flight designator and page size.
	listPath = "/common/v1/flight/list.json"

	// defaultTimeout bounds a single HTTP attempt. The endpoint normally
	// answers well under a second; anything slower is worth retrying.
	defaultTimeout = 15 * time.Second

	// defaultRetryMax is the number of retries on transient failures.
	defaultRetryMax = 3

	// pageLimit is the maximum number of schedule entries requested per
	// lookup. 100 covers several weeks of history for a daily flight.
	pageLimit = 100

	// userAgent impersonates a browser. The upstream endpoint rejects
	// requests carrying the default Go HTTP client User-Agent.
	userAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/115.0"
)

// Client wraps a retrying HTTP client for the flight list API.
//
// Usage:
//
//	c := flightdata.NewClient(flightdata.Options{}, logger)
//	flights, err := c.ListFlights(ctx, "SQ327")
type Client struct {
	http    *retryablehttp.Client
	baseURL string
	logger  *zap.Logger
}

// Options configures a Client. The zero value selects production defaults.
type Options struct {
	// BaseURL overrides the API host, e.g. for tests or mirrors.
	BaseURL string

	// Timeout bounds each HTTP attempt.
	Timeout time.Duration

	// RetryMax is the number of retries on transient failures.
	RetryMax int
}

// NewClient creates a flight-data client. A nil logger disables logging.
func NewClient(opts Options, logger *zap.Logger) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.RetryMax < 0 {
		opts.RetryMax = 0
	} else if opts.RetryMax == 0 {
		opts.RetryMax = defaultRetryMax
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = opts.RetryMax
	rc.HTTPClient.Timeout = opts.Timeout
	// retryablehttp logs every attempt through its own logger; route that
	// noise to nowhere and log outcomes ourselves with zap.
	rc.Logger = nil

	return &Client{
		http:    rc,
		baseURL: opts.BaseURL,
		logger:  logger,
	}
}

// Close releases idle connections held by the underlying HTTP client.
func (c *Client) Close() {
	c.http.HTTPClient.CloseIdleConnections()
}

// ListFlights fetches the schedule entries for a flight designator. The
// designator must already be canonical (model.ParseFlightNumber). Entries
// are returned in API order with schedule times in UTC.
func (c *Client) ListFlights(ctx context.Context, flightNumber string) ([]model.Flight, error) {
	query := url.Values{}
	query.Set("query", flightNumber)
	query.Set("fetchBy", "flight")
	query.Set("page", "1")
	query.Set("limit", fmt.Sprintf("%d", pageLimit))
	endpoint := c.baseURL + listPath + "?" + query.Encode()

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitAPIUnavailable,
			"failed to build flight list request", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitAPIUnavailable,
			fmt.Sprintf("flight list request for %s failed", flightNumber), err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused before reporting.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, model.NewCLIError(model.ExitAPIUnavailable,
			fmt.Sprintf("flight list request for %s returned status %d", flightNumber, resp.StatusCode))
	}

	var payload listResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, model.WrapCLIError(model.ExitAPIUnavailable,
			fmt.Sprintf("failed to decode flight list response for %s", flightNumber), err)
	}

	flights := payload.Flights()
	c.logger.Debug("flight list fetched",
		zap.String("flight", flightNumber),
		zap.Int("entries", len(flights)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return flights, nil
}
