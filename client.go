// Package valhalla is a client for a Valhalla-compatible routing engine's
// JSON-over-HTTP API. Requests are validated before any network activity,
// responses keep their raw JSON document alongside the typed projection,
// and every failure is classified: validation, remote error, timeout,
// cancellation, size limit, or malformed response.
package valhalla

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Client talks to one routing service. It is immutable after New and safe
// for unsynchronized concurrent use; the underlying http.Client may be
// shared with other code and is never mutated.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	authHeader string
	authValue  string
	logger     *slog.Logger
	verbose    bool
}

// Option configures a Client during New.
type Option func(*Client)

// WithTimeout sets the per-call maximum duration. The default is 30s.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithAPIKey attaches the credential value under the given header name on
// every outgoing request. The value is attached per request, never stored
// on the shared http.Client, and never written to the log.
func WithAPIKey(header, value string) Option {
	return func(c *Client) {
		c.authHeader = header
		c.authValue = value
	}
}

// WithHTTPClient supplies the http.Client to dispatch with, typically one
// with a pooled transport shared across the application. Per-call timeouts
// come from the Client's own timeout, so the http.Client's Timeout field
// can stay zero.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the structured logger for call events. The default is
// slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithVerbose enables debug logging of request and response bodies,
// truncated to 8 KiB.
func WithVerbose(v bool) Option {
	return func(c *Client) { c.verbose = v }
}

// New creates a Client for the service at baseURL, e.g.
// "https://valhalla.example.com".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Status fetches the service's version and tileset metadata.
func (c *Client) Status(ctx context.Context, req *StatusRequest) (*StatusResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	raw, err := c.send(ctx, "/status", req)
	if err != nil {
		return nil, err
	}
	return reconstructStatus(raw)
}

// Locate snaps the request's positions to the road network. The response
// carries one result per input position, in input order.
func (c *Client) Locate(ctx context.Context, req *LocateRequest) (*LocateResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	raw, err := c.send(ctx, "/locate", req)
	if err != nil {
		return nil, err
	}
	return reconstructLocate(raw)
}

// Route computes a route through the request's locations. The response's
// Trips list has the primary trip at index 0 followed by any alternates.
func (c *Client) Route(ctx context.Context, req *RouteRequest) (*RouteResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	raw, err := c.send(ctx, "/route", req)
	if err != nil {
		return nil, err
	}
	return reconstructRoute(raw)
}

// TraceRoute map-matches a GPS trace and returns the matched route.
func (c *Client) TraceRoute(ctx context.Context, req *TraceRouteRequest) (*TraceRouteResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	raw, err := c.send(ctx, "/trace_route", req)
	if err != nil {
		return nil, err
	}
	return reconstructTraceRoute(raw)
}

// TraceAttributes map-matches a GPS trace and returns per-edge attribution.
func (c *Client) TraceAttributes(ctx context.Context, req *TraceAttributesRequest) (*TraceAttributesResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	raw, err := c.send(ctx, "/trace_attributes", req)
	if err != nil {
		return nil, err
	}
	return reconstructTraceAttributes(raw)
}
