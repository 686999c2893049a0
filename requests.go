package valhalla

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Location is a geographic point used as a route endpoint, pass-through
// constraint, or lookup position. Lat/Lon are required; the remaining
// fields are optional and omitted from the wire when unset.
type Location struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon float64 `json:"lon" validate:"gte=-180,lte=180"`

	// Type selects how the routing service treats the point ("break" or
	// "through"). Left empty, the service applies its default.
	Type string `json:"type,omitempty"`

	// Heading is the expected direction of travel in degrees clockwise from
	// north. HeadingTolerance widens the acceptable deviation. Radius is the
	// edge-candidate search distance in meters.
	Heading          *float64 `json:"heading,omitempty"`
	HeadingTolerance *float64 `json:"heading_tolerance,omitempty"`
	Radius           *float64 `json:"radius,omitempty"`
}

// TracePoint is a GPS sample in a trace. Time is the sample's capture time;
// it rides the wire as integer seconds since the Unix epoch.
type TracePoint struct {
	Lat  float64   `json:"lat" validate:"gte=-90,lte=90"`
	Lon  float64   `json:"lon" validate:"gte=-180,lte=180"`
	Time *UnixTime `json:"time,omitempty"`
}

// UnixTime marshals as an integer count of seconds since the Unix epoch.
// Unmarshal rejects any other token shape (strings, floats, objects) so a
// schema drift on the remote side surfaces as a decode error, not a zero
// time.
type UnixTime struct {
	time.Time
}

// NewUnixTime truncates t to whole seconds, matching the wire resolution.
func NewUnixTime(t time.Time) UnixTime {
	return UnixTime{t.Truncate(time.Second)}
}

func (t UnixTime) MarshalJSON() ([]byte, error) {
	return strconv.AppendInt(nil, t.Unix(), 10), nil
}

func (t *UnixTime) UnmarshalJSON(data []byte) error {
	sec, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("%w: time field %s is not integer epoch seconds", ErrBadResponse, data)
	}
	t.Time = time.Unix(sec, 0).UTC()
	return nil
}

// StatusRequest asks the service for its version and tileset metadata.
// Verbose requests the extended diagnostics block.
type StatusRequest struct {
	Verbose bool `json:"verbose"`
}

// RouteRequest computes a route through two or more locations.
//
// Costing is the travel-mode string ("auto", "bicycle", "pedestrian", ...).
// It is deliberately not validated client-side so new remote-side costing
// models work without a client upgrade. CostingOptions is an opaque JSON
// subtree forwarded verbatim; its schema depends on the costing model.
type RouteRequest struct {
	Locations      []Location      `json:"locations" validate:"min=2,dive"`
	Costing        string          `json:"costing" validate:"required"`
	CostingOptions json.RawMessage `json:"costing_options,omitempty"`

	// Alternates asks for up to this many alternate routes. The remote
	// service only honors it for two-waypoint requests; the client forwards
	// it as-is and lets the service ignore it when inapplicable.
	Alternates int `json:"alternates,omitempty"`

	Units    string `json:"units,omitempty"`
	Language string `json:"language,omitempty"`
}

// LocateRequest snaps one or more positions to the road network.
//
// Verbose has no omitempty: the service treats an absent flag and an
// explicit false identically, and always sending it keeps the encode path
// free of a pointer-to-bool field.
type LocateRequest struct {
	Locations []Location `json:"locations" validate:"min=1,dive"`
	Costing   string     `json:"costing,omitempty"`
	Verbose   bool       `json:"verbose"`
}

// TraceFilter selects which attributes a trace_attributes call returns.
// Action is "include" or "exclude", matched case-insensitively.
type TraceFilter struct {
	Attributes []string `json:"attributes"`
	Action     string   `json:"action"`
}

// TraceRouteRequest map-matches a GPS trace and returns the matched route.
// Exactly one of Shape and EncodedPolyline must be supplied.
type TraceRouteRequest struct {
	Shape           []TracePoint `json:"shape,omitempty" validate:"dive"`
	EncodedPolyline string       `json:"encoded_polyline,omitempty"`
	Costing         string       `json:"costing" validate:"required"`
	ShapeMatch      string       `json:"shape_match,omitempty"`
}

// TraceAttributesRequest map-matches a GPS trace and returns per-edge
// attribution instead of a navigable route. The same shape-source rule as
// TraceRouteRequest applies.
type TraceAttributesRequest struct {
	Shape           []TracePoint `json:"shape,omitempty" validate:"dive"`
	EncodedPolyline string       `json:"encoded_polyline,omitempty"`
	Costing         string       `json:"costing" validate:"required"`
	ShapeMatch      string       `json:"shape_match,omitempty"`
	Filters         *TraceFilter `json:"filters,omitempty"`
}
