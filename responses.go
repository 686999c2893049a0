package valhalla

import "encoding/json"

// Every response type carries Raw: the complete decoded JSON document,
// owned by the caller and independent of any transport buffer. Fields the
// typed projection does not model stay reachable through it.

// StatusResponse is the service's version and tileset metadata.
type StatusResponse struct {
	Version             string `json:"version"`
	TilesetLastModified int64  `json:"tileset_last_modified"`
	HasTiles            bool   `json:"has_tiles"`
	HasAdmins           bool   `json:"has_admins"`
	HasTimezones        bool   `json:"has_timezones"`

	Raw json.RawMessage `json:"-"`
}

// TripSummary aggregates a trip or leg: length in the request's units and
// time in seconds, plus the bounding box of the path.
type TripSummary struct {
	Length float64 `json:"length"`
	Time   float64 `json:"time"`
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// Maneuver is a single navigation instruction within a leg.
type Maneuver struct {
	Type            int     `json:"type"`
	Instruction     string  `json:"instruction"`
	Length          float64 `json:"length"`
	Time            float64 `json:"time"`
	BeginShapeIndex int     `json:"begin_shape_index"`
	EndShapeIndex   int     `json:"end_shape_index"`
}

// Leg is the portion of a trip between two consecutive break locations.
// Shape is an encoded polyline at precision 6; decode it with the polyline
// package.
type Leg struct {
	Summary   TripSummary `json:"summary"`
	Maneuvers []Maneuver  `json:"maneuvers"`
	Shape     string      `json:"shape"`
}

// Trip is one computed route: the echoed locations, per-leg detail and an
// overall summary. Status is the service's own result code (0 = success).
type Trip struct {
	Locations     []Location  `json:"locations"`
	Legs          []Leg       `json:"legs"`
	Summary       TripSummary `json:"summary"`
	Status        int         `json:"status"`
	StatusMessage string      `json:"status_message"`
	Units         string      `json:"units"`
	Language      string      `json:"language"`
}

// RouteResponse is the result of a route calculation. Trips always holds
// the primary trip at index 0 followed by any alternates in the order the
// service returned them; callers never need to distinguish the two cases.
type RouteResponse struct {
	Trips []Trip

	Raw json.RawMessage
}

// Trip returns the primary trip.
func (r *RouteResponse) Trip() Trip {
	return r.Trips[0]
}

// Alternates returns the alternate trips, which may be empty.
func (r *RouteResponse) Alternates() []Trip {
	return r.Trips[1:]
}

// LocateEdge is a road-network edge correlated to an input position.
type LocateEdge struct {
	WayID         int64   `json:"way_id"`
	CorrelatedLat float64 `json:"correlated_lat"`
	CorrelatedLon float64 `json:"correlated_lon"`
	PercentAlong  float64 `json:"percent_along"`
	SideOfStreet  string  `json:"side_of_street"`
}

// LocateNode is a graph node near an input position.
type LocateNode struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// LocateResult is the lookup outcome for one input position. Empty Edges
// and Nodes mean nothing was found near the point; that is valid data, not
// an error.
type LocateResult struct {
	InputLat float64      `json:"input_lat"`
	InputLon float64      `json:"input_lon"`
	Edges    []LocateEdge `json:"edges"`
	Nodes    []LocateNode `json:"nodes"`
}

// LocateResponse is the result of a locate call. The service returns a JSON
// array at the document root, one entry per input location, in input order;
// Raw holds that array document.
type LocateResponse struct {
	Results []LocateResult

	Raw json.RawMessage
}

// MatchedPoint relates one input trace point to the matched path.
type MatchedPoint struct {
	Lat                    float64 `json:"lat"`
	Lon                    float64 `json:"lon"`
	Type                   string  `json:"type"`
	EdgeIndex              int     `json:"edge_index"`
	DistanceFromTracePoint float64 `json:"distance_from_trace_point"`
}

// TraceRouteResponse is the result of map-matching a trace into a navigable
// route. Unlike route calculation there are never alternates.
type TraceRouteResponse struct {
	Trip Trip

	Raw json.RawMessage
}

// TraceAttributesResponse is the result of map-matching a trace into
// per-edge attribution. Edges stays an opaque subtree: its field set
// depends on the request's filter and is best consumed through Raw.
type TraceAttributesResponse struct {
	Shape         string          `json:"shape"`
	MatchedPoints []MatchedPoint  `json:"matched_points"`
	Edges         json.RawMessage `json:"edges"`
	Units         string          `json:"units"`

	Raw json.RawMessage `json:"-"`
}
