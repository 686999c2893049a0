package valhalla

import (
	"encoding/json"
	"fmt"
)

// Reconstructors turn a raw response document into a typed response. Two
// endpoints need more than a generic object decode: route, whose primary
// trip and optional alternates must collapse into one uniform list, and
// locate, whose document root is a JSON array.

// routeEnvelope mirrors the route response's irregular nesting: alternates
// are siblings of the primary trip, each wrapped in its own object.
type routeEnvelope struct {
	Trip       Trip `json:"trip"`
	Alternates []struct {
		Trip Trip `json:"trip"`
	} `json:"alternates"`
}

func reconstructRoute(raw json.RawMessage) (*RouteResponse, error) {
	var env routeEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: route: %v", ErrBadResponse, err)
	}
	trips := make([]Trip, 0, 1+len(env.Alternates))
	trips = append(trips, env.Trip)
	for _, alt := range env.Alternates {
		trips = append(trips, alt.Trip)
	}
	return &RouteResponse{Trips: trips, Raw: raw}, nil
}

func reconstructLocate(raw json.RawMessage) (*LocateResponse, error) {
	var results []LocateResult
	if err := json.Unmarshal(raw, &results); err != nil {
		return nil, fmt.Errorf("%w: locate: %v", ErrBadResponse, err)
	}
	return &LocateResponse{Results: results, Raw: raw}, nil
}

func reconstructStatus(raw json.RawMessage) (*StatusResponse, error) {
	var resp StatusResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("%w: status: %v", ErrBadResponse, err)
	}
	resp.Raw = raw
	return &resp, nil
}

func reconstructTraceRoute(raw json.RawMessage) (*TraceRouteResponse, error) {
	var env struct {
		Trip Trip `json:"trip"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: trace_route: %v", ErrBadResponse, err)
	}
	return &TraceRouteResponse{Trip: env.Trip, Raw: raw}, nil
}

func reconstructTraceAttributes(raw json.RawMessage) (*TraceAttributesResponse, error) {
	var resp TraceAttributesResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("%w: trace_attributes: %v", ErrBadResponse, err)
	}
	resp.Raw = raw
	return &resp, nil
}
