package valhalla

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteRequest_Encode(t *testing.T) {
	t.Parallel()
	req := &RouteRequest{
		Locations: []Location{
			{Lat: 52.52, Lon: 13.405, Type: "break", Heading: ptr(90)},
			{Lat: 48.1351, Lon: 11.582},
		},
		Costing:        "bicycle",
		CostingOptions: json.RawMessage(`{"bicycle":{"cycling_speed":25.0}}`),
		Alternates:     2,
		Units:          "kilometers",
	}

	payload, err := json.Marshal(req)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(payload, &doc))

	assert.Equal(t, "bicycle", doc["costing"])
	assert.Equal(t, float64(2), doc["alternates"])
	assert.Contains(t, doc, "costing_options", "opaque subtree rides along verbatim")
	assert.NotContains(t, doc, "language", "unset optional fields are omitted, not null")

	locs := doc["locations"].([]any)
	first := locs[0].(map[string]any)
	assert.Equal(t, float64(90), first["heading"])
	second := locs[1].(map[string]any)
	assert.NotContains(t, second, "heading")
	assert.NotContains(t, second, "radius")
}

func TestRouteRequest_EncodeIdempotent(t *testing.T) {
	t.Parallel()
	req := &RouteRequest{
		Locations: []Location{
			{Lat: 52.52, Lon: 13.405},
			{Lat: 48.1351, Lon: 11.582},
		},
		Costing:        "auto",
		CostingOptions: json.RawMessage(`{"auto":{"use_tolls":0.5}}`),
	}

	first, err := json.Marshal(req)
	require.NoError(t, err)
	second, err := json.Marshal(req)
	require.NoError(t, err)
	assert.Equal(t, first, second, "same request encodes byte-identically")
}

func TestLocateRequest_EncodeVerboseAlwaysPresent(t *testing.T) {
	t.Parallel()
	payload, err := json.Marshal(&LocateRequest{
		Locations: []Location{{Lat: 52.52, Lon: 13.405}},
		Verbose:   false,
	})
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(payload, &doc))
	v, ok := doc["verbose"]
	require.True(t, ok, "explicit false is sent; absence and false mean the same remotely")
	assert.Equal(t, false, v)
}

func TestTracePoint_EncodeTime(t *testing.T) {
	t.Parallel()
	ts := NewUnixTime(time.Unix(1704067200, 0))
	payload, err := json.Marshal(&TraceRouteRequest{
		Shape: []TracePoint{
			{Lat: 52.52, Lon: 13.405, Time: &ts},
			{Lat: 52.5201, Lon: 13.4052},
		},
		Costing: "pedestrian",
	})
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"time":1704067200`, "time is integer epoch seconds, not a formatted string")
}

func TestUnixTime_DecodeRejectsNonInteger(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
	}{
		{name: "string timestamp", input: `"2024-01-01T00:00:00Z"`},
		{name: "float seconds", input: `1704067200.5`},
		{name: "object", input: `{"seconds":1704067200}`},
		{name: "null", input: `null`},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var ts UnixTime
			err := json.Unmarshal([]byte(tc.input), &ts)
			require.ErrorIs(t, err, ErrBadResponse)
		})
	}
}

func TestUnixTime_DecodeInteger(t *testing.T) {
	t.Parallel()
	var ts UnixTime
	require.NoError(t, json.Unmarshal([]byte(`1704067200`), &ts))
	assert.Equal(t, int64(1704067200), ts.Unix())
}
