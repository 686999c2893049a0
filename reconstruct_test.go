package valhalla

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tripJSON(label string, length float64) string {
	return fmt.Sprintf(`{
		"locations": [{"lat": 52.52, "lon": 13.405}, {"lat": 48.1351, "lon": 11.582}],
		"legs": [{"summary": {"length": %[2]v, "time": 3600}, "maneuvers": [], "shape": "_izlhA~rlgdF_{geC~ywl@"}],
		"summary": {"length": %[2]v, "time": 3600},
		"status": 0,
		"status_message": "%[1]s",
		"units": "kilometers",
		"language": "en-US"
	}`, label, length)
}

func TestReconstructRoute_AlternateCounts(t *testing.T) {
	t.Parallel()
	for _, n := range []int{0, 1, 2} {
		n := n
		t.Run(fmt.Sprintf("%d alternates", n), func(t *testing.T) {
			t.Parallel()
			var alts []string
			for i := 0; i < n; i++ {
				alts = append(alts, fmt.Sprintf(`{"trip": %s}`, tripJSON(fmt.Sprintf("alternate %d", i), float64(600+i))))
			}
			doc := fmt.Sprintf(`{"trip": %s`, tripJSON("primary", 584))
			if n > 0 {
				doc += fmt.Sprintf(`, "alternates": [%s]`, strings.Join(alts, ","))
			}
			doc += `}`

			resp, err := reconstructRoute(json.RawMessage(doc))
			require.NoError(t, err)
			require.Len(t, resp.Trips, n+1)
			assert.Equal(t, "primary", resp.Trips[0].StatusMessage, "index 0 is always the primary trip")
			for i := 1; i <= n; i++ {
				assert.Equal(t, fmt.Sprintf("alternate %d", i-1), resp.Trips[i].StatusMessage, "alternates keep remote order")
			}
			assert.Equal(t, resp.Trips[0], resp.Trip())
			assert.Len(t, resp.Alternates(), n)
		})
	}
}

func TestReconstructRoute_TripFields(t *testing.T) {
	t.Parallel()
	doc := fmt.Sprintf(`{"trip": %s}`, tripJSON("Found route between points", 12.3))
	resp, err := reconstructRoute(json.RawMessage(doc))
	require.NoError(t, err)

	trip := resp.Trip()
	assert.Equal(t, 0, trip.Status)
	assert.Equal(t, "kilometers", trip.Units)
	assert.InDelta(t, 12.3, trip.Summary.Length, 1e-9)
	require.Len(t, trip.Legs, 1)
	assert.Equal(t, "_izlhA~rlgdF_{geC~ywl@", trip.Legs[0].Shape)
	assert.JSONEq(t, doc, string(resp.Raw), "the raw envelope is the full document")
}

func TestReconstructRoute_Malformed(t *testing.T) {
	t.Parallel()
	_, err := reconstructRoute(json.RawMessage(`{"trip": [1,2,3]}`))
	require.ErrorIs(t, err, ErrBadResponse)
}

func TestReconstructLocate_ArrayRoot(t *testing.T) {
	t.Parallel()
	doc := `[
		{
			"input_lat": 52.52,
			"input_lon": 13.405,
			"nodes": [],
			"edges": [{"way_id": 12345, "correlated_lat": 52.520012, "correlated_lon": 13.404981, "percent_along": 0.42, "side_of_street": "left"}]
		},
		{
			"input_lat": 0.0,
			"input_lon": 0.0,
			"nodes": [],
			"edges": []
		}
	]`

	resp, err := reconstructLocate(json.RawMessage(doc))
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)

	first := resp.Results[0]
	assert.Equal(t, int64(12345), first.Edges[0].WayID)
	assert.InDelta(t, 0.42, first.Edges[0].PercentAlong, 1e-9)

	// An empty per-location result is valid data, not an error.
	assert.Empty(t, resp.Results[1].Edges)
	assert.Empty(t, resp.Results[1].Nodes)

	assert.JSONEq(t, doc, string(resp.Raw), "the raw envelope preserves the array document")
}

func TestReconstructLocate_ObjectRootRejected(t *testing.T) {
	t.Parallel()
	_, err := reconstructLocate(json.RawMessage(`{"edges": []}`))
	require.ErrorIs(t, err, ErrBadResponse)
}

func TestReconstructStatus(t *testing.T) {
	t.Parallel()
	doc := `{"version": "3.4.0", "tileset_last_modified": 1704067200, "has_tiles": true, "extra_field": 7}`
	resp, err := reconstructStatus(json.RawMessage(doc))
	require.NoError(t, err)
	assert.Equal(t, "3.4.0", resp.Version)
	assert.Equal(t, int64(1704067200), resp.TilesetLastModified)
	assert.True(t, resp.HasTiles)
	assert.Contains(t, string(resp.Raw), "extra_field", "unmodeled fields stay reachable via Raw")
}

func TestReconstructTraceAttributes(t *testing.T) {
	t.Parallel()
	doc := `{
		"shape": "_izlhA~rlgdF_{geC~ywl@",
		"matched_points": [{"lat": 52.52, "lon": 13.405, "type": "matched", "edge_index": 0, "distance_from_trace_point": 1.2}],
		"edges": [{"way_id": 99, "speed": 50}],
		"units": "kilometers"
	}`
	resp, err := reconstructTraceAttributes(json.RawMessage(doc))
	require.NoError(t, err)
	require.Len(t, resp.MatchedPoints, 1)
	assert.Equal(t, "matched", resp.MatchedPoints[0].Type)
	assert.Contains(t, string(resp.Edges), `"way_id": 99`, "edges stay an opaque subtree")
}
