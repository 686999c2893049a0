// Package polyline implements the fixed-precision delta encoding used by
// routing APIs to compress coordinate sequences into printable strings.
//
// Each coordinate is scaled by 10^precision, rounded, delta-encoded against
// the previous point, zig-zag-mapped to unsigned, and emitted five bits at a
// time with a continuation bit, offset by 63 into the printable range.
// Precision is a parameter because deployed services disagree: most
// Valhalla endpoints emit precision 6, the classic Google scheme uses 5.
package polyline

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// DefaultPrecision is the precision the routing service's shape strings use.
const DefaultPrecision = 6

var (
	// ErrTruncated means the input ended with a chunk's continuation bit
	// still set, or with a latitude missing its longitude.
	ErrTruncated = errors.New("polyline: truncated input")

	// ErrInvalidChar means a byte outside the scheme's printable range.
	ErrInvalidChar = errors.New("polyline: invalid character")
)

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Lat float64
	Lon float64
}

// Encode compresses points at the given precision. An empty or nil slice
// encodes to the empty string.
func Encode(points []Point, precision int) string {
	factor := math.Pow10(precision)
	var b strings.Builder
	b.Grow(len(points) * 12)
	var prevLat, prevLon int64
	for _, p := range points {
		lat := int64(math.Round(p.Lat * factor))
		lon := int64(math.Round(p.Lon * factor))
		writeDelta(&b, lat-prevLat)
		writeDelta(&b, lon-prevLon)
		prevLat, prevLon = lat, lon
	}
	return b.String()
}

func writeDelta(b *strings.Builder, v int64) {
	u := uint64(v) << 1
	if v < 0 {
		u = ^u
	}
	for u >= 0x20 {
		b.WriteByte(byte(0x20|(u&0x1f)) + 63)
		u >>= 5
	}
	b.WriteByte(byte(u) + 63)
}

// Decode expands s at the given precision. The empty string decodes to an
// empty sequence. Decoded values are exact to within 1/10^precision of the
// encoded originals.
func Decode(s string, precision int) ([]Point, error) {
	factor := math.Pow10(precision)
	var points []Point
	var lat, lon int64
	for i := 0; i < len(s); {
		dLat, n, err := readDelta(s[i:])
		if err != nil {
			return nil, err
		}
		i += n
		dLon, n, err := readDelta(s[i:])
		if err != nil {
			return nil, err
		}
		i += n
		lat += dLat
		lon += dLon
		points = append(points, Point{
			Lat: float64(lat) / factor,
			Lon: float64(lon) / factor,
		})
	}
	return points, nil
}

func readDelta(s string) (int64, int, error) {
	var u uint64
	var shift uint
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 63 || c > 126 {
			return 0, 0, fmt.Errorf("%w: byte %#02x", ErrInvalidChar, c)
		}
		chunk := uint64(c - 63)
		u |= (chunk & 0x1f) << shift
		if chunk&0x20 == 0 {
			v := int64(u >> 1)
			if u&1 != 0 {
				v = ^v
			}
			return v, i + 1, nil
		}
		shift += 5
	}
	return 0, 0, ErrTruncated
}
