package geo

import (
	"fmt"
	"strings"
)

const polylinePrecision = 1e5

// DecodeError reports a malformed encoded polyline: the string ended in the
// middle of a 5-bit chunk sequence at byte offset Pos.
type DecodeError struct {
	Pos int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid polyline: truncated chunk at byte %d", e.Pos)
}

/*
DecodePolyline. decode an encoded path string into its coordinate sequence.
standard signed 5-bit-chunked base-32-offset encoding with 1e5 precision, as
returned by the directions API overview_polyline:
https://developers.google.com/maps/documentation/utilities/polylinealgorithm

each coordinate is a cumulative signed delta from the previous one. a string
that ends before a chunk sequence terminates yields a DecodeError and no
partial result.
*/
func DecodePolyline(encoded string) ([]Coordinate, error) {
	coords := make([]Coordinate, 0, len(encoded)/4)

	var lat, lon int64
	i := 0
	for i < len(encoded) {
		dLat, n, err := decodeSignedValue(encoded, i)
		if err != nil {
			return nil, err
		}
		i = n

		dLon, n, err := decodeSignedValue(encoded, i)
		if err != nil {
			return nil, err
		}
		i = n

		lat += dLat
		lon += dLon
		coords = append(coords, NewCoordinate(
			float64(lat)/polylinePrecision,
			float64(lon)/polylinePrecision,
		))
	}

	return coords, nil
}

// decodeSignedValue reads one zig-zag encoded value starting at offset i,
// returning the value and the offset just past it.
func decodeSignedValue(encoded string, i int) (int64, int, error) {
	var (
		result int64
		shift  uint
	)
	for {
		if i >= len(encoded) {
			return 0, i, &DecodeError{Pos: i}
		}
		b := int64(encoded[i]) - 63
		i++
		result |= (b & 0x1f) << shift
		shift += 5
		if b < 0x20 {
			break
		}
	}
	if result&1 != 0 {
		return ^(result >> 1), i, nil
	}
	return result >> 1, i, nil
}

/*
PoylineFromCoords. encode a coordinate sequence back into a polyline string.
inverse of DecodePolyline up to the 1e-5 precision of the encoding.
*/
func PoylineFromCoords(coords []Coordinate) string {
	var sb strings.Builder

	var prevLat, prevLon int64
	for _, c := range coords {
		lat := roundHalfAway(c.Lat * polylinePrecision)
		lon := roundHalfAway(c.Lon * polylinePrecision)

		encodeSignedValue(&sb, lat-prevLat)
		encodeSignedValue(&sb, lon-prevLon)

		prevLat = lat
		prevLon = lon
	}

	return sb.String()
}

func encodeSignedValue(sb *strings.Builder, v int64) {
	u := v << 1
	if v < 0 {
		u = ^u
	}
	for u >= 0x20 {
		sb.WriteByte(byte((u&0x1f)|0x20) + 63)
		u >>= 5
	}
	sb.WriteByte(byte(u) + 63)
}

func roundHalfAway(v float64) int64 {
	if v < 0 {
		return int64(v - 0.5)
	}
	return int64(v + 0.5)
}
