package geo

import (
	"math"
	"testing"
)

func TestCalculateHaversineDistance(t *testing.T) {
	// one degree of longitude on the equator
	got := CalculateHaversineDistance(0, 0, 0, 1)
	want := 2 * math.Pi * 6371.0 / 360.0
	if math.Abs(got-want) > 0.01 {
		t.Errorf("got %v km, want %v km", got, want)
	}

	if d := CalculateHaversineDistance(-7.7956, 110.3695, -7.7956, 110.3695); d != 0 {
		t.Errorf("identical points: got %v, want 0", d)
	}
}

func TestHaversineDistanceMeter(t *testing.T) {
	a := NewCoordinate(0, 0)
	b := NewCoordinate(0, 0.001)

	got := HaversineDistanceMeter(a, b)
	want := CalculateHaversineDistance(0, 0, 0, 0.001) * 1000.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("got %v m, want %v m", got, want)
	}
}

func TestBearingTo(t *testing.T) {
	testCases := []struct {
		name                       string
		p1Lat, p1Lon, p2Lat, p2Lon float64
		want                       float64
	}{
		{name: "due north", p1Lat: 0, p1Lon: 0, p2Lat: 1, p2Lon: 0, want: 0},
		{name: "due east", p1Lat: 0, p1Lon: 0, p2Lat: 0, p2Lon: 1, want: 90},
		{name: "due south", p1Lat: 1, p1Lon: 0, p2Lat: 0, p2Lon: 0, want: 180},
		{name: "due west", p1Lat: 0, p1Lon: 1, p2Lat: 0, p2Lon: 0, want: 270},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got := BearingTo(tt.p1Lat, tt.p1Lon, tt.p2Lat, tt.p2Lon)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDeltaBearing(t *testing.T) {
	testCases := []struct {
		name          string
		before, after float64
		want          float64
	}{
		{name: "no change", before: 90, after: 90, want: 0},
		{name: "simple difference", before: 10, after: 50, want: 40},
		{name: "across north clockwise", before: 350, after: 10, want: 20},
		{name: "across north counterclockwise", before: 10, after: 350, want: 20},
		{name: "opposite directions", before: 0, after: 180, want: 180},
		{name: "reflex angle takes shorter side", before: 0, after: 270, want: 90},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got := DeltaBearing(tt.before, tt.after)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
