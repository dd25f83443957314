package datastructure

import (
	"time"

	"github.com/lintang-b-s/routehazard/pkg/geo"
)

// GPSFix is one position sample from the device-location collaborator.
type GPSFix struct {
	coord    geo.Coordinate
	time     time.Time
	accuracy float64 // horizontal accuracy in meter, passed through as-is
}

func NewGPSFix(lat, lon float64, t time.Time, accuracy float64) GPSFix {
	return GPSFix{
		coord:    geo.NewCoordinate(lat, lon),
		time:     t,
		accuracy: accuracy,
	}
}

func (f GPSFix) Coord() geo.Coordinate {
	return f.coord
}

func (f GPSFix) Time() time.Time {
	return f.time
}

func (f GPSFix) Accuracy() float64 {
	return f.accuracy
}

// TrackingSnapshot is the state emitted to the caller after every applied fix.
type TrackingSnapshot struct {
	lastFix            geo.Coordinate
	cumulativeDistance float64 // meter
	elapsed            time.Duration
	accuracy           float64
}

func NewTrackingSnapshot(lastFix geo.Coordinate, cumulativeDistance float64,
	elapsed time.Duration, accuracy float64) TrackingSnapshot {
	return TrackingSnapshot{
		lastFix:            lastFix,
		cumulativeDistance: cumulativeDistance,
		elapsed:            elapsed,
		accuracy:           accuracy,
	}
}

func (s TrackingSnapshot) GetLastFix() geo.Coordinate {
	return s.lastFix
}

func (s TrackingSnapshot) GetCumulativeDistanceMeter() float64 {
	return s.cumulativeDistance
}

func (s TrackingSnapshot) GetElapsed() time.Duration {
	return s.elapsed
}

func (s TrackingSnapshot) GetAccuracy() float64 {
	return s.accuracy
}

// AverageSpeedKmh. average speed over the whole session. 0 before any
// distance is accumulated.
func (s TrackingSnapshot) AverageSpeedKmh() float64 {
	if s.elapsed <= 0 {
		return 0
	}
	return (s.cumulativeDistance / 1000.0) / s.elapsed.Hours()
}
