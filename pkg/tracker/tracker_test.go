package tracker

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/lintang-b-s/routehazard/pkg/datastructure"
	"github.com/lintang-b-s/routehazard/pkg/geo"
	"go.uber.org/zap"
)

var t0 = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

func TestSessionLifecycle(t *testing.T) {
	s := NewSession(zap.NewNop())

	if s.GetState() != IDLE {
		t.Fatalf("new session state %v, want idle", s.GetState())
	}

	snap, err := s.Start(datastructure.NewGPSFix(0, 0, t0, 5))
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if s.GetState() != TRACKING {
		t.Fatalf("state %v after start, want tracking", s.GetState())
	}
	if snap.GetCumulativeDistanceMeter() != 0 {
		t.Errorf("initial cumulative distance %v, want 0", snap.GetCumulativeDistanceMeter())
	}

	snap, err = s.Update(datastructure.NewGPSFix(0, 0.001, t0.Add(10*time.Second), 5))
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	wantMeter := geo.HaversineDistanceMeter(geo.NewCoordinate(0, 0), geo.NewCoordinate(0, 0.001))
	if math.Abs(snap.GetCumulativeDistanceMeter()-wantMeter) > 1e-9 {
		t.Errorf("cumulative distance %v, want %v", snap.GetCumulativeDistanceMeter(), wantMeter)
	}
	if snap.GetElapsed() != 10*time.Second {
		t.Errorf("elapsed %v, want 10s", snap.GetElapsed())
	}
	if snap.AverageSpeedKmh() <= 0 {
		t.Errorf("average speed %v, want positive", snap.AverageSpeedKmh())
	}

	final, err := s.Stop()
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if math.Abs(final.GetCumulativeDistanceMeter()-wantMeter) > 1e-9 {
		t.Errorf("final cumulative distance %v, want %v", final.GetCumulativeDistanceMeter(), wantMeter)
	}
	if s.GetState() != IDLE {
		t.Errorf("state %v after stop, want idle", s.GetState())
	}
}

func TestSessionDuplicateAndOutOfOrderFixes(t *testing.T) {
	s := NewSession(zap.NewNop())

	if _, err := s.Start(datastructure.NewGPSFix(0, 0, t0, 5)); err != nil {
		t.Fatalf("start: %v", err)
	}
	snap, err := s.Update(datastructure.NewGPSFix(0, 0.001, t0.Add(10*time.Second), 5))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	want := snap.GetCumulativeDistanceMeter()

	// same timestamp again
	snap, err = s.Update(datastructure.NewGPSFix(0, 0.002, t0.Add(10*time.Second), 5))
	if err != nil {
		t.Fatalf("duplicate fix must not error: %v", err)
	}
	if snap.GetCumulativeDistanceMeter() != want {
		t.Errorf("duplicate fix changed distance: %v, want %v", snap.GetCumulativeDistanceMeter(), want)
	}

	// older timestamp
	snap, err = s.Update(datastructure.NewGPSFix(0, 0.002, t0.Add(5*time.Second), 5))
	if err != nil {
		t.Fatalf("out-of-order fix must not error: %v", err)
	}
	if snap.GetCumulativeDistanceMeter() != want {
		t.Errorf("out-of-order fix changed distance: %v, want %v", snap.GetCumulativeDistanceMeter(), want)
	}
	if snap.GetLastFix().Lon != 0.001 {
		t.Errorf("last fix moved to %v, want 0.001", snap.GetLastFix().Lon)
	}
}

func TestSessionInvalidFix(t *testing.T) {
	s := NewSession(zap.NewNop())

	if _, err := s.Start(datastructure.NewGPSFix(0, 0, t0, 5)); err != nil {
		t.Fatalf("start: %v", err)
	}
	before, err := s.Update(datastructure.NewGPSFix(0, 0.001, t0.Add(time.Second), 5))
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	testCases := []struct {
		name     string
		lat, lon float64
	}{
		{name: "latitude out of range", lat: 95, lon: 0.002},
		{name: "longitude out of range", lat: 0, lon: 181},
		{name: "nan latitude", lat: math.NaN(), lon: 0.002},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := s.Update(datastructure.NewGPSFix(tt.lat, tt.lon, t0.Add(2*time.Second), 5))
			if !errors.Is(err, ErrInvalidFix) {
				t.Fatalf("got err %v, want ErrInvalidFix", err)
			}
			if s.GetState() != TRACKING {
				t.Error("invalid fix must not end the session")
			}
			if snap.GetCumulativeDistanceMeter() != before.GetCumulativeDistanceMeter() {
				t.Errorf("invalid fix changed distance: %v, want %v",
					snap.GetCumulativeDistanceMeter(), before.GetCumulativeDistanceMeter())
			}
		})
	}
}

func TestSessionStateErrors(t *testing.T) {
	s := NewSession(zap.NewNop())

	if _, err := s.Update(datastructure.NewGPSFix(0, 0, t0, 5)); !errors.Is(err, ErrNotTracking) {
		t.Errorf("update while idle: got %v, want ErrNotTracking", err)
	}
	if _, err := s.Stop(); !errors.Is(err, ErrNotTracking) {
		t.Errorf("stop while idle: got %v, want ErrNotTracking", err)
	}
	if _, err := s.Start(datastructure.NewGPSFix(95, 0, t0, 5)); !errors.Is(err, ErrInvalidFix) {
		t.Errorf("start with invalid fix: got %v, want ErrInvalidFix", err)
	}
	if s.GetState() != IDLE {
		t.Error("failed start must leave the session idle")
	}

	if _, err := s.Start(datastructure.NewGPSFix(0, 0, t0, 5)); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := s.Start(datastructure.NewGPSFix(0, 0, t0.Add(time.Second), 5)); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("second start: got %v, want ErrAlreadyStarted", err)
	}
}

func TestSessionRestartIsFresh(t *testing.T) {
	s := NewSession(zap.NewNop())

	s.Start(datastructure.NewGPSFix(0, 0, t0, 5))
	s.Update(datastructure.NewGPSFix(0, 0.002, t0.Add(10*time.Second), 5))
	s.Stop()

	snap, err := s.Start(datastructure.NewGPSFix(1, 1, t0.Add(time.Hour), 5))
	if err != nil {
		t.Fatalf("restart: %v", err)
	}
	if snap.GetCumulativeDistanceMeter() != 0 {
		t.Errorf("restarted session carries distance %v, want 0", snap.GetCumulativeDistanceMeter())
	}
	if snap.GetElapsed() != 0 {
		t.Errorf("restarted session carries elapsed %v, want 0", snap.GetElapsed())
	}
}

func TestOffRouteDistanceMeter(t *testing.T) {
	s := NewSession(zap.NewNop())

	if d := s.OffRouteDistanceMeter(); d != -1 {
		t.Errorf("no route attached: got %v, want -1", d)
	}

	coords := make([]geo.Coordinate, 0, 10)
	for i := 0; i < 10; i++ {
		coords = append(coords, geo.NewCoordinate(0, float64(i)*0.001))
	}
	s.AttachRoute(datastructure.NewPath(coords))

	s.Start(datastructure.NewGPSFix(0.0005, 0.003, t0, 5))

	d := s.OffRouteDistanceMeter()
	if d < 0 {
		t.Fatalf("got %v, want a distance", d)
	}
	// ~55 m north of the equator segment
	if d > 100 {
		t.Errorf("off-route distance %v m, want below 100 m", d)
	}
}
