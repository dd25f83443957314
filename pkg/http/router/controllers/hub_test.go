package controllers

import (
	"testing"

	"github.com/lintang-b-s/routehazard/pkg/geo"
	"github.com/lintang-b-s/routehazard/pkg/tracker"
	"go.uber.org/zap"
)

func trackingUser() *User {
	return &User{session: tracker.NewSession(zap.NewNop())}
}

// equator route with points roughly 111 m apart
func routePolyline() string {
	coords := make([]geo.Coordinate, 0, 10)
	for i := 0; i < 10; i++ {
		coords = append(coords, geo.NewCoordinate(0, float64(i)*0.001))
	}
	return geo.PoylineFromCoords(coords)
}

func TestApplyTrackingWithRoute(t *testing.T) {
	u := trackingUser()

	// ~55 m north of the route
	resp, err := u.applyTracking(&trackingRequest{
		Action:        "start",
		Lat:           0.0005,
		Lon:           0.003,
		UnixMs:        0,
		RoutePolyline: routePolyline(),
	})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if resp.State != "tracking" {
		t.Errorf("state %q, want tracking", resp.State)
	}
	if resp.OffRouteMeter < 0 {
		t.Fatalf("off-route distance %v, want a measurement once a route is attached", resp.OffRouteMeter)
	}
	if resp.OffRouteMeter > 100 {
		t.Errorf("off-route distance %v m, want below 100 m", resp.OffRouteMeter)
	}

	resp, err = u.applyTracking(&trackingRequest{
		Action: "update",
		Lat:    0.0005,
		Lon:    0.004,
		UnixMs: 1000,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if resp.OffRouteMeter < 0 {
		t.Errorf("update off-route distance %v, want a measurement", resp.OffRouteMeter)
	}
	if resp.CumulativeDistance <= 0 {
		t.Errorf("cumulative distance %v, want positive", resp.CumulativeDistance)
	}

	resp, err = u.applyTracking(&trackingRequest{Action: "stop"})
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if resp.State != "idle" {
		t.Errorf("state %q after stop, want idle", resp.State)
	}
}

func TestApplyTrackingWithoutRoute(t *testing.T) {
	u := trackingUser()

	resp, err := u.applyTracking(&trackingRequest{Action: "start", Lat: 0.0005, Lon: 0.003})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if resp.OffRouteMeter != -1 {
		t.Errorf("off-route distance %v without a route, want -1", resp.OffRouteMeter)
	}
}

func TestApplyTrackingMalformedRoute(t *testing.T) {
	u := trackingUser()

	_, err := u.applyTracking(&trackingRequest{
		Action:        "start",
		Lat:           0.0005,
		Lon:           0.003,
		RoutePolyline: "_p~iF",
	})
	if err == nil {
		t.Fatal("want error for a malformed route polyline")
	}
	if u.session.GetState() != tracker.IDLE {
		t.Error("failed start must leave the session idle")
	}
}
