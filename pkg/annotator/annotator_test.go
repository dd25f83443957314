package annotator

import (
	"fmt"
	"testing"

	"github.com/lintang-b-s/routehazard/pkg"
	"github.com/lintang-b-s/routehazard/pkg/datastructure"
	"github.com/lintang-b-s/routehazard/pkg/geo"
)

func equatorPath(n int) *datastructure.Path {
	coords := make([]geo.Coordinate, 0, n)
	for i := 0; i < n; i++ {
		coords = append(coords, geo.NewCoordinate(0, float64(i)*0.001))
	}
	return datastructure.NewPath(coords)
}

func TestCumulativeDistancesKm(t *testing.T) {
	path := equatorPath(5)

	dists, err := CumulativeDistancesKm(path)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(dists) != path.Len() {
		t.Fatalf("got %d distances, want %d", len(dists), path.Len())
	}
	if dists[0] != 0 {
		t.Errorf("origin distance %v, want 0", dists[0])
	}
	for i := 1; i < len(dists); i++ {
		if dists[i] < dists[i-1] {
			t.Errorf("distance not monotonic at %d: %v < %v", i, dists[i], dists[i-1])
		}
	}
}

func TestCumulativeDistancesKmEmptyPath(t *testing.T) {
	if _, err := CumulativeDistancesKm(datastructure.NewPath(nil)); err == nil {
		t.Error("want error on empty path")
	}
	if _, err := CumulativeDistancesKm(nil); err == nil {
		t.Error("want error on nil path")
	}
}

func TestRiskOfTurn(t *testing.T) {
	testCases := []struct {
		class pkg.TurnClass
		want  pkg.RiskLevel
	}{
		{class: pkg.BLIND_SPOT, want: pkg.HIGH_RISK},
		{class: pkg.SHARP_TURN, want: pkg.MEDIUM_RISK},
		{class: pkg.NORMAL_TURN, want: pkg.LOW_RISK},
	}
	for _, tt := range testCases {
		if got := RiskOfTurn(tt.class); got != tt.want {
			t.Errorf("RiskOfTurn(%v) = %v, want %v", tt.class, got, tt.want)
		}
	}
}

func TestAnnotate(t *testing.T) {
	path := equatorPath(5)

	events := []datastructure.TurnEvent{
		datastructure.NewTurnEvent(2, path.Get(2), 90, 162.3, 72.34, pkg.BLIND_SPOT),
	}
	matches := []datastructure.ProximityMatch{
		datastructure.NewProximityMatch(
			datastructure.NewPointOfInterest(7, pkg.HOSPITAL, "RS Panti Rapih", "", path.Get(4)), 4, 12.5),
		datastructure.NewProximityMatch(
			datastructure.NewPointOfInterest(8, pkg.POLICE, "Polda DIY", "", path.Get(0)), 0, 30.0),
	}

	records, err := Annotate("route-1", path, events, matches)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}

	// ascending distance-from-origin: police at index 0, turn at index 2,
	// hospital at index 4
	if records[0].GetName() != "Polda DIY" {
		t.Errorf("record 0 is %q, want the police station", records[0].GetName())
	}
	if records[1].GetCategory() != pkg.BLIND_SPOT.String() {
		t.Errorf("record 1 category %q, want %q", records[1].GetCategory(), pkg.BLIND_SPOT.String())
	}
	if records[2].GetName() != "RS Panti Rapih" {
		t.Errorf("record 2 is %q, want the hospital", records[2].GetName())
	}

	turn := records[1]
	if turn.GetName() != fmt.Sprintf("Turn Angle: %.1f°", 72.3) {
		t.Errorf("turn name %q", turn.GetName())
	}
	if turn.GetRisk() != pkg.HIGH_RISK {
		t.Errorf("turn risk %v, want %v", turn.GetRisk(), pkg.HIGH_RISK)
	}
	if records[0].GetRisk() != pkg.LOW_RISK || records[2].GetRisk() != pkg.LOW_RISK {
		t.Error("poi records must be low risk")
	}

	prev := -1.0
	for i, rec := range records {
		if rec.GetDistToStartKm() < prev {
			t.Errorf("record %d distance %v not monotonic", i, rec.GetDistToStartKm())
		}
		prev = rec.GetDistToStartKm()
		if rec.GetRouteId() != "route-1" {
			t.Errorf("record %d route id %q", i, rec.GetRouteId())
		}
	}
}

func TestAnnotateTurnWinsDistanceTie(t *testing.T) {
	path := equatorPath(5)

	events := []datastructure.TurnEvent{
		datastructure.NewTurnEvent(2, path.Get(2), 90, 135, 45, pkg.SHARP_TURN),
	}
	matches := []datastructure.ProximityMatch{
		datastructure.NewProximityMatch(
			datastructure.NewPointOfInterest(9, pkg.GAS_STATION, "SPBU Janti", "", path.Get(2)), 2, 0),
	}

	records, err := Annotate("route-1", path, events, matches)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].GetCategory() != pkg.SHARP_TURN.String() {
		t.Errorf("record 0 category %q, want the turn first", records[0].GetCategory())
	}
}

func TestAnnotateEmpty(t *testing.T) {
	records, err := Annotate("route-1", datastructure.NewPath(nil), nil, nil)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records, want 0", len(records))
	}
}
