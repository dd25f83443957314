package datastructure

import (
	"path/filepath"
	"testing"

	"github.com/lintang-b-s/routehazard/pkg"
	"github.com/lintang-b-s/routehazard/pkg/geo"
)

func TestAnalysisArchiveRoundTrip(t *testing.T) {
	records := []AnalysisRecord{
		NewAnalysisRecord("route-1", pkg.BLIND_SPOT.String(), "Turn Angle: 72.3°",
			geo.NewCoordinate(-7.7481, 110.3612), 72.3, pkg.HIGH_RISK, 0.67),
		NewAnalysisRecord("route-1", pkg.HOSPITAL.String(), "RS Panti Rapih",
			geo.NewCoordinate(-7.7502, 110.3689), 0, pkg.LOW_RISK, 1.54),
	}

	file := filepath.Join(t.TempDir(), "route-1.analysis.bz2")
	if err := WriteAnalysis(file, "route-1", records); err != nil {
		t.Fatalf("write: %v", err)
	}

	routeId, got, err := ReadAnalysis(file)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if routeId != "route-1" {
		t.Errorf("route id %q, want route-1", routeId)
	}
	if len(got) != len(records) {
		t.Fatalf("got %d records, want %d", len(got), len(records))
	}
	for i := range records {
		if got[i] != records[i] {
			t.Errorf("record %d: got %+v, want %+v", i, got[i], records[i])
		}
	}
}

func TestPoiArchiveRoundTrip(t *testing.T) {
	pois := []PointOfInterest{
		NewPointOfInterest(42, pkg.POLICE, "Polda DIY", "Jl. Ring Road Utara",
			geo.NewCoordinate(-7.7556, 110.3701)),
	}

	file := filepath.Join(t.TempDir(), "pois.bz2")
	if err := WritePois(file, pois); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := ReadPois(file)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 1 || got[0] != pois[0] {
		t.Errorf("got %+v, want %+v", got, pois)
	}
}

func TestReadAnalysisMissingFile(t *testing.T) {
	if _, _, err := ReadAnalysis(filepath.Join(t.TempDir(), "nope.bz2")); err == nil {
		t.Error("want error for a missing archive")
	}
}
