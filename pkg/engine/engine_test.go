package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/lintang-b-s/routehazard/pkg"
	"github.com/lintang-b-s/routehazard/pkg/datastructure"
	"github.com/lintang-b-s/routehazard/pkg/geo"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func zigzagPolyline() string {
	// equator path with two right-angle corners
	coords := []geo.Coordinate{
		geo.NewCoordinate(0, 0),
		geo.NewCoordinate(0, 0.01),
		geo.NewCoordinate(0.01, 0.01),
		geo.NewCoordinate(0.01, 0.02),
		geo.NewCoordinate(0.01, 0.03),
	}
	return geo.PoylineFromCoords(coords)
}

func testPois() []datastructure.PointOfInterest {
	return []datastructure.PointOfInterest{
		datastructure.NewPointOfInterest(1, pkg.HOSPITAL, "RSUP Dr. Sardjito", "Jl. Kesehatan",
			geo.NewCoordinate(0, 0.01)),
		datastructure.NewPointOfInterest(2, pkg.GAS_STATION, "SPBU Kaliurang", "",
			geo.NewCoordinate(5, 5)),
	}
}

func TestAnalyzeRoute(t *testing.T) {
	e := NewEngine(zap.NewNop(), pkg.POI_MATCH_RADIUS_METER)

	analysis, err := e.AnalyzeRoute(context.Background(), "route-1", zigzagPolyline(), testPois())
	require.NoError(t, err)

	require.Equal(t, "route-1", analysis.GetRouteId())
	require.Equal(t, 5, analysis.GetPath().Len())

	// both corners are blind spots
	require.Len(t, analysis.GetTurnEvents(), 2)
	for _, ev := range analysis.GetTurnEvents() {
		require.Equal(t, pkg.BLIND_SPOT, ev.GetClass())
	}

	// only the hospital is near the path
	require.Len(t, analysis.GetMatches(), 1)
	require.Equal(t, "RSUP Dr. Sardjito", analysis.GetMatches()[0].GetPoi().GetName())

	require.Len(t, analysis.GetRecords(), 3)

	summary := analysis.GetSummary()
	require.Equal(t, 2, summary.GetTotalTurns())
	require.Equal(t, 2, summary.GetBlindSpots())
	require.Equal(t, 1, summary.GetPoiCount(pkg.HOSPITAL))
	require.Equal(t, 0, summary.GetPoiCount(pkg.GAS_STATION))
	require.Greater(t, summary.GetTotalDistanceKm(), 0.0)
}

func TestAnalyzeRouteMalformedPolyline(t *testing.T) {
	e := NewEngine(zap.NewNop(), pkg.POI_MATCH_RADIUS_METER)

	analysis, err := e.AnalyzeRoute(context.Background(), "route-1", "_p~iF", nil)

	var decodeErr *geo.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	require.Nil(t, analysis, "a malformed route must not yield partial results")
}

func TestAnalyzeBatchMatchesSequential(t *testing.T) {
	e := NewEngine(zap.NewNop(), pkg.POI_MATCH_RADIUS_METER)
	ctx := context.Background()

	jobs := make([]BatchJob, 0, 8)
	for i := 0; i < 8; i++ {
		jobs = append(jobs, BatchJob{
			RouteId:         fmt.Sprintf("route-%d", i),
			EncodedPolyline: zigzagPolyline(),
			Pois:            testPois(),
		})
	}
	// one malformed route mixed in; it must fail alone
	jobs = append(jobs, BatchJob{RouteId: "route-bad", EncodedPolyline: "_p~iF"})

	results := e.AnalyzeBatch(ctx, jobs, 4)
	require.Len(t, results, len(jobs))

	byId := make(map[string]BatchResult, len(results))
	for _, res := range results {
		byId[res.RouteId] = res
	}

	for _, job := range jobs[:8] {
		res, ok := byId[job.RouteId]
		require.True(t, ok, "missing result for %s", job.RouteId)
		require.NoError(t, res.Err)

		sequential, err := e.AnalyzeRoute(ctx, job.RouteId, job.EncodedPolyline, job.Pois)
		require.NoError(t, err)
		require.Equal(t, sequential.GetRecords(), res.Analysis.GetRecords())
	}

	bad := byId["route-bad"]
	require.Error(t, bad.Err)
	require.Nil(t, bad.Analysis)
}

func TestAnalyzePathCanceledContext(t *testing.T) {
	e := NewEngine(zap.NewNop(), pkg.POI_MATCH_RADIUS_METER)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.AnalyzeRoute(ctx, "route-1", zigzagPolyline(), nil)
	require.True(t, errors.Is(err, context.Canceled))
}
