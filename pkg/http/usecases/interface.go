package usecases

import (
	"context"

	"github.com/lintang-b-s/routehazard/pkg"
	"github.com/lintang-b-s/routehazard/pkg/clients/directions"
	"github.com/lintang-b-s/routehazard/pkg/datastructure"
	"github.com/lintang-b-s/routehazard/pkg/engine"
	"github.com/lintang-b-s/routehazard/pkg/geo"
)

type AnalysisEngine interface {
	AnalyzePath(ctx context.Context, routeId string, path *datastructure.Path,
		pois []datastructure.PointOfInterest) (*engine.RouteAnalysis, error)
	AnalyzeRoute(ctx context.Context, routeId, encodedPolyline string,
		pois []datastructure.PointOfInterest) (*engine.RouteAnalysis, error)
}

type DirectionsClient interface {
	GetRoute(ctx context.Context, origin, destination geo.Coordinate) (*directions.Route, error)
}

type RoadsClient interface {
	SnapToRoads(ctx context.Context, coords []geo.Coordinate) ([]geo.Coordinate, error)
}

type PlacesClient interface {
	SearchAlongPath(ctx context.Context, path *datastructure.Path,
		categories []pkg.PlaceCategory) ([]datastructure.PointOfInterest, error)
}
