package usecases

import (
	"context"

	"github.com/lintang-b-s/routehazard/pkg"
	"github.com/lintang-b-s/routehazard/pkg/clients/directions"
	"github.com/lintang-b-s/routehazard/pkg/datastructure"
	"github.com/lintang-b-s/routehazard/pkg/engine"
	"github.com/lintang-b-s/routehazard/pkg/geo"
	"go.uber.org/zap"
)

var defaultCategories = []pkg.PlaceCategory{
	pkg.HOSPITAL, pkg.POLICE, pkg.GAS_STATION, pkg.TRAIN_STATION,
}

type AnalysisService struct {
	log         *zap.Logger
	engine      AnalysisEngine
	directions  DirectionsClient
	roads       RoadsClient
	places      PlacesClient
	snapToRoads bool
}

func NewAnalysisService(log *zap.Logger, analysisEngine AnalysisEngine,
	directionsClient DirectionsClient, roadsClient RoadsClient, placesClient PlacesClient,
	snapToRoads bool) *AnalysisService {
	return &AnalysisService{
		log:         log,
		engine:      analysisEngine,
		directions:  directionsClient,
		roads:       roadsClient,
		places:      placesClient,
		snapToRoads: snapToRoads,
	}
}

/*
AnalyzeRoute. the end-to-end flow of one route: fetch the driving route from
the directions collaborator, optionally snap its overview polyline onto road
geometry, look up POIs along it and run the analysis pipeline. collaborator
degradation rules: an unusable snap falls back to the raw polyline, a failed
places lookup degrades to zero POI candidates; only a failed directions call
or a malformed polyline aborts the route.
*/
func (as *AnalysisService) AnalyzeRoute(ctx context.Context, routeId string,
	origLat, origLon, dstLat, dstLon float64) (*engine.RouteAnalysis, *directions.Route, error) {

	route, err := as.directions.GetRoute(ctx,
		geo.NewCoordinate(origLat, origLon), geo.NewCoordinate(dstLat, dstLon))
	if err != nil {
		return nil, nil, err
	}

	coords, err := geo.DecodePolyline(route.GetEncodedPolyline())
	if err != nil {
		return nil, nil, err
	}

	if as.snapToRoads {
		snapped, err := as.roads.SnapToRoads(ctx, coords)
		if err != nil {
			as.log.Warn("snap-to-roads unusable, analyzing raw polyline",
				zap.String("route_id", routeId), zap.Error(err))
		} else {
			coords = snapped
		}
	}

	path := datastructure.NewPath(coords)

	pois, err := as.places.SearchAlongPath(ctx, path, defaultCategories)
	if err != nil {
		as.log.Warn("places lookup failed, analyzing without POIs",
			zap.String("route_id", routeId), zap.Error(err))
		pois = nil
	}

	analysis, err := as.engine.AnalyzePath(ctx, routeId, path, pois)
	if err != nil {
		return nil, nil, err
	}
	return analysis, route, nil
}

// AnalyzePolyline runs the pipeline on a caller-supplied encoded path and POI
// candidate list, with no collaborator calls.
func (as *AnalysisService) AnalyzePolyline(ctx context.Context, routeId, encodedPolyline string,
	pois []datastructure.PointOfInterest) (*engine.RouteAnalysis, error) {
	return as.engine.AnalyzeRoute(ctx, routeId, encodedPolyline, pois)
}
