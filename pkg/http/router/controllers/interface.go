package controllers

import (
	"context"

	"github.com/lintang-b-s/routehazard/pkg/clients/directions"
	"github.com/lintang-b-s/routehazard/pkg/datastructure"
	"github.com/lintang-b-s/routehazard/pkg/engine"
)

type AnalysisService interface {
	AnalyzeRoute(ctx context.Context, routeId string,
		origLat, origLon, dstLat, dstLon float64) (*engine.RouteAnalysis, *directions.Route, error)
	AnalyzePolyline(ctx context.Context, routeId, encodedPolyline string,
		pois []datastructure.PointOfInterest) (*engine.RouteAnalysis, error)
}
