package controllers

import (
	"time"

	"github.com/lintang-b-s/routehazard/pkg"
	"github.com/lintang-b-s/routehazard/pkg/clients/directions"
	"github.com/lintang-b-s/routehazard/pkg/datastructure"
	"github.com/lintang-b-s/routehazard/pkg/engine"
	"github.com/lintang-b-s/routehazard/pkg/geo"
)

type analyzeRouteRequest struct {
	RouteId        string  `json:"route_id" validate:"required"`
	OriginLat      float64 `json:"origin_lat" validate:"required,min=-90,max=90"`
	OriginLon      float64 `json:"origin_lon" validate:"required,min=-180,max=180"`
	DestinationLat float64 `json:"destination_lat" validate:"required,min=-90,max=90"`
	DestinationLon float64 `json:"destination_lon" validate:"required,min=-180,max=180"`
}

type poiRequest struct {
	Category string  `json:"category" validate:"required"`
	Name     string  `json:"name" validate:"required"`
	Address  string  `json:"address"`
	Lat      float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lon      float64 `json:"lon" validate:"required,min=-180,max=180"`
}

type analyzePolylineRequest struct {
	RouteId  string       `json:"route_id" validate:"required"`
	Polyline string       `json:"polyline" validate:"required"`
	Pois     []poiRequest `json:"pois" validate:"dive"`
}

func (req *analyzePolylineRequest) ToPois() []datastructure.PointOfInterest {
	pois := make([]datastructure.PointOfInterest, 0, len(req.Pois))
	for i, p := range req.Pois {
		pois = append(pois, datastructure.NewPointOfInterest(int64(i),
			pkg.GetPlaceCategory(p.Category), p.Name, p.Address,
			geo.NewCoordinate(p.Lat, p.Lon)))
	}
	return pois
}

type recordResponse struct {
	Category          string  `json:"category"`
	Name              string  `json:"name"`
	Lat               float64 `json:"lat"`
	Lon               float64 `json:"lon"`
	TurnAngle         float64 `json:"turn_angle"`
	Risk              string  `json:"risk"`
	DistanceToStartKm float64 `json:"distance_to_start_km"`
}

type summaryResponse struct {
	TotalTurns      int     `json:"total_turns"`
	BlindSpots      int     `json:"blind_spots"`
	Hospitals       int     `json:"hospitals"`
	PoliceStations  int     `json:"police_stations"`
	GasStations     int     `json:"gas_stations"`
	TrainStations   int     `json:"train_stations"`
	TotalDistanceKm float64 `json:"total_distance_km"`
}

type analysisResponse struct {
	RouteId  string           `json:"route_id"`
	Path     string           `json:"path"`
	Distance string           `json:"distance,omitempty"`
	Duration string           `json:"duration,omitempty"`
	Records  []recordResponse `json:"records"`
	Summary  summaryResponse  `json:"summary"`
}

func NewAnalysisResponse(analysis *engine.RouteAnalysis, route *directions.Route) analysisResponse {
	records := make([]recordResponse, 0, len(analysis.GetRecords()))
	for _, rec := range analysis.GetRecords() {
		records = append(records, recordResponse{
			Category:          rec.GetCategory(),
			Name:              rec.GetName(),
			Lat:               rec.GetCoord().Lat,
			Lon:               rec.GetCoord().Lon,
			TurnAngle:         rec.GetTurnAngle(),
			Risk:              rec.GetRisk().String(),
			DistanceToStartKm: rec.GetDistToStartKm(),
		})
	}

	summary := analysis.GetSummary()
	resp := analysisResponse{
		RouteId: analysis.GetRouteId(),
		Path:    geo.PoylineFromCoords(analysis.GetPath().Coordinates()),
		Records: records,
		Summary: summaryResponse{
			TotalTurns:      summary.GetTotalTurns(),
			BlindSpots:      summary.GetBlindSpots(),
			Hospitals:       summary.GetPoiCount(pkg.HOSPITAL),
			PoliceStations:  summary.GetPoiCount(pkg.POLICE),
			GasStations:     summary.GetPoiCount(pkg.GAS_STATION),
			TrainStations:   summary.GetPoiCount(pkg.TRAIN_STATION),
			TotalDistanceKm: summary.GetTotalDistanceKm(),
		},
	}
	if route != nil {
		resp.Distance = route.GetDistanceText()
		resp.Duration = route.GetDurationText()
	}
	return resp
}

// websocket live-tracking messages

type trackingRequest struct {
	Action string  `json:"action" validate:"required,oneof=start update stop"`
	Lat    float64 `json:"lat" validate:"min=-90,max=90"`
	Lon    float64 `json:"lon" validate:"min=-180,max=180"`
	UnixMs int64   `json:"timestamp_ms"`
	// planned route polyline, optional on a start message; when set, responses
	// carry the distance from the fix to the route
	RoutePolyline string  `json:"route_polyline"`
	Accuracy      float64 `json:"accuracy"`
}

func (req *trackingRequest) ToFix() datastructure.GPSFix {
	return datastructure.NewGPSFix(req.Lat, req.Lon, time.UnixMilli(req.UnixMs), req.Accuracy)
}

type trackingResponse struct {
	State              string  `json:"state"`
	Lat                float64 `json:"lat"`
	Lon                float64 `json:"lon"`
	CumulativeDistance float64 `json:"cumulative_distance_m"`
	ElapsedSeconds     float64 `json:"elapsed_seconds"`
	Accuracy           float64 `json:"accuracy_m"`
	AverageSpeedKmh    float64 `json:"average_speed_kmh"`
	OffRouteMeter      float64 `json:"off_route_m"`
}

func NewTrackingResponse(state string, snap datastructure.TrackingSnapshot,
	offRouteMeter float64) trackingResponse {
	return trackingResponse{
		State:              state,
		Lat:                snap.GetLastFix().Lat,
		Lon:                snap.GetLastFix().Lon,
		CumulativeDistance: snap.GetCumulativeDistanceMeter(),
		ElapsedSeconds:     snap.GetElapsed().Seconds(),
		Accuracy:           snap.GetAccuracy(),
		AverageSpeedKmh:    snap.AverageSpeedKmh(),
		OffRouteMeter:      offRouteMeter,
	}
}
