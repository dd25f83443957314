package datastructure

import (
	"github.com/lintang-b-s/routehazard/pkg"
	"github.com/lintang-b-s/routehazard/pkg/geo"
)

// AnalysisRecord is the exported unit of a route analysis: one hazard or one
// matched point of interest, with its risk level and distance from the route
// origin. records of one route are ordered by ascending distance-from-origin.
type AnalysisRecord struct {
	routeId       string
	category      string
	name          string
	coord         geo.Coordinate
	turnAngle     float64 // 0 for POI records
	risk          pkg.RiskLevel
	distToStartKm float64
}

func NewAnalysisRecord(routeId, category, name string, coord geo.Coordinate,
	turnAngle float64, risk pkg.RiskLevel, distToStartKm float64) AnalysisRecord {
	return AnalysisRecord{
		routeId:       routeId,
		category:      category,
		name:          name,
		coord:         coord,
		turnAngle:     turnAngle,
		risk:          risk,
		distToStartKm: distToStartKm,
	}
}

func (r AnalysisRecord) GetRouteId() string {
	return r.routeId
}

func (r AnalysisRecord) GetCategory() string {
	return r.category
}

func (r AnalysisRecord) GetName() string {
	return r.name
}

func (r AnalysisRecord) GetCoord() geo.Coordinate {
	return r.coord
}

func (r AnalysisRecord) GetTurnAngle() float64 {
	return r.turnAngle
}

func (r AnalysisRecord) GetRisk() pkg.RiskLevel {
	return r.risk
}

func (r AnalysisRecord) GetDistToStartKm() float64 {
	return r.distToStartKm
}
