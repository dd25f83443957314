package metrics

import (
	"github.com/lintang-b-s/routehazard/pkg"
	"github.com/lintang-b-s/routehazard/pkg/datastructure"
)

// RouteSummary aggregates one route analysis into the headline numbers shown
// to the user: how many turns, how many of them blind spots, which POIs sit
// along the route, and how long the route is.
type RouteSummary struct {
	routeId         string
	totalTurns      int
	blindSpots      int
	poiCounts       map[pkg.PlaceCategory]int
	totalDistanceKm float64
}

func NewRouteSummary(routeId string, totalDistanceKm float64,
	events []datastructure.TurnEvent, matches []datastructure.ProximityMatch) *RouteSummary {

	summary := &RouteSummary{
		routeId:         routeId,
		totalTurns:      len(events),
		poiCounts:       make(map[pkg.PlaceCategory]int),
		totalDistanceKm: totalDistanceKm,
	}

	for _, ev := range events {
		if ev.GetClass() == pkg.BLIND_SPOT {
			summary.blindSpots++
		}
	}
	for _, m := range matches {
		summary.poiCounts[m.GetPoi().GetCategory()]++
	}

	return summary
}

func (s *RouteSummary) GetRouteId() string {
	return s.routeId
}

func (s *RouteSummary) GetTotalTurns() int {
	return s.totalTurns
}

func (s *RouteSummary) GetBlindSpots() int {
	return s.blindSpots
}

func (s *RouteSummary) GetPoiCount(category pkg.PlaceCategory) int {
	return s.poiCounts[category]
}

func (s *RouteSummary) GetTotalDistanceKm() float64 {
	return s.totalDistanceKm
}
