package datastructure

import (
	"github.com/lintang-b-s/routehazard/pkg"
	"github.com/lintang-b-s/routehazard/pkg/geo"
)

// PointOfInterest is supplied by the places collaborator (or the offline osm
// extractor) and is read-only to the analysis pipeline.
type PointOfInterest struct {
	id       int64
	category pkg.PlaceCategory
	name     string
	address  string
	coord    geo.Coordinate
}

func NewPointOfInterest(id int64, category pkg.PlaceCategory, name, address string,
	coord geo.Coordinate) PointOfInterest {
	return PointOfInterest{
		id:       id,
		category: category,
		name:     name,
		address:  address,
		coord:    coord,
	}
}

func (p PointOfInterest) GetId() int64 {
	return p.id
}

func (p PointOfInterest) GetCategory() pkg.PlaceCategory {
	return p.category
}

func (p PointOfInterest) GetName() string {
	return p.name
}

func (p PointOfInterest) GetAddress() string {
	return p.address
}

func (p PointOfInterest) GetCoord() geo.Coordinate {
	return p.coord
}

type ProximityMatch struct {
	poi           PointOfInterest
	nearestIndex  int
	distanceMeter float64
}

func NewProximityMatch(poi PointOfInterest, nearestIndex int, distanceMeter float64) ProximityMatch {
	return ProximityMatch{
		poi:           poi,
		nearestIndex:  nearestIndex,
		distanceMeter: distanceMeter,
	}
}

func (m ProximityMatch) GetPoi() PointOfInterest {
	return m.poi
}

func (m ProximityMatch) GetNearestIndex() int {
	return m.nearestIndex
}

func (m ProximityMatch) GetDistanceMeter() float64 {
	return m.distanceMeter
}
