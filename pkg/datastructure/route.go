package datastructure

import (
	"github.com/lintang-b-s/routehazard/pkg"
	"github.com/lintang-b-s/routehazard/pkg/geo"
)

// Path is the decoded route geometry. index 0 is the origin, the last index
// the destination. immutable once built.
type Path struct {
	coords []geo.Coordinate
}

func NewPath(coords []geo.Coordinate) *Path {
	own := make([]geo.Coordinate, len(coords))
	copy(own, coords)
	return &Path{coords: own}
}

func (p *Path) Len() int {
	return len(p.coords)
}

func (p *Path) Get(i int) geo.Coordinate {
	return p.coords[i]
}

func (p *Path) Coordinates() []geo.Coordinate {
	out := make([]geo.Coordinate, len(p.coords))
	copy(out, p.coords)
	return out
}

// BoundingBox of every path point. only valid for a non-empty path.
func (p *Path) BoundingBox() *BoundingBox {
	bb := NewBoundingBox(p.coords[0].Lat, p.coords[0].Lon, p.coords[0].Lat, p.coords[0].Lon)
	for _, c := range p.coords[1:] {
		bb.Extend(c.Lat, c.Lon)
	}
	return bb
}

type TurnEvent struct {
	pathIndex     int
	coord         geo.Coordinate
	bearingBefore float64
	bearingAfter  float64
	deltaAngle    float64
	class         pkg.TurnClass
}

func NewTurnEvent(pathIndex int, coord geo.Coordinate, bearingBefore, bearingAfter,
	deltaAngle float64, class pkg.TurnClass) TurnEvent {
	return TurnEvent{
		pathIndex:     pathIndex,
		coord:         coord,
		bearingBefore: bearingBefore,
		bearingAfter:  bearingAfter,
		deltaAngle:    deltaAngle,
		class:         class,
	}
}

func (t TurnEvent) GetPathIndex() int {
	return t.pathIndex
}

func (t TurnEvent) GetCoord() geo.Coordinate {
	return t.coord
}

func (t TurnEvent) GetBearingBefore() float64 {
	return t.bearingBefore
}

func (t TurnEvent) GetBearingAfter() float64 {
	return t.bearingAfter
}

func (t TurnEvent) GetDeltaAngle() float64 {
	return t.deltaAngle
}

func (t TurnEvent) GetClass() pkg.TurnClass {
	return t.class
}
