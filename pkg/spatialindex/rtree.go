package spatialindex

import (
	"math"

	"github.com/lintang-b-s/routehazard/pkg/datastructure"
	"github.com/lintang-b-s/routehazard/pkg/geo"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

type Rtree struct {
	tr *rtree.RTreeG[PathPoint]
}

// PathPoint is an r-tree leaf: one path coordinate together with its index
// along the route, so a radius query directly yields candidate path positions
// for the proximity matcher.
type PathPoint struct {
	index int
	coord geo.Coordinate
}

func (pp PathPoint) GetIndex() int {
	return pp.index
}

func (pp PathPoint) GetCoord() geo.Coordinate {
	return pp.coord
}

func newPathPoint(index int, coord geo.Coordinate) PathPoint {
	return PathPoint{
		index: index,
		coord: coord,
	}
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[PathPoint]
	return &Rtree{
		tr: &tr,
	}
}

// Build. build r-tree over every path point, with each leaf having a bounding
// box with radius boundingBoxRadius (in km)
func (rt *Rtree) Build(path *datastructure.Path, boundingBoxRadius float64, log *zap.Logger) {
	log.Debug("Building R-tree spatial index...", zap.Int("path_points", path.Len()))

	for i := 0; i < path.Len(); i++ {
		c := path.Get(i)

		lowerLat, lowerLon := geo.GetDestinationPoint(c.Lat, c.Lon, 225, boundingBoxRadius)
		upperLat, upperLon := geo.GetDestinationPoint(c.Lat, c.Lon, 45, boundingBoxRadius)

		minLat := math.Min(lowerLat, upperLat)
		minLon := math.Min(lowerLon, upperLon)
		maxLat := math.Max(lowerLat, upperLat)
		maxLon := math.Max(lowerLon, upperLon)

		rt.tr.Insert([2]float64{minLon, minLat}, [2]float64{maxLon, maxLat},
			newPathPoint(i, c))
	}

	log.Debug("R-tree spatial index built.")
}

// SearchWithinRadius search for all path points within radius (in km) from the query point (qLat, qLon)
func (rt *Rtree) SearchWithinRadius(qLat, qLon, radius float64) []PathPoint {
	lowerLat, lowerLon := geo.GetDestinationPoint(qLat, qLon, 225, radius)
	upperLat, upperLon := geo.GetDestinationPoint(qLat, qLon, 45, radius)

	results := make([]PathPoint, 0, 10)
	rt.tr.Search([2]float64{lowerLon, lowerLat}, [2]float64{upperLon, upperLat},
		func(min, max [2]float64, data PathPoint) bool {
			results = append(results, data)
			return true
		})
	return results
}
