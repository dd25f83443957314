package matcher

import (
	"math"

	"github.com/lintang-b-s/routehazard/pkg"
	"github.com/lintang-b-s/routehazard/pkg/datastructure"
	"github.com/lintang-b-s/routehazard/pkg/geo"
	"github.com/lintang-b-s/routehazard/pkg/spatialindex"
	"go.uber.org/zap"
)

const (
	// leaf bounding box radius of the path-point r-tree, in km
	leafBoundingBoxRadiusKm = 0.05
)

type Matcher struct {
	log         *zap.Logger
	radiusMeter float64
}

func New(log *zap.Logger, radiusMeter float64) *Matcher {
	if radiusMeter <= 0 {
		radiusMeter = pkg.POI_MATCH_RADIUS_METER
	}
	return &Matcher{
		log:         log,
		radiusMeter: radiusMeter,
	}
}

/*
Match. associate every point of interest with its nearest path point. a POI
whose minimum distance to the path exceeds the match radius produces no match
and is silently dropped. candidate path points come from an r-tree radius
query, so only the POI's surroundings are scanned instead of the whole path;
the result is the same as the naive min-over-all-points scan.
*/
func (m *Matcher) Match(path *datastructure.Path, pois []datastructure.PointOfInterest) []datastructure.ProximityMatch {
	matches := make([]datastructure.ProximityMatch, 0, len(pois))
	if path == nil || path.Len() == 0 || len(pois) == 0 {
		return matches
	}

	index := spatialindex.NewRtree()
	index.Build(path, leafBoundingBoxRadiusKm, m.log)

	// query boxes span radius/sqrt(2) per axis, widen so the box covers the
	// whole match circle
	searchRadiusKm := m.radiusMeter * math.Sqrt2 / 1000.0

	for _, poi := range pois {
		coord := poi.GetCoord()
		candidates := index.SearchWithinRadius(coord.Lat, coord.Lon, searchRadiusKm)
		if len(candidates) == 0 {
			continue
		}

		bestIndex := -1
		bestDist := 0.0
		for _, cand := range candidates {
			dist := geo.HaversineDistanceMeter(coord, cand.GetCoord())
			if bestIndex == -1 || dist < bestDist {
				bestIndex = cand.GetIndex()
				bestDist = dist
			}
		}

		if bestDist <= m.radiusMeter {
			matches = append(matches, datastructure.NewProximityMatch(poi, bestIndex, bestDist))
		}
	}

	m.log.Debug("proximity matching done",
		zap.Int("pois", len(pois)), zap.Int("matches", len(matches)))

	return matches
}
