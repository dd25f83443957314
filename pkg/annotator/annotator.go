package annotator

import (
	"fmt"
	"sort"

	"github.com/lintang-b-s/routehazard/pkg"
	"github.com/lintang-b-s/routehazard/pkg/datastructure"
	"github.com/lintang-b-s/routehazard/pkg/geo"
	"github.com/lintang-b-s/routehazard/pkg/util"
)

/*
CumulativeDistancesKm. distance-from-origin in km at every path index, as a
single forward pass summing consecutive segment lengths. the result is
monotonically non-decreasing. requesting it on an empty path is an error.
*/
func CumulativeDistancesKm(path *datastructure.Path) ([]float64, error) {
	if path == nil || path.Len() == 0 {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput,
			"distance-from-origin requested on an empty path")
	}

	dists := make([]float64, path.Len())
	for i := 1; i < path.Len(); i++ {
		prev := path.Get(i - 1)
		curr := path.Get(i)
		dists[i] = dists[i-1] + geo.CalculateHaversineDistance(prev.Lat, prev.Lon, curr.Lat, curr.Lon)
	}
	return dists, nil
}

// RiskOfTurn maps a turn classification to its risk level.
func RiskOfTurn(class pkg.TurnClass) pkg.RiskLevel {
	switch class {
	case pkg.BLIND_SPOT:
		return pkg.HIGH_RISK
	case pkg.SHARP_TURN:
		return pkg.MEDIUM_RISK
	default:
		return pkg.LOW_RISK
	}
}

// RiskOfPlace maps a POI category to its risk level. every category known
// today is informational; unknown categories default to low.
func RiskOfPlace(category pkg.PlaceCategory) pkg.RiskLevel {
	return pkg.LOW_RISK
}

type keyedRecord struct {
	record datastructure.AnalysisRecord
	distKm float64
	kind   int // 0 = turn, 1 = poi; turns win distance ties
	seq    int
}

/*
Annotate. merge the turn events and proximity matches of one route into the
exported record sequence: every record carries its risk level and its
distance-from-origin in km (rounded to 2 decimals), ordered by ascending
distance with turns before POIs at equal distance. an empty path with no
events or matches yields an empty record set, not an error.
*/
func Annotate(routeId string, path *datastructure.Path, events []datastructure.TurnEvent,
	matches []datastructure.ProximityMatch) ([]datastructure.AnalysisRecord, error) {

	if len(events) == 0 && len(matches) == 0 {
		return []datastructure.AnalysisRecord{}, nil
	}

	distKm, err := CumulativeDistancesKm(path)
	if err != nil {
		return nil, err
	}

	keyed := make([]keyedRecord, 0, len(events)+len(matches))

	for seq, ev := range events {
		d := distKm[ev.GetPathIndex()]
		angle := util.RoundFloat(ev.GetDeltaAngle(), 1)
		rec := datastructure.NewAnalysisRecord(routeId,
			ev.GetClass().String(),
			fmt.Sprintf("Turn Angle: %.1f°", angle),
			ev.GetCoord(),
			angle,
			RiskOfTurn(ev.GetClass()),
			util.RoundFloat(d, 2))
		keyed = append(keyed, keyedRecord{record: rec, distKm: d, kind: 0, seq: seq})
	}

	for seq, m := range matches {
		d := distKm[m.GetNearestIndex()]
		poi := m.GetPoi()
		rec := datastructure.NewAnalysisRecord(routeId,
			poi.GetCategory().String(),
			poi.GetName(),
			poi.GetCoord(),
			0,
			RiskOfPlace(poi.GetCategory()),
			util.RoundFloat(d, 2))
		keyed = append(keyed, keyedRecord{record: rec, distKm: d, kind: 1, seq: seq})
	}

	sort.SliceStable(keyed, func(i, j int) bool {
		if keyed[i].distKm != keyed[j].distKm {
			return keyed[i].distKm < keyed[j].distKm
		}
		if keyed[i].kind != keyed[j].kind {
			return keyed[i].kind < keyed[j].kind
		}
		return keyed[i].seq < keyed[j].seq
	})

	records := make([]datastructure.AnalysisRecord, len(keyed))
	for i, k := range keyed {
		records[i] = k.record
	}
	return records, nil
}
