package guidance

import (
	"github.com/lintang-b-s/routehazard/pkg"
	"github.com/lintang-b-s/routehazard/pkg/datastructure"
	"github.com/lintang-b-s/routehazard/pkg/geo"
)

/*
ClassifyDelta. classify a bearing change (degrees, [0,180]) into a hazard
severity. bounds are exclusive on the lower side: exactly 35° is still a
normal turn, exactly 60° is still a sharp turn.

	delta > 60°        -> blind spot
	35° < delta <= 60° -> sharp turn
	delta <= 35°       -> normal driving (not reported)
*/
func ClassifyDelta(delta float64) pkg.TurnClass {
	switch {
	case delta > pkg.BLIND_SPOT_ANGLE_DEGREE:
		return pkg.BLIND_SPOT
	case delta > pkg.SHARP_TURN_ANGLE_DEGREE:
		return pkg.SHARP_TURN
	default:
		return pkg.NORMAL_TURN
	}
}

/*
DetectTurns. single forward pass over the path. for every interior point i the
bearing of segment (i-1,i) and segment (i,i+1) are compared; the delta is the
shorter angular distance around the compass. normal-driving deltas produce no
event, so the result holds at most one event per interior index, in traversal
order. paths with fewer than 3 points yield an empty list.
*/
func DetectTurns(path *datastructure.Path) []datastructure.TurnEvent {
	events := make([]datastructure.TurnEvent, 0)
	if path == nil || path.Len() < 3 {
		return events
	}

	prev := path.Get(0)
	curr := path.Get(1)
	bearingBefore := geo.BearingTo(prev.Lat, prev.Lon, curr.Lat, curr.Lon)

	for i := 1; i < path.Len()-1; i++ {
		curr = path.Get(i)
		next := path.Get(i + 1)
		bearingAfter := geo.BearingTo(curr.Lat, curr.Lon, next.Lat, next.Lon)

		delta := geo.DeltaBearing(bearingBefore, bearingAfter)
		if class := ClassifyDelta(delta); class != pkg.NORMAL_TURN {
			events = append(events, datastructure.NewTurnEvent(i, curr,
				bearingBefore, bearingAfter, delta, class))
		}

		bearingBefore = bearingAfter
	}

	return events
}
