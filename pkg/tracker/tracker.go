package tracker

import (
	"errors"
	"time"

	"github.com/lintang-b-s/routehazard/pkg/datastructure"
	"github.com/lintang-b-s/routehazard/pkg/geo"
	"github.com/lintang-b-s/routehazard/pkg/spatialindex"
	"go.uber.org/zap"
)

var (
	ErrNotTracking    = errors.New("tracking session is not active")
	ErrAlreadyStarted = errors.New("tracking session already started")
	ErrInvalidFix     = errors.New("fix has an invalid coordinate")
)

type State uint8

const (
	IDLE State = iota
	TRACKING
)

func (s State) String() string {
	if s == TRACKING {
		return "tracking"
	}
	return "idle"
}

const (
	// search radius (km) for locating the planned-route segment nearest to a fix
	offRouteSearchRadiusKm = 1.0
)

/*
Session folds a stream of position fixes into cumulative distance and elapsed
time. Idle -> Tracking on Start, Tracking -> Idle on Stop; Stop discards all
state, so a new Start is a fresh session with no memory of the previous one.

A session is owned by exactly one consumer and is not safe for concurrent use.
Fixes must be applied in arrival order; a fix whose timestamp is not after the
last applied one is ignored idempotently (distance accumulation is
order-sensitive, replaying or reordering would corrupt it).
*/
type Session struct {
	log *zap.Logger

	state           State
	startTime       time.Time
	lastFix         datastructure.GPSFix
	cumulativeMeter float64

	route      *datastructure.Path
	routeIndex *spatialindex.Rtree
}

func NewSession(log *zap.Logger) *Session {
	return &Session{
		log:   log,
		state: IDLE,
	}
}

// AttachRoute attaches the planned route geometry so snapshots can report how
// far the vehicle strays from it. Optional; tracking works without a route.
func (s *Session) AttachRoute(path *datastructure.Path) {
	s.route = path
	s.routeIndex = spatialindex.NewRtree()
	s.routeIndex.Build(path, 0.05, s.log)
}

func (s *Session) GetState() State {
	return s.state
}

// Start begins a session seeded with the first fix.
func (s *Session) Start(fix datastructure.GPSFix) (datastructure.TrackingSnapshot, error) {
	if s.state == TRACKING {
		return datastructure.TrackingSnapshot{}, ErrAlreadyStarted
	}
	if !fix.Coord().Valid() {
		return datastructure.TrackingSnapshot{}, ErrInvalidFix
	}

	s.state = TRACKING
	s.startTime = fix.Time()
	s.lastFix = fix
	s.cumulativeMeter = 0

	return s.snapshot(), nil
}

/*
Update applies one position fix. The haversine distance from the previous fix
is added to the cumulative total, even for implausible jumps: the fix source
is trusted as-is and plausibility filtering is left to the caller (snapshots
expose average speed for that purpose).

An invalid coordinate is rejected with ErrInvalidFix and the previous state is
preserved; the session stays active. A duplicate or out-of-order timestamp is
not an error: the fix is dropped and the current snapshot returned.
*/
func (s *Session) Update(fix datastructure.GPSFix) (datastructure.TrackingSnapshot, error) {
	if s.state != TRACKING {
		return datastructure.TrackingSnapshot{}, ErrNotTracking
	}
	if !fix.Coord().Valid() {
		return s.snapshot(), ErrInvalidFix
	}
	if !fix.Time().After(s.lastFix.Time()) {
		return s.snapshot(), nil
	}

	s.cumulativeMeter += geo.HaversineDistanceMeter(s.lastFix.Coord(), fix.Coord())
	s.lastFix = fix

	return s.snapshot(), nil
}

// Stop ends the session and returns the final snapshot. All tracking state is
// discarded.
func (s *Session) Stop() (datastructure.TrackingSnapshot, error) {
	if s.state != TRACKING {
		return datastructure.TrackingSnapshot{}, ErrNotTracking
	}

	final := s.snapshot()

	s.state = IDLE
	s.startTime = time.Time{}
	s.lastFix = datastructure.GPSFix{}
	s.cumulativeMeter = 0

	return final, nil
}

func (s *Session) snapshot() datastructure.TrackingSnapshot {
	return datastructure.NewTrackingSnapshot(
		s.lastFix.Coord(),
		s.cumulativeMeter,
		s.lastFix.Time().Sub(s.startTime),
		s.lastFix.Accuracy(),
	)
}

/*
OffRouteDistanceMeter. perpendicular distance from the last fix to the nearest
segment of the attached route, in meter. returns -1 when no route is attached,
the session is idle, or the fix is farther than the search radius from every
route point.
*/
func (s *Session) OffRouteDistanceMeter() float64 {
	if s.route == nil || s.state != TRACKING {
		return -1
	}

	c := s.lastFix.Coord()
	candidates := s.routeIndex.SearchWithinRadius(c.Lat, c.Lon, offRouteSearchRadiusKm)
	if len(candidates) == 0 {
		return -1
	}

	best := -1.0
	for _, cand := range candidates {
		i := cand.GetIndex()

		dist := geo.HaversineDistanceMeter(c, cand.GetCoord())
		if best < 0 || dist < best {
			best = dist
		}

		if i+1 < s.route.Len() {
			segDist := geo.PointLinePerpendicularDistance(s.route.Get(i), s.route.Get(i+1), c)
			if segDist < best {
				best = segDist
			}
		}
		if i > 0 {
			segDist := geo.PointLinePerpendicularDistance(s.route.Get(i-1), s.route.Get(i), c)
			if segDist < best {
				best = segDist
			}
		}
	}
	return best
}
