package guidance

import (
	"testing"

	"github.com/lintang-b-s/routehazard/pkg"
	"github.com/lintang-b-s/routehazard/pkg/datastructure"
	"github.com/lintang-b-s/routehazard/pkg/geo"
)

func TestClassifyDelta(t *testing.T) {
	testCases := []struct {
		name  string
		delta float64
		want  pkg.TurnClass
	}{
		{name: "straight", delta: 0, want: pkg.NORMAL_TURN},
		{name: "gentle curve", delta: 10, want: pkg.NORMAL_TURN},
		{name: "exactly sharp threshold stays normal", delta: 35, want: pkg.NORMAL_TURN},
		{name: "just above sharp threshold", delta: 35.1, want: pkg.SHARP_TURN},
		{name: "exactly blind threshold stays sharp", delta: 60, want: pkg.SHARP_TURN},
		{name: "just above blind threshold", delta: 60.1, want: pkg.BLIND_SPOT},
		{name: "hairpin", delta: 180, want: pkg.BLIND_SPOT},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyDelta(tt.delta); got != tt.want {
				t.Errorf("ClassifyDelta(%v) = %v, want %v", tt.delta, got, tt.want)
			}
		})
	}
}

func TestDetectTurns(t *testing.T) {
	testCases := []struct {
		name        string
		coords      []geo.Coordinate
		wantIndexes []int
		wantClasses []pkg.TurnClass
	}{
		{
			name: "right angle turn is a blind spot",
			coords: []geo.Coordinate{
				geo.NewCoordinate(0, 0),
				geo.NewCoordinate(0, 0.01),
				geo.NewCoordinate(0.01, 0.01),
			},
			wantIndexes: []int{1},
			wantClasses: []pkg.TurnClass{pkg.BLIND_SPOT},
		},
		{
			name: "forty five degree turn is sharp",
			coords: []geo.Coordinate{
				geo.NewCoordinate(0, 0),
				geo.NewCoordinate(0, 0.01),
				geo.NewCoordinate(0.01, 0.02),
			},
			wantIndexes: []int{1},
			wantClasses: []pkg.TurnClass{pkg.SHARP_TURN},
		},
		{
			name: "straight path has no events",
			coords: []geo.Coordinate{
				geo.NewCoordinate(0, 0),
				geo.NewCoordinate(0, 0.01),
				geo.NewCoordinate(0, 0.02),
				geo.NewCoordinate(0, 0.03),
			},
			wantIndexes: []int{},
			wantClasses: []pkg.TurnClass{},
		},
		{
			name: "consecutive corners produce one event each",
			coords: []geo.Coordinate{
				geo.NewCoordinate(0, 0),
				geo.NewCoordinate(0, 0.01),
				geo.NewCoordinate(0.01, 0.01),
				geo.NewCoordinate(0.01, 0.02),
			},
			wantIndexes: []int{1, 2},
			wantClasses: []pkg.TurnClass{pkg.BLIND_SPOT, pkg.BLIND_SPOT},
		},
		{
			name: "two points is too short",
			coords: []geo.Coordinate{
				geo.NewCoordinate(0, 0),
				geo.NewCoordinate(0, 0.01),
			},
			wantIndexes: []int{},
			wantClasses: []pkg.TurnClass{},
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			events := DetectTurns(datastructure.NewPath(tt.coords))

			if len(events) != len(tt.wantIndexes) {
				t.Fatalf("got %d events, want %d", len(events), len(tt.wantIndexes))
			}
			for i, ev := range events {
				if ev.GetPathIndex() != tt.wantIndexes[i] {
					t.Errorf("event %d at index %d, want %d", i, ev.GetPathIndex(), tt.wantIndexes[i])
				}
				if ev.GetClass() != tt.wantClasses[i] {
					t.Errorf("event %d class %v, want %v", i, ev.GetClass(), tt.wantClasses[i])
				}
				if ev.GetDeltaAngle() < 0 || ev.GetDeltaAngle() > 180 {
					t.Errorf("event %d delta %v outside [0,180]", i, ev.GetDeltaAngle())
				}
			}
		})
	}
}

func TestDetectTurnsNilPath(t *testing.T) {
	if events := DetectTurns(nil); len(events) != 0 {
		t.Errorf("got %d events, want 0", len(events))
	}
}
