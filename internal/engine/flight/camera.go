package flight

import (
	"github.com/paulmach/orb"

	"github.com/rendis/geopaint/internal/model"
)

// Phase is the camera stage of a flight.
type Phase int

const (
	Takeoff Phase = iota
	Cruise
	Landing
)

func (p Phase) String() string {
	switch p {
	case Takeoff:
		return "takeoff"
	case Cruise:
		return "cruise"
	default:
		return "landing"
	}
}

const (
	takeoffEnd = 0.2
	cruiseEnd  = 0.8
)

type phaseSpec struct {
	from, to float64 // progress range
	zoomFrom float64
	zoomTo   float64
}

var phases = [...]phaseSpec{
	Takeoff: {0, takeoffEnd, 1.0, 1.3},
	Cruise:  {takeoffEnd, cruiseEnd, 1.3, 0.7},
	Landing: {cruiseEnd, 1, 0.7, 1.2},
}

// PhaseAt returns the camera phase for progress p.
func PhaseAt(p float64) Phase {
	switch {
	case p <= takeoffEnd:
		return Takeoff
	case p <= cruiseEnd:
		return Cruise
	default:
		return Landing
	}
}

// Anchor is an optional pixel position.
type Anchor struct {
	Point orb.Point
	OK    bool
}

// ZoomAt is the camera scale at progress p, linear within each phase.
func ZoomAt(p float64) float64 {
	spec := phases[PhaseAt(p)]
	local := (p - spec.from) / (spec.to - spec.from)
	if local < 0 {
		local = 0
	} else if local > 1 {
		local = 1
	}
	return spec.zoomFrom + (spec.zoomTo-spec.zoomFrom)*local
}

// CameraAt centres a width x height viewport on the origin during takeoff,
// on the plane while cruising and on the destination when landing. A
// missing or non-finite anchor yields the identity transform.
func CameraAt(p float64, origin, plane, dest Anchor, width, height float64) model.ViewportTransform {
	var focus Anchor
	switch PhaseAt(p) {
	case Takeoff:
		focus = origin
	case Cruise:
		focus = plane
	default:
		focus = dest
	}
	if !focus.OK || !finitePoint(focus.Point) {
		return model.Identity()
	}
	k := ZoomAt(p)
	t := model.ViewportTransform{
		Scale:      k,
		TranslateX: width/2 - k*focus.Point[0],
		TranslateY: height/2 - k*focus.Point[1],
	}
	if !t.Finite() {
		return model.Identity()
	}
	return t
}
