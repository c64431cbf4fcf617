package sim

import (
	"math"

	"petsim/config"
	"petsim/geometry"
)

// ChordWindow is the half-width of the acceptance window around π for the
// chord angle of a coincidence.
const ChordWindow = math.Pi / 4

// Filter cuts events on the angular consistency of their detector-hit
// chord. An event with a missing hit is always cut. A correlated event
// passes when its chord angle lies within ChordWindow of π, measured
// circularly so that atan2 results near -π count as near π. Uncorrelated
// events are cut unless PassUncorrelated is configured, in which case they
// pass unconditionally.
type Filter struct {
	passUncorrelated bool
}

// NewFilter wires a filter from the run configuration.
func NewFilter(cfg config.Config) Filter {
	return Filter{passUncorrelated: cfg.PassUncorrelated}
}

// DeltaPhi returns the angle of the chord from hit1 to hit2.
func DeltaPhi(hit1, hit2 geometry.Point) float64 {
	return math.Atan2(hit2.Y-hit1.Y, hit2.X-hit1.X)
}

// Apply returns the accepted coincidence, or ok=false when the event is
// cut. It never fails: malformed events are cut, not reported.
func (f Filter) Apply(ev Event) (FilteredEvent, bool) {
	if ev.Hit1 == nil || ev.Hit2 == nil {
		return FilteredEvent{}, false
	}
	if !ev.Correlated {
		if !f.passUncorrelated {
			return FilteredEvent{}, false
		}
		return FilteredEvent{Hit1: *ev.Hit1, Hit2: *ev.Hit2}, true
	}
	if geometry.AngleDist(DeltaPhi(*ev.Hit1, *ev.Hit2), math.Pi) >= ChordWindow {
		return FilteredEvent{}, false
	}
	return FilteredEvent{Hit1: *ev.Hit1, Hit2: *ev.Hit2}, true
}

// Run applies the filter to a whole event set, preserving order. The
// output never exceeds the input in length.
func (f Filter) Run(events []Event) []FilteredEvent {
	out := make([]FilteredEvent, 0, len(events))
	for _, ev := range events {
		if fe, ok := f.Apply(ev); ok {
			out = append(out, fe)
		}
	}
	return out
}
