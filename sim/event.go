// Package sim implements the acquisition pipeline: sample decay events,
// project their emission rays onto the detector ring, and cut the result
// on angular correlation. Stages are wired from a single immutable
// config.Config and share nothing but the random stream they are given.
package sim

import "petsim/geometry"

// Emission is one sampled decay before projection: a source position on
// the phantom boundary and the two emission angles.
type Emission struct {
	Source     geometry.Point
	Angle1     float64
	Angle2     float64
	Correlated bool
}

// Event is one projected decay. A nil hit means the emission ray never
// crossed the detector ring. Correlated is the ground-truth label assigned
// at generation time, not a detected property. Events are immutable once
// built.
type Event struct {
	Source     geometry.Point
	Hit1       *geometry.Point
	Hit2       *geometry.Point
	Correlated bool
}

// FilteredEvent is a coincidence accepted by the filter. The ground-truth
// label is deliberately absent: the filter's output no longer records why
// an event passed.
type FilteredEvent struct {
	Hit1 geometry.Point
	Hit2 geometry.Point
}
