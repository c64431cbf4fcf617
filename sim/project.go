package sim

import (
	"petsim/config"
	"petsim/geometry"
)

// Projector maps emission angles to detector-ring hits. It is pure: a
// ray that misses the ring yields a nil hit, never an error.
type Projector struct {
	detectorRadius float64
	numDetectors   int
	quantize       bool
}

// NewProjector wires a projector from the run configuration.
func NewProjector(cfg config.Config) Projector {
	return Projector{
		detectorRadius: cfg.DetectorRadius,
		numDetectors:   cfg.NumDetectors,
		quantize:       cfg.Quantize,
	}
}

// Project intersects both emission rays with the ring independently and
// carries the ground-truth label through unchanged.
func (p Projector) Project(e Emission) Event {
	ev := Event{Source: e.Source, Correlated: e.Correlated}
	if hit, ok := geometry.RayCircle(e.Source, e.Angle1, p.detectorRadius); ok {
		ev.Hit1 = p.place(hit)
	}
	if hit, ok := geometry.RayCircle(e.Source, e.Angle2, p.detectorRadius); ok {
		ev.Hit2 = p.place(hit)
	}
	return ev
}

func (p Projector) place(hit geometry.Point) *geometry.Point {
	if p.quantize {
		hit = geometry.SnapToRing(hit, p.detectorRadius, p.numDetectors)
	}
	return &hit
}
