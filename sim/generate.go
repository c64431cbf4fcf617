package sim

import (
	"math"
	"math/rand"

	"petsim/config"
	"petsim/geometry"
)

// Generator samples decay events from an explicit random stream. The draw
// order per event is fixed (source angle, label, first angle, second angle
// when uncorrelated) so a seeded stream reproduces a run draw for draw.
type Generator struct {
	sourceRadius   float64
	correlatedProb float64
	rng            *rand.Rand
}

// NewGenerator wires a generator from the run configuration and the
// stream it should consume.
func NewGenerator(cfg config.Config, rng *rand.Rand) *Generator {
	return &Generator{
		sourceRadius:   cfg.SourceRadius,
		correlatedProb: cfg.CorrelatedProb,
		rng:            rng,
	}
}

// Next samples one decay. The source sits on the phantom boundary circle,
// not inside the disc; correlated pairs are emitted exactly back to back.
func (g *Generator) Next() Emission {
	sourceAngle := g.rng.Float64() * 2 * math.Pi
	source := geometry.OnRing(g.sourceRadius, sourceAngle)

	correlated := g.rng.Float64() < g.correlatedProb

	angle1 := g.rng.Float64() * 2 * math.Pi
	var angle2 float64
	if correlated {
		angle2 = geometry.WrapAngle(angle1 + math.Pi)
	} else {
		angle2 = g.rng.Float64() * 2 * math.Pi
	}

	return Emission{
		Source:     source,
		Angle1:     angle1,
		Angle2:     angle2,
		Correlated: correlated,
	}
}
