// Package render is the event sink: it draws event sets onto square
// canvases the way the reference plots do. The core hands it plain data
// (point pairs plus the two radii for scale); drawing itself performs no
// I/O, so callers decide whether a scene ends up on disk.
package render

import (
	"github.com/gogpu/gg"
	colorful "github.com/lucasb-eyer/go-colorful"

	"petsim/config"
	"petsim/geometry"
	"petsim/sim"
)

// DefaultSize is the canvas edge length in pixels.
const DefaultSize = 800

// margin is the world-space border beyond the detector ring, in ring
// units, matching the reference plots' axis limits.
const margin = 1.0

// Palette for the reference look: blue ring, dotted green source circle,
// translucent red chords, green hit dots. Noise chords in the raw scene
// are tinted toward gray via Lab blending so ground truth stays readable.
var (
	chordColor = colorful.Color{R: 0.84, G: 0.15, B: 0.16}
	noiseColor = chordColor.BlendLab(colorful.Color{R: 0.45, G: 0.45, B: 0.45}, 0.75)
	hitColor   = colorful.Color{R: 0.17, G: 0.63, B: 0.17}
)

// Scene renders event sets for one run configuration.
type Scene struct {
	cfg  config.Config
	size int
}

// NewScene builds a renderer for the given run. size <= 0 selects
// DefaultSize.
func NewScene(cfg config.Config, size int) *Scene {
	if size <= 0 {
		size = DefaultSize
	}
	return &Scene{cfg: cfg, size: size}
}

// canvas maps a scanner-plane point to pixel coordinates: origin at the
// canvas center, y up, one world unit of margin beyond the ring.
func (s *Scene) canvas(p geometry.Point) (float64, float64) {
	k := float64(s.size) / (2 * (s.cfg.DetectorRadius + margin))
	c := float64(s.size) / 2
	return c + p.X*k, c - p.Y*k
}

// scale returns pixels per world unit.
func (s *Scene) scale() float64 {
	return float64(s.size) / (2 * (s.cfg.DetectorRadius + margin))
}

func (s *Scene) begin() *gg.Context {
	dc := gg.NewContext(s.size, s.size)
	dc.ClearWithColor(gg.White)
	return dc
}

func (s *Scene) drawRing(dc *gg.Context) error {
	cx, cy := s.canvas(geometry.Point{})
	dc.SetRGB(0, 0, 1)
	dc.SetLineWidth(2)
	dc.DrawCircle(cx, cy, s.cfg.DetectorRadius*s.scale())
	return dc.Stroke()
}

func (s *Scene) drawSourceCircle(dc *gg.Context) error {
	cx, cy := s.canvas(geometry.Point{})
	dc.SetColor(hitColor.Clamped())
	dc.SetLineWidth(2)
	dc.SetDash(6, 6)
	dc.DrawCircle(cx, cy, s.cfg.SourceRadius*s.scale())
	err := dc.Stroke()
	dc.ClearDash()
	return err
}

func (s *Scene) drawPair(dc *gg.Context, h1, h2 geometry.Point, chord colorful.Color) error {
	x1, y1 := s.canvas(h1)
	x2, y2 := s.canvas(h2)

	dc.SetRGBA(chord.R, chord.G, chord.B, 0.3)
	dc.SetLineWidth(1)
	dc.DrawLine(x1, y1, x2, y2)
	if err := dc.Stroke(); err != nil {
		return err
	}

	dc.SetColor(hitColor.Clamped())
	dc.DrawPoint(x1, y1, 3)
	dc.DrawPoint(x2, y2, 3)
	return dc.Fill()
}

// Unfiltered renders the full event set, ground truth included: noise
// chords are grayed out, events missing a hit are skipped (they have no
// chord to draw).
func (s *Scene) Unfiltered(events []sim.Event) (*gg.Context, error) {
	dc := s.begin()
	if err := s.drawRing(dc); err != nil {
		return nil, err
	}
	for _, ev := range events {
		if ev.Hit1 == nil || ev.Hit2 == nil {
			continue
		}
		chord := chordColor
		if !ev.Correlated {
			chord = noiseColor
		}
		if err := s.drawPair(dc, *ev.Hit1, *ev.Hit2, chord); err != nil {
			return nil, err
		}
	}
	return dc, nil
}

// Filtered renders the accepted coincidences.
func (s *Scene) Filtered(events []sim.FilteredEvent) (*gg.Context, error) {
	dc := s.begin()
	if err := s.drawRing(dc); err != nil {
		return nil, err
	}
	for _, fe := range events {
		if err := s.drawPair(dc, fe.Hit1, fe.Hit2, chordColor); err != nil {
			return nil, err
		}
	}
	return dc, nil
}

// FilteredWithSource is Filtered plus the dotted phantom-boundary circle.
func (s *Scene) FilteredWithSource(events []sim.FilteredEvent) (*gg.Context, error) {
	dc, err := s.Filtered(events)
	if err != nil {
		return nil, err
	}
	if err := s.drawSourceCircle(dc); err != nil {
		return nil, err
	}
	return dc, nil
}
