// Package geometry holds the 2D primitives of the scanner plane: points,
// angle arithmetic, and the ray-circle intersection used to project
// emission rays onto the detector ring. The detector ring and the source
// circle are both centered on the coordinate origin.
package geometry

import "math"

const twoPi = 2 * math.Pi

// Point is a position in the scanner plane.
type Point struct {
	X, Y float64
}

// Norm returns the distance from the origin.
func (p Point) Norm() float64 {
	return math.Hypot(p.X, p.Y)
}

// OnRing returns the point at the given angle on a ring of the given
// radius around the origin.
func OnRing(radius, angle float64) Point {
	return Point{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)}
}

// WrapAngle maps an angle to [0, 2π).
func WrapAngle(a float64) float64 {
	a = math.Mod(a, twoPi)
	if a < 0 {
		a += twoPi
	}
	return a
}

// AngleDist returns the circular distance between two angles, in [0, π].
func AngleDist(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), twoPi)
	if d > math.Pi {
		d = twoPi - d
	}
	return d
}

// RayCircle intersects the ray starting at o with direction angle against
// the circle of the given radius around the origin. It returns the first
// crossing in the direction of travel. ok is false when the line misses
// the circle, and also when both crossings lie behind the ray start (a
// source outside the ring emitting away from it): there is no forward hit
// in either case, and neither is an error.
func RayCircle(o Point, angle, radius float64) (Point, bool) {
	dx := math.Cos(angle)
	dy := math.Sin(angle)

	// a·t² + b·t + c = 0 along o + t·(dx,dy). a is 1 for a unit
	// direction; kept symbolic so the radius enters only through c.
	a := dx*dx + dy*dy
	b := 2 * (o.X*dx + o.Y*dy)
	c := o.X*o.X + o.Y*o.Y - radius*radius

	disc := b*b - 4*a*c
	if disc < 0 {
		return Point{}, false
	}

	s := math.Sqrt(disc)
	t1 := (-b - s) / (2 * a)
	t2 := (-b + s) / (2 * a)

	// Smallest non-negative root. For a source inside the ring t1 is
	// behind the start and t2 is the forward crossing.
	t := t1
	if t < 0 {
		t = t2
	}
	if t < 0 {
		return Point{}, false
	}
	return Point{X: o.X + t*dx, Y: o.Y + t*dy}, true
}

// SnapToRing snaps a ring point to the nearest of n evenly spaced detector
// elements, element 0 sitting at angle zero. The result lies back on the
// ring of the given radius.
func SnapToRing(p Point, radius float64, n int) Point {
	pitch := twoPi / float64(n)
	element := math.Round(math.Atan2(p.Y, p.X) / pitch)
	return OnRing(radius, WrapAngle(element*pitch))
}
