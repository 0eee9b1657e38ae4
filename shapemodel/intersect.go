package shapemodel

import (
	"math"

	"github.com/astroshaper/shapemodels-go/vector"
)

// TriangleHit is the result of a ray/triangle intersection test.
type TriangleHit struct {
	Hit      bool
	Distance float64
	Point    vector.Vector
}

// IntersectRayTriangle performs the Moller-Trumbore ray/triangle test
// against the triangle (v0, v1, v2). It does not cull backfaces: a ray
// approaching from either side of the triangle's plane can hit. A ray
// parallel to the plane (|det| < epsDet) and a hit parameter not
// comfortably past zero (t <= epsHit) both report a miss, so that a ray
// origin lying exactly in the triangle's plane misses rather than reports
// a spurious t=0 hit.
func IntersectRayTriangle(r Ray, v0, v1, v2 vector.Vector) TriangleHit {
	e1 := v1.Sub(v0)
	e2 := v2.Sub(v0)
	p := r.Direction.Cross(e2)
	det := p.Dot(e1)
	if math.Abs(det) < epsDet {
		return TriangleHit{}
	}
	invDet := 1 / det

	t := r.Origin.Sub(v0)
	u := t.Dot(p) * invDet
	if u < 0 || u > 1 {
		return TriangleHit{}
	}

	q := t.Cross(e1)
	v := q.Dot(r.Direction) * invDet
	if v < 0 || u+v > 1 {
		return TriangleHit{}
	}

	dist := q.Dot(e2) * invDet
	if dist <= epsHit {
		return TriangleHit{}
	}

	return TriangleHit{Hit: true, Distance: dist, Point: r.At(dist)}
}

// SphereHit is the result of a ray/sphere intersection test. Both roots
// are reported even when negative; T1 <= T2 always holds for a hit.
type SphereHit struct {
	Hit            bool
	T1, T2         float64
	Point1, Point2 vector.Vector
}

// IntersectRaySphere solves ||origin + t*direction - center||^2 = radius^2.
// A zero direction, a negative discriminant, or a zero or negative radius
// all report a miss with NaN fields, matching the degenerate-sphere
// contract: a radius of zero never registers a hit, even along a ray
// through its center.
func IntersectRaySphere(r Ray, center vector.Vector, radius float64) SphereHit {
	if radius <= 0 {
		return SphereHit{T1: math.NaN(), T2: math.NaN(), Point1: nanVector(), Point2: nanVector()}
	}

	oc := r.Origin.Sub(center)
	a := r.Direction.Dot(r.Direction)
	b := 2 * r.Direction.Dot(oc)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - 4*a*c

	if a == 0 || disc < 0 {
		return SphereHit{T1: math.NaN(), T2: math.NaN(), Point1: nanVector(), Point2: nanVector()}
	}

	sqrtDisc := math.Sqrt(disc)
	t1 := (-b - sqrtDisc) / (2 * a)
	t2 := (-b + sqrtDisc) / (2 * a)

	return SphereHit{Hit: true, T1: t1, T2: t2, Point1: r.At(t1), Point2: r.At(t2)}
}

func nanVector() vector.Vector {
	nan := math.NaN()
	return vector.Vector{X: nan, Y: nan, Z: nan}
}
