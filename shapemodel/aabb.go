package shapemodel

import (
	"math"

	"github.com/astroshaper/shapemodels-go/vector"
)

// AABB is an axis-aligned bounding box. It is not itself a queryable shape;
// it describes the bounds of one (a triangle, a BVH subtree, a whole mesh).
//
// Generalized from a ray-tracing acceleration detail into the mesh-level
// bounding box used for Mesh.BoundingBox and BVH node bounds.
type AABB struct {
	Min, Max vector.Vector
}

// emptyAABB is the identity element for Union: its min is +inf and its max
// is -inf, so unioning it with any real box yields that box unchanged.
func emptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{
		Min: vector.Vector{X: inf, Y: inf, Z: inf},
		Max: vector.Vector{X: -inf, Y: -inf, Z: -inf},
	}
}

// Union returns the smallest AABB containing both b and o.
func (b AABB) Union(o AABB) AABB {
	return AABB{Min: vector.Min(b.Min, o.Min), Max: vector.Max(b.Max, o.Max)}
}

// Center returns the midpoint of the box.
func (b AABB) Center() vector.Vector {
	return b.Min.Add(b.Max).Scale(0.5)
}

// LongestAxis returns 0, 1, or 2 for the axis (X, Y, Z) along which the box
// has the greatest extent.
func (b AABB) LongestAxis() int {
	d := b.Max.Sub(b.Min)
	if d.X > d.Y && d.X > d.Z {
		return 0
	}
	if d.Y > d.Z {
		return 1
	}
	return 2
}

// SurfaceArea returns the total surface area of the box. The BVH build
// does not use it: it splits at the median along the longest axis.
func (b AABB) SurfaceArea() float64 {
	d := b.Max.Sub(b.Min)
	return 2 * (d.X*d.Y + d.Y*d.Z + d.Z*d.X)
}

// hit performs the standard slab test: it reports whether the ray's valid
// parameter interval [tmin, tmax] overlaps the box at all.
func (b AABB) hit(r Ray, tmin, tmax float64) bool {
	for axis := 0; axis < 3; axis++ {
		invD := 1.0 / r.Direction.Get(axis)
		t0 := (b.Min.Get(axis) - r.Origin.Get(axis)) * invD
		t1 := (b.Max.Get(axis) - r.Origin.Get(axis)) * invD
		if invD < 0 {
			t0, t1 = t1, t0
		}
		if t0 > tmin {
			tmin = t0
		}
		if t1 < tmax {
			tmax = t1
		}
		if tmax < tmin {
			return false
		}
	}
	return true
}

// triangleBounds returns the AABB of a single triangle given its three
// vertex positions.
func triangleBounds(p0, p1, p2 vector.Vector) AABB {
	return AABB{
		Min: vector.Min(p0, vector.Min(p1, p2)),
		Max: vector.Max(p0, vector.Max(p1, p2)),
	}
}
