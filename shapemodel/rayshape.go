package shapemodel

import (
	"math"

	"github.com/astroshaper/shapemodels-go/vector"
)

// ShapeHit is the result of intersecting a ray against a whole mesh: the
// closest triangle struck, if any.
type ShapeHit struct {
	Hit      bool
	FaceIdx  int
	Distance float64
	Point    vector.Vector
}

// IntersectRayShape returns the closest intersection of r with mesh. When
// mesh has a BVH (Mesh.BuildBVH), the query is delegated to it; otherwise
// it falls back to a linear scan over every triangle, first culled by the
// mesh's bounding box. Ties within 1e-10 of each other are broken in favor
// of the lower face index.
func IntersectRayShape(r Ray, mesh *Mesh) ShapeHit {
	if mesh.bvh != nil {
		rec := mesh.bvh.closestHit(r, mesh)
		if !rec.hit {
			return ShapeHit{}
		}
		return ShapeHit{Hit: true, FaceIdx: rec.faceIdx, Distance: rec.distance, Point: rec.point}
	}

	box := mesh.BoundingBox()
	if !box.hit(r, epsHit, math.Inf(1)) {
		return ShapeHit{}
	}

	const tieEps = 1e-10
	best := ShapeHit{Distance: math.Inf(1)}
	for fi, f := range mesh.Faces {
		h := IntersectRayTriangle(r, mesh.Nodes[f.I0], mesh.Nodes[f.I1], mesh.Nodes[f.I2])
		if !h.Hit {
			continue
		}
		switch {
		case h.Distance < best.Distance-tieEps:
			best = ShapeHit{Hit: true, FaceIdx: fi, Distance: h.Distance, Point: h.Point}
		case h.Distance < best.Distance+tieEps && best.Hit && fi < best.FaceIdx:
			best = ShapeHit{Hit: true, FaceIdx: fi, Distance: h.Distance, Point: h.Point}
		}
	}
	return best
}
