package shapemodel

import (
	"math"

	"github.com/astroshaper/shapemodels-go/vector"
)

// FaceCenter returns the centroid of the triangle (v0, v1, v2).
func FaceCenter(v0, v1, v2 vector.Vector) vector.Vector {
	return v0.Add(v1).Add(v2).Scale(1.0 / 3.0)
}

// FaceNormal returns the outward unit normal of the triangle (v0, v1, v2),
// taking the edges in (v1-v0) x (v2-v0) order. Zero-area triangles yield a
// vector of NaNs: this performs the raw division rather than going through
// Vector.Unit, which maps a zero-length vector to zero instead of NaN.
func FaceNormal(v0, v1, v2 vector.Vector) vector.Vector {
	n := v1.Sub(v0).Cross(v2.Sub(v0))
	l := n.Length()
	return n.Scale(1 / l)
}

// FaceArea returns the area of the triangle (v0, v1, v2).
func FaceArea(v0, v1, v2 vector.Vector) float64 {
	return 0.5 * v1.Sub(v0).Cross(v2.Sub(v0)).Length()
}

// AngleRad returns the angle in radians between vectors a and b, clamped
// into [0, pi] to absorb floating-point drift in the cosine argument.
func AngleRad(a, b vector.Vector) float64 {
	denom := a.Length() * b.Length()
	cos := a.Dot(b) / denom
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math.Acos(cos)
}

// AngleDeg is AngleRad expressed in degrees.
func AngleDeg(a, b vector.Vector) float64 {
	return AngleRad(a, b) * 180 / math.Pi
}

// SolarPhaseAngle returns the angle at target between the direction to the
// sun and the direction to the observer.
func SolarPhaseAngle(sun, target, observer vector.Vector) float64 {
	return AngleRad(sun.Sub(target), observer.Sub(target))
}

// SolarElongationAngle returns the angle at observer between the direction
// to the sun and the direction to the target.
func SolarElongationAngle(sun, observer, target vector.Vector) float64 {
	return AngleRad(sun.Sub(observer), target.Sub(observer))
}

// ViewFactor computes the point-area view factor from face 1 (center c1,
// unit normal n1) to face 2 (center c2, unit normal n2, area area2): the
// fraction of diffusely emitted radiation leaving face 1 that face 2
// intercepts. It returns the factor f, the center-to-center distance d, and
// the unit direction d from c1 toward c2. Coincident centers (d=0) report
// f=0, d=0, dhat={} rather than propagating a division by zero.
func ViewFactor(c1, c2, n1, n2 vector.Vector, area2 float64) (f, d float64, dhat vector.Vector) {
	diff := c2.Sub(c1)
	d = diff.Length()
	if d == 0 {
		return 0, 0, vector.Vector{}
	}
	dhat = diff.Scale(1 / d)
	cos1 := n1.Dot(dhat)
	if cos1 < 0 {
		cos1 = 0
	}
	cos2 := -n2.Dot(dhat)
	if cos2 < 0 {
		cos2 = 0
	}
	f = cos1 * cos2 * area2 / (math.Pi * d * d)
	return f, d, dhat
}

// PolyhedronVolume returns the signed volume enclosed by the mesh (nodes,
// faces) via the divergence theorem, summing the scalar triple product of
// each face's vertices. The sign is positive for an outward-oriented
// closed mesh, negative for an inverted one, and meaningless (though still
// computed) for a non-closed surface.
func PolyhedronVolume(nodes []vector.Vector, faces []Triangle) float64 {
	var sum float64
	for _, f := range faces {
		a, b, c := nodes[f.I0], nodes[f.I1], nodes[f.I2]
		sum += a.Dot(b.Cross(c))
	}
	return sum / 6.0
}

// EquivalentRadius returns the radius of a sphere with volume V.
func EquivalentRadius(v float64) float64 {
	return math.Cbrt(3 * v / (4 * math.Pi))
}

// MaximumRadius returns the greatest distance from the origin to any node.
func MaximumRadius(nodes []vector.Vector) float64 {
	max := 0.0
	for _, n := range nodes {
		if l := n.Length(); l > max {
			max = l
		}
	}
	return max
}

// MinimumRadius returns the smallest distance from the origin to any node.
// It returns 0 for an empty node list.
func MinimumRadius(nodes []vector.Vector) float64 {
	if len(nodes) == 0 {
		return 0
	}
	min := nodes[0].Length()
	for _, n := range nodes[1:] {
		if l := n.Length(); l < min {
			min = l
		}
	}
	return min
}

// GridToFaces converts a regular height field (xs[i], ys[j], zs[i][j]) into
// a mesh of len(xs)*len(ys) nodes and 2*(len(xs)-1)*(len(ys)-1) triangles,
// two triangles per quad with a fixed diagonal: local quad corners are
// numbered 1=(i,j), 2=(i+1,j), 3=(i,j+1), 4=(i+1,j+1), split into triangles
// [1,2,3] and [4,3,2].
func GridToFaces(xs, ys []float64, zs [][]float64) ([]vector.Vector, []Triangle, error) {
	nx, ny := len(xs), len(ys)
	if nx < 2 || ny < 2 {
		return nil, nil, invalidArgumentf("grid must have at least 2 points along each axis, got %d x %d", nx, ny)
	}
	if len(zs) != nx {
		return nil, nil, invalidArgumentf("zs must have %d rows, got %d", nx, len(zs))
	}
	for i, row := range zs {
		if len(row) != ny {
			return nil, nil, invalidArgumentf("zs row %d must have %d columns, got %d", i, ny, len(row))
		}
	}

	index := func(i, j int) int { return i*ny + j }

	nodes := make([]vector.Vector, nx*ny)
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			nodes[index(i, j)] = vector.Vector{X: xs[i], Y: ys[j], Z: zs[i][j]}
		}
	}

	faces := make([]Triangle, 0, 2*(nx-1)*(ny-1))
	for i := 0; i < nx-1; i++ {
		for j := 0; j < ny-1; j++ {
			n1 := index(i, j)
			n2 := index(i+1, j)
			n3 := index(i, j+1)
			n4 := index(i+1, j+1)
			faces = append(faces,
				Triangle{I0: n1, I1: n2, I2: n3},
				Triangle{I0: n4, I1: n3, I2: n2},
			)
		}
	}
	return nodes, faces, nil
}
