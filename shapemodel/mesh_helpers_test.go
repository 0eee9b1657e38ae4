package shapemodel_test

import (
	"math"

	"github.com/astroshaper/shapemodels-go/shapemodel"
	"github.com/astroshaper/shapemodels-go/vector"
)

// unitTetrahedron returns a regular tetrahedron with outward-facing CCW
// winding, used as a minimal convex-mesh fixture.
func unitTetrahedron() ([]vector.Vector, []shapemodel.Triangle) {
	nodes := []vector.Vector{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0.5, Y: math.Sqrt(3) / 2, Z: 0},
		{X: 0.5, Y: math.Sqrt(3) / 6, Z: math.Sqrt(6) / 3},
	}
	faces := []shapemodel.Triangle{
		{I0: 0, I1: 2, I2: 1},
		{I0: 0, I1: 1, I2: 3},
		{I0: 1, I1: 2, I2: 3},
		{I0: 2, I1: 0, I2: 3},
	}
	return nodes, faces
}

// unitCube returns the axis-aligned unit cube centered at the origin
// (half-extent 0.5), triangulated with outward-facing CCW winding, two
// triangles per face.
func unitCube() ([]vector.Vector, []shapemodel.Triangle) {
	return scaledCube(0.5)
}

// scaledCube returns a cube centered at the origin with the given
// half-extent.
func scaledCube(h float64) ([]vector.Vector, []shapemodel.Triangle) {
	nodes := []vector.Vector{
		{X: -h, Y: -h, Z: -h}, // 0
		{X: h, Y: -h, Z: -h},  // 1
		{X: h, Y: h, Z: -h},   // 2
		{X: -h, Y: h, Z: -h},  // 3
		{X: -h, Y: -h, Z: h},  // 4
		{X: h, Y: -h, Z: h},   // 5
		{X: h, Y: h, Z: h},    // 6
		{X: -h, Y: h, Z: h},   // 7
	}
	faces := []shapemodel.Triangle{
		// -Z
		{I0: 0, I1: 3, I2: 2}, {I0: 0, I1: 2, I2: 1},
		// +Z
		{I0: 4, I1: 5, I2: 6}, {I0: 4, I1: 6, I2: 7},
		// -Y
		{I0: 0, I1: 1, I2: 5}, {I0: 0, I1: 5, I2: 4},
		// +Y
		{I0: 3, I1: 7, I2: 6}, {I0: 3, I1: 6, I2: 2},
		// -X
		{I0: 0, I1: 4, I2: 7}, {I0: 0, I1: 7, I2: 3},
		// +X
		{I0: 1, I1: 2, I2: 6}, {I0: 1, I1: 6, I2: 5},
	}
	return nodes, faces
}

// facingTrianglePairMesh returns two triangles, one at z=0 facing +Z and
// one at z=1 facing -Z, with no third face between them: they are
// mutually visible, exercising the visibility graph on a non-closed,
// non-convex (in the sense of having any visible pairs at all) mesh.
func facingTrianglePairMesh() ([]vector.Vector, []shapemodel.Triangle) {
	nodes := []vector.Vector{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1}, {X: 0, Y: 1, Z: 1}, {X: 1, Y: 0, Z: 1},
	}
	faces := []shapemodel.Triangle{
		{I0: 0, I1: 1, I2: 2},
		{I0: 3, I1: 4, I2: 5},
	}
	return nodes, faces
}

// icosahedron returns a regular icosahedron centered at the origin.
func icosahedron() ([]vector.Vector, []shapemodel.Triangle) {
	phi := (1 + math.Sqrt(5)) / 2
	raw := [][3]float64{
		{-1, phi, 0}, {1, phi, 0}, {-1, -phi, 0}, {1, -phi, 0},
		{0, -1, phi}, {0, 1, phi}, {0, -1, -phi}, {0, 1, -phi},
		{phi, 0, -1}, {phi, 0, 1}, {-phi, 0, -1}, {-phi, 0, 1},
	}
	nodes := make([]vector.Vector, len(raw))
	for i, r := range raw {
		v := vector.Vector{X: r[0], Y: r[1], Z: r[2]}
		nodes[i] = v.Unit()
	}
	faces := []shapemodel.Triangle{
		{I0: 0, I1: 11, I2: 5}, {I0: 0, I1: 5, I2: 1}, {I0: 0, I1: 1, I2: 7}, {I0: 0, I1: 7, I2: 10}, {I0: 0, I1: 10, I2: 11},
		{I0: 1, I1: 5, I2: 9}, {I0: 5, I1: 11, I2: 4}, {I0: 11, I1: 10, I2: 2}, {I0: 10, I1: 7, I2: 6}, {I0: 7, I1: 1, I2: 8},
		{I0: 3, I1: 9, I2: 4}, {I0: 3, I1: 4, I2: 2}, {I0: 3, I1: 2, I2: 6}, {I0: 3, I1: 6, I2: 8}, {I0: 3, I1: 8, I2: 9},
		{I0: 4, I1: 9, I2: 5}, {I0: 2, I1: 4, I2: 11}, {I0: 6, I1: 2, I2: 10}, {I0: 8, I1: 6, I2: 7}, {I0: 9, I1: 8, I2: 1},
	}
	return nodes, faces
}
