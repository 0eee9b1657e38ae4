package shapemodel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/astroshaper/shapemodels-go/shapemodel"
	"github.com/astroshaper/shapemodels-go/vector"
)

func TestNewMeshPerFaceCache(t *testing.T) {
	nodes, faces := unitCube()
	mesh, err := shapemodel.NewMesh(nodes, faces)
	assert.NoError(t, err)

	assert.Len(t, mesh.FaceCenters(), len(faces))
	assert.Len(t, mesh.FaceNormals(), len(faces))
	assert.Len(t, mesh.FaceAreas(), len(faces))

	for i := range faces {
		n := mesh.FaceNormals()[i]
		assert.InDelta(t, 1, n.Length(), 1e-9)
		assert.GreaterOrEqual(t, mesh.FaceAreas()[i], 0.0)
	}
}

func TestNewMeshRejectsOutOfRangeFace(t *testing.T) {
	nodes := []vector.Vector{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}}
	faces := []shapemodel.Triangle{{I0: 0, I1: 1, I2: 5}}

	_, err := shapemodel.NewMesh(nodes, faces)
	assert.Error(t, err)

	var shapeErr *shapemodel.Error
	assert.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, shapemodel.InvalidArgument, shapeErr.Kind)
}

func TestBuildBVHThenIntersectRayShape(t *testing.T) {
	nodes, faces := unitCube()
	mesh, err := shapemodel.NewMesh(nodes, faces)
	assert.NoError(t, err)
	assert.NoError(t, mesh.BuildBVH())
	assert.True(t, mesh.HasBVH())

	r := shapemodel.Ray{Origin: vector.Vector{X: 0, Y: 0, Z: 5}, Direction: vector.Vector{X: 0, Y: 0, Z: -1}}
	hit := shapemodel.IntersectRayShape(r, mesh)
	assert.True(t, hit.Hit)
	assert.InDelta(t, 4.5, hit.Distance, 1e-9)
}

func TestIntersectRayShapeMatchesBruteForce(t *testing.T) {
	nodes, faces := icosahedron()
	mesh, err := shapemodel.NewMesh(nodes, faces)
	assert.NoError(t, err)

	r := shapemodel.Ray{Origin: vector.Vector{X: 0.1, Y: 0.2, Z: 5}, Direction: vector.Vector{X: 0, Y: 0, Z: -1}}

	withoutBVH := shapemodel.IntersectRayShape(r, mesh)

	assert.NoError(t, mesh.BuildBVH())
	withBVH := shapemodel.IntersectRayShape(r, mesh)

	assert.Equal(t, withoutBVH.Hit, withBVH.Hit)
	if withoutBVH.Hit {
		assert.InDelta(t, withoutBVH.Distance, withBVH.Distance, 1e-9)
		assert.Equal(t, withoutBVH.FaceIdx, withBVH.FaceIdx)
	}
}
