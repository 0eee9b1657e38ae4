package shapemodel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/astroshaper/shapemodels-go/shapemodel"
	"github.com/astroshaper/shapemodels-go/vector"
)

func assertEmptyVisibilityGraph(t *testing.T, nodes []vector.Vector, faces []shapemodel.Triangle) {
	t.Helper()
	mesh, err := shapemodel.NewMesh(nodes, faces)
	assert.NoError(t, err)
	assert.NoError(t, mesh.BuildFaceVisibilityGraph())

	graph := mesh.VisibilityGraph()
	assert.Equal(t, 0, graph.NNZ())

	for i := range faces {
		n, err := graph.NumVisibleFaces(i)
		assert.NoError(t, err)
		assert.Equal(t, 0, n)
	}

	assert.NoError(t, mesh.ComputeFaceMaxElevations())
	for _, e := range mesh.FaceMaxElevations() {
		assert.Equal(t, 0.0, e)
	}
}

func TestConvexTetrahedronHasEmptyVisibilityGraph(t *testing.T) {
	nodes, faces := unitTetrahedron()
	assertEmptyVisibilityGraph(t, nodes, faces)
}

func TestConvexCubeHasEmptyVisibilityGraph(t *testing.T) {
	nodes, faces := unitCube()
	assertEmptyVisibilityGraph(t, nodes, faces)
}

func TestConvexIcosahedronHasEmptyVisibilityGraph(t *testing.T) {
	nodes, faces := icosahedron()
	assertEmptyVisibilityGraph(t, nodes, faces)
}

func TestVisibilityGraphAccessorsBoundsChecked(t *testing.T) {
	nodes, faces := unitTetrahedron()
	mesh, err := shapemodel.NewMesh(nodes, faces)
	assert.NoError(t, err)
	assert.NoError(t, mesh.BuildFaceVisibilityGraph())

	graph := mesh.VisibilityGraph()
	_, err = graph.GetVisibleFaceIndices(len(faces))
	assert.Error(t, err)

	var shapeErr *shapemodel.Error
	assert.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, shapemodel.InvalidArgument, shapeErr.Kind)
}

func TestVisibilityGraphIsSymmetric(t *testing.T) {
	nodes, faces := facingTrianglePairMesh()
	mesh, err := shapemodel.NewMesh(nodes, faces)
	assert.NoError(t, err)
	assert.NoError(t, mesh.BuildFaceVisibilityGraph())

	graph := mesh.VisibilityGraph()
	for i := 0; i < len(faces); i++ {
		neighbors, err := graph.GetVisibleFaceIndices(i)
		assert.NoError(t, err)
		for _, j := range neighbors {
			back, err := graph.GetVisibleFaceIndices(int(j))
			assert.NoError(t, err)
			assert.Contains(t, back, int32(i))
		}
	}
}

func TestComputeFaceMaxElevationsRequiresVisibilityGraph(t *testing.T) {
	nodes, faces := unitCube()
	mesh, err := shapemodel.NewMesh(nodes, faces)
	assert.NoError(t, err)

	err = mesh.ComputeFaceMaxElevations()
	assert.Error(t, err)

	var shapeErr *shapemodel.Error
	assert.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, shapemodel.PreconditionMissing, shapeErr.Kind)
}
