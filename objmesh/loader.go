package objmesh

import (
	"os"
	"path/filepath"

	"github.com/astroshaper/shapemodels-go/shapemodel"
	"github.com/astroshaper/shapemodels-go/vector"
)

// LoadShapeOBJ parses the OBJ file at path, applies a uniform scale to
// every vertex, constructs the mesh, and optionally runs its builders in
// their required dependency order: BVH, then the face visibility graph,
// then face max elevations (which itself depends on the visibility
// graph).
func LoadShapeOBJ(path string, scale float64, withBVH, withFaceVisibility, withFaceMaxElevations bool) (*shapemodel.Mesh, error) {
	dir := filepath.Dir(path)
	name := filepath.Base(path)

	obj, err := ParseFS(os.DirFS(dir), name)
	if err != nil {
		return nil, err
	}

	nodes := make([]vector.Vector, len(obj.Vertices))
	for i, v := range obj.Vertices {
		nodes[i] = v.Scale(scale)
	}

	faces := make([]shapemodel.Triangle, len(obj.Faces))
	for i, f := range obj.Faces {
		faces[i] = shapemodel.Triangle{I0: f.V0 - 1, I1: f.V1 - 1, I2: f.V2 - 1}
	}

	mesh, err := shapemodel.NewMesh(nodes, faces)
	if err != nil {
		return nil, err
	}

	if withFaceMaxElevations && !withFaceVisibility {
		return nil, &shapemodel.Error{Kind: shapemodel.InvalidArgument, Msg: "with_face_max_elevations requires with_face_visibility"}
	}

	if withBVH {
		if err := mesh.BuildBVH(); err != nil {
			return nil, err
		}
	}
	if withFaceVisibility {
		if err := mesh.BuildFaceVisibilityGraph(); err != nil {
			return nil, err
		}
	}
	if withFaceMaxElevations {
		if err := mesh.ComputeFaceMaxElevations(); err != nil {
			return nil, err
		}
	}
	return mesh, nil
}
