package shapemodel

import (
	"github.com/astroshaper/shapemodels-go/vector"
)

// Triangle is a face: three zero-based indices into a Mesh's Nodes, in
// counter-clockwise order as seen from the outward side.
type Triangle struct {
	I0, I1, I2 int
}

// Mesh owns a triangulated surface and its precomputed per-face geometry,
// plus the optional, write-once acceleration structures built on top of
// it: a BVH (C4), a face-to-face visibility graph (C6), and per-face
// horizon elevations (C7). A Mesh never resizes after construction;
// rebuilding an optional subfield replaces it wholesale.
type Mesh struct {
	Nodes []vector.Vector
	Faces []Triangle

	faceCenters []vector.Vector
	faceNormals []vector.Vector
	faceAreas   []float64

	bvh               *bvhTree
	visibility        *VisibilityGraph
	faceMaxElevations []float64
}

// NewMesh constructs a Mesh from nodes and faces, eagerly computing the
// per-face center/normal/area cache. Face indices must be in range for
// nodes; out-of-range indices are reported as an invalid-argument error
// rather than a panic.
func NewMesh(nodes []vector.Vector, faces []Triangle) (*Mesh, error) {
	for fi, f := range faces {
		for _, idx := range [3]int{f.I0, f.I1, f.I2} {
			if idx < 0 || idx >= len(nodes) {
				return nil, invalidArgumentf("face %d references out-of-range node index %d (have %d nodes)", fi, idx, len(nodes))
			}
		}
	}

	m := &Mesh{
		Nodes:       nodes,
		Faces:       faces,
		faceCenters: make([]vector.Vector, len(faces)),
		faceNormals: make([]vector.Vector, len(faces)),
		faceAreas:   make([]float64, len(faces)),
	}
	for i, f := range faces {
		v0, v1, v2 := nodes[f.I0], nodes[f.I1], nodes[f.I2]
		m.faceCenters[i] = FaceCenter(v0, v1, v2)
		m.faceNormals[i] = FaceNormal(v0, v1, v2)
		m.faceAreas[i] = FaceArea(v0, v1, v2)
	}
	return m, nil
}

// FaceCount returns the number of faces in the mesh.
func (m *Mesh) FaceCount() int { return len(m.Faces) }

// FaceCenters returns the cached per-face centroids, in sync with Faces.
func (m *Mesh) FaceCenters() []vector.Vector { return m.faceCenters }

// FaceNormals returns the cached per-face outward unit normals, in sync
// with Faces. A degenerate (zero-area) face has a normal of NaNs.
func (m *Mesh) FaceNormals() []vector.Vector { return m.faceNormals }

// FaceAreas returns the cached per-face areas, in sync with Faces.
func (m *Mesh) FaceAreas() []float64 { return m.faceAreas }

// HasBVH reports whether BuildBVH has been called.
func (m *Mesh) HasBVH() bool { return m.bvh != nil }

// HasVisibilityGraph reports whether BuildFaceVisibilityGraph has been
// called.
func (m *Mesh) HasVisibilityGraph() bool { return m.visibility != nil }

// VisibilityGraph returns the mesh's face visibility graph, or nil if
// BuildFaceVisibilityGraph has not been called.
func (m *Mesh) VisibilityGraph() *VisibilityGraph { return m.visibility }

// HasFaceMaxElevations reports whether ComputeFaceMaxElevations has been
// called.
func (m *Mesh) HasFaceMaxElevations() bool { return m.faceMaxElevations != nil }

// FaceMaxElevations returns the per-face maximum horizon elevation, or nil
// if ComputeFaceMaxElevations has not been called.
func (m *Mesh) FaceMaxElevations() []float64 { return m.faceMaxElevations }

// BoundingBox returns the AABB over all nodes. It caches nothing; callers
// that need it repeatedly should hold onto the result themselves.
func (m *Mesh) BoundingBox() AABB {
	box := emptyAABB()
	for _, n := range m.Nodes {
		box = box.Union(AABB{Min: n, Max: n})
	}
	return box
}
