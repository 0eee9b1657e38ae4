package shapemodel

import (
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/astroshaper/shapemodels-go/vector"
)

// IsIlluminated reports whether face i of the mesh is lit by a distant
// light whose position (direction only matters) is sun, expressed in the
// mesh's frame.
//
// Without self-shadowing this is a pure orientation test and needs no
// visibility graph. With self-shadowing it requires one: a mesh lacking
// it fails with InvalidArgument. When FaceMaxElevations is present, a sun
// elevation above it short-circuits to true without walking neighbors;
// otherwise every visible neighbor is tested in turn, returning false on
// the first occluder. When the mesh has a BVH, a single any-hit query
// against the whole mesh (excluding face i) may be used instead, with
// identical semantics.
func (m *Mesh) IsIlluminated(sun vector.Vector, i int, withSelfShadowing bool) (bool, error) {
	if i < 0 || i >= len(m.Faces) {
		return false, invalidArgumentf("face index %d out of range [0, %d)", i, len(m.Faces))
	}
	if withSelfShadowing && m.visibility == nil {
		return false, invalidArgumentf("with_self_shadowing=true requires a visibility graph; call BuildFaceVisibilityGraph first")
	}

	rhat := sun.Unit()
	ni := m.faceNormals[i]
	if ni.Dot(rhat) <= 0 {
		return false, nil
	}
	if !withSelfShadowing {
		return true, nil
	}

	return m.faceLitWithSelfShadowing(rhat, i), nil
}

func (m *Mesh) faceLitWithSelfShadowing(rhat vector.Vector, i int) bool {
	ni := m.faceNormals[i]

	if m.faceMaxElevations != nil {
		sinTheta := ni.Dot(rhat)
		if sinTheta < 0 {
			sinTheta = 0
		} else if sinTheta > 1 {
			sinTheta = 1
		}
		theta := math.Asin(sinTheta)
		if theta > m.faceMaxElevations[i] {
			return true
		}
	}

	if m.bvh != nil {
		ci := m.faceCenters[i]
		r := Ray{Origin: ci, Direction: rhat}
		return !m.bvh.anyHit(r, m, math.Inf(1), i)
	}

	ci := m.faceCenters[i]
	neighbors, _ := m.visibility.GetVisibleFaceIndices(i)
	for _, j := range neighbors {
		f := m.Faces[j]
		h := IntersectRayTriangle(Ray{Origin: ci, Direction: rhat}, m.Nodes[f.I0], m.Nodes[f.I1], m.Nodes[f.I2])
		if h.Hit && h.Distance > epsHit {
			return false
		}
	}
	return true
}

// UpdateIllumination fills out[i] for every face under the given sun
// direction. len(out) must equal the mesh's face count or the call fails
// with InvalidArgument before any work is done.
func (m *Mesh) UpdateIllumination(out []bool, sun vector.Vector, withSelfShadowing bool) error {
	n := len(m.Faces)
	if len(out) != n {
		return invalidArgumentf("out has length %d, want %d", len(out), n)
	}
	if withSelfShadowing && m.visibility == nil {
		return invalidArgumentf("with_self_shadowing=true requires a visibility graph; call BuildFaceVisibilityGraph first")
	}

	rhat := sun.Unit()

	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			for i := w; i < n; i += workers {
				ni := m.faceNormals[i]
				if ni.Dot(rhat) <= 0 {
					out[i] = false
					continue
				}
				if !withSelfShadowing {
					out[i] = true
					continue
				}
				out[i] = m.faceLitWithSelfShadowing(rhat, i)
			}
			return nil
		})
	}
	return g.Wait()
}
