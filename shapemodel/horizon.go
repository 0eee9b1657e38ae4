package shapemodel

import (
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ComputeFaceMaxElevations fills the per-face maximum horizon elevation:
// for face i, the largest arcsin(max(0, dhat.n)) over its visible
// neighbors j, or 0 if i has none. It requires a visibility graph to have
// been built first.
func (m *Mesh) ComputeFaceMaxElevations() error {
	if m.visibility == nil {
		return preconditionMissingf("compute face max elevations requires a visibility graph; call BuildFaceVisibilityGraph first")
	}

	n := len(m.Faces)
	elevations := make([]float64, n)

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
				elevations[i] = m.faceMaxElevation(i)
			}
			return nil
		})
	}
	_ = g.Wait()

	m.faceMaxElevations = elevations
	return nil
}

func (m *Mesh) faceMaxElevation(i int) float64 {
	ni := m.faceNormals[i]
	dirs, _ := m.visibility.GetVisibleFaceDirections(i)

	max := 0.0
	for _, d := range dirs {
		sin := ni.Dot(d)
		if sin < 0 {
			sin = 0
		} else if sin > 1 {
			sin = 1
		}
		if e := math.Asin(sin); e > max {
			max = e
		}
	}
	return max
}
