package shapemodel

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/astroshaper/shapemodels-go/vector"
)

// VisibilityGraph is the immutable compressed-row-storage graph of
// mutually visible face pairs over a mesh's N faces. The CSR arrays are
// owned by the graph. The Get* accessors return subslices of those arrays,
// not copies, so a write through a returned slice changes the graph.
type VisibilityGraph struct {
	n           int
	rowPtr      []int32
	colIdx      []int32
	viewFactors []float64
	distances   []float64
	directions  []vector.Vector
}

type facePair struct {
	i, j     int32
	fij, fji float64
	dij      float64
	dhatij   vector.Vector
}

// BuildFaceVisibilityGraph computes the face-to-face visibility graph of
// the mesh and stores it, replacing any graph built previously. Two faces
// i<j are mutually visible when each lies in the other's forward
// half-space and no third triangle occludes the segment between their
// centers; the per-row neighbor search across disjoint i-ranges runs
// concurrently, with the CSR assembled afterward in a single deterministic
// pass.
func (m *Mesh) BuildFaceVisibilityGraph() error {
	n := len(m.Faces)
	if n == 0 {
		m.visibility = &VisibilityGraph{n: 0, rowPtr: []int32{0}}
		return nil
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}
	chunks := make([][]facePair, workers)

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			var local []facePair
			for i := w; i < n; i += workers {
				local = append(local, m.visibleNeighborsOfRow(int32(i))...)
			}
			chunks[w] = local
			return nil
		})
	}
	_ = g.Wait() // worker goroutines never return an error

	var pairs []facePair
	for _, c := range chunks {
		pairs = append(pairs, c...)
	}

	neighbors := make([][]facePair, n)
	for _, p := range pairs {
		neighbors[p.i] = append(neighbors[p.i], p)
		neighbors[p.j] = append(neighbors[p.j], facePair{
			i: p.j, j: p.i,
			fij: p.fji, fji: p.fij,
			dij:    p.dij,
			dhatij: p.dhatij.Scale(-1),
		})
	}

	rowPtr := make([]int32, n+1)
	var nnz int32
	for i := 0; i < n; i++ {
		rowPtr[i] = nnz
		nnz += int32(len(neighbors[i]))
	}
	rowPtr[n] = nnz

	colIdx := make([]int32, nnz)
	viewFactors := make([]float64, nnz)
	distances := make([]float64, nnz)
	directions := make([]vector.Vector, nnz)

	for i := 0; i < n; i++ {
		row := neighbors[i]
		// Deterministic regardless of which worker produced each entry.
		insertionSortFacePairs(row)
		for k, p := range row {
			pos := rowPtr[i] + int32(k)
			colIdx[pos] = p.j
			viewFactors[pos] = p.fij
			distances[pos] = p.dij
			directions[pos] = p.dhatij
		}
	}

	m.visibility = &VisibilityGraph{
		n:           n,
		rowPtr:      rowPtr,
		colIdx:      colIdx,
		viewFactors: viewFactors,
		distances:   distances,
		directions:  directions,
	}
	return nil
}

// insertionSortFacePairs sorts by target face index. Rows are small
// (bounded by local mesh connectivity), so insertion sort keeps this
// allocation-free and avoids sort.Slice's interface overhead.
func insertionSortFacePairs(row []facePair) {
	for i := 1; i < len(row); i++ {
		for j := i; j > 0 && row[j-1].j > row[j].j; j-- {
			row[j-1], row[j] = row[j], row[j-1]
		}
	}
}

// visibleNeighborsOfRow computes the i<j visible pairs for a single row i.
func (m *Mesh) visibleNeighborsOfRow(i int32) []facePair {
	n := len(m.Faces)
	ci := m.faceCenters[i]
	ni := m.faceNormals[i]
	areai := m.faceAreas[i]

	var pairs []facePair
	for j := int(i) + 1; j < n; j++ {
		cj := m.faceCenters[j]
		nj := m.faceNormals[j]
		areaj := m.faceAreas[j]

		diff := cj.Sub(ci)
		dist := diff.Length()
		if dist == 0 {
			continue
		}
		dhat := diff.Scale(1 / dist)

		if ni.Dot(dhat) <= 0 || nj.Dot(dhat) >= 0 {
			continue
		}

		if m.isOccluded(ci, dhat, dist, int(i), j) {
			continue
		}

		fij, _, _ := ViewFactor(ci, cj, ni, nj, areaj)
		fji, _, _ := ViewFactor(cj, ci, nj, ni, areai)
		pairs = append(pairs, facePair{i: i, j: int32(j), fij: fij, fji: fji, dij: dist, dhatij: dhat})
	}
	return pairs
}

// isOccluded reports whether any face other than from and to blocks the
// segment from origin toward dir with length dist.
func (m *Mesh) isOccluded(origin, dir vector.Vector, dist float64, from, to int) bool {
	r := Ray{Origin: origin, Direction: dir}
	const eps = 1e-9
	tMax := dist - eps

	if m.bvh != nil {
		return m.bvh.anyHitExcluding(r, m, tMax, from, to)
	}
	for k, f := range m.Faces {
		if k == from || k == to {
			continue
		}
		h := IntersectRayTriangle(r, m.Nodes[f.I0], m.Nodes[f.I1], m.Nodes[f.I2])
		if h.Hit && h.Distance > eps && h.Distance < tMax {
			return true
		}
	}
	return false
}

// NumFaces returns the number of faces (graph rows) the graph was built
// over.
func (g *VisibilityGraph) NumFaces() int { return g.n }

// NNZ returns the total number of directed visible-pair entries stored.
func (g *VisibilityGraph) NNZ() int { return len(g.colIdx) }

func (g *VisibilityGraph) row(i int) (int32, int32, error) {
	if i < 0 || i >= g.n {
		return 0, 0, invalidArgumentf("face index %d out of range [0, %d)", i, g.n)
	}
	return g.rowPtr[i], g.rowPtr[i+1], nil
}

// NumVisibleFaces returns the number of faces mutually visible with face i.
func (g *VisibilityGraph) NumVisibleFaces(i int) (int, error) {
	start, end, err := g.row(i)
	if err != nil {
		return 0, err
	}
	return int(end - start), nil
}

// GetVisibleFaceIndices returns the indices of faces mutually visible with
// face i.
func (g *VisibilityGraph) GetVisibleFaceIndices(i int) ([]int32, error) {
	start, end, err := g.row(i)
	if err != nil {
		return nil, err
	}
	return g.colIdx[start:end], nil
}

// GetViewFactors returns the view factors from face i to each of its
// visible neighbors, in the same order as GetVisibleFaceIndices.
func (g *VisibilityGraph) GetViewFactors(i int) ([]float64, error) {
	start, end, err := g.row(i)
	if err != nil {
		return nil, err
	}
	return g.viewFactors[start:end], nil
}

// GetVisibleFaceDistances returns the center-to-center distances from face
// i to each of its visible neighbors.
func (g *VisibilityGraph) GetVisibleFaceDistances(i int) ([]float64, error) {
	start, end, err := g.row(i)
	if err != nil {
		return nil, err
	}
	return g.distances[start:end], nil
}

// GetVisibleFaceDirections returns the unit direction from face i's center
// toward each of its visible neighbors' centers.
func (g *VisibilityGraph) GetVisibleFaceDirections(i int) ([]vector.Vector, error) {
	start, end, err := g.row(i)
	if err != nil {
		return nil, err
	}
	return g.directions[start:end], nil
}

// VisibleFaceData is the k-th neighbor tuple for some face i, as returned
// by GetVisibleFaceData.
type VisibleFaceData struct {
	FaceIndex  int32
	ViewFactor float64
	Distance   float64
	Direction  vector.Vector
}

// GetVisibleFaceData returns the k-th visible-neighbor tuple of face i.
func (g *VisibilityGraph) GetVisibleFaceData(i, k int) (VisibleFaceData, error) {
	start, end, err := g.row(i)
	if err != nil {
		return VisibleFaceData{}, err
	}
	if k < 0 || int32(k) >= end-start {
		return VisibleFaceData{}, invalidArgumentf("neighbor index %d out of range [0, %d) for face %d", k, end-start, i)
	}
	pos := start + int32(k)
	return VisibleFaceData{
		FaceIndex:  g.colIdx[pos],
		ViewFactor: g.viewFactors[pos],
		Distance:   g.distances[pos],
		Direction:  g.directions[pos],
	}, nil
}
