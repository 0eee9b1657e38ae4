package shapemodel

import (
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/astroshaper/shapemodels-go/vector"
)

// bvhLeafSize is the maximum number of triangles held by a BVH leaf.
const bvhLeafSize = 4

// bvhParallelThreshold is the minimum triangle count of a subtree below
// which its two children are built sequentially instead of as separate
// goroutines; below this the errgroup dispatch overhead dominates.
const bvhParallelThreshold = 512

// bvhNode is one entry of the flat, array-backed BVH. A leaf has Left=-1
// and Right=-1 and owns the contiguous range indices[Start:Start+Count];
// an inner node has Left and Right indices into the same Nodes slice.
type bvhNode struct {
	Bounds AABB
	Left   int32
	Right  int32
	Start  int32
	Count  int32
	Axis   int8
}

// bvhTree is the built acceleration structure over a Mesh's triangles.
type bvhTree struct {
	nodes   []bvhNode
	indices []int32 // permutation of face indices grouped by leaf
}

// buildBVHNode is an intermediate pointer-tree node used only during
// construction; it is converted into the flat bvhTree by flattenBVH.
type buildBVHNode struct {
	bounds      AABB
	axis        int8
	left, right *buildBVHNode
	indices     []int32 // populated only on leaves
}

type triangleInfo struct {
	index    int32
	bounds   AABB
	centroid vector.Vector
}

// BuildBVH builds a bounding volume hierarchy over the mesh's triangles,
// replacing any BVH built previously. Left and right subtrees of large
// enough nodes are built concurrently.
func (m *Mesh) BuildBVH() error {
	n := len(m.Faces)
	if n == 0 {
		m.bvh = &bvhTree{nodes: nil, indices: nil}
		return nil
	}

	infos := make([]triangleInfo, n)
	for i, f := range m.Faces {
		v0, v1, v2 := m.Nodes[f.I0], m.Nodes[f.I1], m.Nodes[f.I2]
		b := triangleBounds(v0, v1, v2)
		infos[i] = triangleInfo{index: int32(i), bounds: b, centroid: b.Center()}
	}

	root, err := buildBVHNodeRecursive(infos)
	if err != nil {
		return err
	}

	tree := &bvhTree{}
	flattenBVH(root, tree)
	m.bvh = tree
	return nil
}

func buildBVHNodeRecursive(infos []triangleInfo) (*buildBVHNode, error) {
	bounds := emptyAABB()
	for _, ti := range infos {
		bounds = bounds.Union(ti.bounds)
	}

	if len(infos) <= bvhLeafSize {
		idx := make([]int32, len(infos))
		for i, ti := range infos {
			idx[i] = ti.index
		}
		return &buildBVHNode{bounds: bounds, indices: idx}, nil
	}

	centroidBounds := emptyAABB()
	for _, ti := range infos {
		centroidBounds = centroidBounds.Union(AABB{Min: ti.centroid, Max: ti.centroid})
	}
	axis := centroidBounds.LongestAxis()

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].centroid.Get(axis) < infos[j].centroid.Get(axis)
	})
	mid := len(infos) / 2
	leftInfos := infos[:mid]
	rightInfos := infos[mid:]

	var left, right *buildBVHNode
	if len(infos) >= bvhParallelThreshold {
		var g errgroup.Group
		g.Go(func() error {
			n, err := buildBVHNodeRecursive(leftInfos)
			left = n
			return err
		})
		g.Go(func() error {
			n, err := buildBVHNodeRecursive(rightInfos)
			right = n
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		var err error
		left, err = buildBVHNodeRecursive(leftInfos)
		if err != nil {
			return nil, err
		}
		right, err = buildBVHNodeRecursive(rightInfos)
		if err != nil {
			return nil, err
		}
	}

	return &buildBVHNode{bounds: bounds, axis: int8(axis), left: left, right: right}, nil
}

// flattenBVH performs a depth-first walk of the pointer tree, appending
// each node to tree.nodes and each leaf's triangle indices to
// tree.indices, and returns the index of the node it just appended.
func flattenBVH(n *buildBVHNode, tree *bvhTree) int32 {
	if n.indices != nil {
		start := int32(len(tree.indices))
		tree.indices = append(tree.indices, n.indices...)
		idx := int32(len(tree.nodes))
		tree.nodes = append(tree.nodes, bvhNode{
			Bounds: n.bounds,
			Left:   -1,
			Right:  -1,
			Start:  start,
			Count:  int32(len(n.indices)),
		})
		return idx
	}

	idx := int32(len(tree.nodes))
	tree.nodes = append(tree.nodes, bvhNode{Bounds: n.bounds, Axis: n.axis})
	left := flattenBVH(n.left, tree)
	right := flattenBVH(n.right, tree)
	tree.nodes[idx].Left = left
	tree.nodes[idx].Right = right
	return idx
}

// hitRecord is the result of a traversal, carrying enough to reconstruct a
// TriangleHit together with the face index that produced it.
type hitRecord struct {
	hit      bool
	faceIdx  int
	distance float64
	point    vector.Vector
}

// closestHit walks the tree depth-first, visiting the near child first
// according to the ray's sign along each node's split axis, and pruning
// any subtree whose bounding box cannot beat the current best distance.
func (t *bvhTree) closestHit(r Ray, mesh *Mesh) hitRecord {
	if len(t.nodes) == 0 {
		return hitRecord{}
	}

	stack := make([]int32, 1, 64)
	stack[0] = 0

	best := hitRecord{distance: math.Inf(1)}

	for len(stack) > 0 {
		ni := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := t.nodes[ni]
		if !node.Bounds.hit(r, epsHit, best.distance) {
			continue
		}
		if node.Left == -1 {
			for k := node.Start; k < node.Start+node.Count; k++ {
				fi := int(t.indices[k])
				f := mesh.Faces[fi]
				h := IntersectRayTriangle(r, mesh.Nodes[f.I0], mesh.Nodes[f.I1], mesh.Nodes[f.I2])
				if h.Hit && h.Distance < best.distance {
					best = hitRecord{hit: true, faceIdx: fi, distance: h.Distance, point: h.Point}
				}
			}
			continue
		}

		near, far := node.Left, node.Right
		if r.Direction.Get(int(node.Axis)) < 0 {
			near, far = far, near
		}
		// Push far first so near is popped (and visited) first.
		stack = append(stack, far, near)
	}
	return best
}

// anyHit walks the tree and returns on the first triangle intersection
// with distance in (epsHit, tMax), excluding the face at excludeFace (pass
// -1 to exclude none).
func (t *bvhTree) anyHit(r Ray, mesh *Mesh, tMax float64, excludeFace int) bool {
	return t.anyHitExcluding(r, mesh, tMax, excludeFace, -1)
}

// anyHitExcluding is anyHit with two faces excluded from consideration,
// used by the visibility graph build to skip both endpoints of the
// segment being tested.
func (t *bvhTree) anyHitExcluding(r Ray, mesh *Mesh, tMax float64, excludeA, excludeB int) bool {
	if len(t.nodes) == 0 {
		return false
	}

	stack := make([]int32, 1, 64)
	stack[0] = 0

	for len(stack) > 0 {
		ni := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := t.nodes[ni]
		if !node.Bounds.hit(r, epsHit, tMax) {
			continue
		}
		if node.Left == -1 {
			for k := node.Start; k < node.Start+node.Count; k++ {
				fi := int(t.indices[k])
				if fi == excludeA || fi == excludeB {
					continue
				}
				f := mesh.Faces[fi]
				h := IntersectRayTriangle(r, mesh.Nodes[f.I0], mesh.Nodes[f.I1], mesh.Nodes[f.I2])
				if h.Hit && h.Distance > epsHit && h.Distance < tMax {
					return true
				}
			}
			continue
		}
		stack = append(stack, node.Right, node.Left)
	}
	return false
}
