// Package bvt implements an immutable bounding volume tree of axis-aligned boxes and the best-first
// branch-and-bound search used by composite shape queries.
package bvt

import (
	"slices"

	"go.viam.com/collide/spatialmath"
)

// Leaf is a bounding volume tagged with the index of the part it bounds.
type Leaf[V spatialmath.Vector[V]] struct {
	Index int
	BV    spatialmath.AABB[V]
}

// Node is a tree node. Internal nodes have two children; leaves reference a part index.
type Node[V spatialmath.Vector[V]] struct {
	BV          spatialmath.AABB[V]
	Left, Right int
	// Index is the part index for leaves and -1 for internal nodes.
	Index int
}

// IsLeaf reports whether n is a leaf.
func (n Node[V]) IsLeaf() bool {
	return n.Index >= 0
}

// Tree is a binary tree stored in a flat slice of nodes.
type Tree[V spatialmath.Vector[V]] struct {
	nodes  []Node[V]
	root   int
	leaves int
}

// New builds a tree over leaves. Leaves are split at the median of their centers along the widest
// axis of the centers' extent until each node holds a single leaf.
func New[V spatialmath.Vector[V]](leaves []Leaf[V]) *Tree[V] {
	t := &Tree[V]{root: -1, leaves: len(leaves)}
	if len(leaves) == 0 {
		return t
	}
	t.nodes = make([]Node[V], 0, 2*len(leaves)-1)
	work := slices.Clone(leaves)
	t.root = t.build(work)
	return t
}

func (t *Tree[V]) build(leaves []Leaf[V]) int {
	if len(leaves) == 1 {
		t.nodes = append(t.nodes, Node[V]{BV: leaves[0].BV, Left: -1, Right: -1, Index: leaves[0].Index})
		return len(t.nodes) - 1
	}

	centers := make([]V, len(leaves))
	for i, l := range leaves {
		centers[i] = l.BV.Center()
	}
	extent, _ := spatialmath.AABBFromPoints(centers)
	axis := widestAxis(extent)
	slices.SortStableFunc(leaves, func(a, b Leaf[V]) int {
		ca := spatialmath.Coord(a.BV.Center(), axis)
		cb := spatialmath.Coord(b.BV.Center(), axis)
		switch {
		case ca < cb:
			return -1
		case ca > cb:
			return 1
		}
		return 0
	})

	mid := len(leaves) / 2
	left := t.build(leaves[:mid])
	right := t.build(leaves[mid:])
	bv := t.nodes[left].BV.Merged(t.nodes[right].BV)
	t.nodes = append(t.nodes, Node[V]{BV: bv, Left: left, Right: right, Index: -1})
	return len(t.nodes) - 1
}

func widestAxis[V spatialmath.Vector[V]](box spatialmath.AABB[V]) int {
	half := box.HalfExtents()
	axis := 0
	for i := 1; i < spatialmath.Dim[V](); i++ {
		if spatialmath.Coord(half, i) > spatialmath.Coord(half, axis) {
			axis = i
		}
	}
	return axis
}

// Root returns the root node, or false for an empty tree.
func (t *Tree[V]) Root() (Node[V], bool) {
	if t.root < 0 {
		return Node[V]{}, false
	}
	return t.nodes[t.root], true
}

// Node returns the node stored at i. Child links of a Node index into the same storage.
func (t *Tree[V]) Node(i int) Node[V] {
	return t.nodes[i]
}

// Len returns the number of leaves.
func (t *Tree[V]) Len() int {
	return t.leaves
}

// NumNodes returns the number of leaves and internal nodes.
func (t *Tree[V]) NumNodes() int {
	return len(t.nodes)
}

// BV returns the volume bounding the whole tree, or false for an empty tree.
func (t *Tree[V]) BV() (spatialmath.AABB[V], bool) {
	root, ok := t.Root()
	return root.BV, ok
}
