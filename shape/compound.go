package shape

import (
	"fmt"
	"slices"

	"go.viam.com/collide/bvt"
	"go.viam.com/collide/spatialmath"
)

// CompoundPart is a shape placed in its compound's local frame.
type CompoundPart[V spatialmath.Vector[V]] struct {
	M     spatialmath.Isometry[V]
	Shape Shape[V]
}

// Compound is a rigid collection of placed shapes.
type Compound[V spatialmath.Vector[V]] struct {
	parts []CompoundPart[V]
	tree  *bvt.Tree[V]
}

// NewCompound creates a compound over parts, building its tree from the parts' local bounds.
func NewCompound[V spatialmath.Vector[V]](parts []CompoundPart[V]) (*Compound[V], error) {
	if len(parts) == 0 {
		return nil, ErrEmptyShape
	}
	parts = slices.Clone(parts)
	leaves := make([]bvt.Leaf[V], len(parts))
	for i, part := range parts {
		if part.M == nil {
			part.M = spatialmath.NewIdentity[V]()
			parts[i] = part
		}
		leaves[i] = bvt.Leaf[V]{Index: i, BV: part.Shape.AABB(part.M)}
	}
	return &Compound[V]{parts: parts, tree: bvt.New(leaves)}, nil
}

// Parts returns the compound's parts.
func (c *Compound[V]) Parts() []CompoundPart[V] {
	return c.parts
}

func (c *Compound[V]) BVT() *bvt.Tree[V] {
	return c.tree
}

func (c *Compound[V]) NumParts() int {
	return len(c.parts)
}

func (c *Compound[V]) MapTransformedPartAt(
	i int,
	m spatialmath.Isometry[V],
	fn func(spatialmath.Isometry[V], Shape[V]),
) {
	part := c.parts[i]
	fn(spatialmath.Compose(m, part.M), part.Shape)
}

func (c *Compound[V]) AABB(m spatialmath.Isometry[V]) spatialmath.AABB[V] {
	bv, _ := c.tree.BV()
	return bv.Transform(m)
}

func (c *Compound[V]) String() string {
	return fmt.Sprintf("Type: Compound | Parts: %d", len(c.parts))
}
