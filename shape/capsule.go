package shape

import (
	"fmt"

	"go.viam.com/collide/spatialmath"
)

// Capsule is the set of points within radius of a segment running along the local Y axis from
// -halfHeight to +halfHeight. The segment is its core and the radius its margin.
type Capsule[V spatialmath.Vector[V]] struct {
	halfHeight float64
	radius     float64
}

// NewCapsule creates a capsule. Neither dimension may be negative.
func NewCapsule[V spatialmath.Vector[V]](halfHeight, radius float64) (*Capsule[V], error) {
	if !(halfHeight >= 0) || !(radius >= 0) {
		return nil, newBadGeometryDimensionsError("capsule")
	}
	return &Capsule[V]{halfHeight: halfHeight, radius: radius}, nil
}

// HalfHeight returns half the length of the core segment.
func (c *Capsule[V]) HalfHeight() float64 {
	return c.halfHeight
}

// Radius returns the capsule radius.
func (c *Capsule[V]) Radius() float64 {
	return c.radius
}

func (c *Capsule[V]) Margin() float64 {
	return c.radius
}

func (c *Capsule[V]) segment(m spatialmath.Isometry[V]) (V, V) {
	tip := spatialmath.FromCoords[V]([3]float64{0, c.halfHeight, 0})
	return m.TransformPoint(tip), m.TransformPoint(spatialmath.Neg(tip))
}

func (c *Capsule[V]) SupportPointWithoutMargin(m spatialmath.Isometry[V], dir V) V {
	top, bottom := c.segment(m)
	if top.Dot(dir) >= bottom.Dot(dir) {
		return top
	}
	return bottom
}

func (c *Capsule[V]) SupportPoint(m spatialmath.Isometry[V], dir V) V {
	return growByMargin(c.SupportPointWithoutMargin(m, dir), dir, c.radius)
}

func (c *Capsule[V]) AABB(m spatialmath.Isometry[V]) spatialmath.AABB[V] {
	top, bottom := c.segment(m)
	box := spatialmath.NewAABB(spatialmath.CompMin(top, bottom), spatialmath.CompMax(top, bottom))
	return box.Loosened(c.radius)
}

// Length returns the full length of the capsule including both caps.
func (c *Capsule[V]) Length() float64 {
	return 2 * (c.halfHeight + c.radius)
}

func (c *Capsule[V]) String() string {
	return fmt.Sprintf("Type: Capsule | HalfHeight: %.3f | Radius: %.3f", c.halfHeight, c.radius)
}
