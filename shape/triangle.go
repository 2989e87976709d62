package shape

import (
	"fmt"

	"go.viam.com/collide/spatialmath"
)

// Triangle is a flat triangle given by three local points.
type Triangle[V spatialmath.Vector[V]] struct {
	pts [3]V
}

// NewTriangle creates a triangle from its vertices.
func NewTriangle[V spatialmath.Vector[V]](p0, p1, p2 V) *Triangle[V] {
	return &Triangle[V]{pts: [3]V{p0, p1, p2}}
}

// Points returns the three vertices.
func (t *Triangle[V]) Points() [3]V {
	return t.pts
}

// Centroid returns the average of the vertices.
func (t *Triangle[V]) Centroid() V {
	return t.pts[0].Add(t.pts[1]).Add(t.pts[2]).Mul(1. / 3)
}

func (t *Triangle[V]) Margin() float64 {
	return 0
}

func (t *Triangle[V]) SupportPointWithoutMargin(m spatialmath.Isometry[V], dir V) V {
	local := m.InverseRotateVector(dir)
	return m.TransformPoint(supportPointOfPoints(t.pts[:], local))
}

func (t *Triangle[V]) SupportPoint(m spatialmath.Isometry[V], dir V) V {
	return t.SupportPointWithoutMargin(m, dir)
}

func (t *Triangle[V]) AABB(m spatialmath.Isometry[V]) spatialmath.AABB[V] {
	placed := []V{m.TransformPoint(t.pts[0]), m.TransformPoint(t.pts[1]), m.TransformPoint(t.pts[2])}
	box, _ := spatialmath.AABBFromPoints(placed)
	return box
}

func (t *Triangle[V]) String() string {
	return fmt.Sprintf("Type: Triangle | Points: %v, %v, %v", t.pts[0], t.pts[1], t.pts[2])
}
