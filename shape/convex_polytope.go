package shape

import (
	"fmt"
	"math"
	"slices"

	"go.viam.com/collide/spatialmath"
)

// ConvexPolytope is the convex hull of a point set, optionally rounded by a margin. The hull is
// never computed: the support function scans the points.
type ConvexPolytope[V spatialmath.Vector[V]] struct {
	points []V
	margin float64
}

// NewConvexPolytope creates the hull of points, rounded by margin.
func NewConvexPolytope[V spatialmath.Vector[V]](points []V, margin float64) (*ConvexPolytope[V], error) {
	if len(points) == 0 {
		return nil, ErrEmptyShape
	}
	if margin < 0 || math.IsNaN(margin) {
		return nil, newBadGeometryDimensionsError("convex polytope")
	}
	return &ConvexPolytope[V]{points: slices.Clone(points), margin: margin}, nil
}

// Points returns the local points spanning the hull.
func (p *ConvexPolytope[V]) Points() []V {
	return p.points
}

func (p *ConvexPolytope[V]) Margin() float64 {
	return p.margin
}

func (p *ConvexPolytope[V]) SupportPointWithoutMargin(m spatialmath.Isometry[V], dir V) V {
	return m.TransformPoint(supportPointOfPoints(p.points, m.InverseRotateVector(dir)))
}

func (p *ConvexPolytope[V]) SupportPoint(m spatialmath.Isometry[V], dir V) V {
	return growByMargin(p.SupportPointWithoutMargin(m, dir), dir, p.margin)
}

func (p *ConvexPolytope[V]) AABB(m spatialmath.Isometry[V]) spatialmath.AABB[V] {
	placed := make([]V, len(p.points))
	for i, pt := range p.points {
		placed[i] = m.TransformPoint(pt)
	}
	box, _ := spatialmath.AABBFromPoints(placed)
	return box.Loosened(p.margin)
}

func (p *ConvexPolytope[V]) String() string {
	return fmt.Sprintf("Type: ConvexPolytope | Points: %d | Margin: %.3f", len(p.points), p.margin)
}
