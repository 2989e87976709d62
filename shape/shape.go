// Package shape defines the geometry the collision queries operate on: support mapped convex
// shapes, composite shapes partitioned by a bounding volume tree, and the Minkowski sum algebra
// that combines two support maps into the configuration space obstacle.
package shape

import (
	"go.viam.com/collide/bvt"
	"go.viam.com/collide/spatialmath"
)

// Shape is any geometry that can be bounded once placed.
type Shape[V spatialmath.Vector[V]] interface {
	AABB(m spatialmath.Isometry[V]) spatialmath.AABB[V]
}

// SupportMap is an implicit convex shape. SupportPoint returns the point of the placed shape that
// is farthest along dir; the true boundary is the hull returned by SupportPointWithoutMargin grown
// by Margin in every direction.
type SupportMap[V spatialmath.Vector[V]] interface {
	SupportPoint(m spatialmath.Isometry[V], dir V) V
	SupportPointWithoutMargin(m spatialmath.Isometry[V], dir V) V
	Margin() float64
}

// Convex is a bounded support map.
type Convex[V spatialmath.Vector[V]] interface {
	Shape[V]
	SupportMap[V]
}

// Composite is a shape made of parts indexed by the leaves of its tree. The tree bounds parts in
// the composite's local frame.
type Composite[V spatialmath.Vector[V]] interface {
	Shape[V]
	BVT() *bvt.Tree[V]
	NumParts() int
	// MapTransformedPartAt calls fn with part i placed by m. The part and its placement are only
	// valid for the duration of the call.
	MapTransformedPartAt(i int, m spatialmath.Isometry[V], fn func(spatialmath.Isometry[V], Shape[V]))
}

// RayCaster is implemented by shapes with a closed form ray intersection.
type RayCaster[V spatialmath.Vector[V]] interface {
	TOIWithRay(m spatialmath.Isometry[V], ray spatialmath.Ray[V], solid bool) (float64, bool)
}

// growByMargin moves pt by margin along the unit direction of dir.
func growByMargin[V spatialmath.Vector[V]](pt, dir V, margin float64) V {
	if margin == 0 {
		return pt
	}
	return pt.Add(dir.Normalize().Mul(margin))
}

// supportPointOfPoints returns the point maximizing dot(p, dir).
func supportPointOfPoints[V spatialmath.Vector[V]](pts []V, dir V) V {
	best := pts[0]
	bestDot := best.Dot(dir)
	for _, p := range pts[1:] {
		if d := p.Dot(dir); d > bestDot {
			best, bestDot = p, d
		}
	}
	return best
}
