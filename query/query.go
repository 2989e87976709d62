// Package query implements the narrow phase geometric queries between two placed shapes:
// proximity classification against a margin, closest points and distance, and ray casting.
//
// Pairs of support maps are handled by GJK on the configuration space obstacle. Composite shapes
// on either side are decomposed through their bounding volume tree, visiting parts best first.
// All queries are pure: shapes are only read, so independent queries may run concurrently.
package query

import (
	"math"

	"go.viam.com/collide/shape"
	"go.viam.com/collide/spatialmath"
)

// ComputeProximity classifies g1 placed by m1 against g2 placed by m2. Shapes farther apart than
// margin are Disjoint.
func ComputeProximity[V spatialmath.Vector[V]](
	m1 spatialmath.Isometry[V], g1 shape.Shape[V],
	m2 spatialmath.Isometry[V], g2 shape.Shape[V],
	margin float64,
) (Proximity, error) {
	if err := checkMargin(margin); err != nil {
		return Disjoint, err
	}
	if c1, ok := g1.(shape.Composite[V]); ok {
		return CompositeShapeAgainstAny(m1, c1, m2, g2, margin, ComputeProximity[V])
	}
	if c2, ok := g2.(shape.Composite[V]); ok {
		return AnyAgainstCompositeShape(m1, g1, m2, c2, margin, ComputeProximity[V])
	}
	s1, ok1 := g1.(shape.SupportMap[V])
	s2, ok2 := g2.(shape.SupportMap[V])
	if ok1 && ok2 {
		return supportMapProximity(m1, s1, m2, s2, margin), nil
	}
	return Disjoint, NewUnsupportedShapePairError(g1, g2)
}

// ComputeClosestPoints finds the closest points between g1 placed by m1 and g2 placed by m2,
// giving up with Disjoint once they are proven farther apart than maxDist.
func ComputeClosestPoints[V spatialmath.Vector[V]](
	m1 spatialmath.Isometry[V], g1 shape.Shape[V],
	m2 spatialmath.Isometry[V], g2 shape.Shape[V],
	maxDist float64,
) (ClosestPoints[V], error) {
	if err := checkMaxDist(maxDist); err != nil {
		return ClosestPoints[V]{}, err
	}
	if c1, ok := g1.(shape.Composite[V]); ok {
		return compositeClosestPoints(m1, c1, m2, g2, maxDist)
	}
	if c2, ok := g2.(shape.Composite[V]); ok {
		cp, err := compositeClosestPoints(m2, c2, m1, g1, maxDist)
		return cp.swapped(), err
	}
	s1, ok1 := g1.(shape.SupportMap[V])
	s2, ok2 := g2.(shape.SupportMap[V])
	if ok1 && ok2 {
		return supportMapClosestPoints(m1, s1, m2, s2, maxDist), nil
	}
	return ClosestPoints[V]{}, NewUnsupportedShapePairError(g1, g2)
}

// Distance returns the distance between the two placed shapes, zero when they intersect.
func Distance[V spatialmath.Vector[V]](
	m1 spatialmath.Isometry[V], g1 shape.Shape[V],
	m2 spatialmath.Isometry[V], g2 shape.Shape[V],
) (float64, error) {
	cp, err := ComputeClosestPoints(m1, g1, m2, g2, math.Inf(1))
	if err != nil {
		return 0, err
	}
	return cp.Distance, nil
}
