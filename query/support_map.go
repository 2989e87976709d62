package query

import (
	"math"

	"go.viam.com/collide/shape"
	"go.viam.com/collide/spatialmath"
)

// ClosestPoints is the result of a closest points query between two shapes.
type ClosestPoints[V spatialmath.Vector[V]] struct {
	// Status is Intersecting when the shapes touch, WithinMargin when the points below were found no
	// farther apart than the query's maximum distance, and Disjoint otherwise.
	Status Proximity
	// PointA and PointB are the closest points on the first and second shape. They are only set
	// when Status is WithinMargin.
	PointA V
	PointB V
	// Distance is 0 when intersecting and +Inf when disjoint.
	Distance float64
}

func disjointPoints[V spatialmath.Vector[V]]() ClosestPoints[V] {
	return ClosestPoints[V]{Status: Disjoint, Distance: math.Inf(1)}
}

func (cp ClosestPoints[V]) swapped() ClosestPoints[V] {
	cp.PointA, cp.PointB = cp.PointB, cp.PointA
	return cp
}

// supportMapClosestPoints runs GJK on the cores and accounts for the margins afterwards: the
// witness points are pushed out of the cores along the separating direction.
func supportMapClosestPoints[V spatialmath.Vector[V]](
	m1 spatialmath.Isometry[V], g1 shape.SupportMap[V],
	m2 spatialmath.Isometry[V], g2 shape.SupportMap[V],
	maxDist float64,
) ClosestPoints[V] {
	margin1, margin2 := g1.Margin(), g2.Margin()
	res := gjk(m1, g1, m2, g2, maxDist+margin1+margin2)
	if res.intersecting {
		return ClosestPoints[V]{Status: Intersecting}
	}
	if !res.converged {
		return disjointPoints[V]()
	}

	dist := res.distance - margin1 - margin2
	if dist <= 0 {
		return ClosestPoints[V]{Status: Intersecting}
	}
	if dist > maxDist {
		return disjointPoints[V]()
	}

	// unit direction from the first shape to the second
	normal := spatialmath.Neg(res.closest.Point()).Mul(1 / res.distance)
	return ClosestPoints[V]{
		Status:   WithinMargin,
		PointA:   res.closest.Orig1().Add(normal.Mul(margin1)),
		PointB:   spatialmath.Neg(res.closest.Orig2()).Sub(normal.Mul(margin2)),
		Distance: dist,
	}
}

func supportMapProximity[V spatialmath.Vector[V]](
	m1 spatialmath.Isometry[V], g1 shape.SupportMap[V],
	m2 spatialmath.Isometry[V], g2 shape.SupportMap[V],
	margin float64,
) Proximity {
	return supportMapClosestPoints(m1, g1, m2, g2, margin).Status
}
