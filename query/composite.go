package query

import (
	"go.viam.com/collide/bvt"
	"go.viam.com/collide/shape"
	"go.viam.com/collide/spatialmath"
)

// ProximityFunc classifies two placed shapes against a margin. It is the exact test run on each
// part of a composite shape that survives bounding volume pruning.
type ProximityFunc[V spatialmath.Vector[V]] func(
	m1 spatialmath.Isometry[V], g1 shape.Shape[V],
	m2 spatialmath.Isometry[V], g2 shape.Shape[V],
	margin float64,
) (Proximity, error)

// compositeBounds measures bounding volumes of a composite against the other shape's box, both in
// the composite's local frame. A part's volume can only come within d of the other shape if the
// Minkowski sum of the two boxes comes within d of the origin.
type compositeBounds[V spatialmath.Vector[V]] struct {
	msumShift  V
	msumMargin V
}

func newCompositeBounds[V spatialmath.Vector[V]](
	m1 spatialmath.Isometry[V],
	m2 spatialmath.Isometry[V], g2 shape.Shape[V],
) (compositeBounds[V], error) {
	inv, err := m1.Inverse()
	if err != nil {
		return compositeBounds[V]{}, err
	}
	lsAABB2 := g2.AABB(spatialmath.Compose(inv, m2))
	return compositeBounds[V]{
		msumShift:  spatialmath.Neg(lsAABB2.Center()),
		msumMargin: lsAABB2.HalfExtents(),
	}, nil
}

// distance is a lower bound on the distance between anything inside bv and the other shape.
func (cb compositeBounds[V]) distance(bv spatialmath.AABB[V]) float64 {
	msum := spatialmath.NewAABB(
		bv.Mins().Add(cb.msumShift).Sub(cb.msumMargin),
		bv.Maxs().Add(cb.msumShift).Add(cb.msumMargin),
	)
	return msum.DistanceToPoint(spatialmath.Zero[V]())
}

type compositeProximityCostFn[V spatialmath.Vector[V]] struct {
	bounds compositeBounds[V]

	m1     spatialmath.Isometry[V]
	g1     shape.Composite[V]
	m2     spatialmath.Isometry[V]
	g2     shape.Shape[V]
	margin float64
	exact  ProximityFunc[V]

	foundIntersection bool
	err               error
}

func (c *compositeProximityCostFn[V]) ComputeBVCost(bv spatialmath.AABB[V]) (float64, bool) {
	// nothing left to find once two parts intersect
	if c.foundIntersection || c.err != nil {
		return 0, false
	}
	distance := c.bounds.distance(bv)
	if distance <= c.margin {
		return distance, true
	}
	return 0, false
}

func (c *compositeProximityCostFn[V]) ComputeLeafCost(index int) (float64, Proximity, bool) {
	if c.err != nil {
		return 0, Disjoint, false
	}
	var (
		cost float64
		prox Proximity
		ok   bool
	)
	c.g1.MapTransformedPartAt(index, c.m1, func(m1 spatialmath.Isometry[V], g1 shape.Shape[V]) {
		res, err := c.exact(m1, g1, c.m2, c.g2, c.margin)
		if err != nil {
			c.err = err
			return
		}
		switch res {
		case WithinMargin:
			cost, prox, ok = c.margin, WithinMargin, true
		case Intersecting:
			c.foundIntersection = true
			cost, prox, ok = 0, Intersecting, true
		case Disjoint:
		}
	})
	return cost, prox, ok
}

// CompositeShapeAgainstAny classifies a composite shape g1 against any shape g2. The parts of g1
// are visited best first; parts whose bounds cannot come within margin of g2 are never tested, and
// the search stops as soon as one part intersects. A nil exact defaults to ComputeProximity.
//
// An error is returned when m1 cannot be inverted or when exact fails on some part.
func CompositeShapeAgainstAny[V spatialmath.Vector[V]](
	m1 spatialmath.Isometry[V], g1 shape.Composite[V],
	m2 spatialmath.Isometry[V], g2 shape.Shape[V],
	margin float64,
	exact ProximityFunc[V],
) (Proximity, error) {
	if err := checkMargin(margin); err != nil {
		return Disjoint, err
	}
	if exact == nil {
		exact = ComputeProximity[V]
	}
	bounds, err := newCompositeBounds(m1, m2, g2)
	if err != nil {
		return Disjoint, err
	}

	costFn := &compositeProximityCostFn[V]{
		bounds: bounds,
		m1:     m1,
		g1:     g1,
		m2:     m2,
		g2:     g2,
		margin: margin,
		exact:  exact,
	}
	prox, ok := bvt.BestFirstSearch[V, Proximity](g1.BVT(), costFn)
	if costFn.err != nil {
		return Disjoint, costFn.err
	}
	if !ok {
		return Disjoint, nil
	}
	return prox, nil
}

// AnyAgainstCompositeShape classifies any shape g1 against a composite shape g2.
func AnyAgainstCompositeShape[V spatialmath.Vector[V]](
	m1 spatialmath.Isometry[V], g1 shape.Shape[V],
	m2 spatialmath.Isometry[V], g2 shape.Composite[V],
	margin float64,
	exact ProximityFunc[V],
) (Proximity, error) {
	return CompositeShapeAgainstAny(m2, g2, m1, g1, margin, exact)
}

type compositeClosestPointsCostFn[V spatialmath.Vector[V]] struct {
	bounds compositeBounds[V]

	m1      spatialmath.Isometry[V]
	g1      shape.Composite[V]
	m2      spatialmath.Isometry[V]
	g2      shape.Shape[V]
	maxDist float64

	foundIntersection bool
	err               error
}

func (c *compositeClosestPointsCostFn[V]) ComputeBVCost(bv spatialmath.AABB[V]) (float64, bool) {
	if c.foundIntersection || c.err != nil {
		return 0, false
	}
	distance := c.bounds.distance(bv)
	if distance <= c.maxDist {
		return distance, true
	}
	return 0, false
}

func (c *compositeClosestPointsCostFn[V]) ComputeLeafCost(index int) (float64, ClosestPoints[V], bool) {
	if c.err != nil {
		return 0, ClosestPoints[V]{}, false
	}
	var (
		res ClosestPoints[V]
		ok  bool
	)
	c.g1.MapTransformedPartAt(index, c.m1, func(m1 spatialmath.Isometry[V], g1 shape.Shape[V]) {
		cp, err := ComputeClosestPoints(m1, g1, c.m2, c.g2, c.maxDist)
		if err != nil {
			c.err = err
			return
		}
		switch cp.Status {
		case Intersecting:
			c.foundIntersection = true
			res, ok = cp, true
		case WithinMargin:
			res, ok = cp, true
		case Disjoint:
		}
	})
	return res.Distance, res, ok
}

func compositeClosestPoints[V spatialmath.Vector[V]](
	m1 spatialmath.Isometry[V], g1 shape.Composite[V],
	m2 spatialmath.Isometry[V], g2 shape.Shape[V],
	maxDist float64,
) (ClosestPoints[V], error) {
	bounds, err := newCompositeBounds(m1, m2, g2)
	if err != nil {
		return ClosestPoints[V]{}, err
	}
	costFn := &compositeClosestPointsCostFn[V]{
		bounds:  bounds,
		m1:      m1,
		g1:      g1,
		m2:      m2,
		g2:      g2,
		maxDist: maxDist,
	}
	cp, ok := bvt.BestFirstSearch[V, ClosestPoints[V]](g1.BVT(), costFn)
	if costFn.err != nil {
		return ClosestPoints[V]{}, costFn.err
	}
	if !ok {
		return disjointPoints[V](), nil
	}
	return cp, nil
}
