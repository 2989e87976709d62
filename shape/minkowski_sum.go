package shape

import "go.viam.com/collide/spatialmath"

// MinkowskiSum is the implicit Minkowski sum of two placed support maps. It only references its
// operands, so building one is constant time. The sum lives in the combined frame: the placement
// passed to its own support functions is ignored.
type MinkowskiSum[V spatialmath.Vector[V]] struct {
	m1 spatialmath.Isometry[V]
	g1 SupportMap[V]
	m2 spatialmath.Isometry[V]
	g2 SupportMap[V]
}

// NewMinkowskiSum builds the sum of g1 placed by m1 and g2 placed by m2.
func NewMinkowskiSum[V spatialmath.Vector[V]](
	m1 spatialmath.Isometry[V], g1 SupportMap[V],
	m2 spatialmath.Isometry[V], g2 SupportMap[V],
) MinkowskiSum[V] {
	return MinkowskiSum[V]{m1: m1, g1: g1, m2: m2, g2: g2}
}

// Margin is the sum of both margins.
func (ms MinkowskiSum[V]) Margin() float64 {
	return ms.g1.Margin() + ms.g2.Margin()
}

func (ms MinkowskiSum[V]) SupportPoint(_ spatialmath.Isometry[V], dir V) V {
	return ms.g1.SupportPoint(ms.m1, dir).Add(ms.g2.SupportPoint(ms.m2, dir))
}

func (ms MinkowskiSum[V]) SupportPointWithoutMargin(_ spatialmath.Isometry[V], dir V) V {
	return ms.g1.SupportPointWithoutMargin(ms.m1, dir).Add(ms.g2.SupportPointWithoutMargin(ms.m2, dir))
}

// AnnotatedMinkowskiSum is a MinkowskiSum whose support points remember which point of each
// operand produced them.
type AnnotatedMinkowskiSum[V spatialmath.Vector[V]] struct {
	m1 spatialmath.Isometry[V]
	g1 SupportMap[V]
	m2 spatialmath.Isometry[V]
	g2 SupportMap[V]
}

// NewAnnotatedMinkowskiSum builds the annotated sum of g1 placed by m1 and g2 placed by m2.
func NewAnnotatedMinkowskiSum[V spatialmath.Vector[V]](
	m1 spatialmath.Isometry[V], g1 SupportMap[V],
	m2 spatialmath.Isometry[V], g2 SupportMap[V],
) AnnotatedMinkowskiSum[V] {
	return AnnotatedMinkowskiSum[V]{m1: m1, g1: g1, m2: m2, g2: g2}
}

// Margin is the sum of both margins.
func (ms AnnotatedMinkowskiSum[V]) Margin() float64 {
	return ms.g1.Margin() + ms.g2.Margin()
}

// SupportPoint evaluates both operands along dir.Point().
func (ms AnnotatedMinkowskiSum[V]) SupportPoint(dir AnnotatedPoint[V]) AnnotatedPoint[V] {
	orig1 := ms.g1.SupportPoint(ms.m1, dir.point)
	orig2 := ms.g2.SupportPoint(ms.m2, dir.point)
	return NewAnnotatedPoint(orig1, orig2, orig1.Add(orig2))
}

// SupportPointWithoutMargin evaluates both operands' cores along dir.Point().
func (ms AnnotatedMinkowskiSum[V]) SupportPointWithoutMargin(dir AnnotatedPoint[V]) AnnotatedPoint[V] {
	orig1 := ms.g1.SupportPointWithoutMargin(ms.m1, dir.point)
	orig2 := ms.g2.SupportPointWithoutMargin(ms.m2, dir.point)
	return NewAnnotatedPoint(orig1, orig2, orig1.Add(orig2))
}

// CSOSupportPoint returns the support point along dir of the configuration space obstacle of the
// two placed shapes, the sum of g1 and the reflection of g2. Orig1 is the point of g1 and -Orig2
// the point of g2 that produced it.
func CSOSupportPoint[V spatialmath.Vector[V]](
	m1 spatialmath.Isometry[V], g1 SupportMap[V],
	m2 spatialmath.Isometry[V], g2 SupportMap[V],
	dir V,
) AnnotatedPoint[V] {
	cso := NewAnnotatedMinkowskiSum(m1, g1, m2, SupportMap[V](NewReflection(g2)))
	return cso.SupportPoint(NewInvalidAnnotatedPoint(dir))
}

// CSOSupportPointWithoutMargin is CSOSupportPoint on the shapes' cores.
func CSOSupportPointWithoutMargin[V spatialmath.Vector[V]](
	m1 spatialmath.Isometry[V], g1 SupportMap[V],
	m2 spatialmath.Isometry[V], g2 SupportMap[V],
	dir V,
) AnnotatedPoint[V] {
	cso := NewAnnotatedMinkowskiSum(m1, g1, m2, SupportMap[V](NewReflection(g2)))
	return cso.SupportPointWithoutMargin(NewInvalidAnnotatedPoint(dir))
}
