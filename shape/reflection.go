package shape

import "go.viam.com/collide/spatialmath"

// Reflection is the placed support map mirrored through the origin: its support point along d is
// the negated support point of the wrapped shape along -d.
type Reflection[V spatialmath.Vector[V]] struct {
	g SupportMap[V]
}

// NewReflection wraps g.
func NewReflection[V spatialmath.Vector[V]](g SupportMap[V]) Reflection[V] {
	return Reflection[V]{g: g}
}

// Shape returns the reflected shape.
func (r Reflection[V]) Shape() SupportMap[V] {
	return r.g
}

func (r Reflection[V]) Margin() float64 {
	return r.g.Margin()
}

func (r Reflection[V]) SupportPoint(m spatialmath.Isometry[V], dir V) V {
	return spatialmath.Neg(r.g.SupportPoint(m, spatialmath.Neg(dir)))
}

func (r Reflection[V]) SupportPointWithoutMargin(m spatialmath.Isometry[V], dir V) V {
	return spatialmath.Neg(r.g.SupportPointWithoutMargin(m, spatialmath.Neg(dir)))
}
