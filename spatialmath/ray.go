package spatialmath

// Ray is a half line. A time of impact t designates the point Origin + t*Dir, so times are measured
// in units of the direction's length.
type Ray[V Vector[V]] struct {
	Origin V
	Dir    V
}

// NewRay creates a ray.
func NewRay[V Vector[V]](origin, dir V) Ray[V] {
	return Ray[V]{Origin: origin, Dir: dir}
}

// PointAt returns the point reached at time t.
func (r Ray[V]) PointAt(t float64) V {
	return r.Origin.Add(r.Dir.Mul(t))
}

// Transform places the ray with m.
func (r Ray[V]) Transform(m Isometry[V]) Ray[V] {
	return Ray[V]{Origin: m.TransformPoint(r.Origin), Dir: m.RotateVector(r.Dir)}
}

// InverseTransform expresses the ray in the local frame of m.
func (r Ray[V]) InverseTransform(m Isometry[V]) Ray[V] {
	return Ray[V]{Origin: m.InverseTransformPoint(r.Origin), Dir: m.InverseRotateVector(r.Dir)}
}
