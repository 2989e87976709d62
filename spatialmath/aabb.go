package spatialmath

import (
	"fmt"
	"math"
)

// AABB is an axis-aligned bounding box given by its minimum and maximum corners.
type AABB[V Vector[V]] struct {
	mins V
	maxs V
}

// NewAABB creates a box from its corners. Corners are taken as given; use Validate to check them.
func NewAABB[V Vector[V]](mins, maxs V) AABB[V] {
	return AABB[V]{mins: mins, maxs: maxs}
}

// NewAABBFromCenter creates a box from its center and (non-negative) half extents.
func NewAABBFromCenter[V Vector[V]](center, halfExtents V) AABB[V] {
	return AABB[V]{mins: center.Sub(halfExtents), maxs: center.Add(halfExtents)}
}

// AABBFromPoints returns the smallest box containing every point. It returns false for no points.
func AABBFromPoints[V Vector[V]](pts []V) (AABB[V], bool) {
	if len(pts) == 0 {
		return AABB[V]{}, false
	}
	mins, maxs := pts[0], pts[0]
	for _, p := range pts[1:] {
		mins = CompMin(mins, p)
		maxs = CompMax(maxs, p)
	}
	return AABB[V]{mins: mins, maxs: maxs}, true
}

// Validate returns an error if a minimum corner coordinate exceeds the maximum one.
func (a AABB[V]) Validate() error {
	for i := range Dim[V]() {
		if Coord(a.mins, i) > Coord(a.maxs, i) {
			return newInvalidAABBError(a.mins, a.maxs)
		}
	}
	return nil
}

// Mins returns the minimum corner.
func (a AABB[V]) Mins() V {
	return a.mins
}

// Maxs returns the maximum corner.
func (a AABB[V]) Maxs() V {
	return a.maxs
}

// Center returns the center of the box.
func (a AABB[V]) Center() V {
	return a.mins.Add(a.maxs).Mul(0.5)
}

// HalfExtents returns half of the box size along each axis.
func (a AABB[V]) HalfExtents() V {
	return a.maxs.Sub(a.mins).Mul(0.5)
}

// Merged returns the smallest box containing both a and b.
func (a AABB[V]) Merged(b AABB[V]) AABB[V] {
	return AABB[V]{mins: CompMin(a.mins, b.mins), maxs: CompMax(a.maxs, b.maxs)}
}

// Loosened grows the box by amount on every side.
func (a AABB[V]) Loosened(amount float64) AABB[V] {
	d := Splat[V](amount)
	return AABB[V]{mins: a.mins.Sub(d), maxs: a.maxs.Add(d)}
}

// Intersects reports whether a and b overlap. Touching boxes intersect.
func (a AABB[V]) Intersects(b AABB[V]) bool {
	for i := range Dim[V]() {
		if Coord(a.maxs, i) < Coord(b.mins, i) || Coord(b.maxs, i) < Coord(a.mins, i) {
			return false
		}
	}
	return true
}

// Contains reports whether b lies entirely inside a.
func (a AABB[V]) Contains(b AABB[V]) bool {
	return a.ContainsPoint(b.mins) && a.ContainsPoint(b.maxs)
}

// ContainsPoint reports whether p lies inside or on the boundary of the box.
func (a AABB[V]) ContainsPoint(p V) bool {
	for i := range Dim[V]() {
		x := Coord(p, i)
		if x < Coord(a.mins, i) || x > Coord(a.maxs, i) {
			return false
		}
	}
	return true
}

// ClosestPoint clamps p onto the box.
func (a AABB[V]) ClosestPoint(p V) V {
	return CompMin(CompMax(p, a.mins), a.maxs)
}

// DistanceToPoint returns the distance from p to the box, zero if p is inside.
func (a AABB[V]) DistanceToPoint(p V) float64 {
	return p.Sub(a.ClosestPoint(p)).Norm()
}

// DistanceToAABB returns the gap between two boxes, zero if they overlap.
func (a AABB[V]) DistanceToAABB(b AABB[V]) float64 {
	var sq float64
	for i := range Dim[V]() {
		gap := math.Max(Coord(b.mins, i)-Coord(a.maxs, i), Coord(a.mins, i)-Coord(b.maxs, i))
		if gap > 0 {
			sq += gap * gap
		}
	}
	return math.Sqrt(sq)
}

// Transform returns the box enclosing a after placing it with m.
// Each new half extent is the sum of the old ones weighted by the absolute rotation entries.
func (a AABB[V]) Transform(m Isometry[V]) AABB[V] {
	center := m.TransformPoint(a.Center())
	half := a.HalfExtents()
	var newHalf V
	for j, e := range Basis[V]() {
		column := CompAbs(m.RotateVector(e))
		newHalf = newHalf.Add(column.Mul(Coord(half, j)))
	}
	return NewAABBFromCenter(center, newHalf)
}

// TOIWithRay intersects the ray with the box using the slab method. When the ray starts inside the
// box a solid box reports 0 and a hollow one reports the time at which the ray leaves it.
func (a AABB[V]) TOIWithRay(ray Ray[V], solid bool) (float64, bool) {
	tmin := math.Inf(-1)
	tmax := math.Inf(1)
	for i := range Dim[V]() {
		o := Coord(ray.Origin, i)
		d := Coord(ray.Dir, i)
		lo, hi := Coord(a.mins, i), Coord(a.maxs, i)
		if d == 0 {
			if o < lo || o > hi {
				return 0, false
			}
			continue
		}
		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	if tmax < 0 {
		return 0, false
	}
	if tmin >= 0 {
		return tmin, true
	}
	// origin inside
	if solid {
		return 0, true
	}
	if math.IsInf(tmax, 1) {
		return 0, false
	}
	return tmax, true
}

func (a AABB[V]) String() string {
	return fmt.Sprintf("AABB{mins: %v, maxs: %v}", a.mins, a.maxs)
}
