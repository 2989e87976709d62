// Package spatialmath defines the vector, placement and bounding volume types the collision kernel
// is built on. Everything is generic over the dimension: 2D uses r2.Point, 3D uses r3.Vector.
package spatialmath

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// Vector is the constraint satisfied by the point/vector types shapes and queries are generic over.
// Points and vectors share one type, as they do in golang/geo. The scalar type is float64.
type Vector[V any] interface {
	r2.Point | r3.Vector
	Add(V) V
	Sub(V) V
	Mul(float64) V
	Dot(V) float64
	Norm() float64
	Normalize() V
}

// Dim returns the number of coordinates of V.
func Dim[V Vector[V]]() int {
	var v V
	if _, ok := any(v).(r2.Point); ok {
		return 2
	}
	return 3
}

// Zero returns the zero vector (the origin) of V.
func Zero[V Vector[V]]() V {
	var v V
	return v
}

// Coord returns the i-th coordinate of v. Out of range indices return 0.
func Coord[V Vector[V]](v V, i int) float64 {
	switch p := any(v).(type) {
	case r2.Point:
		switch i {
		case 0:
			return p.X
		case 1:
			return p.Y
		}
	case r3.Vector:
		switch i {
		case 0:
			return p.X
		case 1:
			return p.Y
		case 2:
			return p.Z
		}
	}
	return 0
}

// Coords returns the coordinates of v, padded with zeros to three entries.
func Coords[V Vector[V]](v V) [3]float64 {
	switch p := any(v).(type) {
	case r2.Point:
		return [3]float64{p.X, p.Y, 0}
	case r3.Vector:
		return [3]float64{p.X, p.Y, p.Z}
	}
	return [3]float64{}
}

// FromCoords builds a V from its coordinates. Coordinates beyond Dim are ignored.
func FromCoords[V Vector[V]](c [3]float64) V {
	var v V
	switch any(v).(type) {
	case r2.Point:
		return any(r2.Point{X: c[0], Y: c[1]}).(V)
	case r3.Vector:
		return any(r3.Vector{X: c[0], Y: c[1], Z: c[2]}).(V)
	}
	return v
}

// VectorFromSlice converts a slice of exactly Dim coordinates into a V.
func VectorFromSlice[V Vector[V]](s []float64) (V, error) {
	if len(s) != Dim[V]() {
		return Zero[V](), newBadVectorLengthError(len(s), Dim[V]())
	}
	var c [3]float64
	copy(c[:], s)
	return FromCoords[V](c), nil
}

// Basis returns the canonical basis vectors of V.
func Basis[V Vector[V]]() []V {
	n := Dim[V]()
	basis := make([]V, n)
	for i := range n {
		var c [3]float64
		c[i] = 1
		basis[i] = FromCoords[V](c)
	}
	return basis
}

// Splat returns the vector with every coordinate set to x.
func Splat[V Vector[V]](x float64) V {
	return FromCoords[V]([3]float64{x, x, x})
}

// Neg returns -v.
func Neg[V Vector[V]](v V) V {
	return v.Mul(-1)
}

// Norm2 returns the squared norm of v.
func Norm2[V Vector[V]](v V) float64 {
	return v.Dot(v)
}

// CompMin returns the componentwise minimum of a and b.
func CompMin[V Vector[V]](a, b V) V {
	ca, cb := Coords(a), Coords(b)
	for i := range ca {
		ca[i] = math.Min(ca[i], cb[i])
	}
	return FromCoords[V](ca)
}

// CompMax returns the componentwise maximum of a and b.
func CompMax[V Vector[V]](a, b V) V {
	ca, cb := Coords(a), Coords(b)
	for i := range ca {
		ca[i] = math.Max(ca[i], cb[i])
	}
	return FromCoords[V](ca)
}

// CompAbs returns the componentwise absolute value of v.
func CompAbs[V Vector[V]](v V) V {
	c := Coords(v)
	for i := range c {
		c[i] = math.Abs(c[i])
	}
	return FromCoords[V](c)
}

// IsFinite reports whether no coordinate of v is NaN or infinite.
func IsFinite[V Vector[V]](v V) bool {
	for _, x := range Coords(v) {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// VectorAlmostEqual reports whether a and b are within epsilon of each other.
func VectorAlmostEqual[V Vector[V]](a, b V, epsilon float64) bool {
	return a.Sub(b).Norm() <= epsilon
}

func newBadVectorLengthError(got, want int) error {
	return errors.Errorf("expected %d coordinates, got %d", want, got)
}
