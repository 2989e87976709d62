package shape

import (
	"fmt"
	"math"

	"go.viam.com/collide/spatialmath"
	"go.viam.com/collide/utils"
)

// Ball is a disc (2D) or sphere (3D) centered on its local origin. Its core is the single center
// point and its radius is the margin.
type Ball[V spatialmath.Vector[V]] struct {
	radius float64
}

// NewBall creates a ball. The radius must not be negative.
func NewBall[V spatialmath.Vector[V]](radius float64) (*Ball[V], error) {
	if radius < 0 || math.IsNaN(radius) {
		return nil, newBadGeometryDimensionsError("ball")
	}
	return &Ball[V]{radius: radius}, nil
}

// Radius returns the ball radius.
func (b *Ball[V]) Radius() float64 {
	return b.radius
}

func (b *Ball[V]) Margin() float64 {
	return b.radius
}

func (b *Ball[V]) SupportPoint(m spatialmath.Isometry[V], dir V) V {
	return growByMargin(m.Translation(), dir, b.radius)
}

func (b *Ball[V]) SupportPointWithoutMargin(m spatialmath.Isometry[V], _ V) V {
	return m.Translation()
}

func (b *Ball[V]) AABB(m spatialmath.Isometry[V]) spatialmath.AABB[V] {
	return spatialmath.NewAABBFromCenter(m.Translation(), spatialmath.Splat[V](b.radius))
}

// TOIWithRay solves |o + t*d - c|^2 = r^2 for the first admissible t.
func (b *Ball[V]) TOIWithRay(m spatialmath.Isometry[V], ray spatialmath.Ray[V], solid bool) (float64, bool) {
	o := ray.Origin.Sub(m.Translation())
	a := ray.Dir.Dot(ray.Dir)
	half := o.Dot(ray.Dir)
	c := o.Dot(o) - utils.Square(b.radius)

	// starts outside and points away
	if c > 0 && half > 0 {
		return 0, false
	}
	if a == 0 {
		if c <= 0 && solid {
			return 0, true
		}
		return 0, false
	}
	disc := utils.Square(half) - a*c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := (-half - sq) / a
	if t >= 0 {
		return t, true
	}
	if solid {
		return 0, true
	}
	return (-half + sq) / a, true
}

func (b *Ball[V]) String() string {
	return fmt.Sprintf("Type: Ball | Radius: %.3f", b.radius)
}
