package shape

import (
	"fmt"

	"go.viam.com/collide/spatialmath"
)

// Cuboid is a box (rectangle in 2D) centered on its local origin and aligned with its local axes.
type Cuboid[V spatialmath.Vector[V]] struct {
	halfExtents V
}

// NewCuboid creates a cuboid from its half extents, which must not be negative.
func NewCuboid[V spatialmath.Vector[V]](halfExtents V) (*Cuboid[V], error) {
	for i := range spatialmath.Dim[V]() {
		if !(spatialmath.Coord(halfExtents, i) >= 0) {
			return nil, newBadGeometryDimensionsError("cuboid")
		}
	}
	return &Cuboid[V]{halfExtents: halfExtents}, nil
}

// HalfExtents returns the half size of the cuboid along each local axis.
func (c *Cuboid[V]) HalfExtents() V {
	return c.halfExtents
}

func (c *Cuboid[V]) Margin() float64 {
	return 0
}

func (c *Cuboid[V]) SupportPoint(m spatialmath.Isometry[V], dir V) V {
	return c.SupportPointWithoutMargin(m, dir)
}

// SupportPointWithoutMargin picks, along each local axis, the face the local direction points to.
func (c *Cuboid[V]) SupportPointWithoutMargin(m spatialmath.Isometry[V], dir V) V {
	local := spatialmath.Coords(m.InverseRotateVector(dir))
	half := spatialmath.Coords(c.halfExtents)
	var corner [3]float64
	for i := range spatialmath.Dim[V]() {
		if local[i] >= 0 {
			corner[i] = half[i]
		} else {
			corner[i] = -half[i]
		}
	}
	return m.TransformPoint(spatialmath.FromCoords[V](corner))
}

func (c *Cuboid[V]) localAABB() spatialmath.AABB[V] {
	return spatialmath.NewAABBFromCenter(spatialmath.Zero[V](), c.halfExtents)
}

func (c *Cuboid[V]) AABB(m spatialmath.Isometry[V]) spatialmath.AABB[V] {
	return c.localAABB().Transform(m)
}

// TOIWithRay casts the ray against the cuboid in its local frame.
func (c *Cuboid[V]) TOIWithRay(m spatialmath.Isometry[V], ray spatialmath.Ray[V], solid bool) (float64, bool) {
	return c.localAABB().TOIWithRay(ray.InverseTransform(m), solid)
}

// Vertices returns the corners of the cuboid placed by m.
func (c *Cuboid[V]) Vertices(m spatialmath.Isometry[V]) []V {
	n := spatialmath.Dim[V]()
	half := spatialmath.Coords(c.halfExtents)
	verts := make([]V, 0, 1<<n)
	for mask := 0; mask < 1<<n; mask++ {
		var corner [3]float64
		for i := range n {
			if mask&(1<<i) != 0 {
				corner[i] = half[i]
			} else {
				corner[i] = -half[i]
			}
		}
		verts = append(verts, m.TransformPoint(spatialmath.FromCoords[V](corner)))
	}
	return verts
}

func (c *Cuboid[V]) String() string {
	return fmt.Sprintf("Type: Cuboid | HalfExtents: %v", c.halfExtents)
}
