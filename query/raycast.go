package query

import (
	"math"

	"go.viam.com/collide/bvt"
	"go.viam.com/collide/shape"
	"go.viam.com/collide/spatialmath"
)

const (
	rayMaxIter = 100
	rayEps     = 1e-9
)

// TOIWithRay returns the time of impact of ray on g placed by m, with false when the ray misses.
// When the ray starts inside g a solid shape reports 0 and a hollow one the time at which the ray
// leaves it.
//
// Shapes with a closed form intersection use it. Other support maps are handled by conservative
// advancement on their distance to the ray point, and composite shapes by visiting their parts in
// order of entry time into the parts' bounds.
func TOIWithRay[V spatialmath.Vector[V]](
	m spatialmath.Isometry[V], g shape.Shape[V],
	ray spatialmath.Ray[V], solid bool,
) (float64, bool, error) {
	if rc, ok := g.(shape.RayCaster[V]); ok {
		toi, hit := rc.TOIWithRay(m, ray, solid)
		return toi, hit, nil
	}
	if c, ok := g.(shape.Composite[V]); ok {
		return compositeTOIWithRay(m, c, ray, solid)
	}
	if s, ok := g.(shape.SupportMap[V]); ok {
		toi, hit := supportMapTOIWithRay(m, s, g.AABB(m), ray, solid)
		return toi, hit, nil
	}
	return 0, false, NewUnsupportedShapeError(g)
}

// supportMapTOIWithRay advances along the ray by the distance to the shape divided by how fast the
// ray closes in on the separating plane. Each step stays outside the convex shape, so the first
// point found touching it is the entry point.
func supportMapTOIWithRay[V spatialmath.Vector[V]](
	m spatialmath.Isometry[V], g shape.SupportMap[V], bounds spatialmath.AABB[V],
	ray spatialmath.Ray[V], solid bool,
) (float64, bool) {
	if spatialmath.Norm2(ray.Dir) == 0 {
		inside := pointDistance(m, g, ray.Origin) <= 0
		return 0, inside && solid
	}

	t := 0.0
	for iter := range rayMaxIter {
		pt := ray.PointAt(t)
		cp := pointClosestPoints(m, g, pt)
		if cp.Status == Intersecting || cp.Distance <= rayEps {
			if iter > 0 || solid {
				return t, true
			}
			return reverseTOIWithRay(m, g, bounds, ray)
		}
		normal := cp.PointA.Sub(pt).Normalize()
		closing := ray.Dir.Dot(normal)
		if closing <= 0 {
			return 0, false
		}
		t += cp.Distance / closing
	}
	return 0, false
}

// reverseTOIWithRay finds where a ray starting inside g leaves it by casting back from a point on
// the ray that is certainly outside.
func reverseTOIWithRay[V spatialmath.Vector[V]](
	m spatialmath.Isometry[V], g shape.SupportMap[V], bounds spatialmath.AABB[V],
	ray spatialmath.Ray[V],
) (float64, bool) {
	diameter := bounds.Maxs().Sub(bounds.Mins()).Norm()
	far := (diameter + 1) / ray.Dir.Norm()
	back := spatialmath.NewRay(ray.PointAt(far), spatialmath.Neg(ray.Dir))
	toi, hit := supportMapTOIWithRay(m, g, bounds, back, true)
	if !hit {
		return 0, false
	}
	return far - toi, true
}

func pointClosestPoints[V spatialmath.Vector[V]](m spatialmath.Isometry[V], g shape.SupportMap[V], pt V) ClosestPoints[V] {
	point, _ := shape.NewBall[V](0)
	return supportMapClosestPoints(m, g, spatialmath.NewTranslation(pt), shape.SupportMap[V](point), math.Inf(1))
}

func pointDistance[V spatialmath.Vector[V]](m spatialmath.Isometry[V], g shape.SupportMap[V], pt V) float64 {
	return pointClosestPoints(m, g, pt).Distance
}

type compositeRayCostFn[V spatialmath.Vector[V]] struct {
	localRay spatialmath.Ray[V]
	ray      spatialmath.Ray[V]
	solid    bool

	m   spatialmath.Isometry[V]
	g   shape.Composite[V]
	err error
}

func (c *compositeRayCostFn[V]) ComputeBVCost(bv spatialmath.AABB[V]) (float64, bool) {
	if c.err != nil {
		return 0, false
	}
	return bv.TOIWithRay(c.localRay, true)
}

func (c *compositeRayCostFn[V]) ComputeLeafCost(index int) (float64, float64, bool) {
	if c.err != nil {
		return 0, 0, false
	}
	var (
		toi float64
		hit bool
	)
	c.g.MapTransformedPartAt(index, c.m, func(m spatialmath.Isometry[V], g shape.Shape[V]) {
		toi, hit, c.err = TOIWithRay(m, g, c.ray, c.solid)
	})
	return toi, toi, hit && c.err == nil
}

func compositeTOIWithRay[V spatialmath.Vector[V]](
	m spatialmath.Isometry[V], g shape.Composite[V],
	ray spatialmath.Ray[V], solid bool,
) (float64, bool, error) {
	costFn := &compositeRayCostFn[V]{
		localRay: ray.InverseTransform(m),
		ray:      ray,
		solid:    solid,
		m:        m,
		g:        g,
	}
	toi, hit := bvt.BestFirstSearch[V, float64](g.BVT(), costFn)
	if costFn.err != nil {
		return 0, false, costFn.err
	}
	return toi, hit, nil
}
