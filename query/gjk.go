package query

import (
	"math"

	"go.viam.com/collide/shape"
	"go.viam.com/collide/spatialmath"
)

const (
	gjkMaxIter = 64
	gjkEps     = 1e-10
	// squared norm below which the simplex is taken to contain the origin
	gjkZero2 = 1e-20
)

// gjkResult is the outcome of running GJK on the cores of two placed support maps.
type gjkResult[V spatialmath.Vector[V]] struct {
	intersecting bool
	// closest is the point of the configuration space obstacle nearest the origin. Its origins are
	// the matching points of each core: Orig1 on the first and -Orig2 on the second.
	closest shape.AnnotatedPoint[V]
	// distance is the exact core distance when converged and a lower bound on it otherwise.
	distance  float64
	converged bool
}

// gjk runs the Gilbert-Johnson-Keerthi distance algorithm on the cores of g1 and g2.
// At each iteration the support function yields a lower bound on the distance that increases
// monotonically; as soon as it exceeds maxDist the search stops without converging.
func gjk[V spatialmath.Vector[V]](
	m1 spatialmath.Isometry[V], g1 shape.SupportMap[V],
	m2 spatialmath.Isometry[V], g2 shape.SupportMap[V],
	maxDist float64,
) gjkResult[V] {
	support := func(d V) shape.AnnotatedPoint[V] {
		return shape.CSOSupportPointWithoutMargin(m1, g1, m2, g2, d)
	}

	d := m1.Translation().Sub(m2.Translation())
	if spatialmath.Norm2(d) < gjkZero2 {
		d = spatialmath.Basis[V]()[0]
	}

	w := support(d)
	simplex := []shape.AnnotatedPoint[V]{w}
	v := w
	mu := 0.0

	for range gjkMaxIter {
		vv := v.Norm2()
		if vv < gjkZero2 {
			return gjkResult[V]{intersecting: true, closest: v, converged: true}
		}
		vNorm := math.Sqrt(vv)

		w = support(spatialmath.Neg(v.Point()))

		// every point x of the obstacle satisfies x.v >= w.v
		if lb := v.Dot(w) / vNorm; lb > mu {
			mu = lb
		}
		if mu > maxDist {
			return gjkResult[V]{closest: v, distance: mu}
		}

		if vv-v.Dot(w) <= gjkEps*vv {
			break
		}

		simplex = append(simplex, w)
		switch len(simplex) {
		case 2:
			v, simplex = gjkClosestOnSegment(simplex[0], simplex[1])
		case 3:
			v, simplex = gjkClosestOnTriangle(simplex[0], simplex[1], simplex[2])
		case 4:
			v, simplex = gjkClosestOnTetrahedron(simplex)
		}
	}

	if v.Norm2() < gjkZero2 {
		return gjkResult[V]{intersecting: true, closest: v, converged: true}
	}
	return gjkResult[V]{closest: v, distance: v.Norm(), converged: true}
}

// gjkClosestOnSegment returns the closest point on segment [a,b] to the origin,
// along with the reduced simplex.
func gjkClosestOnSegment[V spatialmath.Vector[V]](a, b shape.AnnotatedPoint[V]) (shape.AnnotatedPoint[V], []shape.AnnotatedPoint[V]) {
	ab := b.Sub(a)
	denom := ab.Norm2()
	if denom < 1e-30 {
		return a, []shape.AnnotatedPoint[V]{a}
	}
	t := -a.Dot(ab) / denom
	if t <= 0 {
		return a, []shape.AnnotatedPoint[V]{a}
	}
	if t >= 1 {
		return b, []shape.AnnotatedPoint[V]{b}
	}
	return a.Add(ab.Mul(t)), []shape.AnnotatedPoint[V]{a, b}
}

// gjkClosestOnTriangle returns the closest point on triangle [a,b,c] to the origin,
// along with the reduced simplex. Only dot products are used, so it works in the plane too,
// where an origin inside the triangle yields a (near) zero point.
func gjkClosestOnTriangle[V spatialmath.Vector[V]](a, b, c shape.AnnotatedPoint[V]) (shape.AnnotatedPoint[V], []shape.AnnotatedPoint[V]) {
	ab := b.Sub(a)
	ac := c.Sub(a)
	ao := a.Neg()

	d1 := ab.Dot(ao)
	d2 := ac.Dot(ao)
	if d1 <= 0 && d2 <= 0 {
		return a, []shape.AnnotatedPoint[V]{a}
	}

	bo := b.Neg()
	d3 := ab.Dot(bo)
	d4 := ac.Dot(bo)
	if d3 >= 0 && d4 <= d3 {
		return b, []shape.AnnotatedPoint[V]{b}
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return a.Add(ab.Mul(v)), []shape.AnnotatedPoint[V]{a, b}
	}

	co := c.Neg()
	d5 := ab.Dot(co)
	d6 := ac.Dot(co)
	if d6 >= 0 && d5 <= d6 {
		return c, []shape.AnnotatedPoint[V]{c}
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return a.Add(ac.Mul(w)), []shape.AnnotatedPoint[V]{a, c}
	}

	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return b.Add(c.Sub(b).Mul(w)), []shape.AnnotatedPoint[V]{b, c}
	}

	denom := 1.0 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return a.Add(ab.Mul(v)).Add(ac.Mul(w)), []shape.AnnotatedPoint[V]{a, b, c}
}

// gjkTetrahedronCoords solves origin = a + s*(b-a) + t*(c-a) + u*(d-a) through the Gram system of
// the edge vectors. It returns false when the tetrahedron is flat.
func gjkTetrahedronCoords[V spatialmath.Vector[V]](pts []shape.AnnotatedPoint[V]) ([3]float64, bool) {
	a := pts[0]
	e := [3]shape.AnnotatedPoint[V]{pts[1].Sub(a), pts[2].Sub(a), pts[3].Sub(a)}
	var g [3][3]float64
	var r [3]float64
	scale := 0.0
	for i := range 3 {
		for j := range 3 {
			g[i][j] = e[i].Dot(e[j])
		}
		r[i] = -a.Dot(e[i])
		scale = math.Max(scale, g[i][i])
	}
	det3 := func(m [3][3]float64) float64 {
		return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
			m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
			m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
	}
	det := det3(g)
	if math.Abs(det) <= 1e-12*scale*scale*scale {
		return [3]float64{}, false
	}
	var coords [3]float64
	for k := range 3 {
		mk := g
		for i := range 3 {
			mk[i][k] = r[i]
		}
		coords[k] = det3(mk) / det
	}
	return coords, true
}

// gjkClosestOnTetrahedron returns the closest point on the tetrahedron to the origin. An origin
// inside yields the (near) zero combination of the four points with the full simplex.
func gjkClosestOnTetrahedron[V spatialmath.Vector[V]](pts []shape.AnnotatedPoint[V]) (shape.AnnotatedPoint[V], []shape.AnnotatedPoint[V]) {
	if c, ok := gjkTetrahedronCoords(pts); ok && c[0] >= 0 && c[1] >= 0 && c[2] >= 0 && c[0]+c[1]+c[2] <= 1 {
		a := pts[0]
		v := a.Add(pts[1].Sub(a).Mul(c[0])).Add(pts[2].Sub(a).Mul(c[1])).Add(pts[3].Sub(a).Mul(c[2]))
		return v, pts
	}

	faces := [4][3]int{{0, 1, 2}, {0, 1, 3}, {0, 2, 3}, {1, 2, 3}}
	bestDist := math.Inf(1)
	var bestV shape.AnnotatedPoint[V]
	var bestS []shape.AnnotatedPoint[V]
	for _, f := range faces {
		v, s := gjkClosestOnTriangle(pts[f[0]], pts[f[1]], pts[f[2]])
		if d := v.Norm2(); d < bestDist {
			bestDist = d
			bestV = v
			bestS = s
		}
	}
	return bestV, bestS
}
