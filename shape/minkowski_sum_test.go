package shape

import (
	"math"
	"math/rand"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/collide/spatialmath"
)

func randomDirections3(n int) []r3.Vector {
	//nolint:gosec
	rnd := rand.New(rand.NewSource(1))
	dirs := []r3.Vector{{X: 1}, {Y: -1}, {Z: 1}, {X: 1, Y: 1, Z: 1}, {X: -0.3, Y: 0.2, Z: -5}}
	for range n {
		dirs = append(dirs, r3.Vector{X: rnd.NormFloat64(), Y: rnd.NormFloat64(), Z: rnd.NormFloat64()})
	}
	return dirs
}

func randomDirections2(n int) []r2.Point {
	//nolint:gosec
	rnd := rand.New(rand.NewSource(2))
	dirs := []r2.Point{{X: 1}, {Y: 1}, {X: -1, Y: -1}}
	for range n {
		dirs = append(dirs, r2.Point{X: rnd.NormFloat64(), Y: rnd.NormFloat64()})
	}
	return dirs
}

func rotatedPose3(t r3.Vector, angle float64, axis r3.Vector) *spatialmath.Pose3 {
	axis = axis.Normalize()
	s := math.Sin(angle / 2)
	return spatialmath.NewPose3(t, quat.Number{Real: math.Cos(angle / 2), Imag: axis.X * s, Jmag: axis.Y * s, Kmag: axis.Z * s})
}

func TestMinkowskiSum3(t *testing.T) {
	cube, err := NewCuboid(r3.Vector{X: 1, Y: 2, Z: 3})
	test.That(t, err, test.ShouldBeNil)
	ball, err := NewBall[r3.Vector](0.5)
	test.That(t, err, test.ShouldBeNil)
	capsule, err := NewCapsule[r3.Vector](1, 0.25)
	test.That(t, err, test.ShouldBeNil)

	m1 := rotatedPose3(r3.Vector{X: 1, Y: -2, Z: 0.5}, 0.7, r3.Vector{X: 1, Y: 1})
	m2 := rotatedPose3(r3.Vector{X: -3, Z: 2}, -1.2, r3.Vector{Z: 1})
	id := spatialmath.NewIdentity[r3.Vector]()

	pairs := []struct {
		name   string
		g1, g2 SupportMap[r3.Vector]
	}{
		{"cuboid+ball", cube, ball},
		{"ball+capsule", ball, capsule},
		{"capsule+cuboid", capsule, cube},
	}

	for _, pair := range pairs {
		t.Run(pair.name, func(t *testing.T) {
			sum := NewMinkowskiSum[r3.Vector](m1, pair.g1, m2, pair.g2)
			annotated := NewAnnotatedMinkowskiSum[r3.Vector](m1, pair.g1, m2, pair.g2)
			test.That(t, sum.Margin(), test.ShouldEqual, pair.g1.Margin()+pair.g2.Margin())
			test.That(t, annotated.Margin(), test.ShouldEqual, sum.Margin())

			for _, d := range randomDirections3(50) {
				s1 := pair.g1.SupportPoint(m1, d)
				s2 := pair.g2.SupportPoint(m2, d)
				test.That(t, sum.SupportPoint(id, d), test.ShouldResemble, s1.Add(s2))
				test.That(t, sum.SupportPoint(m1, d), test.ShouldResemble, s1.Add(s2))

				c1 := pair.g1.SupportPointWithoutMargin(m1, d)
				c2 := pair.g2.SupportPointWithoutMargin(m2, d)
				test.That(t, sum.SupportPointWithoutMargin(id, d), test.ShouldResemble, c1.Add(c2))

				ap := annotated.SupportPoint(NewInvalidAnnotatedPoint(d))
				test.That(t, ap.Orig1(), test.ShouldResemble, s1)
				test.That(t, ap.Orig2(), test.ShouldResemble, s2)
				test.That(t, ap.Point(), test.ShouldResemble, ap.Orig1().Add(ap.Orig2()))

				apc := annotated.SupportPointWithoutMargin(NewInvalidAnnotatedPoint(d))
				test.That(t, apc.Orig1(), test.ShouldResemble, c1)
				test.That(t, apc.Orig2(), test.ShouldResemble, c2)
				test.That(t, apc.Point(), test.ShouldResemble, apc.Orig1().Add(apc.Orig2()))
			}
		})
	}
}

func TestMinkowskiSum2(t *testing.T) {
	rect, err := NewCuboid(r2.Point{X: 1, Y: 2})
	test.That(t, err, test.ShouldBeNil)
	poly, err := NewConvexPolytope([]r2.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}, 0.1)
	test.That(t, err, test.ShouldBeNil)
	m1 := spatialmath.NewPose2(r2.Point{X: 2, Y: 1}, 0.3)
	m2 := spatialmath.NewPose2(r2.Point{X: -1, Y: 4}, -2)

	sum := NewMinkowskiSum[r2.Point](m1, rect, m2, poly)
	test.That(t, sum.Margin(), test.ShouldEqual, 0.1)
	for _, d := range randomDirections2(50) {
		expected := rect.SupportPoint(m1, d).Add(poly.SupportPoint(m2, d))
		test.That(t, sum.SupportPoint(spatialmath.NewIdentity[r2.Point](), d), test.ShouldResemble, expected)
	}
}

func TestNestedMinkowskiSum(t *testing.T) {
	ball, err := NewBall[r2.Point](1)
	test.That(t, err, test.ShouldBeNil)
	rect, err := NewCuboid(r2.Point{X: 1, Y: 1})
	test.That(t, err, test.ShouldBeNil)
	id := spatialmath.NewIdentity[r2.Point]()
	m := spatialmath.NewTranslation2(5, 0)

	inner := NewMinkowskiSum[r2.Point](m, ball, id, rect)
	outer := NewMinkowskiSum[r2.Point](id, inner, id, ball)
	test.That(t, outer.Margin(), test.ShouldEqual, 2)
	got := outer.SupportPoint(id, r2.Point{X: 1})
	test.That(t, spatialmath.VectorAlmostEqual(got, r2.Point{X: 8, Y: 1}, 1e-12), test.ShouldBeTrue)
}

func TestReflection(t *testing.T) {
	cube, err := NewCuboid(r3.Vector{X: 1, Y: 2, Z: 3})
	test.That(t, err, test.ShouldBeNil)
	capsule, err := NewCapsule[r3.Vector](2, 0.5)
	test.That(t, err, test.ShouldBeNil)
	m := rotatedPose3(r3.Vector{X: 4, Y: 5, Z: 6}, 1.1, r3.Vector{X: 1, Z: -1})

	for _, g := range []SupportMap[r3.Vector]{cube, capsule} {
		reflected := NewReflection(g)
		twice := NewReflection[r3.Vector](reflected)
		test.That(t, reflected.Margin(), test.ShouldEqual, g.Margin())
		test.That(t, twice.Shape(), test.ShouldResemble, SupportMap[r3.Vector](reflected))
		for _, d := range randomDirections3(50) {
			test.That(t, spatialmath.VectorAlmostEqual(twice.SupportPoint(m, d), g.SupportPoint(m, d), 1e-12), test.ShouldBeTrue)
			test.That(t,
				spatialmath.VectorAlmostEqual(reflected.SupportPoint(m, d), g.SupportPoint(m, d.Mul(-1)).Mul(-1), 1e-12),
				test.ShouldBeTrue)
			test.That(t,
				spatialmath.VectorAlmostEqual(
					reflected.SupportPointWithoutMargin(m, d),
					g.SupportPointWithoutMargin(m, d.Mul(-1)).Mul(-1), 1e-12),
				test.ShouldBeTrue)
		}
	}
}

func TestCSOSupportPoint(t *testing.T) {
	a, err := NewBall[r2.Point](1)
	test.That(t, err, test.ShouldBeNil)
	b, err := NewCuboid(r2.Point{X: 1, Y: 1})
	test.That(t, err, test.ShouldBeNil)
	ma := spatialmath.NewTranslation2(0, 0)
	mb := spatialmath.NewTranslation2(5, 0)

	dir := r2.Point{X: -1}
	ap := CSOSupportPoint[r2.Point](ma, a, mb, b, dir)
	test.That(t, spatialmath.VectorAlmostEqual(ap.Orig1(), r2.Point{X: -1}, 1e-12), test.ShouldBeTrue)
	// -Orig2 is the point of b farthest along -dir
	test.That(t, ap.Orig2().Mul(-1).X, test.ShouldEqual, 6.)
	test.That(t, ap.Point(), test.ShouldResemble, ap.Orig1().Add(ap.Orig2()))

	core := CSOSupportPointWithoutMargin[r2.Point](ma, a, mb, b, dir)
	test.That(t, core.Orig1(), test.ShouldResemble, r2.Point{})
	test.That(t, core.Point(), test.ShouldResemble, core.Orig1().Add(core.Orig2()))

	for _, d := range randomDirections2(20) {
		p := CSOSupportPoint[r2.Point](ma, a, mb, b, d)
		expected := a.SupportPoint(ma, d).Sub(b.SupportPoint(mb, d.Mul(-1)))
		test.That(t, spatialmath.VectorAlmostEqual(p.Point(), expected, 1e-12), test.ShouldBeTrue)
	}
}

func TestAnnotatedPoint(t *testing.T) {
	p := NewAnnotatedPoint(r2.Point{X: 1, Y: 2}, r2.Point{X: 3, Y: 4}, r2.Point{X: 4, Y: 6})
	q := NewAnnotatedPoint(r2.Point{X: 1}, r2.Point{Y: 1}, r2.Point{X: 1, Y: 1})

	t.Run("arithmetic is elementwise", func(t *testing.T) {
		sum := p.Add(q)
		test.That(t, sum.Orig1(), test.ShouldResemble, r2.Point{X: 2, Y: 2})
		test.That(t, sum.Orig2(), test.ShouldResemble, r2.Point{X: 3, Y: 5})
		test.That(t, sum.Point(), test.ShouldResemble, r2.Point{X: 5, Y: 7})

		diff := p.Sub(q)
		test.That(t, diff.Point(), test.ShouldResemble, diff.Orig1().Add(diff.Orig2()))

		neg := p.Neg()
		test.That(t, neg.Orig1(), test.ShouldResemble, r2.Point{X: -1, Y: -2})
		test.That(t, neg.Point(), test.ShouldResemble, r2.Point{X: -4, Y: -6})

		scaled := p.Mul(2).Div(4)
		test.That(t, scaled.Orig2(), test.ShouldResemble, r2.Point{X: 1.5, Y: 2})
		test.That(t, scaled.Point(), test.ShouldResemble, r2.Point{X: 2, Y: 3})
	})

	t.Run("metric uses the sum point only", func(t *testing.T) {
		test.That(t, p.Dot(q), test.ShouldEqual, 10.)
		test.That(t, p.Norm2(), test.ShouldEqual, 52.)
		test.That(t, q.Norm(), test.ShouldAlmostEqual, math.Sqrt2)
		other := NewAnnotatedPoint(r2.Point{}, r2.Point{}, r2.Point{X: 4, Y: 6})
		test.That(t, p.Equal(other), test.ShouldBeTrue)
		test.That(t, p.AlmostEqual(NewInvalidAnnotatedPoint(r2.Point{X: 4, Y: 6 + 1e-9}), 1e-6), test.ShouldBeTrue)
		test.That(t, NewInvalidAnnotatedPoint(r2.Point{}).IsZero(), test.ShouldBeTrue)
		test.That(t, NewAnnotatedPoint(r2.Point{X: 1}, r2.Point{X: -1}, r2.Point{}).IsZero(), test.ShouldBeTrue)
	})

	t.Run("normalize leaves origins untouched", func(t *testing.T) {
		n := p.Normalize()
		test.That(t, n.Norm(), test.ShouldAlmostEqual, 1)
		test.That(t, n.Orig1(), test.ShouldResemble, p.Orig1())
		test.That(t, n.Orig2(), test.ShouldResemble, p.Orig2())
	})

	t.Run("invalid point has zero origins", func(t *testing.T) {
		inv := NewInvalidAnnotatedPoint(r3.Vector{X: 1, Y: 2, Z: 3})
		test.That(t, inv.Orig1(), test.ShouldResemble, r3.Vector{})
		test.That(t, inv.Orig2(), test.ShouldResemble, r3.Vector{})
		test.That(t, inv.Point(), test.ShouldResemble, r3.Vector{X: 1, Y: 2, Z: 3})
	})
}
