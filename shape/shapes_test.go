package shape

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/collide/spatialmath"
)

func TestBadDimensions(t *testing.T) {
	_, err := NewBall[r3.Vector](-1)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = NewBall[r2.Point](math.NaN())
	test.That(t, err, test.ShouldNotBeNil)
	_, err = NewCuboid(r2.Point{X: -1, Y: 1})
	test.That(t, err, test.ShouldNotBeNil)
	_, err = NewCuboid(r3.Vector{X: 1, Y: math.NaN(), Z: 1})
	test.That(t, err, test.ShouldNotBeNil)
	_, err = NewCapsule[r3.Vector](-1, 1)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = NewCapsule[r3.Vector](1, -1)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = NewConvexPolytope[r2.Point](nil, 0)
	test.That(t, err, test.ShouldBeError, ErrEmptyShape)
	_, err = NewConvexPolytope([]r2.Point{{}}, -0.1)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestBall(t *testing.T) {
	ball, err := NewBall[r3.Vector](1)
	test.That(t, err, test.ShouldBeNil)
	m := spatialmath.NewTranslation3(3, 0, 0)

	test.That(t, ball.Margin(), test.ShouldEqual, 1.)
	test.That(t, ball.SupportPoint(m, r3.Vector{Y: 2}), test.ShouldResemble, r3.Vector{X: 3, Y: 1})
	test.That(t, ball.SupportPointWithoutMargin(m, r3.Vector{Y: 2}), test.ShouldResemble, r3.Vector{X: 3})

	box := ball.AABB(m)
	test.That(t, box.Mins(), test.ShouldResemble, r3.Vector{X: 2, Y: -1, Z: -1})
	test.That(t, box.Maxs(), test.ShouldResemble, r3.Vector{X: 4, Y: 1, Z: 1})

	t.Run("ray from outside", func(t *testing.T) {
		toi, ok := ball.TOIWithRay(m, spatialmath.NewRay(r3.Vector{}, r3.Vector{X: 1}), true)
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, toi, test.ShouldAlmostEqual, 2)
	})

	t.Run("ray from inside", func(t *testing.T) {
		ray := spatialmath.NewRay(r3.Vector{X: 3}, r3.Vector{X: 1})
		toi, ok := ball.TOIWithRay(m, ray, true)
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, toi, test.ShouldEqual, 0)
		toi, ok = ball.TOIWithRay(m, ray, false)
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, toi, test.ShouldAlmostEqual, 1)
	})

	t.Run("ray misses", func(t *testing.T) {
		_, ok := ball.TOIWithRay(m, spatialmath.NewRay(r3.Vector{}, r3.Vector{Y: 1}), true)
		test.That(t, ok, test.ShouldBeFalse)
		_, ok = ball.TOIWithRay(m, spatialmath.NewRay(r3.Vector{}, r3.Vector{X: -1}), false)
		test.That(t, ok, test.ShouldBeFalse)
	})
}

func TestCuboid(t *testing.T) {
	box, err := NewCuboid(r2.Point{X: 1, Y: 2})
	test.That(t, err, test.ShouldBeNil)
	id := spatialmath.NewIdentity[r2.Point]()

	t.Run("ray starting inside", func(t *testing.T) {
		ray := spatialmath.NewRay(r2.Point{}, r2.Point{Y: 1})
		toi, ok := box.TOIWithRay(id, ray, true)
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, toi, test.ShouldEqual, 0.)
		toi, ok = box.TOIWithRay(id, ray, false)
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, toi, test.ShouldEqual, 2.)
	})

	t.Run("ray pointing away", func(t *testing.T) {
		ray := spatialmath.NewRay(r2.Point{X: 2, Y: 2}, r2.Point{X: 1, Y: 1})
		_, ok := box.TOIWithRay(id, ray, true)
		test.That(t, ok, test.ShouldBeFalse)
		_, ok = box.TOIWithRay(id, ray, false)
		test.That(t, ok, test.ShouldBeFalse)
	})

	t.Run("rotated", func(t *testing.T) {
		m := spatialmath.NewPose2(r2.Point{X: 10}, math.Pi/2)
		dir := r2.Point{X: 1}
		test.That(t, box.SupportPoint(m, dir).Dot(dir), test.ShouldAlmostEqual, 12)
		aabb := box.AABB(m)
		test.That(t, spatialmath.VectorAlmostEqual(aabb.HalfExtents(), r2.Point{X: 2, Y: 1}, 1e-9), test.ShouldBeTrue)
		test.That(t, spatialmath.VectorAlmostEqual(aabb.Center(), r2.Point{X: 10}, 1e-9), test.ShouldBeTrue)

		// a ray along +Y now crosses the short side
		toi, ok := box.TOIWithRay(m, spatialmath.NewRay(r2.Point{X: 10, Y: -5}, r2.Point{Y: 1}), true)
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, toi, test.ShouldAlmostEqual, 4)
	})

	t.Run("vertices", func(t *testing.T) {
		test.That(t, len(box.Vertices(id)), test.ShouldEqual, 4)
		cube, err := NewCuboid(r3.Vector{X: 1, Y: 1, Z: 1})
		test.That(t, err, test.ShouldBeNil)
		verts := cube.Vertices(spatialmath.NewIdentity[r3.Vector]())
		test.That(t, len(verts), test.ShouldEqual, 8)
		for _, v := range verts {
			test.That(t, v.Norm(), test.ShouldAlmostEqual, math.Sqrt(3))
		}
	})
}

func TestCapsule(t *testing.T) {
	capsule, err := NewCapsule[r3.Vector](1, 0.5)
	test.That(t, err, test.ShouldBeNil)
	id := spatialmath.NewIdentity[r3.Vector]()

	test.That(t, capsule.Length(), test.ShouldEqual, 3.)
	test.That(t, capsule.SupportPoint(id, r3.Vector{Y: 1}), test.ShouldResemble, r3.Vector{Y: 1.5})
	test.That(t, capsule.SupportPointWithoutMargin(id, r3.Vector{Y: -1}), test.ShouldResemble, r3.Vector{Y: -1})
	test.That(t, capsule.SupportPoint(id, r3.Vector{X: 2}), test.ShouldResemble, r3.Vector{X: 0.5, Y: 1})

	box := capsule.AABB(id)
	test.That(t, box.Mins(), test.ShouldResemble, r3.Vector{X: -0.5, Y: -1.5, Z: -0.5})
	test.That(t, box.Maxs(), test.ShouldResemble, r3.Vector{X: 0.5, Y: 1.5, Z: 0.5})

	flat, err := NewCapsule[r2.Point](2, 1)
	test.That(t, err, test.ShouldBeNil)
	lying := spatialmath.NewPose2(r2.Point{}, math.Pi/2)
	test.That(t, flat.AABB(lying).HalfExtents().X, test.ShouldAlmostEqual, 3)
	test.That(t, flat.AABB(lying).HalfExtents().Y, test.ShouldAlmostEqual, 1)
}

func TestTriangle(t *testing.T) {
	tri := NewTriangle(r2.Point{}, r2.Point{X: 2}, r2.Point{Y: 1})
	m := spatialmath.NewTranslation2(1, 1)

	test.That(t, tri.SupportPoint(m, r2.Point{X: 1, Y: 1}), test.ShouldResemble, r2.Point{X: 3, Y: 1})
	test.That(t, tri.SupportPoint(m, r2.Point{X: -1, Y: 1}), test.ShouldResemble, r2.Point{X: 1, Y: 2})
	test.That(t, spatialmath.VectorAlmostEqual(tri.Centroid(), r2.Point{X: 2. / 3, Y: 1. / 3}, 1e-12), test.ShouldBeTrue)

	box := tri.AABB(m)
	test.That(t, box.Mins(), test.ShouldResemble, r2.Point{X: 1, Y: 1})
	test.That(t, box.Maxs(), test.ShouldResemble, r2.Point{X: 3, Y: 2})
}

func TestConvexPolytope(t *testing.T) {
	square := []r2.Point{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}}
	poly, err := NewConvexPolytope(square, 0.5)
	test.That(t, err, test.ShouldBeNil)
	id := spatialmath.NewIdentity[r2.Point]()

	test.That(t, poly.SupportPointWithoutMargin(id, r2.Point{X: 1, Y: 1}), test.ShouldResemble, r2.Point{X: 1, Y: 1})
	test.That(t, poly.SupportPoint(id, r2.Point{X: -3}), test.ShouldResemble, r2.Point{X: -1.5, Y: -1})

	box := poly.AABB(id)
	test.That(t, box.Mins(), test.ShouldResemble, r2.Point{X: -1.5, Y: -1.5})
	test.That(t, box.Maxs(), test.ShouldResemble, r2.Point{X: 1.5, Y: 1.5})

	// the polytope keeps its own copy of the points
	square[0] = r2.Point{X: -100}
	test.That(t, poly.Points()[0], test.ShouldResemble, r2.Point{X: -1, Y: -1})
}

func TestCompound(t *testing.T) {
	ball, err := NewBall[r2.Point](1)
	test.That(t, err, test.ShouldBeNil)
	box, err := NewCuboid(r2.Point{X: 1, Y: 1})
	test.That(t, err, test.ShouldBeNil)

	parts := []CompoundPart[r2.Point]{
		{M: spatialmath.NewTranslation2(5, 0), Shape: ball},
		{Shape: box},
	}
	compound, err := NewCompound(parts)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, compound.NumParts(), test.ShouldEqual, 2)
	test.That(t, compound.BVT().Len(), test.ShouldEqual, 2)
	test.That(t, compound.Parts()[1].M.IsIdentity(), test.ShouldBeTrue)
	test.That(t, parts[1].M, test.ShouldBeNil)

	var placed spatialmath.Isometry[r2.Point]
	var part Shape[r2.Point]
	compound.MapTransformedPartAt(0, spatialmath.NewTranslation2(1, 0), func(m spatialmath.Isometry[r2.Point], g Shape[r2.Point]) {
		placed, part = m, g
	})
	test.That(t, part, test.ShouldEqual, Shape[r2.Point](ball))
	test.That(t, placed.Translation(), test.ShouldResemble, r2.Point{X: 6})

	bounds := compound.AABB(spatialmath.NewIdentity[r2.Point]())
	test.That(t, bounds.Mins(), test.ShouldResemble, r2.Point{X: -1, Y: -1})
	test.That(t, bounds.Maxs(), test.ShouldResemble, r2.Point{X: 6, Y: 1})

	_, err = NewCompound[r2.Point](nil)
	test.That(t, err, test.ShouldBeError, ErrEmptyShape)
}

func TestTriMesh(t *testing.T) {
	vertices := []r3.Vector{{}, {X: 1}, {X: 1, Y: 1}, {Y: 1}}
	mesh, err := NewTriMesh(vertices, [][3]int{{0, 1, 2}, {0, 2, 3}})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, mesh.NumParts(), test.ShouldEqual, 2)
	test.That(t, mesh.BVT().Len(), test.ShouldEqual, 2)
	test.That(t, mesh.Triangle(1).Points(), test.ShouldResemble, [3]r3.Vector{{}, {X: 1, Y: 1}, {Y: 1}})

	m := spatialmath.NewTranslation3(0, 0, 2)
	box := mesh.AABB(m)
	test.That(t, box.Mins(), test.ShouldResemble, r3.Vector{Z: 2})
	test.That(t, box.Maxs(), test.ShouldResemble, r3.Vector{X: 1, Y: 1, Z: 2})

	var got Shape[r3.Vector]
	mesh.MapTransformedPartAt(0, m, func(_ spatialmath.Isometry[r3.Vector], g Shape[r3.Vector]) { got = g })
	test.That(t, got, test.ShouldEqual, Shape[r3.Vector](mesh.Triangle(0)))

	_, err = NewTriMesh(vertices, [][3]int{{0, 1, 4}})
	test.That(t, err, test.ShouldNotBeNil)
	_, err = NewTriMesh(vertices, nil)
	test.That(t, err, test.ShouldBeError, ErrEmptyShape)
}
