package config

import (
	"fmt"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"go.viam.com/collide/query"
	"go.viam.com/collide/shape"
	"go.viam.com/collide/spatialmath"
	"go.viam.com/collide/utils"
)

// Object is a named shape placed in the world.
type Object[V spatialmath.Vector[V]] struct {
	Name  string
	Pose  spatialmath.Isometry[V]
	Shape shape.Shape[V]
}

// Scene is a built scene.
type Scene[V spatialmath.Vector[V]] struct {
	Margin  float64
	Objects []Object[V]
}

// Build creates the shapes of a validated config. V must match the config dimension.
func Build[V spatialmath.Vector[V]](cfg *Config) (*Scene[V], error) {
	if cfg.Dimension != spatialmath.Dim[V]() {
		return nil, newDimensionMismatchError(spatialmath.Dim[V](), cfg.Dimension)
	}
	objects := make([]Object[V], 0, len(cfg.Objects))
	for _, oc := range cfg.Objects {
		obj, err := buildObject[V](oc.Name, oc)
		if err != nil {
			return nil, err
		}
		objects = append(objects, obj)
	}
	return &Scene[V]{Margin: cfg.Margin, Objects: objects}, nil
}

func buildObject[V spatialmath.Vector[V]](path string, oc ObjectConfig) (Object[V], error) {
	pose, err := buildPose[V](oc.Pose)
	if err != nil {
		return Object[V]{}, errors.Wrapf(err, "cannot place %q", path)
	}
	g, err := buildShape[V](path, oc.Geometry)
	if err != nil {
		return Object[V]{}, err
	}
	return Object[V]{Name: oc.Name, Pose: pose, Shape: g}, nil
}

func buildPose[V spatialmath.Vector[V]](pc PoseConfig) (spatialmath.Isometry[V], error) {
	translation := spatialmath.Zero[V]()
	if len(pc.Translation) != 0 {
		var err error
		if translation, err = spatialmath.VectorFromSlice[V](pc.Translation); err != nil {
			return nil, err
		}
	}

	var pose interface{}
	switch t := any(translation).(type) {
	case r2.Point:
		pose = spatialmath.NewPose2(t, utils.DegToRad(pc.AngleDeg))
	case r3.Vector:
		if len(pc.Axis) == 0 {
			pose = spatialmath.NewTranslation3(t.X, t.Y, t.Z)
			break
		}
		if len(pc.Axis) != 3 {
			return nil, errors.Errorf("axis needs 3 coordinates, got %d", len(pc.Axis))
		}
		p, err := spatialmath.NewPose3FromAxisAngle(t, &spatialmath.R4AA{
			Theta: utils.DegToRad(pc.AngleDeg),
			RX:    pc.Axis[0],
			RY:    pc.Axis[1],
			RZ:    pc.Axis[2],
		})
		if err != nil {
			return nil, err
		}
		pose = p
	}
	return utils.AssertType[spatialmath.Isometry[V]](pose)
}

// Object returns the object with the given name.
func (s *Scene[V]) Object(name string) (Object[V], bool) {
	return lo.Find(s.Objects, func(o Object[V]) bool { return o.Name == name })
}

// Names returns the object names in scene order.
func (s *Scene[V]) Names() []string {
	return lo.Map(s.Objects, func(o Object[V], _ int) string { return o.Name })
}

// Pairs returns every unordered pair of distinct objects, in scene order.
func (s *Scene[V]) Pairs() []query.Pair[V] {
	var pairs []query.Pair[V]
	for i, a := range s.Objects {
		for _, b := range s.Objects[i+1:] {
			pairs = append(pairs, query.Pair[V]{
				Name: fmt.Sprintf("%s/%s", a.Name, b.Name),
				M1:   a.Pose,
				G1:   a.Shape,
				M2:   b.Pose,
				G2:   b.Shape,
			})
		}
	}
	return pairs
}
