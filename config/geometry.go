package config

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"go.viam.com/collide/shape"
	"go.viam.com/collide/spatialmath"
	"go.viam.com/collide/utils"
)

type ballAttributes struct {
	Radius float64 `json:"radius"`
}

type cuboidAttributes struct {
	HalfExtents []float64 `json:"half_extents"`
}

type capsuleAttributes struct {
	HalfHeight float64 `json:"half_height"`
	Radius     float64 `json:"radius"`
}

type triangleAttributes struct {
	Points [][]float64 `json:"points"`
}

type convexPolytopeAttributes struct {
	Points [][]float64 `json:"points"`
	Margin float64     `json:"margin"`
}

type triMeshAttributes struct {
	Vertices [][]float64 `json:"vertices"`
	Indices  [][3]int    `json:"indices"`
}

// decodeAttributes fills target from the attribute map, matching json tags. Unknown attributes are
// an error.
func decodeAttributes(attrs utils.AttributeMap, target interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:     "json",
		ErrorUnused: true,
		Result:      target,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(map[string]interface{}(attrs))
}

func toVectors[V spatialmath.Vector[V]](coords [][]float64) ([]V, error) {
	out := make([]V, 0, len(coords))
	for i, c := range coords {
		v, err := spatialmath.VectorFromSlice[V](c)
		if err != nil {
			return nil, errors.Wrapf(err, "point %d", i)
		}
		out = append(out, v)
	}
	return out, nil
}

// buildShape creates the shape described by config. path locates it in error messages.
func buildShape[V spatialmath.Vector[V]](path string, config GeometryConfig) (shape.Shape[V], error) {
	wrap := func(err error) error {
		return errors.Wrapf(err, "cannot build %s %q", config.Type, path)
	}

	switch config.Type {
	case BallType:
		var attrs ballAttributes
		if err := decodeAttributes(config.Attributes, &attrs); err != nil {
			return nil, wrap(err)
		}
		ball, err := shape.NewBall[V](attrs.Radius)
		if err != nil {
			return nil, wrap(err)
		}
		return ball, nil
	case CuboidType:
		var attrs cuboidAttributes
		if err := decodeAttributes(config.Attributes, &attrs); err != nil {
			return nil, wrap(err)
		}
		half, err := spatialmath.VectorFromSlice[V](attrs.HalfExtents)
		if err != nil {
			return nil, wrap(err)
		}
		cuboid, err := shape.NewCuboid(half)
		if err != nil {
			return nil, wrap(err)
		}
		return cuboid, nil
	case CapsuleType:
		var attrs capsuleAttributes
		if err := decodeAttributes(config.Attributes, &attrs); err != nil {
			return nil, wrap(err)
		}
		capsule, err := shape.NewCapsule[V](attrs.HalfHeight, attrs.Radius)
		if err != nil {
			return nil, wrap(err)
		}
		return capsule, nil
	case TriangleType:
		var attrs triangleAttributes
		if err := decodeAttributes(config.Attributes, &attrs); err != nil {
			return nil, wrap(err)
		}
		if len(attrs.Points) != 3 {
			return nil, wrap(errors.Errorf("a triangle needs 3 points, got %d", len(attrs.Points)))
		}
		pts, err := toVectors[V](attrs.Points)
		if err != nil {
			return nil, wrap(err)
		}
		return shape.NewTriangle(pts[0], pts[1], pts[2]), nil
	case ConvexPolytopeType:
		var attrs convexPolytopeAttributes
		if err := decodeAttributes(config.Attributes, &attrs); err != nil {
			return nil, wrap(err)
		}
		pts, err := toVectors[V](attrs.Points)
		if err != nil {
			return nil, wrap(err)
		}
		polytope, err := shape.NewConvexPolytope(pts, attrs.Margin)
		if err != nil {
			return nil, wrap(err)
		}
		return polytope, nil
	case TriMeshType:
		var attrs triMeshAttributes
		if err := decodeAttributes(config.Attributes, &attrs); err != nil {
			return nil, wrap(err)
		}
		verts, err := toVectors[V](attrs.Vertices)
		if err != nil {
			return nil, wrap(err)
		}
		mesh, err := shape.NewTriMesh(verts, attrs.Indices)
		if err != nil {
			return nil, wrap(err)
		}
		return mesh, nil
	case CompoundType:
		parts := make([]shape.CompoundPart[V], 0, len(config.Children))
		for i, child := range config.Children {
			obj, err := buildObject[V](fmt.Sprintf("%s.%s", path, lo.CoalesceOrEmpty(child.Name, fmt.Sprint(i))), child)
			if err != nil {
				return nil, err
			}
			parts = append(parts, shape.CompoundPart[V]{M: obj.Pose, Shape: obj.Shape})
		}
		compound, err := shape.NewCompound(parts)
		if err != nil {
			return nil, wrap(err)
		}
		return compound, nil
	default:
		return nil, newUnknownGeometryTypeError(path, string(config.Type))
	}
}
