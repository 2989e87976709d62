// Package config reads scene descriptions: named shapes placed in a 2D or 3D world.
package config

import (
	"fmt"
	"math"

	"github.com/samber/lo"
	"go.uber.org/multierr"

	"go.viam.com/collide/utils"
)

// GeometryType names a kind of shape in a scene file.
type GeometryType string

// The geometry types a scene may use.
const (
	BallType           GeometryType = "ball"
	CuboidType         GeometryType = "cuboid"
	CapsuleType        GeometryType = "capsule"
	TriangleType       GeometryType = "triangle"
	ConvexPolytopeType GeometryType = "convex_polytope"
	TriMeshType        GeometryType = "trimesh"
	CompoundType       GeometryType = "compound"
)

var knownGeometryTypes = []GeometryType{
	BallType, CuboidType, CapsuleType, TriangleType, ConvexPolytopeType, TriMeshType, CompoundType,
}

// Config describes a whole scene.
type Config struct {
	Dimension int            `json:"dimension" yaml:"dimension"`
	Margin    float64        `json:"margin" yaml:"margin"`
	Objects   []ObjectConfig `json:"objects" yaml:"objects"`
}

// ObjectConfig is a named, placed geometry.
type ObjectConfig struct {
	Name     string         `json:"name" yaml:"name"`
	Pose     PoseConfig     `json:"pose" yaml:"pose"`
	Geometry GeometryConfig `json:"geometry" yaml:"geometry"`
}

// PoseConfig places an object. Angles are in degrees. Planar scenes rotate by AngleDeg; spatial
// scenes rotate by AngleDeg around Axis.
type PoseConfig struct {
	Translation []float64 `json:"translation,omitempty" yaml:"translation,omitempty"`
	AngleDeg    float64   `json:"angle_deg,omitempty" yaml:"angle_deg,omitempty"`
	Axis        []float64 `json:"axis,omitempty" yaml:"axis,omitempty"`
}

// GeometryConfig is the shape of an object. Attributes depend on Type; compounds list their parts
// as Children, each placed relative to the compound.
type GeometryConfig struct {
	Type       GeometryType       `json:"type" yaml:"type"`
	Attributes utils.AttributeMap `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Children   []ObjectConfig     `json:"children,omitempty" yaml:"children,omitempty"`
}

// Validate ensures all parts of the config are valid. Every problem found is reported.
func (config *Config) Validate(path string) error {
	var errs error
	if config.Dimension != 2 && config.Dimension != 3 {
		errs = multierr.Append(errs, newFieldInvalidError(path, "dimension", config.Dimension))
	}
	if !(config.Margin >= 0) || math.IsInf(config.Margin, 1) {
		errs = multierr.Append(errs, newFieldInvalidError(path, "margin", config.Margin))
	}
	if len(config.Objects) == 0 {
		errs = multierr.Append(errs, newFieldRequiredError(path, "objects"))
	}
	errs = multierr.Append(errs, validateObjects(fmt.Sprintf("%s.objects", path), config.Objects, config.Dimension))
	return errs
}

func validateObjects(path string, objects []ObjectConfig, dim int) error {
	var errs error
	names := lo.Map(objects, func(o ObjectConfig, _ int) string { return o.Name })
	for _, dup := range lo.FindDuplicates(lo.Compact(names)) {
		errs = multierr.Append(errs, newFieldInvalidError(path, "name", fmt.Sprintf("%q is used more than once", dup)))
	}
	for idx, obj := range objects {
		errs = multierr.Append(errs, obj.Validate(fmt.Sprintf("%s.%d", path, idx), dim))
	}
	return errs
}

// Validate ensures the object is valid in a scene of the given dimension.
func (config *ObjectConfig) Validate(path string, dim int) error {
	var errs error
	if config.Name == "" {
		errs = multierr.Append(errs, newFieldRequiredError(path, "name"))
	}
	errs = multierr.Append(errs, config.Pose.Validate(fmt.Sprintf("%s.pose", path), dim))
	errs = multierr.Append(errs, config.Geometry.Validate(fmt.Sprintf("%s.geometry", path), dim))
	return errs
}

// Validate ensures the pose is valid in a scene of the given dimension.
func (config *PoseConfig) Validate(path string, dim int) error {
	var errs error
	if len(config.Translation) != 0 && len(config.Translation) != dim {
		errs = multierr.Append(errs, newFieldInvalidError(path, "translation", config.Translation))
	}
	if len(config.Axis) != 0 && (dim != 3 || len(config.Axis) != 3) {
		errs = multierr.Append(errs, newFieldInvalidError(path, "axis", config.Axis))
	}
	if dim == 3 && config.AngleDeg != 0 && len(config.Axis) == 0 {
		errs = multierr.Append(errs, newFieldRequiredError(path, "axis"))
	}
	return errs
}

// Validate checks the geometry type and its children. Attributes are checked when the shape is
// built.
func (config *GeometryConfig) Validate(path string, dim int) error {
	if config.Type == "" {
		return newFieldRequiredError(path, "type")
	}
	if !lo.Contains(knownGeometryTypes, config.Type) {
		return newUnknownGeometryTypeError(path, string(config.Type))
	}
	if config.Type != CompoundType {
		if len(config.Children) != 0 {
			return newFieldInvalidError(path, "children", "only compounds have children")
		}
		return nil
	}
	if len(config.Children) == 0 {
		return newFieldRequiredError(path, "children")
	}
	return validateObjects(fmt.Sprintf("%s.children", path), config.Children, dim)
}
