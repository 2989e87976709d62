package config

import (
	"github.com/pkg/errors"
)

// ErrUnknownFormat is returned when a scene file extension is neither JSON nor YAML.
var ErrUnknownFormat = errors.New("unknown scene file format")

func newFieldRequiredError(path, field string) error {
	return errors.Errorf("error validating %q: %q is required", path, field)
}

func newFieldInvalidError(path, field string, value interface{}) error {
	return errors.Errorf("error validating %q: invalid %q: %v", path, field, value)
}

func newUnknownGeometryTypeError(path, geomType string) error {
	return errors.Errorf("error validating %q: unknown geometry type %q", path, geomType)
}

func newDimensionMismatchError(want, got int) error {
	return errors.Errorf("scene has dimension %d but %d was requested", got, want)
}
