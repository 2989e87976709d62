package spatialmath

import (
	"github.com/pkg/errors"
)

// ErrNonInvertible is returned when a placement without an inverse is used where one is required.
var ErrNonInvertible = errors.New("placement is not invertible")

// newBadGeometryDimensionsError returns an error indicating that a geometry was created with invalid dimensions.
func newBadGeometryDimensionsError(kind string) error {
	return errors.Errorf("invalid dimension(s) for type %s", kind)
}

// NewBadGeometryDimensionsError is the exported form of newBadGeometryDimensionsError, for shape constructors.
func NewBadGeometryDimensionsError(kind string) error {
	return newBadGeometryDimensionsError(kind)
}

func newInvalidAABBError[V Vector[V]](mins, maxs V) error {
	return errors.Errorf("aabb mins %v must not exceed maxs %v", mins, maxs)
}
