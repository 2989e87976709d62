package shape

import (
	"github.com/pkg/errors"

	"go.viam.com/collide/spatialmath"
)

func newBadGeometryDimensionsError(kind string) error {
	return spatialmath.NewBadGeometryDimensionsError(kind)
}

func newBadIndexError(kind string, idx, n int) error {
	return errors.Errorf("%s index %d out of range [0, %d)", kind, idx, n)
}

// ErrEmptyShape is returned when a shape is built from no points or parts.
var ErrEmptyShape = errors.New("shape requires at least one point or part")
