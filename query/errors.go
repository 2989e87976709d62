package query

import (
	"math"

	"github.com/pkg/errors"
)

// ErrNegativeMargin is returned when a query is given a margin below zero.
var ErrNegativeMargin = errors.New("margin must not be negative")

// NewUnsupportedShapePairError is returned when no algorithm handles the two shapes.
func NewUnsupportedShapePairError(g1, g2 interface{}) error {
	return errors.Errorf("unsupported shape pair: %T and %T", g1, g2)
}

// NewUnsupportedShapeError is returned when a single shape query does not handle the shape.
func NewUnsupportedShapeError(g interface{}) error {
	return errors.Errorf("unsupported shape: %T", g)
}

func checkMargin(margin float64) error {
	if margin < 0 || math.IsNaN(margin) {
		return errors.Wrapf(ErrNegativeMargin, "got %v", margin)
	}
	if math.IsInf(margin, 1) {
		return errors.New("margin must be finite")
	}
	return nil
}

func checkMaxDist(maxDist float64) error {
	if maxDist < 0 || math.IsNaN(maxDist) {
		return errors.Errorf("maximum distance must not be negative, got %v", maxDist)
	}
	return nil
}
