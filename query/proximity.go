package query

import (
	"strings"

	"github.com/pkg/errors"
)

// Proximity classifies how close two shapes are relative to a margin.
type Proximity int

const (
	// Disjoint shapes are farther apart than the margin.
	Disjoint Proximity = iota
	// WithinMargin shapes do not touch but are no farther apart than the margin.
	WithinMargin
	// Intersecting shapes touch or overlap.
	Intersecting
)

func (p Proximity) String() string {
	switch p {
	case Disjoint:
		return "disjoint"
	case WithinMargin:
		return "within_margin"
	case Intersecting:
		return "intersecting"
	}
	return "unknown"
}

// MarshalText writes the classification name.
func (p Proximity) MarshalText() ([]byte, error) {
	switch p {
	case Disjoint, WithinMargin, Intersecting:
		return []byte(p.String()), nil
	}
	return nil, errors.Errorf("invalid proximity %d", int(p))
}

// UnmarshalText reads a classification name, case-insensitively.
func (p *Proximity) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "disjoint":
		*p = Disjoint
	case "within_margin", "withinmargin":
		*p = WithinMargin
	case "intersecting":
		*p = Intersecting
	default:
		return errors.Errorf("unknown proximity: %q", string(text))
	}
	return nil
}

// classify turns a signed distance between two shapes into a classification.
func classify(distance, margin float64) Proximity {
	switch {
	case distance <= 0:
		return Intersecting
	case distance <= margin:
		return WithinMargin
	default:
		return Disjoint
	}
}
