package utils

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

// AttributeMap is a free-form set of named attributes, as read from a configuration file.
type AttributeMap map[string]interface{}

// Has returns whether the given name is present.
func (am AttributeMap) Has(name string) bool {
	_, has := am[name]
	return has
}

// Keys returns the attribute names in sorted order.
func (am AttributeMap) Keys() []string {
	keys := make([]string, 0, len(am))
	for k := range am {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Float64 returns the named attribute as a float64, or def if it is absent.
func (am AttributeMap) Float64(name string, def float64) (float64, error) {
	x, has := am[name]
	if !has {
		return def, nil
	}
	v, err := cast.ToFloat64E(x)
	if err != nil {
		return 0, errors.Wrapf(err, "wanted a number for (%s)", name)
	}
	return v, nil
}
