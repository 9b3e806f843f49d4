package planner

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/nspcc-dev/ltree/pkg/store"
	"github.com/spf13/cast"
)

// Key is a single sort column: an attribute name and a direction.
type Key struct {
	Attribute  string
	Descending bool
}

// String implements fmt.Stringer. Descending keys are prefixed with '-'.
func (k Key) String() string {
	if k.Descending {
		return "-" + k.Attribute
	}
	return k.Attribute
}

// Ordering is a list of sort keys, the first one has the highest priority.
// Nodes missing an attribute are placed after the others regardless of
// the direction.
type Ordering []Key

// ParseOrdering parses column names, a '-' prefix means descending order.
func ParseOrdering(cols []string) (Ordering, error) {
	res := make(Ordering, 0, len(cols))
	for _, c := range cols {
		k := Key{Attribute: strings.TrimPrefix(c, "-")}
		k.Descending = len(k.Attribute) != len(c)
		if k.Attribute == "" {
			return nil, fmt.Errorf("empty sort key in %q", cols)
		}
		res = append(res, k)
	}
	return res, nil
}

// Strings is the inverse of ParseOrdering.
func (o Ordering) Strings() []string {
	res := make([]string, len(o))
	for i := range o {
		res[i] = o[i].String()
	}
	return res
}

// Sort sorts nodes stably, the current order breaks ties.
func (o Ordering) Sort(nodes []store.Node) {
	for i := len(o) - 1; i >= 0; i-- {
		k := o[i]
		slices.SortStableFunc(nodes, k.compare)
	}
}

func (k Key) compare(a, b store.Node) int {
	va, okA := a.Attribute(k.Attribute)
	vb, okB := b.Attribute(k.Attribute)
	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return 1
	case !okB:
		return -1
	}

	c := compareValues(va, vb)
	if k.Descending {
		return -c
	}
	return c
}

func compareValues(a, b any) int {
	if isNumber(a) && isNumber(b) {
		return cmp.Compare(cast.ToFloat64(a), cast.ToFloat64(b))
	}

	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(x, y)
		}
	case bool:
		if y, ok := b.(bool); ok {
			return cmp.Compare(cast.ToInt(x), cast.ToInt(y))
		}
	}

	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func isNumber(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	default:
		return false
	}
}
