package store

import (
	"bytes"
	"strings"

	"github.com/nspcc-dev/ltree/pkg/mpath"
)

// Query selects nodes matching all the filters. Results are ordered by
// path, ascending unless Descending is set. Zero Limit means no limit.
type Query struct {
	Filters    []Predicate
	Descending bool
	Limit      int
}

// Where returns ascending unlimited Query with the given filters.
func Where(filters ...Predicate) Query {
	return Query{Filters: filters}
}

// Desc returns a copy of q ordered by path descending.
func (q Query) Desc() Query {
	q.Descending = true
	return q
}

// First returns a copy of q limited to a single node.
func (q Query) First() Query {
	q.Limit = 1
	return q
}

// Match reports whether p satisfies every filter of q.
func (q Query) Match(p mpath.Path) bool {
	for i := range q.Filters {
		if !q.Filters[i].Match(p) {
			return false
		}
	}
	return true
}

// Scope returns the narrowest subtree containing every matching path. The
// second value is false if no path can match the query.
func (q Query) Scope() (mpath.Path, bool) {
	res := mpath.Path{}
	for i := range q.Filters {
		s := q.Filters[i].scope()
		switch {
		case s.HasPrefix(res):
			res = s
		case res.HasPrefix(s):
		default:
			return nil, false
		}
	}
	return res, true
}

// ScopeKey returns the index key range [lo, hi) containing all paths of
// the scope. An empty scope yields the whole key space with nil bounds.
func ScopeKey(scope mpath.Path) (lo, hi []byte) {
	if len(scope) == 0 {
		return nil, nil
	}
	s := scope.String()
	// '/' directly follows the separator, so every "s.*" key is below "s/"
	return []byte(s), []byte(s + "/")
}

// InScope reports whether index key k belongs to the scope subtree.
func InScope(k []byte, scope mpath.Path) bool {
	if len(scope) == 0 {
		return true
	}
	s := scope.String()
	if !bytes.HasPrefix(k, []byte(s)) {
		return false
	}
	return len(k) == len(s) || k[len(s)] == mpath.Separator[0]
}

// PathKey returns the index key of p.
func PathKey(p mpath.Path) []byte {
	return []byte(p.String())
}

// KeyPath is the inverse of PathKey.
func KeyPath(k []byte) mpath.Path {
	if len(k) == 0 {
		return mpath.Path{}
	}
	return strings.Split(string(k), mpath.Separator)
}
