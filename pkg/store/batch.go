package store

import (
	"github.com/nspcc-dev/ltree/pkg/mpath"
)

// Rewrite is a single branch of the conditional bulk path update: every
// node matching the predicate gets Prefix followed by its own path with
// the first Strip labels removed.
type Rewrite struct {
	Match  Predicate
	Prefix mpath.Path
	Strip  int
}

// Apply returns the rewritten p. It does not check the predicate.
func (r Rewrite) Apply(p mpath.Path) mpath.Path {
	if r.Strip > len(p) {
		return r.Prefix.Clone()
	}
	return mpath.Join(r.Prefix, p[r.Strip:]...)
}

// Batch is an atomic write: rewrites are evaluated against the state
// before the batch, then Put nodes are stored (created or replaced by ID).
// Path uniqueness is checked once, after all the changes are staged.
type Batch struct {
	// Rewrites are tried in order, the first matching one is applied.
	Rewrites []Rewrite
	Put      []Node
}

// Empty reports whether the batch changes nothing.
func (b Batch) Empty() bool {
	return len(b.Rewrites) == 0 && len(b.Put) == 0
}

// Target returns the path p is rewritten to. The second value is false
// if no rewrite matches p.
func (b Batch) Target(p mpath.Path) (mpath.Path, bool) {
	for i := range b.Rewrites {
		if b.Rewrites[i].Match.Match(p) {
			return b.Rewrites[i].Apply(p), true
		}
	}
	return nil, false
}
