// Package position turns relative position requests into absolute slots of
// the tree and back.
package position

import (
	"fmt"

	"github.com/nspcc-dev/ltree/pkg/mpath"
)

// Target is a resolved position: a parent and the desired sibling index
// under it. Append targets leave the index to the planner.
type Target struct {
	Parent mpath.Path
	Index  int
	Append bool
}

// AppendTo returns Target at the end of the parent's children.
func AppendTo(parent mpath.Path) Target {
	return Target{Parent: parent, Append: true}
}

// At returns Target at the given index under the parent.
func At(parent mpath.Path, i int) Target {
	return Target{Parent: parent, Index: i}
}

// String implements fmt.Stringer.
func (t Target) String() string {
	if t.Append {
		return fmt.Sprintf("%q[$]", t.Parent.String())
	}
	return fmt.Sprintf("%q[%d]", t.Parent.String(), t.Index)
}

// Resolver resolves position requests.
type Resolver interface {
	Resolve(Request) (Target, error)
}

// Explicit resolves requests to the exact slot they name.
type Explicit struct {
	f *mpath.Factory
}

// NewExplicit returns Explicit resolver decoding labels with f.
func NewExplicit(f *mpath.Factory) *Explicit {
	return &Explicit{f: f}
}

// Resolve implements Resolver.
func (x *Explicit) Resolve(r Request) (Target, error) {
	if err := r.Validate(); err != nil {
		return Target{}, err
	}

	switch r.kind {
	case KindRoot:
		return AppendTo(mpath.Path{}), nil
	case KindChildOf, KindLastChildOf:
		return AppendTo(r.ref.Clone()), nil
	case KindFirstChildOf:
		return At(r.ref.Clone(), 0), nil
	}

	parent, i, err := x.f.Split(r.ref)
	if err != nil {
		return Target{}, fmt.Errorf("resolve %s: %w", r, err)
	}
	if r.kind == KindRightOf {
		i++
	}
	return At(parent, i), nil
}

// Sorted resolves requests to the parent only, the sibling order is
// defined by the sort keys of the nodes.
type Sorted struct{}

// Resolve implements Resolver.
func (Sorted) Resolve(r Request) (Target, error) {
	if err := r.Validate(); err != nil {
		return Target{}, err
	}

	switch r.kind {
	case KindRoot:
		return AppendTo(mpath.Path{}), nil
	case KindLeftOf, KindRightOf:
		return AppendTo(r.ref.Parent()), nil
	default:
		return AppendTo(r.ref.Clone()), nil
	}
}
