package position

import (
	"fmt"

	"github.com/nspcc-dev/ltree/pkg/mpath"
)

// Kind is a kind of relative position.
type Kind uint8

const (
	_ Kind = iota
	// KindRoot places the node at the top level.
	KindRoot
	// KindChildOf places the node under the reference, after its children.
	KindChildOf
	// KindLastChildOf is an alias of KindChildOf.
	KindLastChildOf
	// KindFirstChildOf places the node under the reference, before its
	// children.
	KindFirstChildOf
	// KindLeftOf places the node right before the reference.
	KindLeftOf
	// KindRightOf places the node right after the reference.
	KindRightOf
)

var kindNames = [...]string{
	KindRoot:         "root",
	KindChildOf:      "child-of",
	KindLastChildOf:  "last-child-of",
	KindFirstChildOf: "first-child-of",
	KindLeftOf:       "left-of",
	KindRightOf:      "right-of",
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if k == 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	for k := KindRoot; int(k) < len(kindNames); k++ {
		if kindNames[k] == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown position kind %q", ErrInvalidRequest, s)
}

// Referent is anything having a place in the tree. Both mpath.Path and
// stored nodes are referents.
type Referent interface {
	TreePath() mpath.Path
}

// Request is a relative position. The zero Request is invalid.
type Request struct {
	kind Kind
	ref  mpath.Path
}

// Root returns Request to place the node at the top level.
func Root() Request { return Request{kind: KindRoot} }

// ChildOf returns Request to append the node to the children of r.
func ChildOf(r Referent) Request { return newRequest(KindChildOf, r) }

// LastChildOf is the same as ChildOf.
func LastChildOf(r Referent) Request { return newRequest(KindLastChildOf, r) }

// FirstChildOf returns Request to prepend the node to the children of r.
func FirstChildOf(r Referent) Request { return newRequest(KindFirstChildOf, r) }

// LeftOf returns Request to place the node right before r.
func LeftOf(r Referent) Request { return newRequest(KindLeftOf, r) }

// RightOf returns Request to place the node right after r.
func RightOf(r Referent) Request { return newRequest(KindRightOf, r) }

// New returns Request of the given kind. The referent is ignored for
// KindRoot.
func New(k Kind, r Referent) (Request, error) {
	switch k {
	case KindRoot:
		return Root(), nil
	case KindChildOf, KindLastChildOf, KindFirstChildOf, KindLeftOf, KindRightOf:
		if r == nil {
			return Request{}, fmt.Errorf("%w: %s without reference", ErrInvalidRequest, k)
		}
		return newRequest(k, r), nil
	default:
		return Request{}, fmt.Errorf("%w: %s", ErrInvalidRequest, k)
	}
}

func newRequest(k Kind, r Referent) Request {
	return Request{kind: k, ref: r.TreePath().Clone()}
}

// Kind returns the kind of the request.
func (r Request) Kind() Kind { return r.kind }

// Reference returns path of the referent, empty for KindRoot.
func (r Request) Reference() mpath.Path { return r.ref }

// IsZero reports whether r is the zero Request.
func (r Request) IsZero() bool { return r.kind == 0 }

// String implements fmt.Stringer.
func (r Request) String() string {
	if r.kind == KindRoot {
		return r.kind.String()
	}
	return fmt.Sprintf("%s %s", r.kind, r.ref)
}

// Validate checks the request is complete.
func (r Request) Validate() error {
	switch r.kind {
	case KindRoot:
		return nil
	case KindChildOf, KindLastChildOf, KindFirstChildOf, KindLeftOf, KindRightOf:
		if len(r.ref) == 0 {
			return fmt.Errorf("%w: %s with empty reference", ErrInvalidRequest, r.kind)
		}
		return nil
	default:
		return fmt.Errorf("%w: no position kind", ErrInvalidRequest)
	}
}

// Spec is a position given as a set of optional fields, as filled by
// forms and command line flags. Exactly one of them must be set.
type Spec struct {
	Root         bool
	ChildOf      Referent
	LastChildOf  Referent
	FirstChildOf Referent
	LeftOf       Referent
	RightOf      Referent
}

// Request converts s to Request.
func (s Spec) Request() (Request, error) {
	var (
		res Request
		set []Kind
	)

	if s.Root {
		res = Root()
		set = append(set, KindRoot)
	}
	for _, f := range []struct {
		k Kind
		r Referent
	}{
		{KindChildOf, s.ChildOf},
		{KindLastChildOf, s.LastChildOf},
		{KindFirstChildOf, s.FirstChildOf},
		{KindLeftOf, s.LeftOf},
		{KindRightOf, s.RightOf},
	} {
		if f.r != nil {
			res = newRequest(f.k, f.r)
			set = append(set, f.k)
		}
	}

	switch len(set) {
	case 0:
		return Request{}, fmt.Errorf("%w: no position kind", ErrInvalidRequest)
	case 1:
		return res, res.Validate()
	default:
		return Request{}, fmt.Errorf("%w: mutually exclusive kinds %v", ErrInvalidRequest, set)
	}
}
