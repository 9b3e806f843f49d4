package mpath

import (
	"fmt"
	"iter"
	"strings"
)

// Factory implements path algebra on top of a Codec.
type Factory struct {
	codec *Codec
}

// NewFactory returns Factory producing labels with c.
func NewFactory(c *Codec) *Factory {
	return &Factory{codec: c}
}

// Codec returns the underlying label codec.
func (f *Factory) Codec() *Codec {
	return f.codec
}

// Split returns the parent of p and the sibling index encoded by its last
// label.
func (f *Factory) Split(p Path) (Path, int, error) {
	if len(p) == 0 {
		return nil, 0, ErrEmptyPath
	}

	n, err := f.codec.Decode(p[len(p)-1])
	if err != nil {
		return nil, 0, err
	}

	return p.Parent(), n, nil
}

// Index returns the sibling index of p.
func (f *Factory) Index(p Path) (int, error) {
	_, n, err := f.Split(p)
	return n, err
}

// NthChild returns the path of the n-th child of p.
func (f *Factory) NthChild(p Path, n int) (Path, error) {
	label, err := f.codec.Encode(n)
	if err != nil {
		return nil, err
	}
	return Join(p, label), nil
}

// Children returns all child slots of p in ascending order, starting at
// index 0. The sequence ends when the label capacity is exhausted and can
// be iterated any number of times.
func (f *Factory) Children(p Path) iter.Seq[Path] {
	return f.slots(p, 0)
}

// NextSiblings returns the sibling slots following p in ascending order.
func (f *Factory) NextSiblings(p Path) (iter.Seq[Path], error) {
	parent, n, err := f.Split(p)
	if err != nil {
		return nil, err
	}
	return f.slots(parent, n+1), nil
}

func (f *Factory) slots(parent Path, from int) iter.Seq[Path] {
	return func(yield func(Path) bool) {
		for i := from; ; i++ {
			child, err := f.NthChild(parent, i)
			if err != nil || !yield(child) {
				return
			}
		}
	}
}

// Validate checks that every label of p can be decoded.
func (f *Factory) Validate(p Path) error {
	for i := range p {
		if _, err := f.codec.Decode(p[i]); err != nil {
			return fmt.Errorf("level %d: %w", i, err)
		}
	}
	return nil
}

// Parse reads ltree text form of a path. An empty string is the empty path.
func (f *Factory) Parse(s string) (Path, error) {
	if s == "" {
		return Path{}, nil
	}

	p := Path(strings.Split(s, Separator))
	if err := f.Validate(p); err != nil {
		return nil, fmt.Errorf("parse path %q: %w", s, err)
	}
	return p, nil
}
