package store

import (
	"testing"

	"github.com/nspcc-dev/ltree/pkg/mpath"
	"github.com/stretchr/testify/require"
)

func TestPredicate_Match(t *testing.T) {
	ref := mpath.Path{"0001", "0002"}

	tcs := []struct {
		pred  Predicate
		path  mpath.Path
		match bool
	}{
		{Equal(ref), mpath.Path{"0001", "0002"}, true},
		{Equal(ref), mpath.Path{"0001"}, false},
		{Less(ref), mpath.Path{"0001"}, true},
		{Less(ref), mpath.Path{"0001", "0001", "0009"}, true},
		{Less(ref), ref, false},
		{LessOrEqual(ref), ref, true},
		{Greater(ref), mpath.Path{"0001", "0002", "0000"}, true},
		{Greater(ref), mpath.Path{"0001"}, false},
		{GreaterOrEqual(ref), ref, true},
		{DescendantOf(ref), ref, false},
		{DescendantOf(ref), mpath.Path{"0001", "0002", "0000", "0000"}, true},
		{SubtreeOf(ref), ref, true},
		{SubtreeOf(ref), mpath.Path{"0001", "0003"}, false},
		{AncestorOf(ref), mpath.Path{"0001"}, true},
		{AncestorOf(ref), ref, false},
		{ParentOf(ref), mpath.Path{"0001"}, true},
		{ParentOf(mpath.Path{"0001", "0002", "0003"}), mpath.Path{"0001"}, false},
		{ChildOf(ref), mpath.Path{"0001", "0002", "0007"}, true},
		{ChildOf(ref), mpath.Path{"0001", "0002", "0007", "0000"}, false},
		{SiblingOf(ref), ref, true},
		{SiblingOf(ref), mpath.Path{"0001", "0000"}, true},
		{SiblingOf(ref), mpath.Path{"0002", "0000"}, false},
		{SiblingOf(mpath.Path{"0001"}), mpath.Path{"0007"}, true},
		{SiblingOf(mpath.Path{"0001"}), mpath.Path{"0007", "0000"}, false},
	}
	for _, tc := range tcs {
		require.Equal(t, tc.match, tc.pred.Match(tc.path), "%s %s", tc.pred, tc.path)
	}
}

func TestQuery_Scope(t *testing.T) {
	a := mpath.Path{"0000"}
	ab := mpath.Path{"0000", "0001"}

	s, ok := Where().Scope()
	require.True(t, ok)
	require.Empty(t, s)

	s, ok = Where(SubtreeOf(a), ChildOf(ab)).Scope()
	require.True(t, ok)
	require.Equal(t, ab, s)

	s, ok = Where(Less(ab), DescendantOf(a)).Scope()
	require.True(t, ok)
	require.Equal(t, a, s)

	s, ok = Where(SiblingOf(ab)).Scope()
	require.True(t, ok)
	require.Equal(t, a, s)

	_, ok = Where(SubtreeOf(a), Equal(mpath.Path{"0001"})).Scope()
	require.False(t, ok)
}

func TestScopeKey(t *testing.T) {
	lo, hi := ScopeKey(nil)
	require.Nil(t, lo)
	require.Nil(t, hi)

	scope := mpath.Path{"0000", "000z"}
	lo, hi = ScopeKey(scope)
	require.Equal(t, "0000.000z", string(lo))

	for _, k := range []string{"0000.000z", "0000.000z.0000", "0000.000z.zzzz.zzzz"} {
		require.True(t, InScope([]byte(k), scope), k)
		require.GreaterOrEqual(t, k, string(lo))
		require.Less(t, k, string(hi))
	}
	for _, k := range []string{"0000.000y", "0000.000z0", "0000"} {
		require.False(t, InScope([]byte(k), scope), k)
	}

	require.Equal(t, scope, KeyPath(PathKey(scope)))
	require.Equal(t, mpath.Path{}, KeyPath(nil))
}

func TestBatch_Target(t *testing.T) {
	from := mpath.Path{"0000", "0001"}
	to := mpath.Path{"0002", "0000", "0003"}

	b := Batch{Rewrites: []Rewrite{
		{Match: Equal(from), Prefix: to, Strip: len(from)},
		{Match: DescendantOf(from), Prefix: to, Strip: len(from)},
	}}
	require.False(t, b.Empty())
	require.True(t, Batch{}.Empty())

	p, ok := b.Target(from)
	require.True(t, ok)
	require.Equal(t, to, p)

	p, ok = b.Target(mpath.Path{"0000", "0001", "0005", "0006"})
	require.True(t, ok)
	require.Equal(t, mpath.Path{"0002", "0000", "0003", "0005", "0006"}, p)

	_, ok = b.Target(mpath.Path{"0000", "0002"})
	require.False(t, ok)
}

func TestRecord(t *testing.T) {
	n := Node{
		ID:         [16]byte{1, 2, 3},
		Path:       mpath.Path{"0000", "0001"},
		Attributes: map[string]any{"title": "x", "rank": 3},
	}

	data, err := MarshalRecord(n)
	require.NoError(t, err)

	res, err := UnmarshalRecord(data)
	require.NoError(t, err)
	require.Equal(t, n.ID, res.ID)
	require.Equal(t, n.Path, res.Path)
	require.Equal(t, "x", res.Attributes["title"])
	require.Equal(t, float64(3), res.Attributes["rank"])

	_, err = UnmarshalRecord([]byte("{"))
	require.Error(t, err)
}
