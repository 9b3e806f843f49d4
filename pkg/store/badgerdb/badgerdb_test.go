package badgerdb

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/nspcc-dev/ltree/pkg/mpath"
	"github.com/nspcc-dev/ltree/pkg/store"
	"github.com/stretchr/testify/require"
)

func TestStore_Reopen(t *testing.T) {
	dir := t.TempDir()
	root, child := uuid.New(), uuid.New()

	s := New(dir, WithSyncWrites(false))
	require.NoError(t, s.Open())
	require.NoError(t, s.Init())

	_, err := s.Apply(context.Background(), store.Batch{Put: []store.Node{
		{ID: root, Path: mpath.Path{"0000"}},
		{ID: child, Path: mpath.Path{"0000", "0000"}, Attributes: map[string]any{"title": "child"}},
	}})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s = New(dir)
	require.NoError(t, s.Open())
	require.NoError(t, s.Init())
	t.Cleanup(func() { require.NoError(t, s.Close()) })

	res, err := s.Select(context.Background(), store.Where(store.ChildOf(mpath.Path{"0000"})))
	require.NoError(t, err)
	require.Len(t, res, 1)
	require.Equal(t, child, res[0].ID)
	require.Equal(t, "child", res[0].Attributes["title"])

	n, err := s.Delete(context.Background(), root)
	require.NoError(t, err)
	require.Equal(t, 2, n)
}
