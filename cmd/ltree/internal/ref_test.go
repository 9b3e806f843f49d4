package common

import (
	"context"
	"fmt"
	"testing"

	"github.com/nspcc-dev/ltree/cmd/internal/cmderr"
	"github.com/nspcc-dev/ltree/pkg/mpath"
	"github.com/nspcc-dev/ltree/pkg/position"
	"github.com/nspcc-dev/ltree/pkg/store"
	"github.com/nspcc-dev/ltree/pkg/util/logicerr"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestResolveNode(t *testing.T) {
	env := openMemory(t)
	ctx := context.Background()

	a := create(t, env.Tree, "A", position.Root())
	b := create(t, env.Tree, "B", position.ChildOf(a.Path))

	for _, ref := range []string{b.ID.String(), b.Path.String()} {
		n, err := ResolveNode(ctx, env.Tree, ref)
		require.NoError(t, err)
		require.Equal(t, b.ID, n.ID)

		p, err := ResolvePath(ctx, env.Tree, ref)
		require.NoError(t, err)
		require.Equal(t, b.Path, p)
	}

	for _, ref := range []string{"", "0009", "6f1f0b6c-3c1f-4aef-8d3d-5b3b7a2e9b1e"} {
		_, err := ResolveNode(ctx, env.Tree, ref)
		require.ErrorIs(t, err, store.ErrNodeNotFound, ref)
	}

	_, err := ResolveNode(ctx, env.Tree, "00.00")
	require.ErrorIs(t, err, mpath.ErrInvalidLabel)
}

func TestPositionFlags(t *testing.T) {
	env := openMemory(t)
	ctx := context.Background()

	a := create(t, env.Tree, "A", position.Root())

	parse := func(t *testing.T, args ...string) (position.Request, error) {
		cmd := &cobra.Command{Use: "test"}
		pf := AddPositionFlags(cmd)
		require.NoError(t, cmd.ParseFlags(args))
		return pf.Request(ctx, env.Tree)
	}

	req, err := parse(t, "--root")
	require.NoError(t, err)
	require.Equal(t, position.Root(), req)

	for _, tc := range []struct {
		flag string
		exp  position.Request
	}{
		{childOfFlag, position.ChildOf(a.Path)},
		{lastChildOfFlag, position.LastChildOf(a.Path)},
		{firstChildOfFlag, position.FirstChildOf(a.Path)},
		{leftOfFlag, position.LeftOf(a.Path)},
		{rightOfFlag, position.RightOf(a.Path)},
	} {
		t.Run(tc.flag, func(t *testing.T) {
			for _, ref := range []string{a.ID.String(), a.Path.String()} {
				req, err := parse(t, "--"+tc.flag, ref)
				require.NoError(t, err)
				require.Equal(t, tc.exp.Kind(), req.Kind())
				require.Equal(t, tc.exp.Reference(), req.Reference())
			}
		})
	}

	_, err = parse(t)
	require.ErrorIs(t, err, position.ErrInvalidRequest)

	_, err = parse(t, "--child-of", "zz.zz.z")
	require.Error(t, err)
}

func TestWrapExitCode(t *testing.T) {
	require.NoError(t, WrapExitCode(nil))

	for _, tc := range []struct {
		err  error
		code int
	}{
		{store.ErrReadOnly, 1},
		{fmt.Errorf("context: %w", store.ErrNodeNotFound), 2},
		{logicerr.New("bad request"), 2},
	} {
		var e cmderr.ExitErr
		err := WrapExitCode(tc.err)
		require.ErrorAs(t, err, &e)
		require.Equal(t, tc.code, e.Code)
		require.ErrorIs(t, err, tc.err)
	}
}
