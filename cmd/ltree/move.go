package main

import (
	common "github.com/nspcc-dev/ltree/cmd/ltree/internal"
	"github.com/nspcc-dev/ltree/pkg/tree"
	"github.com/spf13/cobra"
)

var moveCMD = &cobra.Command{
	Use:   "move",
	Short: "Move a node with its subtree to a relative position",
	Args:  cobra.NoArgs,
	RunE:  moveFunc,
}

var (
	vMoveID string
	movePos *common.PositionFlags
)

func init() {
	common.AddIDFlag(moveCMD, &vMoveID)
	movePos = common.AddPositionFlags(moveCMD)
}

func moveFunc(cmd *cobra.Command, _ []string) error {
	env, err := common.Open(cmd, false)
	if err != nil {
		return err
	}
	defer env.Close()

	n, err := common.ResolveNode(cmd.Context(), env.Tree, vMoveID)
	if err != nil {
		return err
	}

	req, err := movePos.Request(cmd.Context(), env.Tree)
	if err != nil {
		return err
	}

	var prm tree.MovePrm
	prm.SetID(n.ID)
	prm.SetPosition(req)

	res, err := env.Tree.Move(cmd.Context(), prm)
	if err != nil {
		return common.Errf("move node: %w", err)
	}

	cmd.Printf("%s %s -> %s (relocated: %d)\n", n.ID, n.Path, res.Node().Path, res.Relocated())
	return nil
}
