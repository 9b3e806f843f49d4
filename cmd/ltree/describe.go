package main

import (
	common "github.com/nspcc-dev/ltree/cmd/ltree/internal"
	"github.com/spf13/cobra"
)

var describeCMD = &cobra.Command{
	Use:   "describe",
	Short: "Print the relative position of a node",
	Args:  cobra.NoArgs,
	RunE:  describeFunc,
}

var vDescribeID string

func init() {
	common.AddIDFlag(describeCMD, &vDescribeID)
}

func describeFunc(cmd *cobra.Command, _ []string) error {
	env, err := common.Open(cmd, true)
	if err != nil {
		return err
	}
	defer env.Close()

	n, err := common.ResolveNode(cmd.Context(), env.Tree, vDescribeID)
	if err != nil {
		return err
	}

	req, err := env.Tree.Describe(cmd.Context(), n.ID)
	if err != nil {
		return common.Errf("describe node: %w", err)
	}

	cands, err := env.Tree.MoveCandidates(cmd.Context(), n.ID)
	if err != nil {
		return common.Errf("read move candidates: %w", err)
	}

	cmd.Printf("ID: %s\nPath: %s\nPosition: %s\nMove candidates: %d\n", n.ID, n.Path, req, len(cands))
	return nil
}
