package main

import (
	common "github.com/nspcc-dev/ltree/cmd/ltree/internal"
	"github.com/spf13/cobra"
)

var deleteCMD = &cobra.Command{
	Use:   "delete",
	Short: "Delete a node with all of its descendants",
	Args:  cobra.NoArgs,
	RunE:  deleteFunc,
}

var vDeleteID string

func init() {
	common.AddIDFlag(deleteCMD, &vDeleteID)
}

func deleteFunc(cmd *cobra.Command, _ []string) error {
	env, err := common.Open(cmd, false)
	if err != nil {
		return err
	}
	defer env.Close()

	n, err := common.ResolveNode(cmd.Context(), env.Tree, vDeleteID)
	if err != nil {
		return err
	}

	removed, err := env.Tree.Delete(cmd.Context(), n.ID)
	if err != nil {
		return common.Errf("delete node: %w", err)
	}

	cmd.Printf("removed: %d\n", removed)
	return nil
}
