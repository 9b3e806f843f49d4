package main

import (
	common "github.com/nspcc-dev/ltree/cmd/ltree/internal"
	"github.com/nspcc-dev/ltree/pkg/mpath"
	"github.com/spf13/cobra"
)

var compactCMD = &cobra.Command{
	Use:   "compact",
	Short: "Renumber children of a node closing gaps in their labels",
	Args:  cobra.NoArgs,
	RunE:  compactFunc,
}

var vParent string

const parentFlag = "parent"

func init() {
	compactCMD.Flags().StringVar(&vParent, parentFlag, "", "Parent node (ID or path), roots if not set")
}

func compactFunc(cmd *cobra.Command, _ []string) error {
	env, err := common.Open(cmd, false)
	if err != nil {
		return err
	}
	defer env.Close()

	var parent mpath.Path
	if vParent != "" {
		parent, err = common.ResolvePath(cmd.Context(), env.Tree, vParent)
		if err != nil {
			return err
		}
	}

	n, err := env.Tree.Compact(cmd.Context(), parent)
	if err != nil {
		return common.Errf("compact: %w", err)
	}

	cmd.Printf("relocated: %d\n", n)
	return nil
}
