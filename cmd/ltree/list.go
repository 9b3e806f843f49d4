package main

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	common "github.com/nspcc-dev/ltree/cmd/ltree/internal"
	"github.com/nspcc-dev/ltree/pkg/tree"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var listCMD = &cobra.Command{
	Use:   "list",
	Short: "Print nodes as an indented table",
	Args:  cobra.NoArgs,
	RunE:  listFunc,
}

var vUnder string

const underFlag = "under"

func init() {
	listCMD.Flags().StringVar(&vUnder, underFlag, "", "Print the subtree of the node (ID or path) only")
}

func listFunc(cmd *cobra.Command, _ []string) error {
	env, err := common.Open(cmd, true)
	if err != nil {
		return err
	}
	defer env.Close()

	var branches []tree.Branch
	if vUnder != "" {
		n, err := common.ResolveNode(cmd.Context(), env.Tree, vUnder)
		if err != nil {
			return err
		}

		b, err := env.Tree.Subtree(cmd.Context(), n.ID)
		if err != nil {
			return common.Errf("read subtree: %w", err)
		}
		branches = append(branches, b)
	} else {
		branches, err = env.Tree.Roots(cmd.Context())
		if err != nil {
			return common.Errf("read trees: %w", err)
		}
	}

	tw := tablewriter.NewWriter(cmd.OutOrStdout())
	tw.SetHeader([]string{"Name", "Path", "ID", "Attributes"})
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAutoWrapText(false)

	for _, b := range branches {
		appendBranch(tw, b, 0)
	}

	tw.Render()
	return nil
}

func appendBranch(tw *tablewriter.Table, b tree.Branch, depth int) {
	name, _ := b.Node.Attribute(common.NameAttribute)

	tw.Append([]string{
		strings.Repeat("  ", depth) + fmt.Sprint(name),
		b.Node.Path.String(),
		b.Node.ID.String(),
		formatAttributes(b.Node.Attributes),
	})

	for c := range b.Children() {
		appendBranch(tw, c, depth+1)
	}
}

func formatAttributes(attrs map[string]any) string {
	var sb strings.Builder
	for _, k := range slices.Sorted(maps.Keys(attrs)) {
		if k == common.NameAttribute {
			continue
		}
		if sb.Len() != 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s=%v", k, attrs[k])
	}
	return sb.String()
}
