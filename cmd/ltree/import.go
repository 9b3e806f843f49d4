package main

import (
	"fmt"
	"os"

	common "github.com/nspcc-dev/ltree/cmd/ltree/internal"
	"github.com/nspcc-dev/ltree/pkg/tree"
	"github.com/spf13/cobra"
)

var importCMD = &cobra.Command{
	Use:   "import",
	Short: "Create a whole branch described in a YAML file",
	Long: `Create a node together with its nested children in one batch. Every node
of the file has a required "name", optional "id" (UUID), "attributes" and
"children".`,
	Args: cobra.NoArgs,
	RunE: importFunc,
}

var (
	vFile     string
	importPos *common.PositionFlags
)

const fileFlag = "file"

func init() {
	importCMD.Flags().StringVarP(&vFile, fileFlag, "f", "", "Path to the branch YAML file")
	err := importCMD.MarkFlagRequired(fileFlag)
	if err != nil {
		panic(fmt.Errorf("mark required flag %s failed: %w", fileFlag, err))
	}

	importPos = common.AddPositionFlags(importCMD)
}

func importFunc(cmd *cobra.Command, _ []string) error {
	f, err := os.Open(vFile)
	if err != nil {
		return common.Errf("open branch file: %w", err)
	}
	defer f.Close()

	b, err := common.DecodeBranch(f)
	if err != nil {
		return err
	}

	env, err := common.Open(cmd, false)
	if err != nil {
		return err
	}
	defer env.Close()

	req, err := importPos.Request(cmd.Context(), env.Tree)
	if err != nil {
		return err
	}

	var prm tree.BulkCreatePrm
	prm.SetBranch(b)
	prm.SetPosition(req)

	res, err := env.Tree.BulkCreate(cmd.Context(), prm)
	if err != nil {
		return common.Errf("import branch: %w", err)
	}

	for _, n := range res.Nodes() {
		cmd.Printf("%s %s\n", n.ID, n.Path)
	}
	cmd.Printf("created: %d, relocated: %d\n", len(res.Nodes()), res.Relocated())
	return nil
}
