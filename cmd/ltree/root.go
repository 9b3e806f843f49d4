package main

import (
	"os"

	"github.com/nspcc-dev/ltree/cmd/internal/cmderr"
	common "github.com/nspcc-dev/ltree/cmd/ltree/internal"
	"github.com/nspcc-dev/ltree/misc"
	"github.com/nspcc-dev/ltree/pkg/util/grace"
	"github.com/spf13/cobra"
)

var command = &cobra.Command{
	Use:   "ltree",
	Short: "Materialized path tree manager",
	Long: `LTree keeps ordered trees of nodes in a key-value store, addressing every node
by its materialized path. Nodes are placed relative to other nodes, siblings
are renumbered in place.`,
	RunE:          entryPoint,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func entryPoint(cmd *cobra.Command, _ []string) error {
	printVersion, _ := cmd.Flags().GetBool("version")
	if printVersion {
		cmd.Print(misc.BuildInfo("LTree"))

		return nil
	}

	return cmd.Usage()
}

func init() {
	// use stdout as default output for cmd.Print()
	command.SetOut(os.Stdout)
	command.Flags().Bool("version", false, "Application version")
	common.AddConfigFlag(command.PersistentFlags())
	command.AddCommand(
		createCMD,
		importCMD,
		moveCMD,
		describeCMD,
		listCMD,
		deleteCMD,
		compactCMD,
	)
}

func main() {
	ctx, stop := grace.NewGracefulContext(nil)
	err := command.ExecuteContext(ctx)
	stop()
	cmderr.ExitOnErr(common.WrapExitCode(err))
}
