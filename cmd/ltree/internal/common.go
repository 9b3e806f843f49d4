package common

import (
	"fmt"

	"github.com/nspcc-dev/ltree/cmd/internal/cmderr"
	"github.com/nspcc-dev/ltree/pkg/util/logicerr"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	// ConfigFlag is a persistent flag of the root command.
	ConfigFlag = "config"

	// IDFlag names the node a command works with.
	IDFlag = "id"
)

// Exit code for errors caused by the request itself (unknown node, bad
// position and so on).
const logicalErrCode = 2

// Errf returns formatted error in errFmt format if err is not nil.
func Errf(errFmt string, err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf(errFmt, err)
}

// WrapExitCode attaches the exit code to err: 2 for logical errors,
// 1 otherwise. Returns nil if err is nil.
func WrapExitCode(err error) error {
	if err == nil {
		return nil
	}

	code := 1
	if logicerr.Is(err) {
		code = logicalErrCode
	}

	return cmderr.ExitErr{Code: code, Cause: err}
}

// AddIDFlag adds the required node reference flag to the command.
func AddIDFlag(cmd *cobra.Command, v *string) {
	cmd.Flags().StringVar(v, IDFlag, "", "Node ID or path")
	err := cmd.MarkFlagRequired(IDFlag)
	if err != nil {
		panic(fmt.Errorf("mark required flag %s failed: %w", IDFlag, err))
	}
}

// AddConfigFlag adds the configuration file flag to the set.
func AddConfigFlag(ff *pflag.FlagSet) {
	ff.StringP(ConfigFlag, "c", "", "Path to the configuration file (YAML or JSON), '~' is expanded")
}
