package main

import (
	"fmt"
	"strings"

	common "github.com/nspcc-dev/ltree/cmd/ltree/internal"
	"github.com/nspcc-dev/ltree/pkg/tree"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var createCMD = &cobra.Command{
	Use:   "create",
	Short: "Create a node at a relative position",
	Args:  cobra.NoArgs,
	RunE:  createFunc,
}

var (
	vName     string
	vAttrs    []string
	createPos *common.PositionFlags
)

const (
	nameFlag = "name"
	attrFlag = "attr"
)

func init() {
	createCMD.Flags().StringVar(&vName, nameFlag, "", "Node name")
	createCMD.Flags().StringArrayVar(&vAttrs, attrFlag, nil, "Node attribute in key=value form, the value is a YAML scalar")
	err := createCMD.MarkFlagRequired(nameFlag)
	if err != nil {
		panic(fmt.Errorf("mark required flag %s failed: %w", nameFlag, err))
	}

	createPos = common.AddPositionFlags(createCMD)
}

func createFunc(cmd *cobra.Command, _ []string) error {
	attrs, err := parseAttributes(vAttrs)
	if err != nil {
		return err
	}
	attrs[common.NameAttribute] = vName

	env, err := common.Open(cmd, false)
	if err != nil {
		return err
	}
	defer env.Close()

	req, err := createPos.Request(cmd.Context(), env.Tree)
	if err != nil {
		return err
	}

	var prm tree.CreatePrm
	prm.SetAttributes(attrs)
	prm.SetPosition(req)

	res, err := env.Tree.Create(cmd.Context(), prm)
	if err != nil {
		return common.Errf("create node: %w", err)
	}

	n := res.Node()
	cmd.Printf("%s %s (relocated: %d)\n", n.ID, n.Path, res.Relocated())
	return nil
}

func parseAttributes(kvs []string) (map[string]any, error) {
	res := make(map[string]any, len(kvs)+1)
	for _, kv := range kvs {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid attribute %q, key=value expected", kv)
		}

		var val any
		err := yaml.Unmarshal([]byte(v), &val)
		if err != nil || val == nil {
			val = v
		}
		res[k] = val
	}
	return res, nil
}
