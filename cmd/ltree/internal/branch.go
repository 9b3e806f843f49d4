package common

import (
	"fmt"
	"io"
	"maps"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/nspcc-dev/ltree/pkg/tree"
	"gopkg.in/yaml.v3"
)

// NameAttribute is the attribute set by --name flags and shown by list.
const NameAttribute = "name"

// branchNode is a YAML description of a node with its children.
type branchNode struct {
	ID         string         `yaml:"id" validate:"omitempty,uuid"`
	Name       string         `yaml:"name" validate:"required"`
	Attributes map[string]any `yaml:"attributes"`
	Children   []branchNode   `yaml:"children" validate:"omitempty,dive"`
}

var validate = validator.New()

// DecodeBranch reads a YAML branch description, like
//
//	name: Grafted
//	children:
//	  - name: Child 1
//	  - name: Child 2
//	    id: 5b3b7a2e-3c1f-4aef-8d3d-6f1f0b6c9b1e
//	    attributes:
//	      priority: 3
//
// and converts it to a tree.Blueprint.
func DecodeBranch(r io.Reader) (tree.Blueprint, error) {
	var b branchNode

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	err := dec.Decode(&b)
	if err != nil {
		return tree.Blueprint{}, fmt.Errorf("decode branch: %w", err)
	}

	err = validate.Struct(b)
	if err != nil {
		return tree.Blueprint{}, fmt.Errorf("invalid branch: %w", err)
	}

	return b.blueprint()
}

func (b branchNode) blueprint() (tree.Blueprint, error) {
	var (
		res tree.Blueprint
		err error
	)

	if b.ID != "" {
		res.ID, err = uuid.Parse(b.ID)
		if err != nil {
			return tree.Blueprint{}, fmt.Errorf("node %q: %w", b.Name, err)
		}
	}

	res.Attributes = maps.Clone(b.Attributes)
	if res.Attributes == nil {
		res.Attributes = make(map[string]any, 1)
	}
	res.Attributes[NameAttribute] = b.Name

	for i := range b.Children {
		c, err := b.Children[i].blueprint()
		if err != nil {
			return tree.Blueprint{}, err
		}
		res.Children = append(res.Children, c)
	}

	return res, nil
}
