package common

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestDecodeBranch(t *testing.T) {
	t.Run("nested", func(t *testing.T) {
		const src = `
name: Grafted
attributes:
  priority: 3
children:
  - name: Child 1
    id: 5b3b7a2e-3c1f-4aef-8d3d-6f1f0b6c9b1e
  - name: Child 2
    children:
      - name: Grandchild
`
		b, err := DecodeBranch(strings.NewReader(src))
		require.NoError(t, err)

		require.Equal(t, uuid.Nil, b.ID)
		require.Equal(t, map[string]any{"name": "Grafted", "priority": 3}, b.Attributes)
		require.Len(t, b.Children, 2)

		require.Equal(t, uuid.MustParse("5b3b7a2e-3c1f-4aef-8d3d-6f1f0b6c9b1e"), b.Children[0].ID)
		require.Equal(t, "Child 1", b.Children[0].Attributes[NameAttribute])
		require.Empty(t, b.Children[0].Children)

		require.Len(t, b.Children[1].Children, 1)
		require.Equal(t, "Grandchild", b.Children[1].Children[0].Attributes[NameAttribute])
	})

	t.Run("name overrides attribute", func(t *testing.T) {
		b, err := DecodeBranch(strings.NewReader("name: A\nattributes:\n  name: B\n"))
		require.NoError(t, err)
		require.Equal(t, "A", b.Attributes[NameAttribute])
	})

	for _, tc := range []struct {
		name, src string
	}{
		{name: "missing name", src: "attributes:\n  x: 1\n"},
		{name: "missing child name", src: "name: A\nchildren:\n  - id: 5b3b7a2e-3c1f-4aef-8d3d-6f1f0b6c9b1e\n"},
		{name: "invalid id", src: "name: A\nid: not-a-uuid\n"},
		{name: "unknown field", src: "name: A\npath: 0000\n"},
		{name: "not a mapping", src: "- name: A\n"},
		{name: "empty", src: ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeBranch(strings.NewReader(tc.src))
			require.Error(t, err)
		})
	}
}
