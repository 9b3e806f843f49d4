package store

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/nspcc-dev/ltree/pkg/mpath"
)

type recordJSON struct {
	ID         string         `json:"id"`
	Path       []string       `json:"path"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// MarshalRecord encodes the node for persistent providers.
func MarshalRecord(n Node) ([]byte, error) {
	return json.Marshal(recordJSON{
		ID:         n.ID.String(),
		Path:       n.Path,
		Attributes: n.Attributes,
	})
}

// UnmarshalRecord decodes the node encoded with MarshalRecord. Numeric
// attributes are decoded as float64.
func UnmarshalRecord(data []byte) (Node, error) {
	var rj recordJSON
	if err := json.Unmarshal(data, &rj); err != nil {
		return Node{}, fmt.Errorf("decode node record: %w", err)
	}

	id, err := uuid.Parse(rj.ID)
	if err != nil {
		return Node{}, fmt.Errorf("decode node ID: %w", err)
	}

	p := mpath.Path(rj.Path)
	if p == nil {
		p = mpath.Path{}
	}

	return Node{
		ID:         id,
		Path:       p,
		Attributes: rj.Attributes,
	}, nil
}
