package loader

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/okian/admitscore/internal/domain/lookup"
)

// cell decodes a table entry that is either a number or a placeholder
// marker such as "-" or "N/A".
type cell lookup.Cell

func (c *cell) set(raw string) {
	raw = strings.TrimSpace(raw)
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		*c = cell{Value: v}
		return
	}
	if raw == "" {
		raw = "-"
	}
	*c = cell{Placeholder: raw}
}

func (c *cell) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: %w", n.Line, ErrInvalidCell)
	}
	if n.Tag == "!!null" {
		*c = cell{Placeholder: "-"}
		return nil
	}
	c.set(n.Value)
	return nil
}

func (c *cell) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case float64:
		*c = cell{Value: t}
	case string:
		c.set(t)
	case nil:
		*c = cell{Placeholder: "-"}
	default:
		return fmt.Errorf("%s: %w", string(b), ErrInvalidCell)
	}
	return nil
}
