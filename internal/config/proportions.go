package config

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/terragrid/internal/grid"
)

// Proportions is the ordered generator-name to weight mapping. Column
// selection depends on the order, so YAML document order is kept.
type Proportions []grid.Proportion

// UnmarshalYAML reads a mapping node, replacing any existing entries.
func (p *Proportions) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: proportions must be a mapping of generator name to weight", node.Line)
	}
	out := make(Proportions, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		var weight float64
		if err := value.Decode(&weight); err != nil {
			return fmt.Errorf("line %d: weight of %s: %w", value.Line, key.Value, err)
		}
		out = append(out, grid.Proportion{Name: key.Value, Weight: weight})
	}
	*p = out
	return nil
}

// MarshalYAML writes the proportions as an ordered mapping.
func (p Proportions) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range p {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Name},
			&yaml.Node{Kind: yaml.ScalarNode, Value: strconv.FormatFloat(e.Weight, 'g', -1, 64)},
		)
	}
	return node, nil
}

// Enabled returns the names with a positive weight, in order.
func (p Proportions) Enabled() []string {
	var names []string
	for _, e := range p {
		if e.Weight > 0 {
			names = append(names, e.Name)
		}
	}
	return names
}
