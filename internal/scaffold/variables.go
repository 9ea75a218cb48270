package scaffold

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/stencilworks/stencil/internal/engine"
	"github.com/stencilworks/stencil/internal/errors"
)

// Variables is an insertion-ordered mapping from identifier to value.
// Path interpolation replaces {{key}} placeholders key by key in this
// order, so the order a manifest (or the command line) lists variables in
// is the order substitutions happen in.
type Variables struct {
	keys   []string
	values map[string]interface{}
}

// NewVariables creates an empty variable set.
func NewVariables() *Variables {
	return &Variables{values: make(map[string]interface{})}
}

// Set inserts or updates a variable. New keys append to the order.
func (v *Variables) Set(key string, value interface{}) *Variables {
	if v.values == nil {
		v.values = make(map[string]interface{})
	}
	if _, exists := v.values[key]; !exists {
		v.keys = append(v.keys, key)
	}
	v.values[key] = value
	return v
}

// Get returns the value stored under key.
func (v *Variables) Get(key string) (interface{}, bool) {
	val, ok := v.values[key]
	return val, ok
}

// Keys returns the variable names in insertion order.
func (v *Variables) Keys() []string {
	return v.keys
}

// Len returns the number of variables.
func (v *Variables) Len() int {
	return len(v.keys)
}

// Map returns the variables as the unordered map engines consume.
func (v *Variables) Map() engine.Variables {
	m := make(engine.Variables, len(v.values))
	for k, val := range v.values {
		m[k] = val
	}
	return m
}

// UnmarshalYAML decodes a YAML mapping preserving document order.
func (v *Variables) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return errors.NewConfigError(errors.ErrCodeManifestInvalid, "variables must be a mapping")
	}

	v.keys = nil
	v.values = make(map[string]interface{}, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]

		var key string
		if err := keyNode.Decode(&key); err != nil {
			return errors.NewConfigError(errors.ErrCodeManifestInvalid, fmt.Sprintf("invalid variable key at line %d", keyNode.Line))
		}

		var value interface{}
		if err := valNode.Decode(&value); err != nil {
			return errors.NewConfigError(errors.ErrCodeManifestInvalid, fmt.Sprintf("invalid value for variable %q", key))
		}

		v.Set(key, value)
	}
	return nil
}
