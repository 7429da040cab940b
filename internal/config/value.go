package config

import "gopkg.in/yaml.v3"

// ValueType is the JSON-style type of a settings value.
type ValueType int

const (
	TypeMissing ValueType = iota
	TypeNull
	TypeNumber
	TypeString
	TypeBoolean
	TypeObject
	TypeArray
)

// String returns a human-readable name for the type.
func (t ValueType) String() string {
	switch t {
	case TypeMissing:
		return "missing"
	case TypeNull:
		return "null"
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	case TypeBoolean:
		return "boolean"
	case TypeObject:
		return "object"
	case TypeArray:
		return "array"
	default:
		return "unknown"
	}
}

// Value is a single node of a settings document.
type Value struct {
	node *yaml.Node
}

// Exists reports whether the value was present in the document.
func (v Value) Exists() bool {
	return v.node != nil
}

// Type returns the type of the value.
func (v Value) Type() ValueType {
	n := v.node
	if n == nil {
		return TypeMissing
	}
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	switch n.Kind {
	case yaml.MappingNode:
		return TypeObject
	case yaml.SequenceNode:
		return TypeArray
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!int", "!!float":
			return TypeNumber
		case "!!str":
			return TypeString
		case "!!bool":
			return TypeBoolean
		case "!!null":
			return TypeNull
		}
	}
	return TypeMissing
}

// Lookup returns the child value for key when v is an object.
func (v Value) Lookup(key string) Value {
	if v.Type() != TypeObject {
		return Value{}
	}
	n := v.node
	if n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return lookup(n, key)
}

// Number returns the value as a float64. ok is false for non-numbers.
func (v Value) Number() (f float64, ok bool) {
	if v.Type() != TypeNumber {
		return 0, false
	}
	if err := v.node.Decode(&f); err != nil {
		return 0, false
	}
	return f, true
}

// Text returns the value as a string. ok is false for non-strings.
func (v Value) Text() (s string, ok bool) {
	if v.Type() != TypeString {
		return "", false
	}
	if err := v.node.Decode(&s); err != nil {
		return "", false
	}
	return s, true
}

// Bool returns the value as a bool. ok is false for non-booleans.
func (v Value) Bool() (b bool, ok bool) {
	if v.Type() != TypeBoolean {
		return false, false
	}
	if err := v.node.Decode(&b); err != nil {
		return false, false
	}
	return b, true
}

// lookup finds key in a mapping node. Later duplicates win.
func lookup(mapping *yaml.Node, key string) Value {
	var found *yaml.Node
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			found = mapping.Content[i+1]
		}
	}
	return Value{node: found}
}
