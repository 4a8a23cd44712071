package tree

import (
	"bytes"
	"encoding/json"

	"github.com/YuminosukeSato/id3tree/core/model"
	"github.com/YuminosukeSato/id3tree/pkg/errors"
)

// Dict is the persisted form of a node:
//
//	{
//	    "children": {
//	        "2": {"children": {}, "value": "zebra"},
//	        "4": {"children": {...}, "value": "color"}
//	    },
//	    "value": "num_legs"
//	}
//
// Fields are declared in key order so the encoding is sorted.
type Dict struct {
	Children map[string]Dict `json:"children"`
	Value    string          `json:"value"`
}

// UnmarshalJSON accepts numbers and booleans as values, which other
// writers produce for labels such as 2 or true. A missing "children"
// entry reads as a leaf.
func (d *Dict) UnmarshalJSON(data []byte) error {
	var raw struct {
		Children map[string]Dict `json:"children"`
		Value    json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw.Value) == 0 {
		return errors.New(`node has no "value"`)
	}

	var value string
	switch raw.Value[0] {
	case '"':
		if err := json.Unmarshal(raw.Value, &value); err != nil {
			return err
		}
	case 't', 'f', '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		value = string(raw.Value)
	default:
		return errors.Newf("unsupported node value %s", raw.Value)
	}

	d.Value = value
	d.Children = raw.Children
	if d.Children == nil {
		d.Children = map[string]Dict{}
	}
	return nil
}

// ToDict converts a tree to its persisted form. Leaves get an empty,
// non-nil children map so they encode as {}.
func ToDict(n Node) Dict {
	d := Dict{Value: n.Value(), Children: map[string]Dict{}}
	if s, ok := n.(*Split); ok {
		for k, c := range s.Children {
			d.Children[k] = ToDict(c)
		}
	}
	return d
}

// FromDict rebuilds a tree. A dict without children becomes a Leaf.
func FromDict(d Dict) Node {
	if len(d.Children) == 0 {
		return &Leaf{Label: d.Value}
	}
	s := &Split{Feature: d.Value, Children: make(map[string]Node, len(d.Children))}
	for k, c := range d.Children {
		s.Children[k] = FromDict(c)
	}
	return s
}

// MarshalTree encodes a tree as JSON with sorted keys and a four-space
// indent.
func MarshalTree(n Node) ([]byte, error) {
	if n == nil {
		return nil, errors.NewValueError("MarshalTree", "tree is nil")
	}
	var buf bytes.Buffer
	if err := model.EncodeJSON(&buf, ToDict(n)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalTree decodes a tree written by MarshalTree.
func UnmarshalTree(data []byte) (Node, error) {
	var d Dict
	if err := model.DecodeJSON(bytes.NewReader(data), &d); err != nil {
		return nil, errors.NewModelError("UnmarshalTree", "malformed tree", err)
	}
	return FromDict(d), nil
}

