// Package tree implements ID3 decision trees over categorical data.
//
// A tree is built greedily: at each node the feature with the largest
// information gain is chosen and the rows are partitioned by the values of
// that feature that actually occur. Prediction walks the tree with a
// record's values and never fails: unseen values fall back to the
// lexicographically first branch and a missing feature yields
// NoClassification.
//
//	root, err := tree.Build(ds, []string{"num_legs", "color"}, "Name")
//	p := tree.Predict(dataset.Record{"num_legs": "4", "color": "white"}, root)
//	fmt.Println(p.Label)
package tree

import (
	"fmt"
	"sort"
	"strings"
)

// Node is a decision tree node: either a *Leaf or a *Split.
type Node interface {
	// Value is the label of a leaf or the feature tested by a split.
	Value() string
	// IsLeaf reports whether the node has no children.
	IsLeaf() bool
	// Depth is the number of splits on the longest path below the node.
	Depth() int

	node()
}

// Leaf holds a predicted label.
type Leaf struct {
	Label string
}

// Split tests Feature and continues in the child keyed by the record's
// value. Children maps each value observed during training to a subtree.
type Split struct {
	Feature  string
	Children map[string]Node
}

func (l *Leaf) Value() string { return l.Label }
func (l *Leaf) IsLeaf() bool  { return true }
func (l *Leaf) Depth() int    { return 0 }
func (l *Leaf) node()         {}

func (s *Split) Value() string { return s.Feature }

// IsLeaf is true only for a split without children, which behaves as a
// leaf labelled with Feature.
func (s *Split) IsLeaf() bool { return len(s.Children) == 0 }

func (s *Split) Depth() int {
	if s.IsLeaf() {
		return 0
	}
	max := 0
	for _, c := range s.Children {
		if d := c.Depth(); d > max {
			max = d
		}
	}
	return max + 1
}

func (s *Split) node() {}

// Keys returns the child keys in lexicographic order.
func (s *Split) Keys() []string {
	keys := make([]string, 0, len(s.Children))
	for k := range s.Children {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Equal reports whether a and b have the same shape, values and child keys.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.IsLeaf() != b.IsLeaf() || a.Value() != b.Value() {
		return false
	}
	if a.IsLeaf() {
		return true
	}
	sa, sb := a.(*Split), b.(*Split)
	if len(sa.Children) != len(sb.Children) {
		return false
	}
	for k, ca := range sa.Children {
		cb, ok := sb.Children[k]
		if !ok || !Equal(ca, cb) {
			return false
		}
	}
	return true
}

// CountLeaves returns the number of leaves under n.
func CountLeaves(n Node) int {
	if n == nil {
		return 0
	}
	if n.IsLeaf() {
		return 1
	}
	total := 0
	for _, c := range n.(*Split).Children {
		total += CountLeaves(c)
	}
	return total
}

// Features returns the distinct features tested anywhere in the tree,
// sorted.
func Features(n Node) []string {
	seen := make(map[string]struct{})
	var walk func(Node)
	walk = func(n Node) {
		if n == nil || n.IsLeaf() {
			return
		}
		s := n.(*Split)
		seen[s.Feature] = struct{}{}
		for _, c := range s.Children {
			walk(c)
		}
	}
	walk(n)

	out := make([]string, 0, len(seen))
	for f := range seen {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Render draws the tree as indented text with branches in key order:
//
//	num_legs
//	  2 -> zebra
//	  4 -> color
//	    black -> cat
func Render(n Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(n.Value())
	b.WriteByte('\n')
	render(&b, n, 1)
	return b.String()
}

func render(b *strings.Builder, n Node, level int) {
	if n.IsLeaf() {
		return
	}
	s := n.(*Split)
	for _, k := range s.Keys() {
		c := s.Children[k]
		fmt.Fprintf(b, "%s%s -> %s\n", strings.Repeat("  ", level), k, c.Value())
		render(b, c, level+1)
	}
}
