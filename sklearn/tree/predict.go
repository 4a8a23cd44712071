package tree

import (
	"github.com/YuminosukeSato/id3tree/core/dataset"
	"github.com/YuminosukeSato/id3tree/pkg/errors"
)

// NoClassification is the label returned when a record lacks a feature
// the tree needs.
const NoClassification = "no classification found"

// Prediction is the outcome of walking a tree with one record.
type Prediction struct {
	// Label is the predicted label, or NoClassification.
	Label string
	// Found is false only when Label is NoClassification.
	Found bool
	// Path lists the branch keys taken from the root, fallbacks included.
	Path []string
	// Warnings holds an UnseenValueWarning per fallback and a
	// MissingFeatureWarning when the walk stopped early.
	Warnings []error
}

// Predict classifies record with tree. It never fails and never logs:
//
//   - at a leaf the leaf label is returned;
//   - if the record has no value for the split feature, NoClassification
//     is returned with a MissingFeatureWarning;
//   - if the value matches a child key the walk continues there;
//   - otherwise the walk continues in the lexicographically first child
//     and an UnseenValueWarning is recorded.
//
// Keys of record that the tree never tests are ignored.
func Predict(record dataset.Record, tree Node) Prediction {
	var p Prediction
	n := tree
	for n != nil {
		if n.IsLeaf() {
			p.Label = n.Value()
			p.Found = true
			return p
		}
		s := n.(*Split)
		v, ok := record[s.Feature]
		if !ok {
			p.Warnings = append(p.Warnings, errors.NewMissingFeatureWarning(s.Feature))
			break
		}
		child, ok := s.Children[v]
		if !ok {
			fallback := s.Keys()[0]
			p.Warnings = append(p.Warnings, errors.NewUnseenValueWarning(s.Feature, v, fallback))
			v, child = fallback, s.Children[fallback]
		}
		p.Path = append(p.Path, v)
		n = child
	}
	p.Label = NoClassification
	return p
}

// Labels returns the label of each prediction.
func Labels(preds []Prediction) []string {
	out := make([]string, len(preds))
	for i, p := range preds {
		out[i] = p.Label
	}
	return out
}
