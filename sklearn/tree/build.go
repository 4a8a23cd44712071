package tree

import (
	"strconv"

	"github.com/YuminosukeSato/id3tree/core/dataset"
	"github.com/YuminosukeSato/id3tree/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Builder grows ID3 trees. The zero value builds sequentially.
type Builder struct {
	workers int
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithParallelBranches builds the subtrees under the root concurrently
// with at most workers goroutines. The resulting tree does not depend on
// the setting.
func WithParallelBranches(workers int) BuilderOption {
	return func(b *Builder) {
		b.workers = workers
	}
}

// NewBuilder creates a Builder.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build grows a tree predicting target from features with a sequential
// Builder.
func Build(ds *dataset.Dataset, features []string, target string) (Node, error) {
	return NewBuilder().Build(ds, features, target)
}

// Build validates the input once and grows the tree:
//
//  1. if every row has the same target, return a leaf with that label;
//  2. if no features remain, return a leaf with the most frequent label,
//     ties going to the lexicographically smallest;
//  3. otherwise split on the feature with the highest information gain,
//     with one child per value of that feature present in ds, each grown
//     from the matching rows without that feature.
//
// The depth of the result never exceeds len(features).
func (b *Builder) Build(ds *dataset.Dataset, features []string, target string) (Node, error) {
	if err := validate(ds, features, target); err != nil {
		return nil, err
	}
	fs := make([]string, len(features))
	copy(fs, features)
	return b.grow(ds, fs, target, b.workers > 1)
}

func validate(ds *dataset.Dataset, features []string, target string) error {
	if ds == nil {
		return errors.ErrEmptyData
	}
	if err := ds.Validate(target); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(features))
	for _, f := range features {
		if f == target {
			return errors.NewValidationError("features", "target column cannot be a feature", f)
		}
		if _, dup := seen[f]; dup {
			return errors.NewValidationError("features", "duplicate feature", f)
		}
		seen[f] = struct{}{}
		if !ds.HasColumn(f) {
			return errors.NewValidationError("features", "column not found in header", f)
		}
		for i, r := range ds.Rows() {
			if _, ok := r[f]; !ok {
				return errors.NewValidationError("features", "row "+strconv.Itoa(i)+" has no value for feature", f)
			}
		}
	}
	return nil
}

func (b *Builder) grow(ds *dataset.Dataset, features []string, target string, fanOut bool) (Node, error) {
	labels := ds.Unique(target)
	if len(labels) == 1 {
		return &Leaf{Label: labels[0]}, nil
	}
	if len(features) == 0 {
		return &Leaf{Label: ds.Mode(target)}, nil
	}

	best, err := PickBestFeature(ds, target, features)
	if err != nil {
		return nil, err
	}
	remaining := make([]string, 0, len(features)-1)
	for _, f := range features {
		if f != best {
			remaining = append(remaining, f)
		}
	}

	values := ds.Unique(best)
	children := make([]Node, len(values))
	if fanOut {
		g := new(errgroup.Group)
		g.SetLimit(b.workers)
		for i, v := range values {
			i, v := i, v
			g.Go(func() error {
				child, err := b.grow(ds.Where(best, v), remaining, target, false)
				children[i] = child
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, v := range values {
			child, err := b.grow(ds.Where(best, v), remaining, target, false)
			if err != nil {
				return nil, err
			}
			children[i] = child
		}
	}

	split := &Split{Feature: best, Children: make(map[string]Node, len(values))}
	for i, v := range values {
		split.Children[v] = children[i]
	}
	return split, nil
}
