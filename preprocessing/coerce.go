// Package preprocessing prepares raw tables for training and inference.
package preprocessing

import (
	"strings"

	"github.com/YuminosukeSato/id3tree/core/dataset"
)

// CoerceDataset normalizes a table before it reaches the tree code. Cells
// are already strings; the target column, when present, is lower-cased so
// that "Cat" and "cat" are the same label. The input is not modified.
func CoerceDataset(ds *dataset.Dataset, target string) *dataset.Dataset {
	if !ds.HasColumn(target) {
		return ds
	}
	rows := make([]dataset.Record, ds.Len())
	for i, r := range ds.Rows() {
		nr := make(dataset.Record, len(r))
		for k, v := range r {
			nr[k] = v
		}
		if v, ok := nr[target]; ok {
			nr[target] = strings.ToLower(v)
		}
		rows[i] = nr
	}
	return dataset.New(ds.Columns(), rows)
}

// FeatureColumns returns every column except target, in header order.
func FeatureColumns(ds *dataset.Dataset, target string) []string {
	var out []string
	for _, c := range ds.Columns() {
		if c != target {
			out = append(out, c)
		}
	}
	return out
}
