// Package dataset provides the string-typed table that training and
// inference operate on. Every cell is a categorical token; rows are maps
// from column name to value.
package dataset

import (
	"sort"

	"github.com/YuminosukeSato/id3tree/pkg/errors"
)

// Record is one row of a table, or one query for a tree.
type Record map[string]string

// Dataset is an ordered set of columns and the rows that use them.
// Filtering returns new datasets that share Record maps with the parent,
// so records must not be mutated after construction.
type Dataset struct {
	columns []string
	rows    []Record
}

// New creates a dataset. columns fixes the column order used for output.
func New(columns []string, rows []Record) *Dataset {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Dataset{columns: cols, rows: rows}
}

// FromColumns builds a dataset from column-oriented data, mirroring a
// DataFrame literal. All columns must have the same length.
func FromColumns(order []string, data map[string][]string) (*Dataset, error) {
	n := -1
	for _, c := range order {
		values, ok := data[c]
		if !ok {
			return nil, errors.NewValidationError("columns", "column has no data", c)
		}
		if n >= 0 && len(values) != n {
			return nil, errors.NewDimensionError("FromColumns", n, len(values))
		}
		n = len(values)
	}
	if n < 0 {
		n = 0
	}
	rows := make([]Record, n)
	for i := range rows {
		r := make(Record, len(order))
		for _, c := range order {
			r[c] = data[c][i]
		}
		rows[i] = r
	}
	return New(order, rows), nil
}

// Columns returns the column names in order.
func (d *Dataset) Columns() []string {
	out := make([]string, len(d.columns))
	copy(out, d.columns)
	return out
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.rows)
}

// Row returns row i.
func (d *Dataset) Row(i int) Record {
	return d.rows[i]
}

// Rows returns the rows. The slice must not be modified.
func (d *Dataset) Rows() []Record {
	return d.rows
}

// HasColumn reports whether col is part of the header.
func (d *Dataset) HasColumn(col string) bool {
	for _, c := range d.columns {
		if c == col {
			return true
		}
	}
	return false
}

// Column returns every value of col in row order.
func (d *Dataset) Column(col string) []string {
	out := make([]string, len(d.rows))
	for i, r := range d.rows {
		out[i] = r[col]
	}
	return out
}

// Unique returns the distinct values of col in first-seen order.
func (d *Dataset) Unique(col string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range d.rows {
		v := r[col]
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Where returns the rows whose col equals value.
func (d *Dataset) Where(col, value string) *Dataset {
	var rows []Record
	for _, r := range d.rows {
		if r[col] == value {
			rows = append(rows, r)
		}
	}
	return &Dataset{columns: d.columns, rows: rows}
}

// Count returns how many rows have col equal to value.
func (d *Dataset) Count(col, value string) int {
	n := 0
	for _, r := range d.rows {
		if r[col] == value {
			n++
		}
	}
	return n
}

// ValueCounts returns the distinct values of col in first-seen order and
// the number of rows holding each.
func (d *Dataset) ValueCounts(col string) ([]string, map[string]int) {
	counts := make(map[string]int)
	var values []string
	for _, r := range d.rows {
		v := r[col]
		if _, ok := counts[v]; !ok {
			values = append(values, v)
		}
		counts[v]++
	}
	return values, counts
}

// Mode returns the most frequent value of col. Ties go to the
// lexicographically smallest value. It returns "" for an empty dataset.
func (d *Dataset) Mode(col string) string {
	values, counts := d.ValueCounts(col)
	sort.Strings(values)
	best, bestCount := "", 0
	for _, v := range values {
		if counts[v] > bestCount {
			best, bestCount = v, counts[v]
		}
	}
	return best
}

// Validate checks the preconditions of training: at least one row and a
// target value in every row.
func (d *Dataset) Validate(target string) error {
	if d.Len() == 0 {
		return errors.ErrEmptyData
	}
	if !d.HasColumn(target) {
		return errors.NewValidationError("target", "column not found in header", target)
	}
	for i, r := range d.rows {
		if _, ok := r[target]; !ok {
			return errors.NewValidationError("target", "row has no target value", i)
		}
	}
	return nil
}

// WithColumn returns a copy of the dataset with an extra column. Existing
// rows are copied, the receiver is left untouched.
func (d *Dataset) WithColumn(name string, values []string) (*Dataset, error) {
	if len(values) != d.Len() {
		return nil, errors.NewDimensionError("WithColumn", d.Len(), len(values))
	}
	cols := d.Columns()
	if !d.HasColumn(name) {
		cols = append(cols, name)
	}
	rows := make([]Record, len(d.rows))
	for i, r := range d.rows {
		nr := make(Record, len(r)+1)
		for k, v := range r {
			nr[k] = v
		}
		nr[name] = values[i]
		rows[i] = nr
	}
	return &Dataset{columns: cols, rows: rows}, nil
}
