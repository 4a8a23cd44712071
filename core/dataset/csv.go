package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"

	"github.com/YuminosukeSato/id3tree/pkg/errors"
)

// ReadCSV reads a table with a header row. Cells are kept verbatim as
// strings. A header without data rows yields an empty dataset, which
// Validate rejects.
func ReadCSV(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err == io.EOF {
		return New(nil, nil), nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "read csv header")
	}

	seen := make(map[string]struct{}, len(header))
	for _, h := range header {
		if _, dup := seen[h]; dup {
			return nil, errors.NewValidationError("header", "duplicate column", h)
		}
		seen[h] = struct{}{}
	}

	var rows []Record
	for line := 2; ; line++ {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read csv line %d", line)
		}
		rec := make(Record, len(header))
		for i, h := range header {
			rec[h] = fields[i]
		}
		rows = append(rows, rec)
	}
	return New(header, rows), nil
}

// ReadCSVFile reads the CSV file at path.
func ReadCSVFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()
	return ReadCSV(f)
}

// WriteCSV writes the header and rows in column order.
func WriteCSV(w io.Writer, d *Dataset) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(d.columns); err != nil {
		return errors.Wrap(err, "write csv header")
	}
	fields := make([]string, len(d.columns))
	for _, r := range d.rows {
		for i, c := range d.columns {
			fields[i] = r[c]
		}
		if err := writer.Write(fields); err != nil {
			return errors.Wrap(err, "write csv row")
		}
	}
	writer.Flush()
	return errors.Wrap(writer.Error(), "flush csv")
}

// WriteCSVFile writes d to path, creating parent directories.
func WriteCSVFile(path string, d *Dataset) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "create directory for %s", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrapf(cerr, "close %s", path)
		}
	}()
	return WriteCSV(f, d)
}
