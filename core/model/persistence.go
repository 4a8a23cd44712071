package model

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/YuminosukeSato/id3tree/pkg/errors"
)

// Indent is the indentation used for persisted models.
const Indent = "    "

// EncodeJSON writes v to w as indented JSON. Map keys come out sorted and
// HTML characters are not escaped, so labels such as "<2" stay readable.
func EncodeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", Indent)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, "failed to encode model")
	}
	return nil
}

// DecodeJSON reads one JSON document from r into v.
func DecodeJSON(r io.Reader, v interface{}) error {
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return errors.Wrap(err, "failed to decode model")
	}
	return nil
}

// SaveJSON writes v to filename, creating the parent directory.
//
// Example:
//
//	err := model.SaveJSON(tree.ToDict(root), "artifacts/decision_tree.json")
func SaveJSON(v interface{}, filename string) (err error) {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return errors.Wrapf(err, "failed to create directory for %s", filename)
	}
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "failed to create file")
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = errors.Wrap(cerr, "failed to close file")
		}
	}()
	return EncodeJSON(file, v)
}

// LoadJSON reads filename into v.
func LoadJSON(v interface{}, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return errors.Wrap(err, "failed to open file")
	}
	defer file.Close()
	return DecodeJSON(file, v)
}
