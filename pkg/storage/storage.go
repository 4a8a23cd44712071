// Package storage persists decision trees by name.
//
// Two backends are available. FileStore keeps one JSON document per tree
// under a directory, which is the layout the CLI reads and writes. BoltStore
// keeps the same JSON documents in a single bbolt database so many trees
// can share one file.
package storage

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/YuminosukeSato/id3tree/pkg/errors"
	"github.com/YuminosukeSato/id3tree/sklearn/tree"
)

// DefaultName is the name the CLI stores its tree under.
const DefaultName = "decision_tree"

// Backend names accepted by Open.
const (
	BackendFile = "file"
	BackendBolt = "bolt"
)

// Store saves and loads trees by name.
type Store interface {
	Save(name string, root tree.Node) error
	Load(name string) (tree.Node, error)
	Close() error
}

// Open returns the store for backend rooted at dir.
func Open(backend, dir string) (Store, error) {
	switch backend {
	case BackendFile, "":
		return NewFileStore(dir)
	case BackendBolt:
		return NewBoltStore(dir)
	default:
		return nil, errors.NewValidationError("store", "unknown backend", backend)
	}
}

func checkName(name string) (string, error) {
	if name == "" {
		return DefaultName, nil
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", errors.NewValidationError("name", "tree name must not contain path separators", name)
	}
	return name, nil
}

// FileStore writes <dir>/<name>.json.
type FileStore struct {
	dir string
}

// NewFileStore creates dir if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create store directory %s", dir)
	}
	return &FileStore{dir: dir}, nil
}

// Path returns the file a tree named name is kept in.
func (s *FileStore) Path(name string) string {
	if name == "" {
		name = DefaultName
	}
	return filepath.Join(s.dir, name+".json")
}

// Save writes root, replacing any tree of the same name.
func (s *FileStore) Save(name string, root tree.Node) error {
	name, err := checkName(name)
	if err != nil {
		return err
	}
	data, err := tree.MarshalTree(root)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.Path(name), data, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write tree %q", name)
	}
	return nil
}

// Load reads the tree named name. ErrTreeNotFound is returned when no
// such file exists.
func (s *FileStore) Load(name string) (tree.Node, error) {
	name, err := checkName(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path(name))
	if os.IsNotExist(err) {
		return nil, errors.Wrapf(errors.ErrTreeNotFound, "%s", s.Path(name))
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read tree %q", name)
	}
	return tree.UnmarshalTree(data)
}

// Close is a no-op.
func (s *FileStore) Close() error {
	return nil
}
