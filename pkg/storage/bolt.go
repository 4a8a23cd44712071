package storage

import (
	"path/filepath"
	"time"

	"github.com/YuminosukeSato/id3tree/pkg/errors"
	"github.com/YuminosukeSato/id3tree/sklearn/tree"
	"go.etcd.io/bbolt"
)

const (
	boltFile    = "id3tree.db"
	treesBucket = "trees"
)

// BoltStore keeps trees in <dir>/id3tree.db, one key per name in the
// "trees" bucket. Values are the JSON documents FileStore writes.
type BoltStore struct {
	db *bbolt.DB
}

// NewBoltStore opens or creates the database under dir.
func NewBoltStore(dir string) (*BoltStore, error) {
	if _, err := NewFileStore(dir); err != nil {
		return nil, err
	}
	db, err := bbolt.Open(filepath.Join(dir, boltFile), 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(treesBucket)); err != nil {
			return errors.Wrap(err, "create trees bucket")
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &BoltStore{db: db}, nil
}

// Save stores root under name.
func (s *BoltStore) Save(name string, root tree.Node) error {
	name, err := checkName(name)
	if err != nil {
		return err
	}
	data, err := tree.MarshalTree(root)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(treesBucket)).Put([]byte(name), data)
	})
}

// Load returns the tree stored under name, or ErrTreeNotFound.
func (s *BoltStore) Load(name string) (tree.Node, error) {
	name, err := checkName(name)
	if err != nil {
		return nil, err
	}
	var data []byte
	err = s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket([]byte(treesBucket)).Get([]byte(name))
		if v == nil {
			return errors.Wrapf(errors.ErrTreeNotFound, "%q", name)
		}
		// v is only valid inside the transaction
		data = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tree.UnmarshalTree(data)
}

// Names lists the stored trees in key order.
func (s *BoltStore) Names() ([]string, error) {
	var names []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(treesBucket)).ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	return names, err
}

// Delete removes the tree stored under name. Deleting a missing name is
// not an error.
func (s *BoltStore) Delete(name string) error {
	name, err := checkName(name)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(treesBucket)).Delete([]byte(name))
	})
}

// Close closes the database. It is safe to call more than once.
func (s *BoltStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
