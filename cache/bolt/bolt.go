// Package bolt persists the URL cache in a bbolt database file.
package bolt

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"github.com/jbaldus/shorten/cache"
)

const fileName = "urls.db"

var bucketName = []byte("urls")

// Store is an implementation of cache.Store that keeps entries in a
// bbolt.DB. Keys and values are raw bytes, so URLs containing spaces or
// any other special characters round-trip unchanged. bbolt holds an
// advisory lock on the file, concurrent invocations serialize on it
// instead of racing to write duplicate entries.
type Store struct {
	db *bbolt.DB
}

// New opens (creating if necessary) the cache file under opt.Path.
// The open waits at most one second for the file lock, a second running
// invocation fails here rather than blocking.
func New(opt cache.Options) (*Store, error) {
	if opt.Path == "" {
		return nil, errors.New("cache path is empty")
	}
	if err := os.MkdirAll(opt.Path, 0o700); err != nil {
		return nil, err
	}
	db, err := bbolt.Open(filepath.Join(opt.Path, fileName), 0o600, &bbolt.Options{
		Timeout:         time.Second,
		InitialMmapSize: 1024,
	})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Get returns the shortened URL stored for url.
func (s *Store) Get(url string) (shortened string, ok bool) {
	err := s.db.View(func(tx *bbolt.Tx) error {
		if value := tx.Bucket(bucketName).Get([]byte(url)); value != nil {
			shortened, ok = string(value), true
		}
		return nil
	})
	if err != nil {
		return "", false
	}
	return
}

// Put stores or replaces the shortened URL for url.
func (s *Store) Put(url, shortened string) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(url), []byte(shortened))
	})
	if err != nil {
		return fmt.Errorf("put %q: %w", url, err)
	}
	return nil
}

// Close syncs and closes the database.
func (s *Store) Close() error {
	if err := s.db.Sync(); err != nil {
		return err
	}
	return s.db.Close()
}
