// Package storage is the durable client-side key/value store that stands in
// for browser localStorage: one small file per key under the state dir.
package storage

import (
	"os"
	"path/filepath"
	"strings"
)

type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

// Get returns the stored value, or ok=false when the key is missing or
// unreadable. Corruption at this layer is indistinguishable from absence on
// purpose: callers must treat both as "not there".
func (s *Store) Get(key string) ([]byte, bool) {
	b, err := os.ReadFile(s.path(key))
	if err != nil {
		return nil, false
	}
	return b, true
}

// Put writes atomically: temp file then rename, so a crash mid-write never
// leaves a truncated value behind.
func (s *Store) Put(key string, v []byte) error {
	p := s.path(key)
	tmp, err := os.CreateTemp(s.dir, "."+filepath.Base(p)+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(v); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), p)
}

// Delete removes the key; deleting an absent key succeeds.
func (s *Store) Delete(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *Store) path(key string) string {
	// Keys are fixed short names; Base guards against anything else.
	return filepath.Join(s.dir, filepath.Base(strings.TrimSpace(key)))
}
