// Package jsonstore provides a flat-file collection store. Each store holds
// one JSON array, read and rewritten wholesale on every operation.
package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Store persists a collection of records as a single JSON array file.
//
// The mutex serializes read-modify-write cycles within this process. The
// file itself carries no cross-process locking: two processes writing the
// same store can still lose an update, a known limitation of the flat-file
// layout.
type Store[T any] struct {
	path string
	mu   sync.RWMutex
}

// New creates a store backed by the JSON array file at path.
func New[T any](path string) *Store[T] {
	return &Store[T]{path: path}
}

// Path returns the backing file path.
func (s *Store[T]) Path() string {
	return s.path
}

// Load reads and decodes the whole collection. A missing file surfaces as
// an error wrapping fs.ErrNotExist; callers decide whether that means an
// empty collection or a misconfiguration.
func (s *Store[T]) Load(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.load()
}

// Update runs mutate against the current collection under the write lock
// and persists its result. It returns the stored collection. The backing
// file not existing yet is treated as an empty collection.
func (s *Store[T]) Update(ctx context.Context, mutate func(records []T) ([]T, error)) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		records = nil
	}

	records, err = mutate(records)
	if err != nil {
		return nil, err
	}

	if err := s.save(records); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *Store[T]) load() ([]T, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return records, nil
}

// save writes the whole collection to a temp file and renames it over the
// store path, so readers never observe a partially written array.
func (s *Store[T]) save(records []T) error {
	if records == nil {
		records = []T{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.path, err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".jsonstore-*")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}
