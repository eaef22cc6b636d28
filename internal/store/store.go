package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Store is the read/update surface over the persisted document. All
// access goes through closures so the implementation can serialize the
// full load-mutate-save sequence.
type Store interface {
	// View runs fn with the current document. Mutations made by fn are
	// not persisted.
	View(ctx context.Context, fn func(doc *Document) error) error

	// Update runs fn with the current document and persists the result
	// when fn returns nil. When fn returns an error nothing is written.
	Update(ctx context.Context, fn func(doc *Document) error) error
}

// FileStore persists the document as a single JSON file. A mutex
// serializes every load-mutate-save sequence, so concurrent command
// handlers cannot drop each other's writes, and saves go through a temp
// file plus rename so a crash never truncates the data file.
type FileStore struct {
	path   string
	logger *slog.Logger
	mu     sync.Mutex
}

// NewFileStore creates a store backed by the JSON file at path. The file
// does not need to exist yet.
func NewFileStore(path string, logger *slog.Logger) *FileStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileStore{
		path:   path,
		logger: logger.With("component", "store"),
	}
}

// View implements Store.
func (s *FileStore) View(ctx context.Context, fn func(doc *Document) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(s.load())
}

// Update implements Store.
func (s *FileStore) Update(ctx context.Context, fn func(doc *Document) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	if err := fn(doc); err != nil {
		return err
	}
	return s.save(doc)
}

// load reads and decodes the document. A missing file is a fresh install;
// an unreadable or corrupt file also recovers to an empty document, but
// is logged at error level so the two cases stay distinguishable.
func (s *FileStore) load() *Document {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug("Data file not found, starting with empty document", "path", s.path)
		} else {
			s.logger.Error("Failed to read data file, starting with empty document", "path", s.path, "error", err)
		}
		return NewDocument()
	}

	doc := NewDocument()
	if err := json.Unmarshal(raw, doc); err != nil {
		s.logger.Error("Data file is not valid JSON, starting with empty document", "path", s.path, "error", err)
		return NewDocument()
	}
	if doc.Users == nil {
		doc.Users = make(map[string]*Profile)
	}
	return doc
}

// save writes the document to a temp file in the same directory and
// renames it over the data file.
func (s *FileStore) save(doc *Document) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace data file: %w", err)
	}
	return nil
}
