package file

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/digits/pkg/domain"
)

// DefaultDir is used when New is given an empty directory.
var DefaultDir = filepath.Join(".digits", "cache")

// entry is the on-disk envelope. Filenames are digests, so the key travels with the result.
type entry struct {
	Key    string         `json:"key"`
	Result *domain.Result `json:"result"`
}

// Store implements ports.ResultCache using the local filesystem.
// It stores one JSON file per query key in a configured directory.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
func New(basePath string) *Store {
	if basePath == "" {
		basePath = DefaultDir
	}
	return &Store{BasePath: basePath}
}

func (s *Store) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(s.BasePath, hex.EncodeToString(sum[:])+".json")
}

// Save persists the result to a JSON file atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to the destination.
func (s *Store) Save(ctx context.Context, key string, result *domain.Result) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}

	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure cache directory: %w", err)
	}

	data, err := json.Marshal(entry{Key: key, Result: result})
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	// Same directory as the destination so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Windows cannot rename an open file.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	destPath := s.path(key)
	if _, err := os.Stat(destPath); err == nil {
		// os.Rename fails on Windows when the destination exists.
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing cache file for overwrite: %w", err)
		}
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file into place: %w", err)
	}
	return nil
}

// Load retrieves the result for key from its JSON file.
func (s *Store) Load(ctx context.Context, key string) (*domain.Result, error) {
	e, err := s.read(s.path(key))
	if err != nil {
		return nil, err
	}
	if e.Key != key {
		// Digest collision or a file that was tampered with.
		return nil, domain.ErrResultNotFound
	}
	return e.Result, nil
}

// Delete removes the result file. Missing keys are not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete cache file: %w", err)
	}
	return nil
}

// List returns the keys of all readable cache files.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list cache: %w", err)
	}

	keys := []string{}
	for _, de := range entries {
		name := de.Name()
		if de.IsDir() || filepath.Ext(name) != ".json" || strings.HasPrefix(name, "tmp-") {
			continue
		}
		e, err := s.read(filepath.Join(s.BasePath, name))
		if err != nil {
			continue
		}
		keys = append(keys, e.Key)
	}
	return keys, nil
}

func (s *Store) read(path string) (*entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrResultNotFound
		}
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached result: %w", err)
	}
	if e.Result == nil {
		return nil, fmt.Errorf("cache file %s has no result", filepath.Base(path))
	}
	return &e, nil
}
