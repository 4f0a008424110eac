package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps every board's config in a single JSON file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

type fileContents struct {
	Configs map[string]string `json:"configs"`
}

// NewFileStore creates a store backed by the file at path. The file and its
// directory are created on first write.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("file store: empty path")
	}
	return &FileStore{path: path}, nil
}

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	contents, err := s.read()
	if err != nil {
		return "", false, err
	}
	cfg, ok := contents.Configs[key]
	return cfg, ok, nil
}

func (s *FileStore) Set(ctx context.Context, key, config string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	contents, err := s.read()
	if err != nil {
		return err
	}
	contents.Configs[key] = config
	return s.write(contents)
}

func (s *FileStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	contents, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := contents.Configs[key]; !ok {
		return nil
	}
	delete(contents.Configs, key)
	return s.write(contents)
}

func (s *FileStore) List(ctx context.Context) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	contents, err := s.read()
	if err != nil {
		return nil, err
	}
	return contents.Configs, nil
}

// Close does nothing for the file store.
func (s *FileStore) Close() error {
	return nil
}

// read loads the file; a missing file is an empty store.
func (s *FileStore) read() (*fileContents, error) {
	contents := &fileContents{}
	data, err := os.ReadFile(s.path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("read store %q: %w", s.path, err)
	default:
		if err := json.Unmarshal(data, contents); err != nil {
			return nil, fmt.Errorf("decode store %q: %w", s.path, err)
		}
	}
	if contents.Configs == nil {
		contents.Configs = map[string]string{}
	}
	return contents, nil
}

func (s *FileStore) write(contents *fileContents) error {
	data, err := json.MarshalIndent(contents, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
