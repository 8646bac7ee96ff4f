package keypad

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
)

// Settings is durable, string-typed key-value storage for user preferences.
type Settings interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// MemorySettings keeps preferences in memory only.
type MemorySettings struct {
	mu     sync.Mutex
	values map[string]string
}

var _ Settings = &MemorySettings{}

func NewMemorySettings() *MemorySettings {
	return &MemorySettings{values: make(map[string]string)}
}

func (s *MemorySettings) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.values[key]
	return value, ok
}

func (s *MemorySettings) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		s.values = make(map[string]string)
	}
	s.values[key] = value
	return nil
}

// FileSettings stores preferences as a flat TOML table, rewriting the
// whole file on every Set.
type FileSettings struct {
	path   string
	mu     sync.Mutex
	values map[string]string
}

var _ Settings = &FileSettings{}

// OpenFileSettings loads path if it exists. A missing file is an empty store.
func OpenFileSettings(path string) (*FileSettings, error) {
	s := &FileSettings{path: path, values: make(map[string]string)}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the backing file.
func (s *FileSettings) Reload() error {
	values := make(map[string]string)
	if _, err := toml.DecodeFile(s.path, &values); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load settings %s: %w", s.path, err)
		}
	}

	s.mu.Lock()
	s.values = values
	s.mu.Unlock()
	return nil
}

func (s *FileSettings) Path() string {
	return s.path
}

func (s *FileSettings) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.values[key]
	return value, ok
}

func (s *FileSettings) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous, existed := s.values[key]
	s.values[key] = value

	if err := s.write(); err != nil {
		if existed {
			s.values[key] = previous
		} else {
			delete(s.values, key)
		}
		return err
	}
	return nil
}

func (s *FileSettings) write() error {
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create settings dir: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("write settings %s: %w", s.path, err)
	}
	if err := toml.NewEncoder(f).Encode(s.values); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("encode settings %s: %w", s.path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write settings %s: %w", s.path, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("write settings %s: %w", s.path, err)
	}
	return nil
}
