// Package prefs persists editor preferences in a small TOML file, the
// terminal counterpart of browser local storage.
package prefs

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
)

// File is a key/value preference store backed by a TOML file. Every Set
// rewrites the file.
type File struct {
	path   string
	mu     sync.Mutex
	values map[string]string
}

// Open loads preferences from path. A missing file is not an error.
func Open(path string) (*File, error) {
	f := &File{path: path, values: make(map[string]string)}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return f, nil
		}
		return nil, fmt.Errorf("failed to stat preferences: %w", err)
	}
	if _, err := toml.DecodeFile(path, &f.values); err != nil {
		return nil, fmt.Errorf("failed to decode preferences: %w", err)
	}
	return f, nil
}

func (f *File) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	return v, ok
}

func (f *File) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(f.values); err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}
