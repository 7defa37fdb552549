package prefs

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

const (
	appDirName      = "sideswipe"
	defaultFileName = "preferences.toml"

	dirPerm  = 0o755
	filePerm = 0o644
)

// DefaultPath returns <user config dir>/sideswipe/preferences.toml.
func DefaultPath() (string, error) {
	dir, err := userConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(dir, appDirName, defaultFileName), nil
}

// userConfigDir is swapped in tests.
var userConfigDir = os.UserConfigDir

// FileBackend persists values as a TOML document. Keys it does not know
// about are kept and written back unchanged.
type FileBackend struct {
	path string

	mu     sync.Mutex
	values map[string]any
}

// OpenFileBackend reads path if it exists. A missing file is an empty store;
// the file and its directory are created on the first write.
func OpenFileBackend(path string) (*FileBackend, error) {
	if path == "" {
		return nil, errors.New("preferences path must not be empty")
	}

	values, err := readValues(path)
	if err != nil {
		return nil, err
	}
	return &FileBackend{path: path, values: values}, nil
}

// Path reports the file location.
func (f *FileBackend) Path() string {
	return f.path
}

// Reload replaces the cached values with the file's current contents.
func (f *FileBackend) Reload() error {
	values, err := readValues(f.path)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.values = values
	f.mu.Unlock()
	return nil
}

// Strings returns the cached list stored under key.
func (f *FileBackend) Strings(key string) ([]string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return stringsValue(f.values, key)
}

// Bool returns the cached flag stored under key.
func (f *FileBackend) Bool(key string) (bool, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return boolValue(f.values, key)
}

// SetStrings writes values under key. Other keys keep whatever the file holds
// at the time of the write.
func (f *FileBackend) SetStrings(key string, values []string) error {
	if values == nil {
		values = []string{}
	}
	return f.update(key, append([]string(nil), values...))
}

// SetBool writes value under key. Other keys keep whatever the file holds at
// the time of the write.
func (f *FileBackend) SetBool(key string, value bool) error {
	return f.update(key, value)
}

// update re-reads the file so values written by another process since the
// last read survive, then replaces only key.
func (f *FileBackend) update(key string, value any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := readValues(f.path)
	if err != nil {
		return err
	}
	values[key] = value
	if err := writeValues(f.path, values); err != nil {
		return err
	}
	f.values = values
	return nil
}

func readValues(path string) (map[string]any, error) {
	values := make(map[string]any)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return values, nil
		}
		return nil, fmt.Errorf("read preferences %q: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return values, nil
	}
	if err := toml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("decode preferences %q: %w", path, err)
	}
	return values, nil
}

func writeValues(path string, values map[string]any) error {
	data, err := toml.Marshal(values)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("ensure preferences dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+defaultFileName+".*")
	if err != nil {
		return fmt.Errorf("create temp preferences: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp preferences: %w", err)
	}
	if err := tmp.Chmod(filePerm); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp preferences: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp preferences: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace preferences: %w", err)
	}
	return nil
}

func stringsValue(values map[string]any, key string) ([]string, bool, error) {
	raw, ok := values[key]
	if !ok {
		return nil, false, nil
	}
	switch v := raw.(type) {
	case []string:
		return append([]string(nil), v...), true, nil
	case []any:
		out := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false, fmt.Errorf("%s[%d]: expected string, got %T", key, i, item)
			}
			out = append(out, s)
		}
		return out, true, nil
	default:
		return nil, false, fmt.Errorf("%s: expected array of strings, got %T", key, raw)
	}
}

func boolValue(values map[string]any, key string) (bool, bool, error) {
	raw, ok := values[key]
	if !ok {
		return false, false, nil
	}
	b, ok := raw.(bool)
	if !ok {
		return false, false, fmt.Errorf("%s: expected boolean, got %T", key, raw)
	}
	return b, true, nil
}
