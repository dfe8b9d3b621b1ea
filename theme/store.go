package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type prefFile struct {
	Theme string `toml:"theme"`
}

// Store persists the theme preference in a TOML file.
type Store struct {
	path string
}

// DefaultPath returns $XDG_CONFIG_HOME/fiberworld/theme.toml, falling back
// to ~/.config.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "fiberworld", "theme.toml")
}

// NewStore returns a Store at path; an empty path uses DefaultPath.
func NewStore(path string) *Store {
	if path == "" {
		path = DefaultPath()
	}
	return &Store{path: path}
}

// Path returns the file location.
func (s *Store) Path() string { return s.path }

// Load returns the saved mode. A missing file yields Dark with no error;
// an unknown value yields Dark and ErrUnknownMode.
func (s *Store) Load() (Mode, error) {
	var f prefFile
	if _, err := toml.DecodeFile(s.path, &f); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Dark, nil
		}
		return Dark, fmt.Errorf("theme.Load %s: %w", s.path, err)
	}
	m, err := ParseMode(f.Theme)
	if err != nil {
		return Dark, fmt.Errorf("theme.Load %s: %w", s.path, err)
	}
	return m, nil
}

// Save writes m, creating parent directories.
func (s *Store) Save(m Mode) error {
	if _, err := ParseMode(string(m)); err != nil {
		return fmt.Errorf("theme.Save: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("theme.Save: %w", err)
	}
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("theme.Save: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(prefFile{Theme: string(m)}); err != nil {
		return fmt.Errorf("theme.Save: %w", err)
	}
	return nil
}

// Bind saves every change of st. onErr, if non-nil, receives save failures.
func (s *Store) Bind(st *State, onErr func(error)) (cancel func()) {
	return st.OnChange(func(m Mode) {
		if err := s.Save(m); err != nil && onErr != nil {
			onErr(err)
		}
	})
}
