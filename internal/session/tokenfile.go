package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File names match the keys the web frontend used in browser storage.
const (
	tokenFileName    = "raven_auth_token"
	intendedFileName = "raven_intended_company"
)

// TokenStorage persists the bearer token across process restarts.
type TokenStorage interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// IntendedCompanyStorage persists the company staged by an unauthenticated
// application so a later login, possibly in another process, can adopt it.
type IntendedCompanyStorage interface {
	LoadIntendedCompany() (string, error)
	SaveIntendedCompany(id string) error
	ClearIntendedCompany() error
}

// FileTokenStorage keeps the token in a flat file, by default under
// ~/.raven/.
type FileTokenStorage struct {
	path string
}

func NewFileTokenStorage(path string) (*FileTokenStorage, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		path = filepath.Join(home, ".raven", tokenFileName)
	}
	return &FileTokenStorage{path: path}, nil
}

func (s *FileTokenStorage) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read token file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *FileTokenStorage) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return nil
}

func (s *FileTokenStorage) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}

// The staged company lives in a sibling file next to the token.
func (s *FileTokenStorage) intendedPath() string {
	return filepath.Join(filepath.Dir(s.path), intendedFileName)
}

func (s *FileTokenStorage) LoadIntendedCompany() (string, error) {
	data, err := os.ReadFile(s.intendedPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read intended company file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *FileTokenStorage) SaveIntendedCompany(id string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(s.intendedPath(), []byte(id), 0o600); err != nil {
		return fmt.Errorf("write intended company file: %w", err)
	}
	return nil
}

func (s *FileTokenStorage) ClearIntendedCompany() error {
	if err := os.Remove(s.intendedPath()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove intended company file: %w", err)
	}
	return nil
}
