package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sstent/atlog/internal/api"
)

// Session holds the logged-in user's credentials plus the currently
// selected country. Only the credentials are persisted; the country
// selection lives for a single invocation and always starts at PT.
type Session struct {
	Username string
	Password string
	Country  api.Country
}

// storedCredentials is the on-disk shape. The fixed keys match what
// the service's other clients persist.
type storedCredentials struct {
	Usuario string `json:"usuario"`
	Senha   string `json:"senha"`
}

// Store persists credentials at a fixed path across invocations.
type Store struct {
	path string
}

// NewStore creates a store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load restores a session from disk. A missing file means no session
// and returns (nil, nil); the credentials are not validated against
// the server until the first authenticated call.
func (s *Store) Load() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var creds storedCredentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}
	if creds.Usuario == "" {
		return nil, nil
	}

	return &Session{
		Username: creds.Usuario,
		Password: creds.Senha,
		Country:  api.CountryPT,
	}, nil
}

// Save persists the session's credentials. The file is user-readable
// only since it holds a plaintext password.
func (s *Store) Save(sess *Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := json.Marshal(storedCredentials{
		Usuario: sess.Username,
		Senha:   sess.Password,
	})
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Clear removes the persisted credentials. Logout is purely local; no
// server call is ever made.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
