// Package secret keeps the task tracker API token out of the config file.
package secret

import (
	"encoding/json"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/xolan/tasktime/internal/osutil"
)

const (
	// CredentialsFile is the name of the token file in the app directory
	CredentialsFile = "credentials.json"
	// EnvToken overrides the stored token when set
	EnvToken = "TASKTIME_TOKEN"
)

// ErrNoToken is returned when no token has been stored.
var ErrNoToken = errors.New("no API token stored")

// Store persists a single API token.
type Store interface {
	Get() (string, error)
	Set(token string) error
	Delete() error
}

// credentials is the on-disk layout of the credentials file
type credentials struct {
	Token     string    `json:"token"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FileStore keeps the token in a JSON file readable only by the owner.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// GetCredentialsPath returns the default credentials file location.
func GetCredentialsPath() (string, error) {
	return osutil.AppFile(CredentialsFile)
}

// Path returns the file the token is stored in.
func (s *FileStore) Path() string {
	return s.path
}

// Get returns the stored token or ErrNoToken.
func (s *FileStore) Get() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoToken
		}
		return "", err
	}

	var c credentials
	if err := json.Unmarshal(data, &c); err != nil {
		return "", err
	}
	if c.Token == "" {
		return "", ErrNoToken
	}
	return c.Token, nil
}

// Set stores token, replacing any previous one.
// Uses atomic write pattern (write to temp file, then rename).
func (s *FileStore) Set(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("token cannot be empty")
	}

	// credentials contains only JSON-safe types, so Marshal cannot fail
	data, _ := json.MarshalIndent(credentials{Token: token, UpdatedAt: time.Now()}, "", "  ")

	tmpFile := s.path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		return err
	}
	if err := os.Rename(tmpFile, s.path); err != nil {
		_ = os.Remove(tmpFile)
		return err
	}
	return nil
}

// Delete removes the stored token. Deleting a missing token is not an error.
func (s *FileStore) Delete() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// EnvStore prefers the TASKTIME_TOKEN environment variable over the
// wrapped store for reads. Writes go to the wrapped store.
type EnvStore struct {
	Store
	lookup func(string) (string, bool)
}

// NewEnvStore wraps store with the environment override.
func NewEnvStore(store Store) *EnvStore {
	return &EnvStore{Store: store, lookup: os.LookupEnv}
}

// Get returns the environment token when set, else the stored token.
func (s *EnvStore) Get() (string, error) {
	if v, ok := s.lookup(EnvToken); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v), nil
	}
	return s.Store.Get()
}

// FromEnv reports whether the token currently comes from the environment.
func (s *EnvStore) FromEnv() bool {
	v, ok := s.lookup(EnvToken)
	return ok && strings.TrimSpace(v) != ""
}

// Mask shortens a token for display, keeping the last four characters.
func Mask(token string) string {
	if len(token) <= 4 {
		return strings.Repeat("*", len(token))
	}
	return strings.Repeat("*", 8) + token[len(token)-4:]
}
