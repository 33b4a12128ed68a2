// Package osutil resolves the application's files under the user config
// directory behind a swappable provider so tests can fail path resolution.
package osutil

import (
	"os"
	"path/filepath"
)

// AppName is the directory name used under the user config directory.
const AppName = "tasktime"

// PathProvider abstracts the OS calls needed to locate application files.
type PathProvider interface {
	UserConfigDir() (string, error)
	MkdirAll(path string, perm os.FileMode) error
}

// DefaultPathProvider uses real OS functions.
type DefaultPathProvider struct{}

// UserConfigDir returns the default root directory for user-specific configuration data.
func (DefaultPathProvider) UserConfigDir() (string, error) {
	return os.UserConfigDir()
}

// MkdirAll creates a directory named path, along with any necessary parents.
func (DefaultPathProvider) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Provider is the package-level path provider instance.
var Provider PathProvider = DefaultPathProvider{}

// SetProvider sets a custom provider (for testing).
func SetProvider(p PathProvider) {
	Provider = p
}

// ResetProvider resets to the default provider.
func ResetProvider() {
	Provider = DefaultPathProvider{}
}

// AppDir returns the application directory, creating it with 0700
// permissions when missing. It holds credentials, so it is private.
func AppDir() (string, error) {
	configDir, err := Provider.UserConfigDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(configDir, AppName)
	if err := Provider.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return dir, nil
}

// AppFile returns the path of name inside AppDir.
func AppFile(name string) (string, error) {
	dir, err := AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}
