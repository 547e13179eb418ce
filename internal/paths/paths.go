package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	homedir "github.com/mitchellh/go-homedir"

	"github.com/thoreinstein/dotbackup/internal/errors"
)

// AppName names the directory under ConfigHome holding configuration documents.
const AppName = "dotbackup"

// DefaultConfigName is the document used when neither -f nor -c is given.
const DefaultConfigName = "dotbackup"

// ConfigExtensions lists the document extensions tried for a named configuration,
// in order.
var ConfigExtensions = []string{".yml", ".yaml", ".toml"}

// ErrHomeDirNotFound indicates the user's home directory could not be determined.
var ErrHomeDirNotFound = errors.New("home directory not found")

func init() {
	// HOME is consulted on every call so tests and wrappers can redirect it.
	homedir.DisableCache = true
}

// ResolveHome returns the user's home directory.
// Returns a system error wrapping ErrHomeDirNotFound if it cannot be determined.
func ResolveHome() (string, error) {
	home, err := homedir.Dir()
	if err != nil || home == "" {
		if err == nil {
			err = errors.New("empty home directory")
		}
		return "", errors.System(errors.Wrap(ErrHomeDirNotFound, err.Error()),
			"unknown system, cannot decide home directory")
	}
	return filepath.Clean(home), nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// ConfigDir returns the directory holding dotbackup documents.
func ConfigDir() (string, error) {
	home := ConfigHome()
	if home == "" {
		return "", errors.Systemf("unknown system, cannot decide configuration directory")
	}
	return filepath.Join(home, AppName), nil
}

// DefaultConfigPath returns <ConfigDir>/dotbackup.yml.
func DefaultConfigPath() (string, error) {
	return NamedConfigPath(DefaultConfigName)
}

// NamedConfigPath returns the document path for a configuration name.
// The first existing file among NAME.yml, NAME.yaml and NAME.toml wins;
// when none exists NAME.yml is returned so the caller reports it as missing.
func NamedConfigPath(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return namedConfigPathIn(dir, name), nil
}

func namedConfigPathIn(dir, name string) string {
	for _, ext := range ConfigExtensions {
		p := filepath.Join(dir, name+ext)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return filepath.Join(dir, name+ConfigExtensions[0])
}

// Expand resolves a home-relative path. "~" becomes the home directory and
// "~/rest" becomes home/rest; anything else is returned unchanged.
func Expand(raw string) (string, error) {
	if raw != "~" && !strings.HasPrefix(raw, "~/") {
		return raw, nil
	}

	home, err := ResolveHome()
	if err != nil {
		return "", err
	}
	if raw == "~" {
		return home, nil
	}
	return filepath.Join(home, raw[2:]), nil
}

// Rel returns p relative to root and whether p lies under root.
// Both paths are cleaned first. A relative p is never under an absolute root.
// p equal to root is under it, with rel ".".
func Rel(root, p string) (string, bool) {
	root = filepath.Clean(root)
	p = filepath.Clean(p)

	if filepath.IsAbs(root) != filepath.IsAbs(p) {
		return "", false
	}

	rel, err := filepath.Rel(root, p)
	if err != nil {
		return "", false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}
