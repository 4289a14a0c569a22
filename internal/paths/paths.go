// Package paths resolves the loadcfg CLI's own directories following the
// XDG base directory specification.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// AppName is the application name used in directory and config file naming.
const AppName = "loadcfg"

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// AppConfigDir returns the CLI's own config directory:
// <ConfigHome>/loadcfg/.
func AppConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// TemplatesDir returns the directory searched for schema files when the
// --schema flag is omitted: <ConfigHome>/loadcfg/templates/.
func TemplatesDir() string {
	return filepath.Join(AppConfigDir(), "templates")
}

// EnsureDir creates the directory and any necessary parents with specified
// permissions. If perm is 0, DefaultDirPerm (0700) is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}
