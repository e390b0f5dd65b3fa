// Package filex contains small filesystem helpers shared by client components.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureUserDir resolves <user-config-dir>/<appName> and creates it if
// missing. This is where the credential store keeps its files; a CLI must
// not scribble in the working directory.
func EnsureUserDir(appName string) (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}

	dir := filepath.Join(base, appName)

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// Exists reports whether path exists. Errors other than fs.ErrNotExist are
// treated as "exists" so callers fail later with a more specific error.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
