package model

import (
	"os"
	"path/filepath"
)

// defaultCacheDir picks a cache directory under the user's home, falling
// back to the system temp dir when no home is available
func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "sago-cache")
	}
	return filepath.Join(home, ".sago", "cache")
}
