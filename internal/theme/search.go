package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound is returned when no search directory holds the theme.
var ErrNotFound = errors.New("theme not found")

// SharePath is the system-wide theme directory.
var SharePath = "/usr/share/bmpanel/themes"

// SearchPath returns the directories searched for named themes: extra
// directories first, then ~/.bmpanel/themes, then SharePath.
func SearchPath(extra []string) []string {
	dirs := append([]string(nil), extra...)
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".bmpanel", "themes"))
	}
	return append(dirs, SharePath)
}

// Resolve returns the directory of theme name. Each search directory is tried
// in order; name itself is tried last as a plain path.
func Resolve(name string, dirs []string) (string, error) {
	candidates := make([]string, 0, len(dirs)+1)
	if !filepath.IsAbs(name) {
		for _, dir := range dirs {
			candidates = append(candidates, filepath.Join(dir, name))
		}
	}
	candidates = append(candidates, name)

	for _, dir := range candidates {
		info, err := os.Stat(filepath.Join(dir, FileName))
		if err == nil && !info.IsDir() {
			return dir, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, name)
}
