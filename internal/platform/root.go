package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigFile is the optional project configuration file name.
const ConfigFile = "folio.yaml"

// FindRoot looks upwards from startDir for a project root indicator.
// Indicators are, in order of precedence within one directory: a folio.yaml
// file, a src/data directory, or a .git directory.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if hasFile(dir, ConfigFile) || hasDir(dir, filepath.Join("src", "data")) || hasFile(dir, ".git") {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("no project root above %s", abs)
}

func hasFile(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}

func hasDir(dir, name string) bool {
	info, err := os.Stat(filepath.Join(dir, name))
	return err == nil && info.IsDir()
}
