package paths

import (
	"os"
	"path/filepath"
	"strings"
)

const rootEnv = "WSDEPS_ROOT"

// ResolveRoot picks the workspace root: the flag, then $WSDEPS_ROOT, then the
// nearest ancestor of the working directory holding marker, then the working
// directory itself.
func ResolveRoot(flagRoot, marker string) (string, error) {
	if flagRoot != "" {
		return normalizeRoot(flagRoot)
	}

	envRoot := os.Getenv(rootEnv)
	if envRoot != "" {
		return normalizeRoot(envRoot)
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(marker) != "" {
		found, ok, err := FindUp(wd, marker)
		if err != nil {
			return "", err
		}
		if ok {
			return found, nil
		}
	}
	return wd, nil
}

// FindUp walks from start towards the filesystem root and returns the first
// directory containing a file called name.
func FindUp(start, name string) (string, bool, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false, err
	}
	for {
		exists, err := FileExists(filepath.Join(dir, name))
		if err != nil {
			return "", false, err
		}
		if exists {
			return dir, true, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

func normalizeRoot(path string) (string, error) {
	expanded, err := expandHome(path)
	if err != nil {
		return "", err
	}
	return filepath.Abs(filepath.Clean(expanded))
}

func expandHome(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if path == "~" {
			return home, nil
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
	}

	return path, nil
}
