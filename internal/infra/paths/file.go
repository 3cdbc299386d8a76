package paths

import (
	"fmt"
	"os"
)

// FileExists reports whether path exists and is a regular file or symlink to one.
func FileExists(path string) (bool, error) {
	return statKind(path, false)
}

// DirExists reports whether path exists and is a directory.
func DirExists(path string) (bool, error) {
	return statKind(path, true)
}

func statKind(path string, wantDir bool) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	switch {
	case wantDir && !info.IsDir():
		return false, fmt.Errorf("path is not a directory: %s", path)
	case !wantDir && info.IsDir():
		return false, fmt.Errorf("path is a directory: %s", path)
	}
	return true, nil
}
