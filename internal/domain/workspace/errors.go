package workspace

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	errMissingPackages = errors.New("packages field is required")
	errOutsideRoot     = errors.New("pattern must stay inside the workspace root")
)

// ConfigNotFoundError is returned when the root has no pnpm-workspace.yaml.
type ConfigNotFoundError struct {
	Root string
	Path string
}

func (e *ConfigNotFoundError) Error() string {
	return fmt.Sprintf("could not find %s at %q", ConfigFileName, e.Root)
}

func (e *ConfigNotFoundError) Unwrap() error {
	return fs.ErrNotExist
}

// ParseError is returned for an unreadable workspace file or an invalid
// package pattern.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
