package pkgjson

import (
	"fmt"
	"io/fs"
)

// NotFoundError is returned when a directory has no package.json.
type NotFoundError struct {
	Dir string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found in %s", FileName, e.Dir)
}

func (e *NotFoundError) Unwrap() error {
	return fs.ErrNotExist
}

// ParseError is returned when package.json exists but is not valid JSON for
// a Manifest.
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
