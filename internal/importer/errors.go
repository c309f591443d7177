package importer

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrEmptyData is returned when a source has no header row or no columns.
var ErrEmptyData = errors.New("no columns to parse from file")

// NotFoundError reports a missing input source.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("could not find confirmed fraud data at %s", e.Path)
}

// Is lets callers match with errors.Is(err, fs.ErrNotExist).
func (e *NotFoundError) Is(target error) bool {
	return target == fs.ErrNotExist
}

// MissingColumnError reports a required header that is absent after trimming.
type MissingColumnError struct {
	Column string
	Header []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing column %q (have %q)", e.Column, e.Header)
}
