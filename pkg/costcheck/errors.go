package costcheck

import (
	"errors"
	"fmt"
)

// ErrUnreadable indicates the file bytes could not be read.
var ErrUnreadable = errors.New("file unreadable")

// ErrUnparseable indicates the bytes are not a workbook this tool can open.
var ErrUnparseable = errors.New("workbook unparseable")

// FileError represents a failure to process one file. It never aborts the
// remaining files of a run.
type FileError struct {
	File  string
	Stage string // "read", "parse", "evaluate"
	Err   error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s (%s): %v", e.File, e.Stage, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// NewFileError creates a new FileError.
func NewFileError(file, stage string, err error) *FileError {
	return &FileError{
		File:  file,
		Stage: stage,
		Err:   err,
	}
}
