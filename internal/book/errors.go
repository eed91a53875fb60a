package book

import (
	"errors"
	"fmt"
)

var (
	// ErrBuilderNotFound indicates the configured builder command is not on PATH.
	ErrBuilderNotFound = errors.New("book builder not found")
	// ErrBuilderFailed indicates the builder ran and exited unsuccessfully.
	ErrBuilderFailed = errors.New("book builder failed")
	// ErrNotStaged is returned by operations that need Begin to have run.
	ErrNotStaged = errors.New("no staging directory initialized")
)

// DuplicateFileError reports a second write to an already staged file.
type DuplicateFileError struct {
	Name   string
	First  string
	Second string
}

func (e *DuplicateFileError) Error() string {
	return fmt.Sprintf("file %s staged twice (by %s and %s)", e.Name, e.First, e.Second)
}

// BrokenLinkError reports a navigation entry whose target was never staged.
type BrokenLinkError struct {
	Text   string
	Target string
}

func (e *BrokenLinkError) Error() string {
	return fmt.Sprintf("navigation entry %q links to missing page %s", e.Text, e.Target)
}
