package domain

import (
	"errors"
	"fmt"
)

// ErrIO marks unreadable or unwritable paths. It is always fatal for a build.
var ErrIO = errors.New("io error")

// ErrStateNotFound is returned by a StateStore when a key was never saved.
var ErrStateNotFound = errors.New("state not found")

// ErrDocumentMissing is reported when the final layered document is absent at render time.
var ErrDocumentMissing = errors.New("final document missing")

// ErrKitDisabled is the resolution reason of an optional kit the caller opted out of.
var ErrKitDisabled = errors.New("kit disabled")

// ErrNoThemes is returned by front ends asked to build without any ThemeSpec.
var ErrNoThemes = errors.New("no themes requested")

// ErrUnknownCompiler is returned when a configured compiler name is not supported.
var ErrUnknownCompiler = errors.New("unknown compiler")

// CompileError describes a stylesheet syntax or reference failure.
// It is recoverable: the theme being rendered is skipped, the build continues.
type CompileError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	File    string `json:"file,omitempty"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

func (e *CompileError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("%s: %s", e.Type, e.Message)
	}
	return fmt.Sprintf("%s: %s in %s on line %d, column %d", e.Type, e.Message, e.File, e.Line, e.Column)
}

// ResolutionError describes a failed optional-kit lookup or variable resolution.
// It never aborts a build; the caller falls back to passthrough content.
type ResolutionError struct {
	Subject string
	Err     error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve %s: %v", e.Subject, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}
