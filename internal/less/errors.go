package less

import (
	"fmt"

	"github.com/aretw0/themer/pkg/domain"
)

// Error types, named the way lessc names them.
const (
	ErrParse     = "ParseError"
	ErrName      = "NameError"
	ErrFile      = "FileError"
	ErrRecursion = "RecursionError"
	ErrSyntax    = "SyntaxError"
)

type pos struct {
	file string
	line int
	col  int
}

func newError(kind string, p pos, format string, args ...any) *domain.CompileError {
	return &domain.CompileError{
		Type:    kind,
		Message: fmt.Sprintf(format, args...),
		File:    p.file,
		Line:    p.line,
		Column:  p.col,
	}
}
