package ports

import "context"

// CompileRequest is one stylesheet compilation.
type CompileRequest struct {
	// Filename is the path of Source, used to resolve relative imports.
	Filename string
	Source   string
	// ModifyVars are applied last, overriding same-named root variables.
	ModifyVars map[string]string
	// JavascriptEnabled allows inline expression evaluation where supported.
	JavascriptEnabled bool
}

// Compiler turns a layered stylesheet document into CSS.
// Syntax and reference failures must be returned as *domain.CompileError.
type Compiler interface {
	Compile(ctx context.Context, req CompileRequest) (string, error)
}

// Minifier is a pure CSS to CSS transform.
type Minifier interface {
	Minify(css string) (string, error)
}

// InlineScripter is implemented by compilers that evaluate inline
// JavaScript when CompileRequest.JavascriptEnabled is set. The base palette
// modules defining the helper functions are only layered for them.
type InlineScripter interface {
	EvaluatesInlineJavaScript() bool
}
