package ports

import "context"

// SourceAggregator collects a project's style sources into one document.
// Traversal order must be deterministic so equal trees give equal output.
type SourceAggregator interface {
	Aggregate(ctx context.Context, root string, isModule bool) (string, error)
}

// VariableResolver substitutes variable declarations ahead of rendering.
// filename locates the document for error reporting and relative imports.
type VariableResolver interface {
	Resolve(ctx context.Context, filename string, content string) (string, error)
}
