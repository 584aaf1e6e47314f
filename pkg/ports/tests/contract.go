package tests

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/themer/pkg/domain"
	"github.com/aretw0/themer/pkg/ports"
)

// CompilerContractTest is a reusable test suite that verifies if an adapter complies with ports.Compiler.
// Output comparisons ignore whitespace so pretty and compact printers both pass.
func CompilerContractTest(t *testing.T, compiler ports.Compiler) {
	t.Helper()
	ctx := context.Background()
	dir := t.TempDir()

	// 1. Plain rule
	t.Run("Compile_PlainRule", func(t *testing.T) {
		got, err := compiler.Compile(ctx, ports.CompileRequest{
			Filename: filepath.Join(dir, "plain.less"),
			Source:   ".x{color:red;}",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if squash(got) != ".x{color:red;}" {
			t.Errorf("got %q, want .x{color:red;}", got)
		}
	})

	// 2. ModifyVars win over root declarations
	t.Run("Compile_ModifyVars", func(t *testing.T) {
		got, err := compiler.Compile(ctx, ports.CompileRequest{
			Filename:   filepath.Join(dir, "vars.less"),
			Source:     "@primary-color: red;\n.x { color: @primary-color; }",
			ModifyVars: map[string]string{"primary-color": "blue"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if squash(got) != ".x{color:blue;}" {
			t.Errorf("got %q, want .x{color:blue;}", got)
		}
	})

	// 3. Relative imports resolve against Filename
	t.Run("Compile_Import", func(t *testing.T) {
		if err := os.WriteFile(filepath.Join(dir, "base.less"), []byte("@base: green;"), 0644); err != nil {
			t.Fatal(err)
		}
		got, err := compiler.Compile(ctx, ports.CompileRequest{
			Filename: filepath.Join(dir, "entry.less"),
			Source:   "@import './base';\n.y { color: @base; }",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if squash(got) != ".y{color:green;}" {
			t.Errorf("got %q, want .y{color:green;}", got)
		}
	})

	// 4. Undefined variable is a CompileError with a location
	t.Run("Compile_UndefinedVariable", func(t *testing.T) {
		_, err := compiler.Compile(ctx, ports.CompileRequest{
			Filename: filepath.Join(dir, "broken.less"),
			Source:   ".x {\n  color: @missing;\n}",
		})
		var ce *domain.CompileError
		if !errors.As(err, &ce) {
			t.Fatalf("expected *domain.CompileError, got %v", err)
		}
		if ce.Line != 2 {
			t.Errorf("expected line 2, got %d", ce.Line)
		}
	})
}

func squash(s string) string {
	return strings.Join(strings.Fields(s), "")
}
