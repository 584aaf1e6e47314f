package process

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/aretw0/themer/pkg/domain"
	"github.com/aretw0/themer/pkg/ports"
)

// Compiler implements ports.Compiler by running the reference lessc binary.
// It supports the full LESS language, including inline JavaScript.
type Compiler struct {
	cfg     Config
	baseDir string
}

var (
	_ ports.Compiler       = (*Compiler)(nil)
	_ ports.InlineScripter = (*Compiler)(nil)
)

// CompilerOption configures the compiler.
type CompilerOption func(*Compiler)

// WithConfig replaces the command configuration.
func WithConfig(cfg Config) CompilerOption {
	return func(c *Compiler) {
		if cfg.Command != "" {
			c.cfg = cfg
		}
	}
}

// WithBaseDir sets the working directory of the compiler process.
func WithBaseDir(dir string) CompilerOption {
	return func(c *Compiler) {
		c.baseDir = dir
	}
}

// NewCompiler creates a compiler that shells out to lessc.
func NewCompiler(opts ...CompilerOption) *Compiler {
	c := &Compiler{cfg: DefaultConfig()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// EvaluatesInlineJavaScript reports that lessc runs inline JavaScript with --js.
func (c *Compiler) EvaluatesInlineJavaScript() bool {
	return true
}

// Compile writes the source next to req.Filename so relative imports keep
// resolving, runs the compiler on it and returns stdout.
func (c *Compiler) Compile(ctx context.Context, req ports.CompileRequest) (string, error) {
	dir := filepath.Dir(req.Filename)
	if req.Filename == "" {
		dir = os.TempDir()
	}
	tmp, err := os.CreateTemp(dir, ".themer-*"+domain.StyleExt)
	if err != nil {
		return "", fmt.Errorf("%w: create compiler input: %v", domain.ErrIO, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.WriteString(req.Source); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("%w: write compiler input: %v", domain.ErrIO, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("%w: close compiler input: %v", domain.ErrIO, err)
	}

	args := append([]string{}, c.cfg.Args...)
	args = append(args, "--no-color")
	if req.JavascriptEnabled {
		args = append(args, "--js")
	}
	args = append(args, modifyVarArgs(req.ModifyVars)...)
	args = append(args, tmpPath)

	cmd := exec.CommandContext(ctx, c.cfg.Command, args...)
	cmd.Dir = c.baseDir
	env := make([]string, 0, len(c.cfg.Environment))
	for k, v := range c.cfg.Environment {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}
	cmd.Env = append(cmd.Environ(), env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		msg := strings.ReplaceAll(stderr.String(), tmpPath, req.Filename)
		if cerr := ParseError(msg); cerr != nil {
			return "", cerr
		}
		return "", fmt.Errorf("%s failed: %v. Stderr: %s", c.cfg.Command, err, strings.TrimSpace(msg))
	}

	return stdout.String(), nil
}

// modifyVarArgs renders overrides as --modify-var flags sorted by name, so
// the command line is stable for equal maps. A leading "@" is dropped; when
// both "@x" and "x" are set the bare key wins, as in the builtin compiler.
func modifyVarArgs(vars map[string]string) []string {
	raw := make([]string, 0, len(vars))
	for k := range vars {
		raw = append(raw, k)
	}
	sort.Strings(raw)

	named := make(map[string]string, len(vars))
	for _, k := range raw {
		named[strings.TrimPrefix(k, "@")] = vars[k]
	}

	names := make([]string, 0, len(named))
	for k := range named {
		names = append(names, k)
	}
	sort.Strings(names)

	args := make([]string, 0, len(names))
	for _, k := range names {
		args = append(args, fmt.Sprintf("--modify-var=%s=%s", k, named[k]))
	}
	return args
}

var (
	locatedErr = regexp.MustCompile(`(?m)^(\w*Error): (.*?) in (.+?) on line (\d+), column (\d+):?`)
	plainErr   = regexp.MustCompile(`(?m)^(\w*Error): (.+)$`)
)

// ParseError extracts the first diagnostic of a lessc stderr dump.
// It returns nil when the text has no recognizable error line.
func ParseError(stderr string) *domain.CompileError {
	if m := locatedErr.FindStringSubmatch(stderr); m != nil {
		line, _ := strconv.Atoi(m[4])
		col, _ := strconv.Atoi(m[5])
		return &domain.CompileError{
			Type:    m[1],
			Message: m[2],
			File:    m[3],
			Line:    line,
			Column:  col,
		}
	}
	if m := plainErr.FindStringSubmatch(stderr); m != nil {
		return &domain.CompileError{Type: m[1], Message: strings.TrimSpace(m[2])}
	}
	return nil
}
