package process

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/themer/pkg/domain"
	"github.com/aretw0/themer/pkg/ports"
	"github.com/aretw0/themer/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseError(t *testing.T) {
	testCases := []struct {
		name     string
		stderr   string
		expected *domain.CompileError
	}{
		{
			name:   "Located",
			stderr: "NameError: variable @undefined-var is undefined in /tmp/pro.less on line 2, column 10:\n1 .x {\n2   color: @undefined-var;\n",
			expected: &domain.CompileError{
				Type:    "NameError",
				Message: "variable @undefined-var is undefined",
				File:    "/tmp/pro.less",
				Line:    2,
				Column:  10,
			},
		},
		{
			name:     "Plain",
			stderr:   "FileError: '/nope.less' wasn't found\n",
			expected: &domain.CompileError{Type: "FileError", Message: "'/nope.less' wasn't found"},
		},
		{
			name:     "Unrecognized",
			stderr:   "segmentation fault",
			expected: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ParseError(tc.stderr))
		})
	}
}

func TestModifyVarArgs(t *testing.T) {
	args := modifyVarArgs(map[string]string{"@primary-color": "#1890ff", "border-radius": "2px"})
	assert.Equal(t, []string{
		"--modify-var=border-radius=2px",
		"--modify-var=primary-color=#1890ff",
	}, args)

	args = modifyVarArgs(map[string]string{"@x": "1", "x": "2", "a": "3"})
	assert.Equal(t, []string{"--modify-var=a=3", "--modify-var=x=2"}, args)
}

func TestCompiler_MissingBinary(t *testing.T) {
	dir := t.TempDir()
	c := NewCompiler(WithConfig(Config{Command: "themer-no-such-lessc"}))

	_, err := c.Compile(context.Background(), ports.CompileRequest{
		Filename: filepath.Join(dir, "pro.less"),
		Source:   ".x{color:red;}",
	})
	require.Error(t, err)

	var cerr *domain.CompileError
	assert.False(t, errors.As(err, &cerr), "a missing binary is not a stylesheet error")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "compiler input must be removed")
}

func TestCompiler_Contract(t *testing.T) {
	if !DefaultConfig().Available() {
		t.Skip("lessc not installed")
	}
	tests.CompilerContractTest(t, NewCompiler())
}
