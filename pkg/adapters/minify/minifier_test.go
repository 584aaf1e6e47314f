package minify_test

import (
	"testing"

	"github.com/aretw0/themer/pkg/adapters/minify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinifier(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Pretty",
			input:    ".x {\n  color: red;\n}\n",
			expected: ".x{color:red}",
		},
		{
			name:     "Empty",
			input:    "",
			expected: "",
		},
		{
			name:     "SelectorList",
			input:    ".a,\n.b {\n  margin: 0 auto;\n}\n",
			expected: ".a,.b{margin:0 auto}",
		},
	}

	m := minify.New()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := m.Minify(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}
