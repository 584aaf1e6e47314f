package less

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalizeClasses(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "Class",
			src:  ".a { color: red; }",
			want: ".p-a {\n  color: red;\n}\n",
		},
		{
			name: "PseudoAndDescendant",
			src:  ".a:hover .b { color: red; }",
			want: ".p-a:hover .p-b {\n  color: red;\n}\n",
		},
		{
			name: "GlobalFunction",
			src:  ".a :global(.ant-btn) { color: red; }",
			want: ".p-a .ant-btn {\n  color: red;\n}\n",
		},
		{
			name: "BareGlobalEndsAtComma",
			src:  ":global .x .y, .z { color: red; }",
			want: ".x .y, .p-z {\n  color: red;\n}\n",
		},
		{
			name: "Nested",
			src:  ".a { .b { color: red; } }",
			want: ".p-a {\n  .p-b {\n    color: red;\n  }\n}\n",
		},
		{
			name: "MixinUntouched",
			src:  ".m() { color: red; }\n.a { .m(); }",
			want: ".m() {\n  color: red;\n}\n.p-a {\n  .m();\n}\n",
		},
		{
			name: "IdAndElementUntouched",
			src:  "#root div { color: red; }",
			want: "#root div {\n  color: red;\n}\n",
		},
		{
			name: "VariablesKept",
			src:  "@c: red;\n.a { color: @c; }",
			want: "@c: red;\n.p-a {\n  color: @c;\n}\n",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := LocalizeClasses("index.less", tc.src, "p-")
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLocalizeClasses_Media(t *testing.T) {
	got, err := LocalizeClasses("index.less", "@media screen { .a { color: red; } }", "p-")
	require.NoError(t, err)
	assert.Contains(t, got, ".p-a {")
	assert.Contains(t, got, "@media screen {")
}

func TestLocalizeClasses_ParseError(t *testing.T) {
	_, err := LocalizeClasses("index.less", ".a { color: red; ", "p-")
	assert.Error(t, err)
}
