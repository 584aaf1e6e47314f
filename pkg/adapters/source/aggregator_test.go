package source_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/themer/pkg/adapters/source"
	"github.com/aretw0/themer/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
	return root
}

func TestAggregate_OrderAndMarkers(t *testing.T) {
	root := writeTree(t, map[string]string{
		"b.less":                     ".b { color: blue; }",
		"a/z.less":                   ".z { color: red; }\n",
		"a.less":                     ".a { color: green; }",
		"notes.txt":                  "ignored",
		"node_modules/x/x.less":      ".nm {}",
		".cache/y.less":              ".hidden {}",
		"nested/node_modules/q.less": ".nm2 {}",
	})

	got, err := source.New().Aggregate(context.Background(), root, false)
	require.NoError(t, err)

	want := "/* a/z.less */\n.z { color: red; }\n" +
		"/* a.less */\n.a { color: green; }\n" +
		"/* b.less */\n.b { color: blue; }\n"
	assert.Equal(t, want, got)
}

func TestAggregate_Deterministic(t *testing.T) {
	root := writeTree(t, map[string]string{
		"x.less": "@c: red;",
		"y.less": ".y { color: @c; }",
	})
	agg := source.New()
	first, err := agg.Aggregate(context.Background(), root, false)
	require.NoError(t, err)
	second, err := agg.Aggregate(context.Background(), root, false)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAggregate_Imports(t *testing.T) {
	outside := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outside, "shared.less"), []byte("@s: 1px;"), 0644))

	root := writeTree(t, map[string]string{
		"vars.less": "@c: red;",
		"a/index.less": "@import '../vars';\n" +
			"@import (reference) \"../vars.less\";\n" +
			"@import '~antd/es/style/themes/default.less';\n" +
			"@import './plain.css';\n" +
			".a { color: @c; }\n",
		"a/plain.css": ".plain {}",
	})
	rel, err := filepath.Rel(root, filepath.Join(outside, "shared"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.less"),
		[]byte("@import '"+filepath.ToSlash(rel)+"';\n"), 0644))

	got, err := source.New().Aggregate(context.Background(), root, false)
	require.NoError(t, err)

	assert.NotContains(t, got, "../vars")
	assert.Contains(t, got, "@import '~antd/es/style/themes/default.less';")
	assert.Contains(t, got, "@import '"+filepath.ToSlash(filepath.Join(root, "a", "plain.css"))+"';")
	assert.True(t, strings.Contains(got, filepath.ToSlash(filepath.Join(outside, "shared"))),
		"out-of-root imports become absolute: %s", got)
}

func TestAggregate_ModuleMode(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/components/GlobalHeader/index.less": ".title { color: red; }\n:global(.ant-btn) { color: blue; }\n",
		"styles/base.less":                       ".base { color: green; }\n",
	})

	got, err := source.New().Aggregate(context.Background(), root, true)
	require.NoError(t, err)
	assert.Contains(t, got, ".ygd-pro-components-global-header-index-title {")
	assert.Contains(t, got, ".ant-btn {")
	assert.Contains(t, got, ".base { color: green; }", "files outside src are left as is")

	plain, err := source.New().Aggregate(context.Background(), root, false)
	require.NoError(t, err)
	assert.Contains(t, plain, ".title { color: red; }")
}

func TestAggregate_ModuleModeFallsBackOnParseError(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/broken.less": ".a { color: red;",
	})
	got, err := source.New().Aggregate(context.Background(), root, true)
	require.NoError(t, err)
	assert.Contains(t, got, ".a { color: red;")
}

func TestAggregate_CustomIgnore(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.less":          ".a {}",
		"legacy/old.less": ".old {}",
	})
	got, err := source.New(source.WithIgnore("legacy/**")).Aggregate(context.Background(), root, false)
	require.NoError(t, err)
	assert.NotContains(t, got, ".old")
}

func TestAggregate_Errors(t *testing.T) {
	_, err := source.New().Aggregate(context.Background(), filepath.Join(t.TempDir(), "missing"), false)
	assert.ErrorIs(t, err, domain.ErrIO)

	file := filepath.Join(t.TempDir(), "file.less")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	_, err = source.New().Aggregate(context.Background(), file, false)
	assert.ErrorIs(t, err, domain.ErrIO)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = source.New().Aggregate(ctx, writeTree(t, map[string]string{"a.less": ""}), false)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAggregate_Empty(t *testing.T) {
	got, err := source.New().Aggregate(context.Background(), t.TempDir(), true)
	require.NoError(t, err)
	assert.Empty(t, got)
}
