package themer_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/themer"
	"github.com/aretw0/themer/pkg/adapters/memory"
	"github.com/aretw0/themer/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, files map[string]string) (root, out string) {
	t.Helper()
	base := t.TempDir()
	root = filepath.Join(base, "project")
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
	require.NoError(t, os.MkdirAll(root, 0755))
	return root, filepath.Join(base, "dist")
}

func TestBuilder_Integration(t *testing.T) {
	root, out := setup(t, map[string]string{"index.less": ".x{color:red}"})
	scratch := filepath.Join(t.TempDir(), "scratch")

	b, err := themer.New(themer.WithScratchDir(scratch))
	require.NoError(t, err)
	assert.Equal(t, scratch, b.Scratch())

	specs := []domain.ThemeSpec{{Theme: "light", FileName: filepath.Join(out, "light.css")}}
	report, err := b.Build(context.Background(), root, specs, domain.DefaultBuildOptions())
	require.NoError(t, err)
	assert.False(t, report.Skipped)

	css, err := os.ReadFile(filepath.Join(out, "light.css"))
	require.NoError(t, err)
	assert.Equal(t, ".x{color:red}", string(css))

	report, err = b.Build(context.Background(), root, specs, domain.DefaultBuildOptions())
	require.NoError(t, err)
	assert.True(t, report.Skipped)

	require.NoError(t, b.Clean(context.Background()))
	assert.NoDirExists(t, scratch)
}

func TestBuilder_TildeImports(t *testing.T) {
	root, out := setup(t, map[string]string{
		"node_modules/brand/vars.less": "@brand: teal;",
		"index.less":                   "@import '~brand/vars';\n.x { color: @brand; }\n",
	})

	b, err := themer.New(themer.WithScratchDir(t.TempDir()), themer.WithStore(memory.NewStore()))
	require.NoError(t, err)

	report, err := b.Build(context.Background(), root, []domain.ThemeSpec{{FileName: filepath.Join(out, "x.css")}}, domain.DefaultBuildOptions())
	require.NoError(t, err)
	require.Empty(t, report.Failed(), "%v", report.Themes)

	css, err := os.ReadFile(filepath.Join(out, "x.css"))
	require.NoError(t, err)
	assert.Equal(t, ".x{color:teal}", string(css))
}

func TestBuilder_DarkPalette(t *testing.T) {
	root, out := setup(t, map[string]string{
		"index.less": "@component-background: #fff;\n.card { background: @component-background; }\n",
	})

	b, err := themer.New(themer.WithScratchDir(t.TempDir()))
	require.NoError(t, err)

	opts := domain.DefaultBuildOptions()
	opts.Min = false
	_, err = b.Build(context.Background(), root, []domain.ThemeSpec{
		{Theme: "dark", FileName: filepath.Join(out, "dark.css")},
	}, opts)
	require.NoError(t, err)

	css, err := os.ReadFile(filepath.Join(out, "dark.css"))
	require.NoError(t, err)
	assert.Equal(t, ".card {\n  background: #141414;\n}\n", string(css))
}
