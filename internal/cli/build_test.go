package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/themer/internal/build"
	"github.com/aretw0/themer/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func project(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
	return dir
}

func TestBuild_Flags(t *testing.T) {
	dir := project(t, map[string]string{"index.less": "@c: red;\n.x { color: @c; }\n"})
	out := filepath.Join(dir, "dist", "light.css")
	metrics := filepath.Join(dir, "metrics.prom")

	var stdout bytes.Buffer
	err := Build(context.Background(), BuildFlags{
		Dir:         dir,
		Themes:      []string{"light=" + out},
		MetricsFile: metrics,
	}, &stdout)
	require.NoError(t, err)

	css, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, ".x{color:red}", string(css))
	assert.Contains(t, stdout.String(), "# Build report")
	assert.Contains(t, stdout.String(), "built 1 themes")
	assert.DirExists(t, filepath.Join(dir, ".themer", "temp"))

	prom, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `themer_builds_total{outcome="built"} 1`)

	stdout.Reset()
	err = Build(context.Background(), BuildFlags{Dir: dir, Themes: []string{"light=" + out}}, &stdout)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "skipped")
}

func TestBuild_ConfigFileAndVars(t *testing.T) {
	dir := project(t, map[string]string{
		"src/index.less": "@c: red;\n.x { color: @c; }\n",
		"themer.yaml": `
root: src
options:
  min: false
themes:
  - theme: light
    fileName: dist/light.css
  - theme: dark
    fileName: dist/dark.css
    disableExtendsDark: true
`,
	})

	var stdout bytes.Buffer
	err := Build(context.Background(), BuildFlags{
		Dir:     dir,
		Vars:    []string{"dark.c=navy"},
		Options: map[string]any{"cache": false},
	}, &stdout)
	require.NoError(t, err)

	light, err := os.ReadFile(filepath.Join(dir, "dist", "light.css"))
	require.NoError(t, err)
	assert.Contains(t, string(light), "color: red;")

	dark, err := os.ReadFile(filepath.Join(dir, "dist", "dark.css"))
	require.NoError(t, err)
	assert.Contains(t, string(dark), "color: navy;")
}

func TestBuild_PartialFailure(t *testing.T) {
	dir := project(t, map[string]string{"index.less": ".x { color: @c; }\n"})

	var stdout bytes.Buffer
	err := Build(context.Background(), BuildFlags{
		Dir:    dir,
		Themes: []string{"light=" + filepath.Join(dir, "a.css"), "dark=" + filepath.Join(dir, "b.css")},
		Vars:   []string{"dark.c=navy"},
	}, &stdout)
	assert.ErrorIs(t, err, ErrPartialBuild)
	assert.NoFileExists(t, filepath.Join(dir, "a.css"))
	assert.FileExists(t, filepath.Join(dir, "b.css"))
	assert.Contains(t, stdout.String(), "partial: 1 of 2 themes failed")
}

func TestBuild_NoThemes(t *testing.T) {
	err := Build(context.Background(), BuildFlags{Dir: t.TempDir()}, &bytes.Buffer{})
	assert.ErrorIs(t, err, domain.ErrNoThemes)
}

func TestBuild_UnknownCompiler(t *testing.T) {
	dir := project(t, map[string]string{"index.less": ".x{color:red}"})
	err := Build(context.Background(), BuildFlags{
		Dir:      dir,
		Themes:   []string{filepath.Join(dir, "x.css")},
		Compiler: "sass",
	}, &bytes.Buffer{})
	assert.ErrorIs(t, err, domain.ErrUnknownCompiler)
}

func TestBuild_RedisState(t *testing.T) {
	mr := miniredis.RunT(t)
	dir := project(t, map[string]string{"index.less": ".x{color:red}"})
	flags := BuildFlags{
		Dir:       dir,
		Themes:    []string{filepath.Join(dir, "x.css")},
		RedisAddr: mr.Addr(),
	}

	require.NoError(t, Build(context.Background(), flags, &bytes.Buffer{}))
	assert.NotEmpty(t, mr.Keys())

	var stdout bytes.Buffer
	require.NoError(t, Build(context.Background(), flags, &stdout))
	assert.Contains(t, stdout.String(), "skipped")

	require.NoError(t, Clean(context.Background(), flags, &bytes.Buffer{}))
	assert.Empty(t, mr.Keys())
}

func TestClean(t *testing.T) {
	dir := project(t, map[string]string{"index.less": ".x{color:red}"})
	flags := BuildFlags{Dir: dir, Themes: []string{filepath.Join(dir, "x.css")}}
	require.NoError(t, Build(context.Background(), flags, &bytes.Buffer{}))

	var stdout bytes.Buffer
	require.NoError(t, Clean(context.Background(), BuildFlags{Dir: dir}, &stdout))
	assert.NoDirExists(t, filepath.Join(dir, ".themer", "temp"))
	assert.Contains(t, stdout.String(), "removed ")
}

func TestFingerprint(t *testing.T) {
	dir := project(t, map[string]string{"a.less": ".a{}"})
	path := filepath.Join(dir, "a.less")

	var stdout bytes.Buffer
	require.NoError(t, Fingerprint([]string{path, "-"}, strings.NewReader(".a{}"), &stdout))

	fp := build.Fingerprint([]byte(".a{}")).String()
	assert.Equal(t, fp+"  "+path+"\n"+fp+"  -\n", stdout.String())

	err := Fingerprint([]string{filepath.Join(dir, "missing")}, nil, &stdout)
	assert.ErrorIs(t, err, domain.ErrIO)
}
