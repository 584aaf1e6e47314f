package cli

import (
	"testing"

	"github.com/aretw0/themer/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseThemes(t *testing.T) {
	specs, err := parseThemes([]string{"dark=dist/dark.css", "dist/light.css"})
	require.NoError(t, err)
	require.Len(t, specs, 2)
	assert.Equal(t, "dark", specs[0].Theme)
	assert.Equal(t, "dist/dark.css", specs[0].FileName)
	assert.Equal(t, domain.ThemeLight, specs[1].Theme)

	_, err = parseThemes([]string{"dark="})
	assert.Error(t, err)
}

func TestMergeThemes(t *testing.T) {
	file := []domain.ThemeSpec{
		{Theme: "dark", FileName: "a.css", ModifyVars: map[string]string{"x": "1"}},
		{Theme: "light", FileName: "b.css"},
	}
	flags := []domain.ThemeSpec{
		{Theme: "dark", FileName: "a.css"},
		{Theme: "dark", FileName: "c.css"},
	}

	got := mergeThemes(file, flags)
	require.Len(t, got, 3)
	assert.Nil(t, got[0].ModifyVars)
	assert.Equal(t, "c.css", got[2].FileName)
	assert.Equal(t, map[string]string{"x": "1"}, file[0].ModifyVars, "input not mutated")
}

func TestApplyVars(t *testing.T) {
	specs := []domain.ThemeSpec{{Theme: "dark"}, {Theme: ""}}

	require.NoError(t, applyVars(specs, []string{"dark.@primary-color=#177ddc", "light.a=b", "radius=2px"}))
	assert.Equal(t, map[string]string{"primary-color": "#177ddc", "radius": "2px"}, specs[0].ModifyVars)
	assert.Equal(t, map[string]string{"a": "b", "radius": "2px"}, specs[1].ModifyVars)

	assert.Error(t, applyVars(specs, []string{"novalue"}))
	assert.Error(t, applyVars(specs, []string{"compact.a=b"}))
}

func TestResolve_Precedence(t *testing.T) {
	dir := project(t, map[string]string{
		"themer.json": `{"compiler": "lessc", "scratch": "tmp", "options": {"min": false}, "redis": {"addr": "file:1", "db": 2}}`,
	})

	p, err := resolve(BuildFlags{Dir: dir, Compiler: "builtin", RedisAddr: "flag:1", Options: map[string]any{"loadAny": true}})
	require.NoError(t, err)
	assert.Equal(t, dir, p.Root)
	assert.Equal(t, "builtin", p.Compiler)
	assert.Equal(t, dir+"/tmp", p.Scratch)
	assert.Equal(t, "flag:1", p.Redis.Addr)
	assert.Equal(t, 2, p.Redis.DB)
	assert.False(t, p.Options.Min)
	assert.True(t, p.Options.LoadAny)
	assert.True(t, p.Options.IsModule)
}
