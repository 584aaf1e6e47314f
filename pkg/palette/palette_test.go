package palette_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/themer/pkg/palette"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDark(t *testing.T) {
	vars := palette.Dark().Vars()
	assert.Equal(t, "#141414", vars["component-background"])
	assert.Equal(t, "rgba(255, 255, 255, 0.85)", vars["text-color"])

	// Vars hands out copies.
	vars["component-background"] = "red"
	assert.Equal(t, "#141414", palette.Dark().Vars()["component-background"])
}

func TestParse(t *testing.T) {
	table, err := palette.Parse([]byte("\"@primary-color\": \"#177ddc\"\nlink-color: \"#1890ff\"\n"))
	require.NoError(t, err)
	assert.Equal(t, palette.Table{"primary-color": "#177ddc", "link-color": "#1890ff"}, table)

	_, err = palette.Parse([]byte("- not\n- a map\n"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dark.yaml")
	require.NoError(t, os.WriteFile(path, []byte("body-background: \"#111\"\n"), 0644))

	table, err := palette.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "#111", table.Vars()["body-background"])

	_, err = palette.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
