package main

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangedOptions(t *testing.T) {
	fs := pflag.NewFlagSet("build", pflag.ContinueOnError)
	fs.Bool("module", true, "")
	fs.Bool("no-cache", false, "")
	fs.Bool("min", true, "")
	fs.Bool("load-any", false, "")
	fs.Bool("ignore-ygd", false, "")
	fs.Bool("ignore-pro-layout", false, "")
	fs.Bool("disable-extends-dark", false, "")

	assert.Empty(t, changedOptions(fs))

	require.NoError(t, fs.Parse([]string{"--no-cache", "--min=false"}))
	assert.Equal(t, map[string]any{"cache": false, "min": false}, changedOptions(fs))
}
