package themer

import (
	_ "embed"
)

// Version is the release of the themer module, read from the VERSION file.
//
//go:embed VERSION
var Version string
