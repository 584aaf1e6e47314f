// Package palette provides the static theme variable tables.
package palette

import (
	_ "embed"
	"fmt"
	"maps"
	"os"
	"strings"
	"sync"

	"github.com/aretw0/themer/pkg/ports"
	"gopkg.in/yaml.v3"
)

//go:embed dark.yaml
var darkYAML []byte

// Table maps LESS variable names, without the leading @, to values.
type Table map[string]string

var _ ports.Palette = Table(nil)

// Vars returns a copy of the table.
func (t Table) Vars() map[string]string {
	return maps.Clone(map[string]string(t))
}

var dark = sync.OnceValue(func() Table {
	t, err := Parse(darkYAML)
	if err != nil {
		panic(fmt.Sprintf("palette: embedded dark table: %v", err))
	}
	return t
})

// Dark returns the built-in dark base table.
func Dark() Table {
	return dark()
}

// Parse decodes a YAML mapping of variable names to values.
// Keys may carry the leading @; it is stripped.
func Parse(data []byte) (Table, error) {
	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse palette: %w", err)
	}
	t := make(Table, len(raw))
	for k, v := range raw {
		t[strings.TrimPrefix(k, "@")] = v
	}
	return t, nil
}

// Load reads a palette file, e.g. a project specific dark table.
func Load(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read palette: %w", err)
	}
	return Parse(data)
}
