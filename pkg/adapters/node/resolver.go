// Package node locates optional style kits installed as node packages.
package node

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/aretw0/themer/pkg/ports"
)

// Resolver implements ports.ModuleResolver with the node_modules lookup
// rules: the start directory and each of its ancestors are searched in turn.
type Resolver struct {
	start string
}

var _ ports.ModuleResolver = (*Resolver)(nil)

// NewResolver searches from start upwards. An empty start means the working directory.
func NewResolver(start string) *Resolver {
	return &Resolver{start: start}
}

// Resolve returns the package directory of name, e.g. "@ant-design/pro-layout".
func (r *Resolver) Resolve(name string) (string, error) {
	dir, err := filepath.Abs(r.start)
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, "node_modules", filepath.FromSlash(name))
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("module %q: %w", name, fs.ErrNotExist)
		}
		dir = parent
	}
}

// IncludePaths lists every existing node_modules directory from start upwards,
// nearest first. The builtin compiler searches them for "~pkg" imports.
func IncludePaths(start string) []string {
	dir, err := filepath.Abs(start)
	if err != nil {
		return nil
	}
	var paths []string
	for {
		candidate := filepath.Join(dir, "node_modules")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			paths = append(paths, candidate)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return paths
		}
		dir = parent
	}
}
