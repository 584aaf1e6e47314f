// Package config loads build files and merges build options.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/themer/pkg/adapters/process"
	"github.com/aretw0/themer/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Candidates are the build file names looked up in a project directory, in order.
var Candidates = []string{"themer.yaml", "themer.yml", "themer.json", "themer.hcl"}

// Redis configures the shared cache state store.
type Redis struct {
	Addr     string `yaml:"addr" json:"addr"`
	Password string `yaml:"password" json:"password"`
	DB       int    `yaml:"db" json:"db"`
	Prefix   string `yaml:"prefix" json:"prefix"`
	// TTL is a Go duration, e.g. "24h". Empty means no expiration.
	TTL string `yaml:"ttl" json:"ttl"`
}

// File is the content of a build file.
type File struct {
	Root        string             `yaml:"root" json:"root"`
	Scratch     string             `yaml:"scratch" json:"scratch"`
	Compiler    string             `yaml:"compiler" json:"compiler"`
	Options     map[string]any     `yaml:"options" json:"options"`
	Themes      []domain.ThemeSpec `yaml:"themes" json:"themes"`
	Ignore      []string           `yaml:"ignore" json:"ignore"`
	Palette     string             `yaml:"palette" json:"palette"`
	MetricsFile string             `yaml:"metricsFile" json:"metricsFile"`
	LogLevel    string             `yaml:"logLevel" json:"logLevel"`
	Redis       *Redis             `yaml:"redis" json:"redis"`
	Lessc       process.Config     `yaml:"lessc" json:"lessc"`
}

// Find returns the first build file present in dir.
func Find(dir string) (string, bool) {
	for _, name := range Candidates {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, true
		}
	}
	return "", false
}

// Load reads a build file. The format follows the extension: .json, .hcl,
// anything else is YAML. Relative paths inside the file are resolved
// against the file's directory.
func Load(path string) (*File, error) {
	var (
		cfg *File
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		cfg, err = loadHCL(path)
	default:
		cfg, err = loadData(path)
	}
	if err != nil {
		return nil, err
	}
	cfg.resolvePaths(filepath.Dir(path))
	return cfg, nil
}

func loadData(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read build file: %w", err)
	}

	var cfg File
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}
	return &cfg, nil
}

func (f *File) resolvePaths(base string) {
	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}
	f.Root = abs(f.Root)
	f.Scratch = abs(f.Scratch)
	f.Palette = abs(f.Palette)
	f.MetricsFile = abs(f.MetricsFile)
	for i := range f.Themes {
		f.Themes[i].FileName = abs(f.Themes[i].FileName)
	}
}
