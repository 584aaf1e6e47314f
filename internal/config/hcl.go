package config

import (
	"fmt"

	"github.com/aretw0/themer/pkg/adapters/process"
	"github.com/aretw0/themer/pkg/domain"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// hclFile is the block layout of themer.hcl:
//
//	root = "./src"
//	options = { min = false }
//	theme "dark" {
//	  file_name   = "dist/dark.css"
//	  modify_vars = { "primary-color" = "#177ddc" }
//	}
type hclFile struct {
	Root        string            `hcl:"root,optional"`
	Scratch     string            `hcl:"scratch,optional"`
	Compiler    string            `hcl:"compiler,optional"`
	Options     map[string]string `hcl:"options,optional"`
	Ignore      []string          `hcl:"ignore,optional"`
	Palette     string            `hcl:"palette,optional"`
	MetricsFile string            `hcl:"metrics_file,optional"`
	LogLevel    string            `hcl:"log_level,optional"`
	Themes      []*hclTheme       `hcl:"theme,block"`
	Redis       *hclRedis         `hcl:"redis,block"`
	Lessc       *hclLessc         `hcl:"lessc,block"`
}

type hclTheme struct {
	Name               string            `hcl:"name,label"`
	FileName           string            `hcl:"file_name"`
	ModifyVars         map[string]string `hcl:"modify_vars,optional"`
	DisableExtendsDark bool              `hcl:"disable_extends_dark,optional"`
}

type hclRedis struct {
	Addr     string `hcl:"addr"`
	Password string `hcl:"password,optional"`
	DB       int    `hcl:"db,optional"`
	Prefix   string `hcl:"prefix,optional"`
	TTL      string `hcl:"ttl,optional"`
}

type hclLessc struct {
	Command string            `hcl:"command,optional"`
	Args    []string          `hcl:"args,optional"`
	Env     map[string]string `hcl:"env,optional"`
}

func loadHCL(path string) (*File, error) {
	parser := hclparse.NewParser()
	hf, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	var parsed hclFile
	diags = gohcl.DecodeBody(hf.Body, nil, &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	cfg := &File{
		Root:        parsed.Root,
		Scratch:     parsed.Scratch,
		Compiler:    parsed.Compiler,
		Ignore:      parsed.Ignore,
		Palette:     parsed.Palette,
		MetricsFile: parsed.MetricsFile,
		LogLevel:    parsed.LogLevel,
	}
	if len(parsed.Options) > 0 {
		// Values arrive as strings; MergeOptions decodes them weakly.
		cfg.Options = make(map[string]any, len(parsed.Options))
		for k, v := range parsed.Options {
			cfg.Options[k] = v
		}
	}
	for _, t := range parsed.Themes {
		cfg.Themes = append(cfg.Themes, domain.ThemeSpec{
			Theme:              t.Name,
			ModifyVars:         t.ModifyVars,
			FileName:           t.FileName,
			DisableExtendsDark: t.DisableExtendsDark,
		})
	}
	if parsed.Redis != nil {
		cfg.Redis = &Redis{
			Addr:     parsed.Redis.Addr,
			Password: parsed.Redis.Password,
			DB:       parsed.Redis.DB,
			Prefix:   parsed.Redis.Prefix,
			TTL:      parsed.Redis.TTL,
		}
	}
	if parsed.Lessc != nil {
		cfg.Lessc = process.Config{
			Command:     parsed.Lessc.Command,
			Args:        parsed.Lessc.Args,
			Environment: parsed.Lessc.Env,
		}
	}
	return cfg, nil
}
