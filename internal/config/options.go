package config

import (
	"fmt"
	"strings"

	"github.com/aretw0/themer/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// MergeOptions overlays option maps on top of domain.DefaultBuildOptions,
// later layers winning, and decodes the result. Values are weakly typed, so
// "true" or 1 are accepted for booleans. Unknown keys are an error.
func MergeOptions(layers ...map[string]any) (domain.BuildOptions, error) {
	merged := map[string]any{}
	if err := mapstructure.Decode(domain.DefaultBuildOptions(), &merged); err != nil {
		return domain.BuildOptions{}, fmt.Errorf("encode default options: %w", err)
	}

	for _, layer := range layers {
		for k, v := range layer {
			merged[canonicalKey(merged, k)] = v
		}
	}

	var opts domain.BuildOptions
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &opts,
	})
	if err != nil {
		return domain.BuildOptions{}, err
	}
	if err := decoder.Decode(merged); err != nil {
		return domain.BuildOptions{}, fmt.Errorf("invalid build options: %w", err)
	}
	return opts, nil
}

// canonicalKey maps k onto an existing key differing only in case, so
// "ismodule" overrides "isModule" instead of sitting next to it.
func canonicalKey(m map[string]any, k string) string {
	if _, ok := m[k]; ok {
		return k
	}
	for existing := range m {
		if strings.EqualFold(existing, k) {
			return existing
		}
	}
	return k
}
