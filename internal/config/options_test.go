package config

import (
	"testing"

	"github.com/aretw0/themer/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeOptions(t *testing.T) {
	tests := []struct {
		name   string
		layers []map[string]any
		want   domain.BuildOptions
	}{
		{
			name: "Defaults",
			want: domain.DefaultBuildOptions(),
		},
		{
			name:   "Override",
			layers: []map[string]any{{"min": false, "loadAny": true}},
			want:   domain.BuildOptions{IsModule: true, Cache: true, LoadAny: true},
		},
		{
			name: "LaterLayerWins",
			layers: []map[string]any{
				{"cache": false},
				{"cache": true, "ignoreYgd": true},
			},
			want: domain.BuildOptions{IsModule: true, Cache: true, Min: true, IgnoreYgd: true},
		},
		{
			name:   "WeakTypes",
			layers: []map[string]any{{"min": "false", "disableExtendsDark": 1}},
			want:   domain.BuildOptions{IsModule: true, Cache: true, DisableExtendsDark: true},
		},
		{
			name:   "CaseInsensitiveKeys",
			layers: []map[string]any{{"ismodule": false}},
			want:   domain.BuildOptions{Cache: true, Min: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MergeOptions(tt.layers...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMergeOptions_UnknownKey(t *testing.T) {
	_, err := MergeOptions(map[string]any{"minify": true})
	assert.Error(t, err)
}

func TestMergeOptions_BadValue(t *testing.T) {
	_, err := MergeOptions(map[string]any{"min": "sometimes"})
	assert.Error(t, err)
}
