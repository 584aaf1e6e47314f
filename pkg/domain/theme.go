package domain

// ThemeSpec requests one compiled theme variant.
// The JSON shape is the persisted cache format, keep the keys stable.
type ThemeSpec struct {
	Theme              string            `json:"theme" yaml:"theme" mapstructure:"theme"`
	ModifyVars         map[string]string `json:"modifyVars" yaml:"modifyVars" mapstructure:"modifyVars"`
	FileName           string            `json:"fileName" yaml:"fileName" mapstructure:"fileName"`
	DisableExtendsDark bool              `json:"disableExtendsDark,omitempty" yaml:"disableExtendsDark" mapstructure:"disableExtendsDark"`
}

// ThemeName returns the theme name, defaulting to light.
func (s ThemeSpec) ThemeName() string {
	if s.Theme == "" {
		return ThemeLight
	}
	return s.Theme
}

// BuildOptions are the recognized switches of one build invocation.
type BuildOptions struct {
	// IsModule selects the CSS-module aggregation discipline.
	IsModule bool `json:"isModule" mapstructure:"isModule"`
	// LoadAny skips variable resolution and layers the source verbatim.
	LoadAny bool `json:"loadAny" mapstructure:"loadAny"`
	// Cache enables the fingerprint skip path. False wipes the scratch directory.
	Cache bool `json:"cache" mapstructure:"cache"`
	// IgnoreYgd forces the passthrough theme kit layer.
	IgnoreYgd bool `json:"ignoreYgd" mapstructure:"ignoreYgd"`
	// IgnoreProLayout forces the passthrough layout kit layer.
	IgnoreProLayout bool `json:"ignoreProLayout" mapstructure:"ignoreProLayout"`
	// Min minifies every rendered stylesheet.
	Min bool `json:"min" mapstructure:"min"`
	// DisableExtendsDark suppresses the dark palette base for every dark spec.
	DisableExtendsDark bool `json:"disableExtendsDark" mapstructure:"disableExtendsDark"`
}

// DefaultBuildOptions mirrors the defaults applied beneath caller options.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{
		IsModule: true,
		Cache:    true,
		Min:      true,
	}
}
