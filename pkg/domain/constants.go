package domain

// Layer names an intermediate artifact written to the scratch directory.
// Each layer imports the previous one by name: ygd <- layout <- pro.
type Layer string

const (
	// LayerTemp holds the raw aggregated project source. Its bytes double as
	// the persisted aggregate fingerprint of the previous run.
	LayerTemp Layer = "temp"
	// LayerYgd holds the base palette mixins plus the optional theme kit.
	LayerYgd Layer = "ygd"
	// LayerLayout imports ygd plus the optional layout kit.
	LayerLayout Layer = "layout"
	// LayerPro imports layout plus the (resolved) project source.
	LayerPro Layer = "pro"
)

// StyleExt is the extension of every intermediate artifact.
const StyleExt = ".less"

// FileName returns the scratch file name of the layer, e.g. "pro.less".
func (l Layer) FileName() string {
	return string(l) + StyleExt
}

const (
	// ThemeLight is the default theme when a spec leaves the name empty.
	ThemeLight = "light"
	// ThemeDark is the only theme that inherits the dark palette table.
	ThemeDark = "dark"
)

const (
	// SpecsStateKey names the persisted serialized ThemeSpec sequence.
	SpecsStateKey = "modifyVarsArray"
	// OverridesStateKey names the last successfully rendered override map.
	OverridesStateKey = "modifyVars"
)

const (
	// DefaultThemeKit is the package providing the external UI kit theme layer.
	DefaultThemeKit = "ygd"
	// DefaultLayoutKit is the package providing the external layout kit layer.
	DefaultLayoutKit = "@ant-design/pro-layout"
)
