package main

import (
	"github.com/aretw0/themer/internal/cli"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// optionFlags maps boolean flags onto build option keys.
var optionFlags = []struct {
	flag, key string
	invert    bool
}{
	{"module", "isModule", false},
	{"load-any", "loadAny", false},
	{"no-cache", "cache", true},
	{"ignore-ygd", "ignoreYgd", false},
	{"ignore-pro-layout", "ignoreProLayout", false},
	{"min", "min", false},
	{"disable-extends-dark", "disableExtendsDark", false},
}

var buildCmd = &cobra.Command{
	Use:   "build [dir]",
	Short: "Compile every requested theme",
	Long: `Compiles the project sources once per theme. Themes come from the build
file and from --theme flags; --var overrides one variable of one theme.`,
	Example: `  themer build --theme light=dist/light.css --theme dark=dist/dark.css
  themer build --var dark.primary-color=#177ddc --no-cache`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := commonFlags(cmd, args)
		flags.Themes, _ = cmd.Flags().GetStringArray("theme")
		flags.Vars, _ = cmd.Flags().GetStringArray("var")
		flags.Ignore, _ = cmd.Flags().GetStringArray("ignore")
		flags.Compiler, _ = cmd.Flags().GetString("compiler")
		flags.MetricsFile, _ = cmd.Flags().GetString("metrics-file")
		flags.Options = changedOptions(cmd.Flags())

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()
		return cli.Build(ctx, flags, cmd.OutOrStdout())
	},
}

// commonFlags reads the persistent flags shared by build and clean.
func commonFlags(cmd *cobra.Command, args []string) cli.BuildFlags {
	var f cli.BuildFlags
	f.Dir, _ = cmd.Flags().GetString("dir")
	if !cmd.Flags().Changed("dir") && len(args) > 0 {
		f.Dir = args[0]
	}
	f.ConfigPath, _ = cmd.Flags().GetString("config")
	f.Scratch, _ = cmd.Flags().GetString("scratch")
	f.RedisAddr, _ = cmd.Flags().GetString("redis")
	f.LogLevel, _ = cmd.Flags().GetString("log-level")
	f.LogFormat, _ = cmd.Flags().GetString("log-format")
	return f
}

// changedOptions keeps only the option flags set on the command line, so
// the build file still applies to the others.
func changedOptions(fs *pflag.FlagSet) map[string]any {
	opts := map[string]any{}
	for _, o := range optionFlags {
		if !fs.Changed(o.flag) {
			continue
		}
		v, _ := fs.GetBool(o.flag)
		if o.invert {
			v = !v
		}
		opts[o.key] = v
	}
	return opts
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringArrayP("theme", "t", nil, "Theme to build as name=file, repeatable (a bare file builds light)")
	buildCmd.Flags().StringArray("var", nil, "Variable override as theme.key=value, repeatable")
	buildCmd.Flags().StringArray("ignore", nil, "Extra source glob to skip, repeatable")
	buildCmd.Flags().String("compiler", "", "Compiler: builtin or lessc (default: builtin)")
	buildCmd.Flags().String("metrics-file", "", "Write Prometheus metrics to this textfile after the build")

	buildCmd.Flags().Bool("module", true, "Prefix class names of src/ files like CSS modules")
	buildCmd.Flags().Bool("load-any", false, "Skip variable resolution and layer sources verbatim")
	buildCmd.Flags().Bool("no-cache", false, "Wipe the scratch directory and rebuild everything")
	buildCmd.Flags().Bool("ignore-ygd", false, "Do not layer the theme kit")
	buildCmd.Flags().Bool("ignore-pro-layout", false, "Do not layer the layout kit")
	buildCmd.Flags().Bool("min", true, "Minify the rendered stylesheets")
	buildCmd.Flags().Bool("disable-extends-dark", false, "Do not base dark themes on the dark palette")
}
