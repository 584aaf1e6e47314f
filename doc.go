/*
Package themer is an incremental multi-theme stylesheet builder.

It aggregates a project's LESS sources into one document, layers optional
theme and layout kits beneath it, and compiles one stylesheet per requested
theme variant. When neither the sources nor the requested variants changed
since the previous run, the build is skipped entirely.

# Pipeline

  - Aggregate: every *.less file under the root, in lexical order.
  - Short-circuit: the aggregate and the serialized theme list are compared
    with the previous run's.
  - Layer: temp, pro, ygd and layout artifacts are written to the scratch
    directory. Missing kits degrade to empty passthrough layers.
  - Render: each ThemeSpec is compiled in order. A failing theme is reported
    and skipped; the others are still written.

# Usage

	b, err := themer.New(themer.WithScratchDir(".themer/temp"))
	if err != nil {
		log.Fatal(err)
	}

	report, err := b.Build(ctx, "./src", []domain.ThemeSpec{
		{Theme: "light", FileName: "dist/light.css"},
		{Theme: "dark", ModifyVars: map[string]string{"primary-color": "#177ddc"}, FileName: "dist/dark.css"},
	}, domain.DefaultBuildOptions())

The skip path trusts that previously written outputs still exist; delete the
scratch directory (or build with Cache disabled) to force a rebuild.
*/
package themer
