package domain

import "time"

// RenderResult is the outcome of rendering one ThemeSpec.
// Exactly one of CSS or Err is meaningful.
type RenderResult struct {
	Spec ThemeSpec
	CSS  string
	Err  error
}

// OK reports whether the render succeeded.
func (r RenderResult) OK() bool {
	return r.Err == nil
}

// ThemeReport records what happened to one spec during a build.
type ThemeReport struct {
	Index    int
	Theme    string
	FileName string
	Written  bool
	Bytes    int
	Err      error
	Duration time.Duration
}

// LayerReport records how an intermediate layer was produced.
type LayerReport struct {
	Layer       Layer
	Passthrough bool
	Reason      error
}

// Report summarizes one build invocation.
type Report struct {
	Aggregate          Fingerprint
	AggregateUnchanged bool
	SpecsUnchanged     bool
	// Skipped is true when both fingerprints matched and nothing was written.
	// Output files are trusted to still exist; they are not re-verified.
	Skipped    bool
	Resolution error
	Layers     []LayerReport
	Themes     []ThemeReport
	Duration   time.Duration
}

// Failed returns the reports of themes that were not written.
func (r *Report) Failed() []ThemeReport {
	var failed []ThemeReport
	for _, t := range r.Themes {
		if !t.Written {
			failed = append(failed, t)
		}
	}
	return failed
}
