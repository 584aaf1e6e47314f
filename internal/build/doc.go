// Package build implements the incremental multi-theme pipeline: change
// detection, layered artifact construction and the per-theme render loop.
package build
