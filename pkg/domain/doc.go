/*
Package domain contains the core domain models of the themer build pipeline.

It defines the values that flow between the pipeline stages: the requested
theme variants, the build options, the layered intermediate artifacts, content
fingerprints and the per-run report. This package is kept pure and free of
I/O, following Hexagonal Architecture principles.

# Key Entities

  - ThemeSpec: one requested theme variant (name, overrides, output path).
  - BuildOptions: the recognized switches of a single build invocation.
  - Layer: a named intermediate stylesheet in the scratch directory.
  - Fingerprint: a fixed-length content hash used for equality checks only.
  - Report: what a build did, including every per-theme failure.
*/
package domain
