/*
Package ports defines the driven ports (interfaces) of the themer build pipeline.

These interfaces decouple the pipeline from the collaborators it consumes, so the
stylesheet compiler, the minifier, the cache-state backend and the optional kit
lookup can all be swapped without touching the orchestration logic.

# Key Interfaces

  - SourceAggregator: collects a project's style files into one document.
  - VariableResolver: substitutes variables ahead of rendering.
  - Compiler / Minifier: turn a layered document into (minified) CSS.
  - KitProvider / ModuleResolver: supply optional theme layers.
  - StateStore: persists the cache state between runs.
  - Palette: the static dark-palette base table.
*/
package ports
