// Package less is a small builtin compiler for the subset of LESS that theme
// bundles need: imports, lazy variables, interpolation, nesting, parameterless
// mixins and at-rule bubbling. Anything beyond that (guards, operations,
// inline JavaScript) is reported as a compile error; use the lessc adapter
// for the full language.
//
// Tokenizing is delegated to github.com/gorilla/css/scanner after LESS line
// comments have been stripped.
package less
