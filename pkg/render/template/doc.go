// Package template defines the engine contract used by template-driven field
// rendering. The gotemplate subpackage provides a pongo2 implementation.
package template
