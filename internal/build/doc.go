// Package build runs a complete site build: load the project, render and
// write every page in name order, then optionally mirror static assets.
// The CLI and tests both route through Builder.
package build
