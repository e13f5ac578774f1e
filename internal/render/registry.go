// Package render defines the pluggable renderer contract and the registry
// that maps file extensions onto renderer implementations.
package render

import (
	"errors"
	"maps"
	"slices"
	"strings"

	"git.home.luguber.info/inful/sitebuilder/internal/flags"
)

// ErrRendererUnavailable marks a renderer whose backing converter is missing.
var ErrRendererUnavailable = errors.New("renderer unavailable")

// Document is the view of a page a renderer receives.
type Document interface {
	Name() string
	Extension() string
	Flags() flags.Flags
}

// Renderer converts preprocessed page source into an HTML fragment.
type Renderer interface {
	RenderToHTML(doc Document, source string) (string, error)
}

// Named is implemented by renderers that can describe themselves.
type Named interface {
	Name() string
}

// Registry maps lower-cased extensions (without dot) to renderers.
type Registry struct {
	renderers map[string]Renderer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{renderers: make(map[string]Renderer)}
}

// Register associates rd with every given extension. A later registration for
// the same extension replaces the earlier one.
func (r *Registry) Register(rd Renderer, extensions ...string) {
	for _, ext := range extensions {
		key := normalizeExtension(ext)
		if key == "" {
			continue
		}
		r.renderers[key] = rd
	}
}

// Get returns the renderer registered for extension.
func (r *Registry) Get(extension string) (Renderer, bool) {
	rd, ok := r.renderers[normalizeExtension(extension)]
	return rd, ok
}

// Extensions returns all registered extensions, sorted.
func (r *Registry) Extensions() []string {
	return slices.Sorted(maps.Keys(r.renderers))
}

// Describe returns extension -> renderer name for listing purposes.
func (r *Registry) Describe() map[string]string {
	out := make(map[string]string, len(r.renderers))
	for ext, rd := range r.renderers {
		out[ext] = NameOf(rd)
	}
	return out
}

// NameOf returns the renderer's self-reported name or "custom".
func NameOf(rd Renderer) string {
	if n, ok := rd.(Named); ok {
		return n.Name()
	}
	return "custom"
}

func normalizeExtension(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}
