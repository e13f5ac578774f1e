package render

import (
	"log/slog"

	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
)

// Options configures the built-in renderers.
type Options struct {
	Markdown       MarkdownOptions
	TextileCommand string
	TextileArgs    []string
	PluginDir      string
}

// Built-in extension sets.
var (
	RawExtensions      = []string{"html", "htm"}
	MarkdownExtensions = []string{"md", "markdown", "mdown"}
	TextileExtensions  = []string{"tx", "textile"}
)

// RegisterBuiltins registers raw, Markdown and Textile renderers in that order.
func RegisterBuiltins(reg *Registry, opts Options) {
	reg.Register(RawRenderer{}, RawExtensions...)
	reg.Register(NewMarkdownRenderer(opts.Markdown), MarkdownExtensions...)
	reg.Register(NewTextileRenderer(opts.TextileCommand, opts.TextileArgs...), TextileExtensions...)
}

// NewDefaultRegistry returns a registry with the built-ins plus any command
// renderers discovered in opts.PluginDir.
func NewDefaultRegistry(opts Options) (*Registry, error) {
	reg := NewRegistry()
	RegisterBuiltins(reg, opts)
	if opts.PluginDir == "" {
		return reg, nil
	}
	found, err := DiscoverCommands(reg, opts.PluginDir)
	if err != nil {
		return nil, err
	}
	if len(found) > 0 {
		slog.Info("Discovered renderer plugins", logfields.Path(opts.PluginDir), slog.Any("extensions", found))
	}
	return reg, nil
}
