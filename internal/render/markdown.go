package render

import (
	"bytes"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	ferrors "git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
)

// MarkdownOptions configures the goldmark engine.
type MarkdownOptions struct {
	Extensions    []string
	HardWraps     bool
	Unsafe        bool // pass raw HTML blocks through
	AutoHeadingID bool // derive id attributes from heading text
}

// MarkdownRenderer renders Markdown with goldmark. The engine is built once
// and reused for every page.
type MarkdownRenderer struct {
	md goldmark.Markdown
}

// NewMarkdownRenderer builds a renderer from opts.
func NewMarkdownRenderer(opts MarkdownOptions) *MarkdownRenderer {
	rendererOptions := []renderer.Option{}
	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}
	if opts.Unsafe {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	engineOptions := []goldmark.Option{
		goldmark.WithExtensions(collectExtensions(opts.Extensions)...),
	}
	if opts.AutoHeadingID {
		engineOptions = append(engineOptions, goldmark.WithParserOptions(parser.WithAutoHeadingID()))
	}
	if len(rendererOptions) > 0 {
		engineOptions = append(engineOptions, goldmark.WithRendererOptions(rendererOptions...))
	}
	return &MarkdownRenderer{md: goldmark.New(engineOptions...)}
}

func (m *MarkdownRenderer) Name() string { return "markdown" }

func (m *MarkdownRenderer) RenderToHTML(doc Document, source string) (string, error) {
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(source), &buf); err != nil {
		return "", ferrors.RenderError("markdown conversion failed").
			WithCause(err).
			WithContext("page", doc.Name()).
			Build()
	}
	return buf.String(), nil
}

var markdownExtensions = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
	"typographer":   extension.Typographer,
}

// KnownMarkdownExtensions lists accepted extension names, for config validation.
func KnownMarkdownExtensions() []string {
	names := make([]string, 0, len(markdownExtensions))
	for k := range markdownExtensions {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// collectExtensions maps names to extenders; unknown names are ignored and
// an empty list means GFM.
func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{extension.GFM}
	}

	var extenders []goldmark.Extender
	seen := map[string]struct{}{}
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, ok := seen[key]; ok {
			continue
		}
		ext, ok := markdownExtensions[key]
		if !ok {
			continue
		}
		extenders = append(extenders, ext)
		seen[key] = struct{}{}
	}
	return extenders
}
