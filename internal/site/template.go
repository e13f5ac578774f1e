package site

import (
	_ "embed"
	"path/filepath"
	"strings"

	"github.com/flosch/pongo2/v6"

	ferrors "git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
)

//go:embed assets/page.html
var defaultTemplate []byte

// DefaultTemplate returns the template written by Init.
func DefaultTemplate() string { return string(defaultTemplate) }

func (p *Project) templateSet() (*pongo2.TemplateSet, error) {
	if p.templates != nil {
		return p.templates, nil
	}
	loader, err := pongo2.NewLocalFileSystemLoader(p.templatePath)
	if err != nil {
		return nil, ferrors.TemplateError("template directory unavailable").
			WithCause(err).
			WithContext("path", p.templatePath).
			Build()
	}
	p.templates = pongo2.NewSet("site", loader)
	return p.templates, nil
}

// ValidTemplateName reports whether name stays inside the template root:
// relative, slash-separated and without ".." segments.
func ValidTemplateName(name string) bool {
	if name == "" || strings.Contains(name, `\`) || strings.HasPrefix(name, "/") || filepath.IsAbs(name) {
		return false
	}
	for _, seg := range strings.Split(name, "/") {
		if seg == ".." {
			return false
		}
	}
	return true
}

// StaticPrefix is the relative path from a page's output file to the
// output static directory.
func StaticPrefix(page *Page) string {
	return strings.Repeat("../", page.Depth()) + OutputStaticDir
}

// WrapInTemplate renders the page's template around its rendered content.
// Values are autoescaped except content, which is inserted as-is.
func (p *Project) WrapInTemplate(page *Page) (string, error) {
	set, err := p.templateSet()
	if err != nil {
		return "", err
	}

	if !ValidTemplateName(page.TemplateName()) {
		return "", ferrors.TemplateError("template name escapes the template directory").
			WithContext("page", page.Name()).
			WithContext("template", page.TemplateName()).
			Build()
	}
	name := page.TemplateName() + "." + p.opts.TemplateExtension
	tpl, err := set.FromCache(name)
	if err != nil {
		return "", ferrors.TemplateError("failed to load template").
			WithCause(err).
			WithContext("page", page.Name()).
			WithContext("template", name).
			Build()
	}

	var parent any
	if pp := page.Parent(); pp != nil {
		parent = pp
	}
	ctx := pongo2.Context{
		"STATIC":          StaticPrefix(page),
		"project":         p,
		"page":            page,
		"parent":          parent,
		"children":        page.Children(),
		"siblings":        page.Siblings(),
		"top_level_pages": p.TopLevelPages(),
		"flags":           map[string]any(page.Flags()),
		"title":           page.Title(),
		"url":             page.TargetPath(),
		"content":         pongo2.AsSafeValue(page.RenderedContent()),
	}

	out, err := tpl.Execute(ctx)
	if err != nil {
		return "", ferrors.TemplateError("failed to render template").
			WithCause(err).
			WithContext("page", page.Name()).
			WithContext("template", name).
			Build()
	}
	return out, nil
}
