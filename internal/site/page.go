package site

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/adrg/frontmatter"
	"github.com/cespare/xxhash/v2"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitebuilder/internal/flags"
	ferrors "git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
)

// Page is one content file mapped to one output HTML file. Identity fields
// never change after construction; render state is filled in by Load,
// Render and Write during a build pass.
type Page struct {
	project *Project

	name       string
	basename   string
	sourcePath string
	extension  string
	targetPath string

	// Graph links are names resolved through the owning project.
	parentName string
	childNames []string

	flags        flags.Flags
	templateName string
	source       string
	loaded       bool

	renderedContent string
	unresolved      []string
	rendered        bool
	renderedFull    string
	wrapped         bool
}

func newPage(project *Project, name, sourcePath string) *Page {
	if name == "" {
		name = "index"
	}
	return &Page{
		project:    project,
		name:       name,
		basename:   path.Base(name),
		sourcePath: sourcePath,
		extension:  strings.ToLower(strings.TrimPrefix(filepath.Ext(sourcePath), ".")),
		targetPath: name + ".html",
	}
}

func (p *Page) String() string { return fmt.Sprintf("<Page %s>", p.name) }

func (p *Page) Name() string         { return p.name }
func (p *Page) Basename() string     { return p.basename }
func (p *Page) SourcePath() string   { return p.sourcePath }
func (p *Page) Extension() string    { return p.extension }
func (p *Page) TargetPath() string   { return p.targetPath }
func (p *Page) Flags() flags.Flags   { return p.flags }
func (p *Page) TemplateName() string { return p.templateName }
func (p *Page) Source() string       { return p.source }
func (p *Page) Loaded() bool         { return p.loaded }

// RenderedContent is the body HTML after link rewriting.
func (p *Page) RenderedContent() string { return p.renderedContent }

// UnresolvedLinks lists link targets from the last render that matched no page.
func (p *Page) UnresolvedLinks() []string { return p.unresolved }

// RenderedFull is the body wrapped in the page template.
func (p *Page) RenderedFull() string { return p.renderedFull }

// Depth is the number of "/" separators in the page name.
func (p *Page) Depth() int { return strings.Count(p.name, "/") }

// OutputPath is the absolute filesystem path the page is written to.
func (p *Page) OutputPath() string {
	return filepath.Join(p.project.outputPath, filepath.FromSlash(p.targetPath))
}

// Parent returns the page whose name is this page's name minus its last segment.
func (p *Page) Parent() *Page {
	if p.parentName == "" {
		return nil
	}
	return p.project.pages[p.parentName]
}

// IsTopLevel reports whether the page has no resolvable parent.
func (p *Page) IsTopLevel() bool { return p.parentName == "" }

// Children returns the child pages ordered by name.
func (p *Page) Children() []*Page {
	out := make([]*Page, 0, len(p.childNames))
	for _, n := range p.childNames {
		if c, ok := p.project.pages[n]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Child looks up a direct child by its full name.
func (p *Page) Child(name string) (*Page, bool) {
	for _, n := range p.childNames {
		if n == name {
			c, ok := p.project.pages[n]
			return c, ok
		}
	}
	return nil, false
}

// Siblings returns the parent's children (including this page), or nil for
// top-level pages.
func (p *Page) Siblings() []*Page {
	if parent := p.Parent(); parent != nil {
		return parent.Children()
	}
	return nil
}

// Load reads the source, normalizes line endings and extracts flags.
func (p *Page) Load() error {
	data, err := os.ReadFile(p.sourcePath)
	if err != nil {
		return ferrors.FileSystemError("failed to read page source").
			WithCause(err).
			WithContext("page", p.name).
			WithContext("path", p.sourcePath).
			Build()
	}
	if !utf8.Valid(data) {
		return ferrors.ValidationError("page source is not valid UTF-8").
			WithContext("page", p.name).
			WithContext("path", p.sourcePath).
			Build()
	}

	text := strings.TrimPrefix(string(data), "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	meta := flags.Flags{}
	if p.project.opts.FrontMatter {
		if meta, text, err = splitFrontMatter(text); err != nil {
			return ferrors.ValidationError("invalid front matter").
				WithCause(err).
				WithContext("page", p.name).
				Build()
		}
	}

	body, inline := flags.Parse(text)
	p.flags = meta.Merge(inline)
	p.source = body
	p.templateName = p.project.opts.DefaultTemplate
	if tpl, ok := p.flags.String("template"); ok && strings.TrimSpace(tpl) != "" {
		p.templateName = strings.TrimSpace(tpl)
	}
	p.loaded = true
	return nil
}

var yamlFrontMatter = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// splitFrontMatter extracts a leading YAML block; text without one is
// returned unchanged.
func splitFrontMatter(text string) (flags.Flags, string, error) {
	if !strings.HasPrefix(text, "---\n") {
		return flags.Flags{}, text, nil
	}
	meta := map[string]any{}
	rest, err := frontmatter.Parse(strings.NewReader(text), &meta, yamlFrontMatter)
	if err != nil {
		return nil, "", err
	}
	return flags.Flags(meta), string(rest), nil
}

// Render loads the page if needed, renders its body through the registry,
// rewrites links and wraps the result in the page template.
func (p *Page) Render() error {
	if !p.loaded {
		if err := p.Load(); err != nil {
			return err
		}
	}

	rd, ok := p.project.registry.Get(p.extension)
	if !ok {
		return ferrors.RenderError("no renderer registered for page").
			WithCause(ErrUnsupportedContentType).
			WithContext("page", p.name).
			WithContext("extension", p.extension).
			Build()
	}

	source, err := p.project.PreprocessSource(p)
	if err != nil {
		return err
	}

	body, err := rd.RenderToHTML(p, source)
	if err != nil {
		if ferrors.IsClassified(err) {
			return err
		}
		return ferrors.RenderError("renderer failed").
			WithCause(err).
			WithContext("page", p.name).
			WithContext("extension", p.extension).
			Build()
	}

	p.renderedContent, p.unresolved = p.project.RewriteLinks(p, body)
	p.rendered = true

	full, err := p.project.WrapInTemplate(p)
	if err != nil {
		return err
	}
	p.renderedFull = full
	p.wrapped = true
	return nil
}

// Write stores the rendered page unless an identical file already exists.
// It panics when called before a successful Render.
func (p *Page) Write(force bool) (bool, error) {
	if !p.wrapped {
		panic(fmt.Sprintf("site: Write called before Render for page %q", p.name))
	}

	target := p.OutputPath()
	content := []byte(p.renderedFull)

	if !force {
		existing, err := hashFile(target)
		switch {
		case err == nil && existing == xxhash.Sum64(content):
			return false, nil
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			return false, ferrors.FileSystemError("failed to read existing output").
				WithCause(err).
				WithContext("page", p.name).
				WithContext("path", target).
				Build()
		}
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return false, ferrors.FileSystemError("failed to create output directory").
			WithCause(err).
			WithContext("path", filepath.Dir(target)).
			Build()
	}
	slog.Info("Writing page", logfields.Page(p.name), logfields.Target(target))
	// #nosec G306 -- generated site files are world-readable
	if err := os.WriteFile(target, content, 0o644); err != nil {
		return false, ferrors.FileSystemError("failed to write page").
			WithCause(err).
			WithContext("page", p.name).
			WithContext("path", target).
			Build()
	}
	return true, nil
}

// Process renders and writes the page, reporting whether a file was written.
func (p *Page) Process(force bool) (bool, error) {
	if err := p.Render(); err != nil {
		return false, err
	}
	return p.Write(force)
}

// Headers returns the headings of the rendered body in document order.
// It panics when called before Render.
func (p *Page) Headers() []Heading {
	if !p.rendered {
		panic(fmt.Sprintf("site: Headers called before Render for page %q", p.name))
	}
	return extractHeadings(p.renderedContent)
}

// Title is the "title" flag when set, else the first heading of the lowest
// level, else "". It panics when called before Render.
func (p *Page) Title() string {
	if !p.rendered {
		panic(fmt.Sprintf("site: Title called before Render for page %q", p.name))
	}
	if t, ok := p.flags.String("title"); ok && t != "" {
		return t
	}
	var best *Heading
	headers := p.Headers()
	for i := range headers {
		if best == nil || headers[i].Level < best.Level {
			best = &headers[i]
		}
	}
	if best == nil {
		return ""
	}
	return best.Text
}

// Label is a navigation label that is safe to use before rendering: the
// title flag when set, otherwise the basename.
func (p *Page) Label() string {
	if t, ok := p.flags.String("title"); ok && t != "" {
		return t
	}
	return p.basename
}

// RelativeURL is the path of other's output relative to this page's output
// directory, always "/"-separated.
func (p *Page) RelativeURL(other *Page) string {
	return relativePath(path.Dir(p.targetPath), other.targetPath)
}

func relativePath(fromDir, target string) string {
	from := segments(fromDir)
	to := segments(target)
	i := 0
	for i < len(from) && i < len(to) && from[i] == to[i] {
		i++
	}
	parts := make([]string, 0, len(from)-i+len(to)-i)
	for range from[i:] {
		parts = append(parts, "..")
	}
	parts = append(parts, to[i:]...)
	if len(parts) == 0 {
		return "."
	}
	return strings.Join(parts, "/")
}

func segments(p string) []string {
	p = strings.Trim(path.Clean(p), "/")
	if p == "." || p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

func hashFile(name string) (uint64, error) {
	f, err := os.Open(filepath.Clean(name))
	if err != nil {
		return 0, err
	}
	defer func() { _ = f.Close() }()
	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}

