package site

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/flosch/pongo2/v6"
	"golang.org/x/text/unicode/norm"

	ferrors "git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/render"
)

// Fixed directory names inside a project.
const (
	TemplatesDir    = "templates"
	ContentDir      = "content"
	StaticDir       = "static"
	OutputDir       = "output"
	OutputStaticDir = "static"
)

// Options tune page loading and template selection.
type Options struct {
	TemplateExtension string
	DefaultTemplate   string
	FrontMatter       bool
	Includes          bool
	// OnUnresolvedLink is called for every link target that matched no page.
	OnUnresolvedLink func(page *Page, locator string)
}

// DefaultOptions returns the options used when no configuration is present.
func DefaultOptions() Options {
	return Options{
		TemplateExtension: "html",
		DefaultTemplate:   "page",
		FrontMatter:       true,
		Includes:          true,
	}
}

// Project is a directory tree of templates, content and static assets plus
// the page graph discovered from it.
type Project struct {
	basePath         string
	templatePath     string
	contentPath      string
	staticPath       string
	outputPath       string
	outputStaticPath string

	registry *render.Registry
	opts     Options

	pages    map[string]*Page
	sorted   []*Page
	topLevel []*Page

	templates *pongo2.TemplateSet
}

// NewProject binds a project to basePath. The directory does not need to
// exist until Init or Load is called.
func NewProject(basePath string, registry *render.Registry, opts Options) *Project {
	if abs, err := filepath.Abs(basePath); err == nil {
		basePath = abs
	}
	if registry == nil {
		registry = render.NewRegistry()
	}
	def := DefaultOptions()
	if opts.TemplateExtension == "" {
		opts.TemplateExtension = def.TemplateExtension
	}
	opts.TemplateExtension = strings.TrimPrefix(opts.TemplateExtension, ".")
	if opts.DefaultTemplate == "" {
		opts.DefaultTemplate = def.DefaultTemplate
	}
	output := filepath.Join(basePath, OutputDir)
	return &Project{
		basePath:         basePath,
		templatePath:     filepath.Join(basePath, TemplatesDir),
		contentPath:      filepath.Join(basePath, ContentDir),
		staticPath:       filepath.Join(basePath, StaticDir),
		outputPath:       output,
		outputStaticPath: filepath.Join(output, OutputStaticDir),
		registry:         registry,
		opts:             opts,
		pages:            map[string]*Page{},
	}
}

func (p *Project) BasePath() string         { return p.basePath }
func (p *Project) TemplatePath() string     { return p.templatePath }
func (p *Project) ContentPath() string      { return p.contentPath }
func (p *Project) StaticPath() string       { return p.staticPath }
func (p *Project) OutputPath() string       { return p.outputPath }
func (p *Project) OutputStaticPath() string { return p.outputStaticPath }
func (p *Project) Registry() *render.Registry {
	return p.registry
}
func (p *Project) Options() Options { return p.opts }

// Init creates the project directories and a default page template if none
// exists. Existing files are never overwritten.
func (p *Project) Init() error {
	for _, dir := range []string{p.templatePath, p.contentPath, p.staticPath, p.outputPath, p.outputStaticPath} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return ferrors.FileSystemError("failed to create project directory").
				WithCause(err).
				WithContext("path", dir).
				Build()
		}
	}

	tpl := filepath.Join(p.templatePath, p.opts.DefaultTemplate+"."+p.opts.TemplateExtension)
	if _, err := os.Stat(tpl); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return ferrors.FileSystemError("failed to inspect template").
			WithCause(err).
			WithContext("path", tpl).
			Build()
	}

	slog.Info("Creating default template", logfields.Template(tpl))
	if err := os.MkdirAll(filepath.Dir(tpl), 0o755); err != nil {
		return ferrors.FileSystemError("failed to create template directory").
			WithCause(err).
			WithContext("path", filepath.Dir(tpl)).
			Build()
	}
	// #nosec G306 -- templates are not secret
	if err := os.WriteFile(tpl, defaultTemplate, 0o644); err != nil {
		return ferrors.FileSystemError("failed to write default template").
			WithCause(err).
			WithContext("path", tpl).
			Build()
	}
	return nil
}

// DiscoverPages walks the content tree and returns one page per regular
// file. Hidden files and directories are skipped. Symlinks count only when
// they resolve to a regular file; symlinked directories are not followed.
func (p *Project) DiscoverPages() ([]*Page, error) {
	var pages []*Page
	err := filepath.WalkDir(p.contentPath, func(full string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if full != p.contentPath && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			info, statErr := os.Stat(full)
			if statErr != nil || !info.Mode().IsRegular() {
				slog.Debug("Skipping symlink without a regular file target", logfields.Source(full))
				return nil
			}
		} else if !d.Type().IsRegular() {
			return nil
		}
		name, err := p.pageName(full)
		if err != nil {
			return err
		}
		slog.Debug("Discovered page", logfields.Page(name), logfields.Source(full))
		pages = append(pages, newPage(p, name, full))
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ferrors.NotFoundError("content directory not found").
				WithCause(err).
				WithContext("path", p.contentPath).
				Build()
		}
		return nil, ferrors.FileSystemError("failed to walk content directory").
			WithCause(err).
			WithContext("path", p.contentPath).
			Build()
	}
	return pages, nil
}

// pageName maps a content file to its page name: the relative path without
// extension, with "index" files naming their directory.
func (p *Project) pageName(full string) (string, error) {
	rel, err := filepath.Rel(p.contentPath, full)
	if err != nil {
		return "", err
	}
	dir, file := path.Split(filepath.ToSlash(rel))
	base := strings.TrimSuffix(file, path.Ext(file))
	name := dir + base
	if base == "index" {
		name = strings.TrimSuffix(dir, "/")
	}
	if name == "" {
		name = "index"
	}
	return norm.NFC.String(name), nil
}

// Load discovers pages and rebuilds the page map and parent/child links.
// On name collisions the later source in walk order wins.
func (p *Project) Load() error {
	discovered, err := p.DiscoverPages()
	if err != nil {
		return err
	}

	pages := make(map[string]*Page, len(discovered))
	for _, pg := range discovered {
		if prev, dup := pages[pg.name]; dup {
			slog.Warn("Duplicate page name, later source wins",
				logfields.Page(pg.name),
				slog.String("replaced", prev.sourcePath),
				logfields.Source(pg.sourcePath))
		}
		pages[pg.name] = pg
	}

	sorted := make([]*Page, 0, len(pages))
	for _, pg := range pages {
		pg.parentName = ""
		pg.childNames = nil
		sorted = append(sorted, pg)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].name < sorted[j].name })

	var top []*Page
	for _, pg := range sorted {
		if idx := strings.LastIndex(pg.name, "/"); idx >= 0 {
			if parent, ok := pages[pg.name[:idx]]; ok {
				pg.parentName = parent.name
				parent.childNames = append(parent.childNames, pg.name)
				continue
			}
		}
		top = append(top, pg)
	}

	p.pages = pages
	p.sorted = sorted
	p.topLevel = top
	slog.Debug("Loaded project", logfields.Count(len(sorted)), logfields.Path(p.basePath))
	return nil
}

// Pages returns all pages ordered by name.
func (p *Project) Pages() []*Page {
	return append([]*Page(nil), p.sorted...)
}

// Page looks a page up by its exact name.
func (p *Project) Page(name string) (*Page, bool) {
	pg, ok := p.pages[name]
	return pg, ok
}

// TopLevelPages returns the pages without a parent, ordered by name.
func (p *Project) TopLevelPages() []*Page {
	return append([]*Page(nil), p.topLevel...)
}
