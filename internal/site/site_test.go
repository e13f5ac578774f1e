package site

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitebuilder/internal/render"
)

const testTemplate = `{{ STATIC }}|{{ title }}|{{ url }}|{{ content }}`

// writeTree creates files relative to base, creating parent directories.
func writeTree(t *testing.T, base string, files map[string]string) {
	t.Helper()
	for rel, body := range files {
		full := filepath.Join(base, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(body), 0o644))
	}
}

// newTestProject builds and loads a project whose content is files (paths
// relative to content/) using a minimal pipe-separated template.
func newTestProject(t *testing.T, files map[string]string) *Project {
	t.Helper()
	return newTestProjectWithOptions(t, files, DefaultOptions())
}

func newTestProjectWithOptions(t *testing.T, files map[string]string, opts Options) *Project {
	t.Helper()
	base := t.TempDir()
	tree := map[string]string{"templates/page.html": testTemplate}
	for rel, body := range files {
		tree["content/"+rel] = body
	}
	writeTree(t, base, tree)

	reg := render.NewRegistry()
	render.RegisterBuiltins(reg, render.Options{Markdown: render.MarkdownOptions{AutoHeadingID: true}})
	p := NewProject(base, reg, opts)
	require.NoError(t, p.Load())
	return p
}

func mustPage(t *testing.T, p *Project, name string) *Page {
	t.Helper()
	pg, ok := p.Page(name)
	require.True(t, ok, "page %q not found", name)
	return pg
}

func pageNames(pages []*Page) []string {
	out := make([]string, len(pages))
	for i, pg := range pages {
		out[i] = pg.Name()
	}
	return out
}
