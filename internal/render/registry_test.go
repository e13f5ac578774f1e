package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitebuilder/internal/flags"
)

type testDoc struct {
	name string
	ext  string
}

func (d testDoc) Name() string       { return d.name }
func (d testDoc) Extension() string  { return d.ext }
func (d testDoc) Flags() flags.Flags { return flags.Flags{} }

type upperRenderer struct{}

func (upperRenderer) RenderToHTML(_ Document, source string) (string, error) {
	return "<p>" + source + "</p>", nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	reg := NewRegistry()
	reg.Register(RawRenderer{}, "HTML", ".htm")

	rd, ok := reg.Get("html")
	require.True(t, ok)
	assert.Equal(t, "raw", NameOf(rd))

	_, ok = reg.Get("HTM")
	assert.True(t, ok, "lookup is case-insensitive")
	_, ok = reg.Get(".Htm")
	assert.True(t, ok, "leading dot is ignored")

	_, ok = reg.Get("rst")
	assert.False(t, ok)
}

func TestRegistry_LaterRegistrationWins(t *testing.T) {
	reg := NewRegistry()
	reg.Register(RawRenderer{}, "txt")
	reg.Register(upperRenderer{}, "TXT", "")

	rd, ok := reg.Get("txt")
	require.True(t, ok)
	assert.Equal(t, "custom", NameOf(rd))
	assert.Equal(t, []string{"txt"}, reg.Extensions())
}

func TestRegistry_IndependentInstances(t *testing.T) {
	a := NewRegistry()
	b := NewRegistry()
	a.Register(RawRenderer{}, "html")

	_, ok := b.Get("html")
	assert.False(t, ok)
}

func TestRegisterBuiltins(t *testing.T) {
	reg := NewRegistry()
	RegisterBuiltins(reg, Options{})

	assert.Equal(t, []string{"htm", "html", "markdown", "md", "mdown", "textile", "tx"}, reg.Extensions())
	desc := reg.Describe()
	assert.Equal(t, "raw", desc["html"])
	assert.Equal(t, "markdown", desc["md"])
	assert.Equal(t, "textile", desc["tx"])
}

func TestRawRenderer(t *testing.T) {
	out, err := RawRenderer{}.RenderToHTML(testDoc{name: "a", ext: "html"}, "<b>x</b>")
	require.NoError(t, err)
	assert.Equal(t, "<b>x</b>", out)
}

func TestMarkdownRenderer(t *testing.T) {
	md := NewMarkdownRenderer(MarkdownOptions{Unsafe: true, AutoHeadingID: true})
	doc := testDoc{name: "docs/intro", ext: "md"}

	out, err := md.RenderToHTML(doc, "# Intro\n\n| a | b |\n|---|---|\n| 1 | 2 |\n\n<div class=\"x\">raw</div>\n")
	require.NoError(t, err)
	assert.Contains(t, out, `<h1 id="intro">Intro</h1>`)
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, `<div class="x">raw</div>`)
}

func TestMarkdownRenderer_SafeModeDropsRawHTML(t *testing.T) {
	md := NewMarkdownRenderer(MarkdownOptions{})
	out, err := md.RenderToHTML(testDoc{name: "a", ext: "md"}, "<script>alert(1)</script>\n")
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>")
}

func TestMarkdownRenderer_HardWraps(t *testing.T) {
	md := NewMarkdownRenderer(MarkdownOptions{HardWraps: true})
	out, err := md.RenderToHTML(testDoc{name: "a", ext: "md"}, "one\ntwo\n")
	require.NoError(t, err)
	assert.Contains(t, out, "<br>")
}

func TestMarkdownRenderer_AutoHeadingID(t *testing.T) {
	doc := testDoc{name: "a", ext: "md"}

	out, err := NewMarkdownRenderer(MarkdownOptions{AutoHeadingID: true}).RenderToHTML(doc, "## Getting Started\n")
	require.NoError(t, err)
	assert.Equal(t, "<h2 id=\"getting-started\">Getting Started</h2>\n", out)

	out, err = NewMarkdownRenderer(MarkdownOptions{}).RenderToHTML(doc, "## Getting Started\n")
	require.NoError(t, err)
	assert.Equal(t, "<h2>Getting Started</h2>\n", out)
}

func TestCollectExtensions(t *testing.T) {
	assert.Len(t, collectExtensions(nil), 1)
	assert.Len(t, collectExtensions([]string{"table", "Tables", "bogus", "footnote"}), 2)
	assert.Contains(t, KnownMarkdownExtensions(), "gfm")
}
