package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestLoadProject_DefaultsWithoutFile(t *testing.T) {
	cfg, err := LoadProject(t.TempDir(), "")
	require.NoError(t, err)

	assert.Equal(t, "html", cfg.Templates.Extension)
	assert.Equal(t, "page", cfg.Templates.Default)
	assert.True(t, cfg.Content.FrontMatter)
	assert.True(t, cfg.Content.Includes)
	assert.Equal(t, "renderers", cfg.Render.PluginDir)
	assert.Equal(t, []string{"gfm"}, cfg.Render.Markdown.Extensions)
	assert.True(t, cfg.Render.Markdown.Unsafe)
	assert.True(t, cfg.Render.Markdown.AutoHeadingID)
	assert.Equal(t, "textile", cfg.Render.Textile.Command)
	assert.False(t, cfg.Build.Force)
	assert.Equal(t, LogLevelWarn, cfg.Logging.Level)
	assert.Equal(t, LogFormatText, cfg.Logging.Format)
	assert.Empty(t, cfg.Metrics.Textfile)
}

func TestLoadProject_FileOverridesDefaults(t *testing.T) {
	base := t.TempDir()
	writeFile(t, filepath.Join(base, FileName), `
templates:
  extension: .tpl
content:
  front_matter: false
render:
  markdown:
    extensions: [Table, " footnote "]
    auto_heading_id: false
build:
  copy_static: true
logging:
  level: DEBUG
  format: json
`)
	cfg, err := LoadProject(base, "")
	require.NoError(t, err)

	assert.Equal(t, "tpl", cfg.Templates.Extension)
	assert.Equal(t, "page", cfg.Templates.Default)
	assert.False(t, cfg.Content.FrontMatter)
	assert.True(t, cfg.Content.Includes)
	assert.Equal(t, []string{"table", "footnote"}, cfg.Render.Markdown.Extensions)
	assert.False(t, cfg.Render.Markdown.AutoHeadingID)
	assert.True(t, cfg.Render.Markdown.Unsafe)
	assert.True(t, cfg.Build.CopyStatic)
	assert.Equal(t, LogLevelDebug, cfg.Logging.Level)
	assert.Equal(t, LogFormatJSON, cfg.Logging.Format)
}

func TestLoadProject_ExpandsEnvAndDotEnv(t *testing.T) {
	base := t.TempDir()
	writeFile(t, filepath.Join(base, ".env"), "SITEBUILDER_TEST_TEXTILE=redcloth\n")
	writeFile(t, filepath.Join(base, FileName), "render:\n  textile:\n    command: ${SITEBUILDER_TEST_TEXTILE}\n")
	t.Cleanup(func() { _ = os.Unsetenv("SITEBUILDER_TEST_TEXTILE") })

	cfg, err := LoadProject(base, "")
	require.NoError(t, err)
	assert.Equal(t, "redcloth", cfg.Render.Textile.Command)
}

func TestLoadProject_DotEnvDoesNotOverride(t *testing.T) {
	base := t.TempDir()
	t.Setenv("SITEBUILDER_TEST_METRICS", "/from/env.prom")
	writeFile(t, filepath.Join(base, ".env"), "SITEBUILDER_TEST_METRICS=/from/file.prom\n")
	writeFile(t, filepath.Join(base, FileName), "metrics:\n  textfile: ${SITEBUILDER_TEST_METRICS}\n")

	cfg, err := LoadProject(base, "")
	require.NoError(t, err)
	assert.Equal(t, "/from/env.prom", cfg.Metrics.Textfile)
}

func TestLoadProject_ExplicitPathMustExist(t *testing.T) {
	_, err := LoadProject(t.TempDir(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryNotFound))
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, path, "templates: [unclosed\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestLoad_ValidationErrors(t *testing.T) {
	cases := map[string]string{
		"unknown markdown extension": "render:\n  markdown:\n    extensions: [mermaid]\n",
		"empty textile command":      "render:\n  textile:\n    command: \"\"\n",
		"nested template extension":  "templates:\n  extension: a/b\n",
		"escaping default template":  "templates:\n  default: ../page\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			writeFile(t, path, body)
			_, err := Load(path)
			require.Error(t, err)
			assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
		})
	}
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Init(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default().Templates, cfg.Templates)
	assert.Equal(t, Default().Render.Markdown, cfg.Render.Markdown)

	err = Init(path, false)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))

	require.NoError(t, Init(path, true))
}
