package site

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyStaticAssets(t *testing.T) {
	p := newTestProject(t, nil)
	writeTree(t, p.BasePath(), map[string]string{
		"static/style.css":    "body{}",
		"static/img/logo.svg": "<svg/>",
	})
	src := filepath.Join(p.StaticPath(), "style.css")
	past := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(src, past, past))
	if runtime.GOOS != "windows" {
		require.NoError(t, os.Chmod(src, 0o600))
	}

	copied, err := p.CopyStaticAssets(false)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(p.OutputStaticPath(), "style.css"),
		filepath.Join(p.OutputStaticPath(), "img", "logo.svg"),
	}, copied)

	dst := filepath.Join(p.OutputStaticPath(), "style.css")
	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(past))
	if runtime.GOOS != "windows" {
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}
	data, err := os.ReadFile(filepath.Join(p.OutputStaticPath(), "img", "logo.svg"))
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", string(data))

	copied, err = p.CopyStaticAssets(false)
	require.NoError(t, err)
	assert.Empty(t, copied)

	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(src, future, future))
	copied, err = p.CopyStaticAssets(false)
	require.NoError(t, err)
	assert.Equal(t, []string{dst}, copied)

	copied, err = p.CopyStaticAssets(true)
	require.NoError(t, err)
	assert.Len(t, copied, 2)
}

func TestCopyStaticAssets_SizeChangeCopies(t *testing.T) {
	p := newTestProject(t, nil)
	writeTree(t, p.BasePath(), map[string]string{"static/a.txt": "one"})
	_, err := p.CopyStaticAssets(false)
	require.NoError(t, err)

	dst := filepath.Join(p.OutputStaticPath(), "a.txt")
	require.NoError(t, os.WriteFile(dst, []byte("longer"), 0o644))
	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(dst, later, later))

	copied, err := p.CopyStaticAssets(false)
	require.NoError(t, err)
	assert.Equal(t, []string{dst}, copied)
}

func TestCopyStaticAssets_NoStaticDir(t *testing.T) {
	p := newTestProject(t, nil)
	copied, err := p.CopyStaticAssets(false)
	require.NoError(t, err)
	assert.Empty(t, copied)
}
