package render

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	ferrors "git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
)

// DiscoverCommands registers an ExecRenderer for each executable file in dir.
// The file name, minus any extension, lists the source extensions it handles,
// separated by "+" (e.g. "adoc+asciidoc.sh"). A missing dir is not an error.
// Returns the registered extensions in directory order.
func DiscoverCommands(reg *Registry, dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, ferrors.FileSystemError("failed to read renderer plugin directory").
			WithCause(err).
			WithContext("path", dir).
			Build()
	}

	var found []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, ferrors.FileSystemError("failed to stat renderer plugin").
				WithCause(err).
				WithContext("path", filepath.Join(dir, name)).
				Build()
		}
		if !info.Mode().IsRegular() || info.Mode().Perm()&0o111 == 0 {
			slog.Debug("Skipping non-executable plugin file", logfields.Path(name))
			continue
		}

		exts := pluginExtensions(name)
		if len(exts) == 0 {
			continue
		}
		command, err := filepath.Abs(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		reg.Register(NewExecRenderer("exec:"+name, command), exts...)
		slog.Debug("Registered command renderer", logfields.Renderer(name), slog.Any("extensions", exts))
		found = append(found, exts...)
	}
	return found, nil
}

func pluginExtensions(filename string) []string {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	if base == "" {
		base = filename
	}
	var exts []string
	for _, part := range strings.Split(base, "+") {
		if ext := normalizeExtension(part); ext != "" {
			exts = append(exts, ext)
		}
	}
	return exts
}
