package site

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	ferrors "git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
)

// CopyStaticAssets mirrors the static tree into the output static tree and
// returns the destinations it copied. Unless force is set, a file is
// skipped when the copy is at least as new as the source and the same size.
func (p *Project) CopyStaticAssets(force bool) ([]string, error) {
	if _, err := os.Stat(p.staticPath); errors.Is(err, fs.ErrNotExist) {
		slog.Debug("No static directory", logfields.Path(p.staticPath))
		return nil, nil
	}

	var copied []string
	err := filepath.WalkDir(p.staticPath, func(src string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(p.staticPath, src)
		if err != nil {
			return err
		}
		dst := filepath.Join(p.outputStaticPath, rel)

		info, err := os.Stat(src)
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		if !force && upToDate(info, dst) {
			return nil
		}
		slog.Debug("Copying static asset", logfields.Source(src), logfields.Target(dst))
		if err := copyFile(src, dst, info); err != nil {
			return err
		}
		copied = append(copied, dst)
		return nil
	})
	if err != nil {
		return copied, ferrors.FileSystemError("failed to copy static assets").
			WithCause(err).
			WithContext("path", p.staticPath).
			Build()
	}
	return copied, nil
}

func upToDate(src fs.FileInfo, dst string) bool {
	info, err := os.Stat(dst)
	if err != nil {
		return false
	}
	return !info.ModTime().Before(src.ModTime()) && info.Size() == src.Size()
}

// copyFile copies contents, permission bits and modification time.
func copyFile(src, dst string, info fs.FileInfo) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	in, err := os.Open(filepath.Clean(src))
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(filepath.Clean(dst), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
