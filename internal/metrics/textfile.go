package metrics

import (
	"os"
	"path/filepath"

	prom "github.com/prometheus/client_golang/prometheus"

	ferrors "git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
)

// WriteTextfile writes every metric in reg to path in the text exposition
// format, creating the parent directory if needed. Failures are warnings:
// metrics never fail a build.
func WriteTextfile(reg *prom.Registry, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return ferrors.FileSystemError("failed to create metrics directory").
			WithCause(err).
			Warning().
			WithContext("path", path).
			Build()
	}
	if err := prom.WriteToTextfile(path, reg); err != nil {
		return ferrors.FileSystemError("failed to write metrics textfile").
			WithCause(err).
			Warning().
			WithContext("path", path).
			Build()
	}
	return nil
}
