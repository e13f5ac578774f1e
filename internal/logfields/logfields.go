package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyPage       = "page"
	KeyPath       = "path"
	KeySource     = "source"
	KeyTarget     = "target"
	KeyExtension  = "extension"
	KeyTemplate   = "template"
	KeyLink       = "link"
	KeyRenderer   = "renderer"
	KeyCount      = "count"
	KeyForce      = "force"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Page(name string) slog.Attr      { return slog.String(KeyPage, name) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Source(p string) slog.Attr       { return slog.String(KeySource, p) }
func Target(p string) slog.Attr       { return slog.String(KeyTarget, p) }
func Extension(ext string) slog.Attr  { return slog.String(KeyExtension, ext) }
func Template(name string) slog.Attr  { return slog.String(KeyTemplate, name) }
func Link(loc string) slog.Attr       { return slog.String(KeyLink, loc) }
func Renderer(name string) slog.Attr  { return slog.String(KeyRenderer, name) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Force(f bool) slog.Attr          { return slog.Bool(KeyForce, f) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
