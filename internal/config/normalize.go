package config

import (
	"fmt"
	"strings"
)

// NormalizationResult captures adjustments & warnings from normalization pass.
type NormalizationResult struct{ Warnings []string }

// NormalizeConfig canonicalizes enumerated and free-form fields in place and
// returns a result describing any coercions.
func NormalizeConfig(c *Config) (*NormalizationResult, error) {
	if c == nil {
		return nil, fmt.Errorf("config nil")
	}
	res := &NormalizationResult{}
	normalizeLogging(&c.Logging, res)
	normalizeTemplates(&c.Templates)
	normalizeMarkdown(&c.Render.Markdown)
	c.Render.PluginDir = strings.TrimSpace(c.Render.PluginDir)
	c.Render.Textile.Command = strings.TrimSpace(c.Render.Textile.Command)
	c.Metrics.Textfile = strings.TrimSpace(c.Metrics.Textfile)
	return res, nil
}

func normalizeLogging(l *LoggingConfig, res *NormalizationResult) {
	if lvl := NormalizeLogLevel(string(l.Level)); lvl != "" {
		if l.Level != lvl {
			res.Warnings = append(res.Warnings, warnChanged("logging.level", l.Level, lvl))
			l.Level = lvl
		}
	} else {
		if strings.TrimSpace(string(l.Level)) != "" {
			res.Warnings = append(res.Warnings, warnUnknown("logging.level", string(l.Level), string(LogLevelWarn)))
		}
		l.Level = LogLevelWarn
	}
	if f := NormalizeLogFormat(string(l.Format)); f != "" {
		if l.Format != f {
			res.Warnings = append(res.Warnings, warnChanged("logging.format", l.Format, f))
			l.Format = f
		}
	} else {
		if strings.TrimSpace(string(l.Format)) != "" {
			res.Warnings = append(res.Warnings, warnUnknown("logging.format", string(l.Format), string(LogFormatText)))
		}
		l.Format = LogFormatText
	}
}

func normalizeTemplates(t *TemplatesConfig) {
	t.Extension = strings.TrimPrefix(strings.TrimSpace(t.Extension), ".")
	t.Default = strings.TrimSpace(t.Default)
	if t.Extension == "" {
		t.Extension = "html"
	}
	if t.Default == "" {
		t.Default = "page"
	}
}

func normalizeMarkdown(m *MarkdownConfig) {
	out := m.Extensions[:0]
	for _, e := range m.Extensions {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			out = append(out, e)
		}
	}
	m.Extensions = out
}

func warnChanged(field string, from, to any) string {
	return fmt.Sprintf("normalized %s from '%v' to '%v'", field, from, to)
}

func warnUnknown(field, value, def string) string {
	return fmt.Sprintf("unknown %s '%s', defaulting to %s", field, value, def)
}
