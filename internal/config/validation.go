package config

import (
	"fmt"
	"slices"
	"strings"

	ferrors "git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/render"
	"git.home.luguber.info/inful/sitebuilder/internal/site"
)

// ValidateConfig checks a normalized configuration.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return ferrors.ConfigError("configuration is nil").Build()
	}
	if err := validateTemplates(cfg.Templates); err != nil {
		return err
	}
	return validateRender(cfg.Render)
}

func validateTemplates(t TemplatesConfig) error {
	if strings.ContainsAny(t.Extension, `/\`) {
		return ferrors.ConfigError(fmt.Sprintf("templates.extension must be a bare extension, got %q", t.Extension)).Build()
	}
	if t.Default != "" && !site.ValidTemplateName(t.Default) {
		return ferrors.ConfigError(fmt.Sprintf("templates.default must be a relative template name, got %q", t.Default)).Build()
	}
	return nil
}

func validateRender(r RenderConfig) error {
	known := render.KnownMarkdownExtensions()
	for _, e := range r.Markdown.Extensions {
		if !slices.Contains(known, e) {
			return ferrors.ConfigError(fmt.Sprintf("unknown markdown extension %q", e)).
				WithContext("valid", strings.Join(known, ",")).
				Build()
		}
	}
	if r.Textile.Command == "" {
		return ferrors.ConfigError("render.textile.command must not be empty").Build()
	}
	return nil
}
