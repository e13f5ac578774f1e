package site

import (
	"log/slog"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
)

var includeDirective = regexp.MustCompile(`<!--\s*include:\s*(\S+?)\s*-->`)

// PreprocessSource expands include directives in the page source with the
// flag-stripped source of the referenced page. Expansion is one level deep
// and unresolved directives are kept as written.
func (p *Project) PreprocessSource(page *Page) (string, error) {
	src := page.Source()
	if !p.opts.Includes || !strings.Contains(src, "include:") {
		return src, nil
	}

	var firstErr error
	out := includeDirective.ReplaceAllStringFunc(src, func(match string) string {
		if firstErr != nil {
			return match
		}
		locator := includeDirective.FindStringSubmatch(match)[1]
		other := p.FindLinkPage(page, locator)
		if other == nil || other == page {
			slog.Warn("Unresolved include", logfields.Page(page.name), logfields.Link(locator))
			return match
		}
		if !other.loaded {
			if err := other.Load(); err != nil {
				firstErr = err
				return match
			}
		}
		return other.source
	})
	if firstErr != nil {
		return "", firstErr
	}
	return out, nil
}
