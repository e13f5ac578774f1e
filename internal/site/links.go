package site

import (
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
)

// FindLinkPage resolves a locator to a page: an exact name first, then a
// sibling of from, then any page with that basename (lowest name wins).
func (p *Project) FindLinkPage(from *Page, locator string) *Page {
	if pg, ok := p.pages[locator]; ok {
		return pg
	}
	if from != nil {
		if parent := from.Parent(); parent != nil {
			if pg, ok := p.pages[parent.name+"/"+locator]; ok {
				return pg
			}
		}
	}

	var matches []*Page
	for _, pg := range p.sorted {
		if pg.basename == locator {
			matches = append(matches, pg)
		}
	}
	if len(matches) == 0 {
		return nil
	}
	if len(matches) > 1 {
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = m.name
		}
		slog.Warn("Ambiguous link target",
			logfields.Link(locator),
			slog.String("chosen", matches[0].name),
			slog.Any("candidates", names))
	}
	return matches[0]
}

var linkAttr = regexp.MustCompile(`(?i)(?:^|[\s<])(?:href|src)\s*=\s*(?:"([^"]*)"|'([^']*)'|([^\s"'>]+))`)

// RewriteLinks replaces href/src values that name pages with relative URLs
// from page. Unmatched references are left byte-for-byte and returned.
// Only attributes named exactly href or src count; data-src and similar
// custom attributes are never touched.
func (p *Project) RewriteLinks(page *Page, content string) (string, []string) {
	var unresolved []string
	var b strings.Builder
	last := 0
	for _, m := range linkAttr.FindAllStringSubmatchIndex(content, -1) {
		start, end := valueSpan(m)
		value := content[start:end]
		rewritten, ok := p.resolveReference(page, value)
		if !ok {
			unresolved = append(unresolved, value)
			slog.Warn("Unresolved link", logfields.Page(page.name), logfields.Link(value))
			if p.opts.OnUnresolvedLink != nil {
				p.opts.OnUnresolvedLink(page, value)
			}
			continue
		}
		if rewritten == value {
			continue
		}
		b.WriteString(content[last:start])
		b.WriteString(rewritten)
		last = end
	}
	if last == 0 {
		return content, unresolved
	}
	b.WriteString(content[last:])
	return b.String(), unresolved
}

func valueSpan(m []int) (int, int) {
	for g := 1; g <= 3; g++ {
		if m[2*g] >= 0 {
			return m[2*g], m[2*g+1]
		}
	}
	return m[1], m[1]
}

// resolveReference returns the rewritten value and whether the reference
// was handled. External, absolute and fragment-only values are returned
// unchanged.
func (p *Project) resolveReference(page *Page, value string) (string, bool) {
	u, err := url.Parse(value)
	if err != nil {
		return value, false
	}
	if u.Scheme != "" || u.Host != "" || u.Opaque != "" {
		return value, true
	}
	if u.Path == "" || strings.HasPrefix(u.Path, "/") {
		return value, true
	}

	locator := strings.TrimPrefix(u.Path, "./")
	target := p.FindLinkPage(page, locator)
	if target == nil && strings.HasSuffix(locator, ".html") {
		target = p.FindLinkPage(page, strings.TrimSuffix(locator, ".html"))
	}
	if target == nil {
		return value, false
	}

	suffix := ""
	if i := strings.IndexAny(value, "?#"); i >= 0 {
		suffix = value[i:]
	}
	return page.RelativeURL(target) + suffix, true
}
