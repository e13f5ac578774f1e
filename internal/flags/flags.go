// Package flags extracts inline "// key value" directives from page sources.
//
// A directive is a whole line starting with "//", followed by a key made of
// letters, digits, hyphens or underscores and an optional value. Directives
// may appear anywhere in the text so they can hide inside the comment syntax
// of most markup formats.
package flags

import (
	"maps"
	"regexp"
	"slices"
	"strings"
)

var directiveRe = regexp.MustCompile(`(?m)^//[ \t]*([A-Za-z0-9_-]+)(?:[ \t]+([^\n]*))?[ \t]*(?:\n|$)`)

// Flags maps directive keys to values. A directive without a value is stored
// as boolean true; everything else is a string unless it came from YAML front
// matter.
type Flags map[string]any

// Parse removes every directive line from data and returns the trimmed
// remainder together with the collected flags. Later duplicates win.
// A key must be followed by blanks or the end of the line, so "// title:x"
// is ordinary content.
func Parse(data string) (string, Flags) {
	fl := Flags{}
	body := directiveRe.ReplaceAllStringFunc(data, func(line string) string {
		m := directiveRe.FindStringSubmatch(line)
		key, value := m[1], strings.TrimSpace(m[2])
		if value == "" {
			fl[key] = true
		} else {
			fl[key] = value
		}
		return ""
	})
	return strings.TrimSpace(body), fl
}

// String returns the value for key when it is a plain string.
func (f Flags) String(key string) (string, bool) {
	s, ok := f[key].(string)
	return s, ok
}

// Bool reports whether key is set to boolean true or a truthy string.
func (f Flags) Bool(key string) bool {
	switch v := f[key].(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(v) {
		case "1", "true", "yes", "on":
			return true
		}
	}
	return false
}

// Merge copies other into f, overwriting existing keys.
func (f Flags) Merge(other Flags) Flags {
	if f == nil {
		f = Flags{}
	}
	maps.Copy(f, other)
	return f
}

// Keys returns the flag keys in sorted order.
func (f Flags) Keys() []string {
	return slices.Sorted(maps.Keys(f))
}
