// Package media handles output naming: template validation, rendering, and
// filename sanitization.
package media

import (
	"fmt"
	"strings"

	"ytgrab/internal/util"
)

// DefaultTemplate is the output naming template used when none is given.
const DefaultTemplate = "{title}.{ext}"

const (
	placeholderTitle = "title"
	placeholderExt   = "ext"
)

// ValidateTemplate checks that tmpl uses only the recognized placeholders
// {title} and {ext}, with balanced braces.
func ValidateTemplate(tmpl string) error {
	if strings.TrimSpace(tmpl) == "" {
		return fmt.Errorf("template must not be empty")
	}
	rest := tmpl
	for {
		open := strings.IndexByte(rest, '{')
		closeIdx := strings.IndexByte(rest, '}')
		if open == -1 && closeIdx == -1 {
			return nil
		}
		if open == -1 || closeIdx < open {
			return fmt.Errorf("unbalanced braces in template %q", tmpl)
		}
		name := rest[open+1 : closeIdx]
		if name != placeholderTitle && name != placeholderExt {
			return fmt.Errorf("unknown placeholder {%s} in template %q", name, tmpl)
		}
		rest = rest[closeIdx+1:]
	}
}

// Render substitutes title and ext into tmpl and returns a filesystem-safe
// filename. Rendered values are sanitized so that path separators and
// leading dot sequences in a video title can never escape the output
// directory.
func Render(tmpl, title, ext string) string {
	if tmpl == "" {
		tmpl = DefaultTemplate
	}
	safeTitle := util.SanitizeFilename(title)
	safeExt := util.SanitizeFilename(strings.TrimLeft(ext, "."))
	name := strings.ReplaceAll(tmpl, "{"+placeholderTitle+"}", safeTitle)
	name = strings.ReplaceAll(name, "{"+placeholderExt+"}", safeExt)
	// The template text itself may carry separators; sanitize the final
	// name as a whole, preserving a single extension dot.
	if i := strings.LastIndexByte(name, '.'); i > 0 && i < len(name)-1 {
		return util.SanitizeFilename(name[:i]) + "." + util.SanitizeFilename(name[i+1:])
	}
	return util.SanitizeFilename(name)
}

// ToYtdlp converts a ytgrab template into yt-dlp output-template syntax.
func ToYtdlp(tmpl string) string {
	if tmpl == "" {
		tmpl = DefaultTemplate
	}
	s := strings.ReplaceAll(tmpl, "{"+placeholderTitle+"}", "%(title)s")
	return strings.ReplaceAll(s, "{"+placeholderExt+"}", "%(ext)s")
}
