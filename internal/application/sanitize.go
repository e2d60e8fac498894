package application

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"eventreg/internal/domain"
)

var (
	strict   = bluemonday.StrictPolicy()
	newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")
)

func clean(s string) string {
	return strings.TrimSpace(s)
}

func normalizeEmail(s string) string {
	return strings.ToLower(clean(s))
}

// hasMarkup reports whether s holds tags or comments the strict policy would
// strip. Entities and a bare "<" or "&" are plain text.
func hasMarkup(s string) bool {
	plain := html.UnescapeString(newlines.Replace(s))
	return html.UnescapeString(strict.Sanitize(s)) != plain
}

// rejectMarkup flags every field whose value carries markup. Text is stored as
// typed and escaped on output.
func rejectMarkup(errs domain.ValidationErrors, fields map[string]string) {
	for field, value := range fields {
		if hasMarkup(value) {
			errs.Add(field, domain.ValidationInvalid)
		}
	}
}
