package domain

import "strings"

// DefaultSlug is used when a title has no alphanumeric characters.
const DefaultSlug = "feature-plan"

// Slugify derives a filesystem-safe identifier from a feature title.
// The result only contains [a-z0-9] and single '-' separators, and
// Slugify(Slugify(s)) == Slugify(s).
func Slugify(title string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	if b.Len() == 0 {
		return DefaultSlug
	}
	return b.String()
}

// ValidSlug reports whether s is already in canonical slug form.
func ValidSlug(s string) bool {
	return s != "" && Slugify(s) == s
}
