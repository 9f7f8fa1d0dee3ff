package storage

import (
	"path/filepath"
	"strings"
)

// SanitizeFilename reduces a client-supplied filename to a safe basename:
// path separators are stripped and anything outside [A-Za-z0-9._-] becomes
// an underscore. Empty or dot-only results collapse to "upload".
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	cleaned := strings.Trim(b.String(), "._")
	if cleaned == "" {
		return "upload"
	}
	return cleaned
}
