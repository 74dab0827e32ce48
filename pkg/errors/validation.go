package errors

import (
	"strings"
	"unicode"
)

// ValidatePartName validates a part name from a manifest for safety and
// correctness. Part names end up in cache keys, JSON output, and SVG
// attributes, so the rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path traversal sequences (.., //, backslash)
//   - No null bytes
//   - Maximum length of 256 characters
func ValidatePartName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidManifest, "part name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidManifest, "part name too long (max 256 characters)")
	}

	// Check for control characters and null bytes
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidManifest, "part name contains invalid control characters")
		}
	}

	// Check for path traversal patterns
	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidManifest, "part name contains invalid characters: %q", pattern)
		}
	}

	return nil
}
