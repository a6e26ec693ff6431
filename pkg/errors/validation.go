package errors

import (
	"strings"
	"unicode"
)

// ValidateNodeName validates a node name for safety and correctness.
// Node names come straight from user input, so the rules are conservative:
//   - No empty names
//   - No control characters
//   - No box-drawing glyphs that would corrupt the rendered grid
//   - Maximum length of 256 characters
func ValidateNodeName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "node name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "node name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "node name contains invalid control characters")
		}
	}

	// Box-drawing or arrow glyphs in names collide with the renderer's output.
	if strings.ContainsAny(name, "┌┐└┘─│├┤┬┴┼▼▲►◄░") {
		return New(ErrCodeInvalidInput, "node name contains reserved drawing characters: %q", name)
	}

	return nil
}

// ValidateGroupName validates a group label.
// Group names follow the same rules as node names but may not contain
// a colon, which delimits the label in the input syntax.
func ValidateGroupName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidGroup, "group name cannot be empty")
	}

	if strings.Contains(name, ":") {
		return New(ErrCodeInvalidGroup, "group name cannot contain ':'")
	}

	return ValidateNodeName(name)
}

// ValidateDirection validates a layout direction string.
// Only "TB" (top-to-bottom) and "LR" (left-to-right) are supported.
func ValidateDirection(dir string) error {
	switch dir {
	case "TB", "LR":
		return nil
	default:
		return New(ErrCodeInvalidDirection, "invalid direction: %q (must be TB or LR)", dir)
	}
}
