package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxDialogUnit is the largest coordinate a dialog resource can hold; the
// binary format stores each value as a signed 16-bit integer.
const maxDialogUnit = 32767

// formNameRegex matches resource identifiers and quoted-less string names.
var formNameRegex = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_.-]*$`)

// ValidateFormName validates a dialog form name.
//
// Names are resource ids such as IDD_ABOUTBOX, numeric ids such as 101, or
// plain identifiers. They end up in file names, cache keys and URLs, so the
// rules are strict:
//   - No empty names
//   - Maximum length of 128 characters
//   - Letters, digits, underscore, dot and dash only
//   - No path traversal sequences
func ValidateFormName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidForm, "form name cannot be empty")
	}
	if len(name) > 128 {
		return New(ErrCodeInvalidForm, "form name too long (max 128 characters)")
	}
	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidForm, "form name contains invalid characters: %q", "..")
	}
	if !formNameRegex.MatchString(name) {
		return New(ErrCodeInvalidForm, "invalid form name: %q", name)
	}
	return nil
}

// ValidateControlID validates a control identifier. Empty ids are allowed
// (static controls often use -1 or nothing); control characters are not.
func ValidateControlID(id string) error {
	if len(id) > 256 {
		return New(ErrCodeInvalidForm, "control id too long (max 256 characters)")
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidForm, "control id contains invalid control characters")
		}
	}
	return nil
}

// ValidateGeometry checks that a rectangle in dialog units fits the
// resource format. Zero and negative sizes are accepted as-is.
func ValidateGeometry(left, top, width, height int) error {
	for _, v := range []int{left, top, width, height} {
		if v > maxDialogUnit || v < -maxDialogUnit-1 {
			return New(ErrCodeInvalidGeometry, "coordinate %d out of range", v)
		}
	}
	return nil
}

// ValidatePath validates a relative file path for safety.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a scheme the service can dial.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	for _, scheme := range []string{"http://", "https://", "redis://", "rediss://", "mongodb://", "mongodb+srv://"} {
		if strings.HasPrefix(rawURL, scheme) {
			return nil
		}
	}
	return New(ErrCodeInvalidInput, "URL has an unsupported scheme")
}
