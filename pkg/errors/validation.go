package errors

import (
	"slices"
	"strings"
	"unicode"
)

const maxPathLength = 500

// ValidateIconPath validates a path into an icon directory.
// It prevents path traversal out of the directory.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidateIconPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "icon path cannot be empty")
	}
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "icon path too long (max %d characters)", maxPathLength)
	}
	if hasControl(path) {
		return New(ErrCodeInvalidPath, "icon path contains invalid characters")
	}
	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "icon path must be relative (cannot start with /)")
	}
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "icon path cannot contain path traversal sequences (..)")
	}
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "icon path cannot contain backslashes")
	}
	return nil
}

// ValidateOutputPath validates the destination of a rendered document.
// Absolute paths are allowed; directories are not.
func ValidateOutputPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "output path too long (max %d characters)", maxPathLength)
	}
	if hasControl(path) {
		return New(ErrCodeInvalidPath, "output path contains invalid characters")
	}
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return New(ErrCodeInvalidPath, "output path %q names a directory", path)
	}
	return nil
}

// ValidateFormat checks that format is one of allowed.
func ValidateFormat(format string, allowed []string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	if !slices.Contains(allowed, format) {
		return New(ErrCodeInvalidFormat, "unknown format %q (valid: %s)", format, strings.Join(allowed, ", "))
	}
	return nil
}

// ValidatePersonID validates an id supplied by a user to select a person.
func ValidatePersonID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "person id cannot be empty")
	}
	if len(id) > 256 {
		return New(ErrCodeInvalidInput, "person id too long (max 256 characters)")
	}
	if hasControl(id) {
		return New(ErrCodeInvalidInput, "person id contains invalid control characters")
	}
	return nil
}

func hasControl(s string) bool {
	return strings.ContainsFunc(s, func(r rune) bool {
		return r == '\x00' || unicode.IsControl(r)
	})
}
