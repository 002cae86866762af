package errors

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// ValidateSourcePath validates the path of an input source file.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//   - Must not name a directory-like path (trailing separator)
func ValidateSourcePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "source path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return New(ErrCodeInvalidPath, "source path must name a file: %q", path)
	}

	return nil
}

// ValidateOutputPath validates a path the renderer will create or overwrite.
// The parent directory is not required to exist; that is reported when the
// file is opened.
func ValidateOutputPath(path string) error {
	if err := ValidateSourcePath(path); err != nil {
		return err
	}
	if base := filepath.Base(path); base == "." || base == ".." {
		return New(ErrCodeInvalidPath, "output path must name a file: %q", path)
	}
	return nil
}

// pythonIdentifierRegex matches ASCII Python identifiers.
var pythonIdentifierRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateIdentifier reports whether name is usable as a class or attribute
// name in a diagram. Non-ASCII identifiers are accepted when every rune is a
// letter, digit or underscore, mirroring Python's own rules closely enough
// for display purposes.
func ValidateIdentifier(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "identifier cannot be empty")
	}
	if pythonIdentifierRegex.MatchString(name) {
		return nil
	}
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return New(ErrCodeInvalidInput, "invalid identifier: %q", name)
	}
	return nil
}
