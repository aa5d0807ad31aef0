// Package validation holds the input checks applied to configuration values
// before they reach the filesystem or end up in generated pages.
package validation

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidatePath validates a file path to prevent path traversal attacks
func ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	// Clean the path to resolve any . or .. components
	cleanPath := filepath.Clean(path)

	if cleanPath == ".." || strings.HasPrefix(cleanPath, ".."+string(filepath.Separator)) {
		return fmt.Errorf("path traversal detected: %s", path)
	}

	restrictedPaths := []string{
		"/etc/",
		"/proc/",
		"/sys/",
		"/dev/",
		"/boot/",
	}

	cleanPathLower := strings.ToLower(filepath.ToSlash(cleanPath)) + "/"
	for _, restricted := range restrictedPaths {
		if strings.HasPrefix(cleanPathLower, restricted) {
			return fmt.Errorf("access to restricted path denied: %s", path)
		}
	}

	dangerousChars := []string{";", "&", "|", "$", "`", "<", ">"}
	for _, char := range dangerousChars {
		if strings.Contains(path, char) {
			return fmt.Errorf("path contains dangerous character: %s", char)
		}
	}

	return nil
}

// ValidateFileExtension validates file extensions against an allowlist
func ValidateFileExtension(filename string, allowedExtensions []string) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return fmt.Errorf("file must have an extension")
	}

	for _, allowed := range allowedExtensions {
		if ext == strings.ToLower(allowed) {
			return nil
		}
	}

	return fmt.Errorf("file extension '%s' is not allowed", ext)
}

// ValidateLinkPattern checks a page link pattern: exactly one %s verb, no
// other verbs, and a relative target.
func ValidateLinkPattern(pattern string) error {
	if pattern == "" {
		return fmt.Errorf("link pattern cannot be empty")
	}
	verbs := 0
	for i := 0; i < len(pattern); i++ {
		if pattern[i] != '%' {
			continue
		}
		if i+1 >= len(pattern) {
			return fmt.Errorf("link pattern %q ends with a bare %%", pattern)
		}
		switch pattern[i+1] {
		case '%':
		case 's':
			verbs++
		default:
			return fmt.Errorf("link pattern %q uses %%%c; only %%s is allowed", pattern, pattern[i+1])
		}
		i++
	}
	if verbs != 1 {
		return fmt.Errorf("link pattern %q must contain exactly one %%s", pattern)
	}
	if strings.HasPrefix(pattern, "/") || strings.Contains(pattern, "://") {
		return fmt.Errorf("link pattern %q must be relative", pattern)
	}
	return ValidatePath(strings.ReplaceAll(pattern, "%s", "x"))
}
