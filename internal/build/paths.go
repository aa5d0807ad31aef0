package build

import (
	stderrors "errors"
	"fmt"
	"path/filepath"
	"strings"
)

// maxPageName bounds generated file names.
const maxPageName = 100

// pageFile maps a section id to its output file name through the link
// pattern, so that the links the renderer emits resolve to written files.
func pageFile(pattern, id string) (string, error) {
	if err := validateSectionPath(id); err != nil {
		return "", fmt.Errorf("section %q: %w", id, err)
	}
	name := fmt.Sprintf(pattern, id)
	if err := validatePageName(name); err != nil {
		return "", fmt.Errorf("link pattern %q: %w", pattern, err)
	}
	return name, nil
}

// validateSectionPath rejects ids that cannot safely become a file name.
func validateSectionPath(id string) error {
	if id == "" {
		return stderrors.New("empty section id")
	}
	if id == "." || id == ".." || strings.Contains(id, "..") {
		return stderrors.New("path traversal attempt detected")
	}
	if strings.ContainsAny(id, `/\`) {
		return stderrors.New("path separators not allowed in section id")
	}
	for _, char := range []string{"<", ">", "\"", "'", "&", ";", "|", "$", "`", ":", "*", "?"} {
		if strings.Contains(id, char) {
			return fmt.Errorf("dangerous character not allowed: %s", char)
		}
	}
	if len(id) > maxPageName {
		return fmt.Errorf("section id too long (max %d characters)", maxPageName)
	}
	return nil
}

func validatePageName(name string) error {
	clean := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return stderrors.New("page path escapes the output directory")
	}
	if clean == manifestFile || clean == StylesheetFile || clean == IndexFile {
		return fmt.Errorf("page path %q collides with a generated file", clean)
	}
	return nil
}
