package filestore

import (
	"fmt"
	"strings"

	"pdfapi/internal/model"
)

// Extension is appended to every allocated output name that lacks it.
const Extension = ".pdf"

const defaultStem = "document"

// AllocateOutputName derives the name of an output file.
//
// Without a suggestion the name is prefix + the upload's stem + Extension, so
// "report.pdf" with prefix "protected_" becomes "protected_report.pdf". A
// suggestion is reduced to its last path segment and given Extension unless it
// already ends with it. The result never contains ".." or a path separator.
func AllocateOutputName(prefix, uploadName, suggested string) (string, error) {
	suggested = strings.TrimSpace(suggested)
	if suggested == "" {
		stem := cleanStem(trimExtension(lastSegment(uploadName)))
		if stem == "" {
			stem = defaultStem
		}
		return ensureExtension(prefix + stem), nil
	}

	name := lastSegment(suggested)
	if !validName(name) || strings.Contains(name, "..") {
		return "", fmt.Errorf("%w: output name %q is not allowed", model.ErrInvalidInput, suggested)
	}
	name = ensureExtension(name)
	if strings.Contains(name, "..") {
		return "", fmt.Errorf("%w: output name %q is not allowed", model.ErrInvalidInput, suggested)
	}
	return name, nil
}

// lastSegment strips every directory component, treating both slash styles
// as separators regardless of platform.
func lastSegment(name string) string {
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		return name[i+1:]
	}
	return name
}

func hasExtension(name string) bool {
	return len(name) > len(Extension) && strings.EqualFold(name[len(name)-len(Extension):], Extension)
}

func trimExtension(name string) string {
	if hasExtension(name) {
		return name[:len(name)-len(Extension)]
	}
	return name
}

func ensureExtension(name string) string {
	if hasExtension(name) {
		return name
	}
	return name + Extension
}

// cleanStem makes an upload-derived stem safe to embed in an output name.
func cleanStem(stem string) string {
	stem = strings.Map(func(r rune) rune {
		if isControl(r) {
			return -1
		}
		return r
	}, stem)
	for strings.Contains(stem, "..") {
		stem = strings.ReplaceAll(stem, "..", ".")
	}
	return strings.Trim(stem, ". ")
}

func isControl(r rune) bool {
	return r < 0x20 || r == 0x7f
}

// validName reports whether name is a single, visible path segment without
// control characters.
func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.HasPrefix(name, ".") {
		return false
	}
	return !strings.ContainsAny(name, "/\\") && strings.IndexFunc(name, isControl) < 0
}
