package epubpack

import (
	"path"
	"path/filepath"
	"strings"
)

// entryName derives the archive-internal name for the file at abs, which
// must live under root. The result uses forward slashes and carries no
// leading slash, regardless of the platform separator or the depth of the
// staging root.
func entryName(root, abs string) string {
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		// Fall back to prefix stripping; abs always lives under root
		// when called from the archive walk.
		rel = strings.TrimPrefix(abs, root)
	}
	name := filepath.ToSlash(rel)
	for strings.HasPrefix(name, "/") {
		name = name[1:]
	}
	return name
}

// isSafeEntryName checks whether name is a safe archive-internal path that
// does not escape the archive root via traversal and is not absolute.
func isSafeEntryName(name string) bool {
	cleaned := path.Clean(name)
	if cleaned == "" || cleaned == "." {
		return false
	}
	if strings.HasPrefix(cleaned, "/") {
		return false
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return false
	}
	return true
}
