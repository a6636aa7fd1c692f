package solution

import (
	"path/filepath"
	"strings"
)

// NormalizePath converts Windows-style paths to forward slash format
func NormalizePath(path string) string {
	if path == "" {
		return ""
	}

	// Check if this is a UNC path (starts with \\ or //)
	isUNC := strings.HasPrefix(path, "\\\\") || strings.HasPrefix(path, "//")

	normalized := strings.ReplaceAll(path, "\\", "/")

	if isUNC {
		normalized = "//" + strings.TrimLeft(normalized, "/")
		remainder := normalized[2:]
		for strings.Contains(remainder, "//") {
			remainder = strings.ReplaceAll(remainder, "//", "/")
		}
		return "//" + remainder
	}

	for strings.Contains(normalized, "//") {
		normalized = strings.ReplaceAll(normalized, "//", "/")
	}
	return normalized
}

// isAbs reports whether a normalized path is absolute on this OS or carries a drive letter.
func isAbs(path string) bool {
	if filepath.IsAbs(filepath.FromSlash(path)) || strings.HasPrefix(path, "/") {
		return true
	}
	return len(path) >= 3 && path[1] == ':' && path[2] == '/'
}

// ResolvePath resolves path relative to baseDir. Absolute paths are returned cleaned.
func ResolvePath(baseDir, path string) string {
	if path == "" {
		return ""
	}

	normalized := NormalizePath(path)
	if isAbs(normalized) {
		return filepath.Clean(filepath.FromSlash(normalized))
	}

	return filepath.Clean(filepath.Join(baseDir, filepath.FromSlash(normalized)))
}

// JoinRelative joins two solution-relative path fragments, keeping forward slashes.
// When rel is absolute it wins.
func JoinRelative(dir, rel string) string {
	rel = NormalizePath(rel)
	if isAbs(rel) || dir == "" || dir == "." {
		return rel
	}
	return NormalizePath(strings.TrimSuffix(NormalizePath(dir), "/") + "/" + rel)
}

// relativeDir returns the directory part of a normalized relative path, "" for none.
func relativeDir(rel string) string {
	rel = NormalizePath(rel)
	i := strings.LastIndex(rel, "/")
	if i < 0 {
		return ""
	}
	return rel[:i]
}

// isURL reports whether a project path is addressed by URL rather than file path.
func isURL(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasPrefix(lower, "http:") || strings.HasPrefix(lower, "https:")
}

// URIMapping maps a URL prefix to a local file system prefix.
type URIMapping struct {
	URIPrefix  string
	FilePrefix string
}

// URIMap is an ordered URI remapping table; the first matching prefix wins.
type URIMap []URIMapping

// Add appends a mapping to the table.
func (m *URIMap) Add(uriPrefix, filePrefix string) {
	*m = append(*m, URIMapping{URIPrefix: uriPrefix, FilePrefix: filePrefix})
}

// Resolve rewrites uri using the first entry whose prefix matches case-insensitively.
func (m URIMap) Resolve(uri string) (string, bool) {
	lower := strings.ToLower(uri)
	for _, e := range m {
		if e.URIPrefix == "" {
			continue
		}
		if strings.HasPrefix(lower, strings.ToLower(e.URIPrefix)) {
			return e.FilePrefix + uri[len(e.URIPrefix):], true
		}
	}
	return "", false
}
