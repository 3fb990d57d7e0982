package cli

import (
	"os"
	"path/filepath"
	"strings"

	axonerrors "github.com/toyz/axonmeta/internal/errors"
)

// DirectoryScanner turns command line arguments into package patterns
type DirectoryScanner struct {
	dir string
}

// NewDirectoryScanner creates a scanner resolving arguments against dir
func NewDirectoryScanner(dir string) *DirectoryScanner {
	return &DirectoryScanner{dir: dir}
}

// Patterns converts directories into package patterns relative to the scanner
// directory. Go-style recursive patterns like "./..." are kept recursive; import
// paths are passed through.
func (s *DirectoryScanner) Patterns(args []string) ([]string, error) {
	var patterns []string
	seen := make(map[string]bool)

	for _, arg := range args {
		pattern, err := s.pattern(arg)
		if err != nil {
			return nil, err
		}
		if !seen[pattern] {
			seen[pattern] = true
			patterns = append(patterns, pattern)
		}
	}

	return patterns, nil
}

func (s *DirectoryScanner) pattern(arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", axonerrors.New(axonerrors.ConfigurationErrorCode, "empty package pattern")
	}

	if !isLocalPath(arg) && !s.isDir(strings.TrimSuffix(arg, "/...")) {
		return arg, nil
	}

	recursive := false
	base := filepath.ToSlash(arg)
	if base == "..." {
		base, recursive = ".", true
	} else if strings.HasSuffix(base, "/...") {
		base, recursive = strings.TrimSuffix(base, "/..."), true
		if base == "" {
			base = "."
		}
	}

	abs := base
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(s.dir, filepath.FromSlash(base))
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", axonerrors.WrapFileSystemError("scan", abs, err)
	}
	if !info.IsDir() {
		return "", axonerrors.Newf(axonerrors.ConfigurationErrorCode, "%s is not a directory", arg)
	}

	rel, err := filepath.Rel(s.dir, abs)
	if err != nil {
		return "", axonerrors.WrapFileSystemError("relativize", abs, err)
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", axonerrors.Newf(axonerrors.ConfigurationErrorCode, "%s is outside %s", arg, s.dir)
	}

	pattern := "./" + rel
	if rel == "." {
		pattern = "."
	}
	if recursive {
		if rel == "." {
			return "./...", nil
		}
		return pattern + "/...", nil
	}
	return pattern, nil
}

// isDir reports whether rel names a directory below the scanner directory
func (s *DirectoryScanner) isDir(rel string) bool {
	info, err := os.Stat(filepath.Join(s.dir, filepath.FromSlash(rel)))
	return err == nil && info.IsDir()
}

// isLocalPath reports whether arg names a directory rather than an import path
func isLocalPath(arg string) bool {
	if filepath.IsAbs(arg) || arg == "." || arg == ".." || arg == "..." {
		return true
	}
	return strings.HasPrefix(arg, "./") || strings.HasPrefix(arg, "../") ||
		strings.HasPrefix(arg, `.\`) || strings.HasPrefix(arg, `..\`)
}
