package batch

import (
	"io/fs"
	"strings"

	"github.com/fwojciec/figreact"
	"github.com/gobwas/glob"
)

// DefaultPattern selects TSX modules at any depth.
const DefaultPattern = "**/*.tsx"

// skipDirs are never descended into.
var skipDirs = map[string]bool{
	"node_modules": true,
	"dist":         true,
	"build":        true,
}

// Discover returns the slash-separated paths of the files in fsys matching
// pattern, in lexical order. Hidden directories and dependency or build
// output directories are skipped. A leading "**/" also matches files at
// the root.
func Discover(fsys fs.FS, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	matchers, err := compilePattern(pattern)
	if err != nil {
		return nil, err
	}

	var paths []string
	err = fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != "." && (skipDirs[d.Name()] || strings.HasPrefix(d.Name(), ".")) {
				return fs.SkipDir
			}
			return nil
		}
		for _, m := range matchers {
			if m.Match(path) {
				paths = append(paths, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

func compilePattern(pattern string) ([]glob.Glob, error) {
	patterns := []string{pattern}
	if rest, ok := strings.CutPrefix(pattern, "**/"); ok {
		patterns = append(patterns, rest)
	}

	matchers := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		m, err := glob.Compile(p, '/')
		if err != nil {
			return nil, figreact.Errorf(figreact.EINVALID, "invalid pattern %q: %s", pattern, err)
		}
		matchers = append(matchers, m)
	}
	return matchers, nil
}
