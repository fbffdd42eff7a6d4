// Package walker traverses a file tree and selects the files a linter
// should operate on, applying the override matcher, a fixed exclusion of
// version-control metadata, and an optional submodule-boundary filter.
package walker

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/lintroll/pkg/logging"
	"github.com/arthur-debert/lintroll/pkg/matcher"
)

const gitDir = ".git"

// Options controls a walk.
type Options struct {
	// ExcludeSubmodules prunes directories that look like linked
	// submodules: their .git entry is a plain file instead of a
	// directory. This is a best-effort heuristic; the pointer inside
	// the file is not parsed.
	ExcludeSubmodules bool
}

// Walk traverses root and returns the relative slash-separated paths of
// all regular files selected by m, in deterministic lexicographic order.
// The .git directory is always pruned regardless of patterns. Traversal
// errors on individual entries are logged and skipped; they never abort
// the walk.
func Walk(root string, m *matcher.Matcher, opts Options) []string {
	logger := logging.GetLogger("walker")

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("traversal error")
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			logger.Warn().Err(relErr).Str("path", path).Msg("cannot relativize path")
			return nil
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}

		if d.IsDir() {
			if d.Name() == gitDir {
				return fs.SkipDir
			}
			if opts.ExcludeSubmodules && isSubmodule(path) {
				logger.Debug().Str("path", rel).Msg("pruning submodule")
				return fs.SkipDir
			}
			// Only prune on an explicit exclusion: an unmatched
			// directory may still hold files an include reaches.
			if m.Match(rel, true) == matcher.Excluded {
				return fs.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		switch m.Match(rel, false) {
		case matcher.Included:
			files = append(files, rel)
		case matcher.Excluded:
			logger.Debug().Str("path", rel).Msg("ignoring excluded file")
		}
		return nil
	})
	if err != nil {
		// The callback never returns an error other than fs.SkipDir
		logger.Warn().Err(err).Str("root", root).Msg("walk aborted")
	}
	return files
}

// isSubmodule reports whether dir carries a .git entry that is a regular
// file, the conventional marker of a linked submodule.
func isSubmodule(dir string) bool {
	info, err := os.Lstat(filepath.Join(dir, gitDir))
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
