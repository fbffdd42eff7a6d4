// Package snapshot detects files modified as a side effect of running an
// external tool. It captures each file's modification time, optionally a
// content digest, before execution and compares after.
//
// Known limitation: without content hashing the comparison is only as
// precise as the filesystem's timestamp resolution. Two writes landing in
// the same timestamp tick are indistinguishable. Enable hashing when that
// matters; no portable sub-tick timestamp source exists.
package snapshot

import (
	"crypto/sha256"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/lintroll/pkg/logging"
)

// fileState is one file's captured state. A digest is only present when
// the Set was taken with hashing enabled.
type fileState struct {
	modTime time.Time
	digest  [sha256.Size]byte
}

// Set is a point-in-time capture of a group of files. It is never
// mutated after Take; Changed re-reads the filesystem for comparison.
type Set struct {
	root     string
	useHash  bool
	files    []string
	captured map[string]fileState
}

// Take captures the current state of each file, resolved relative to
// root. Files that cannot be read at capture time are still recorded so
// they show up as changed if they reappear differently, mirroring the
// deleted-during-execution rule.
func Take(root string, files []string, useHash bool) *Set {
	logger := logging.GetLogger("snapshot")

	s := &Set{
		root:     root,
		useHash:  useHash,
		files:    append([]string(nil), files...),
		captured: make(map[string]fileState, len(files)),
	}
	for _, f := range files {
		state, err := s.read(f)
		if err != nil {
			logger.Warn().Err(err).Str("path", f).Msg("cannot snapshot file")
			continue
		}
		s.captured[f] = state
	}
	return s
}

// Changed re-reads every captured file and returns the paths whose state
// differs from the capture, in capture order. A file that no longer
// exists or cannot be re-read counts as changed. Detection is
// observational only; nothing is restored.
func (s *Set) Changed() []string {
	var changed []string
	for _, f := range s.files {
		before, ok := s.captured[f]
		if !ok {
			continue
		}
		after, err := s.read(f)
		if err != nil {
			changed = append(changed, f)
			continue
		}
		if s.useHash {
			if after.digest != before.digest {
				changed = append(changed, f)
			}
		} else if !after.modTime.Equal(before.modTime) {
			changed = append(changed, f)
		}
	}
	return changed
}

func (s *Set) read(file string) (fileState, error) {
	path := filepath.Join(s.root, file)
	info, err := os.Stat(path)
	if err != nil {
		return fileState{}, err
	}
	state := fileState{modTime: info.ModTime()}

	if s.useHash {
		f, err := os.Open(path)
		if err != nil {
			return fileState{}, err
		}
		defer f.Close()
		h := sha256.New()
		if _, err := io.Copy(h, f); err != nil {
			return fileState{}, err
		}
		copy(state.digest[:], h.Sum(nil))
	}
	return state, nil
}
