// Package catalog discovers candidate media files under configured roots.
package catalog

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// CandidateFile identifies one file under scan. Immutable once emitted.
type CandidateFile struct {
	Path string
	Ext  string // Lowercase, with leading dot.
	Size int64
}

// WarnFunc receives non-fatal discovery problems (missing root, unreadable
// directory). Discovery never aborts on them: a missing configured directory
// must not kill the whole scan.
type WarnFunc func(format string, args ...interface{})

// Discover walks each root recursively and returns every regular file whose
// lowercase extension is in extensions. AppleDouble sidecars ("._" prefix)
// are skipped. Results are deduplicated by path and sorted lexicographically
// so reports are reproducible for a fixed filesystem state.
func Discover(roots []string, extensions []string, warn WarnFunc) []CandidateFile {
	extSet := make(map[string]bool, len(extensions))
	for _, e := range extensions {
		extSet[strings.ToLower(e)] = true
	}

	seen := make(map[string]bool)
	var files []CandidateFile

	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				warn("Skipping %s: %v", path, err)
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}
			name := d.Name()
			if strings.HasPrefix(name, "._") {
				return nil
			}
			ext := strings.ToLower(filepath.Ext(name))
			if !extSet[ext] {
				return nil
			}
			if seen[path] {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				warn("Skipping %s: %v", path, err)
				return nil
			}
			if !info.Mode().IsRegular() {
				return nil
			}
			seen[path] = true
			files = append(files, CandidateFile{Path: path, Ext: ext, Size: info.Size()})
			return nil
		})
		if err != nil {
			// WalkDir only returns an error for the root itself here; the
			// callback swallows per-entry errors.
			warn("Skipping %s: %v", root, err)
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files
}
