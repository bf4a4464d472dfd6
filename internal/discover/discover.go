// Package discover finds candidate DICOM files beneath a set of
// directories.
package discover

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Options controls a discovery walk.
type Options struct {
	// Extensions admits a file when its name ends in any of these.
	// Empty means the default DICOM extensions.
	Extensions []string
	// Relative keeps discovered paths relative to the searched
	// directory instead of resolving them to absolute paths.
	Relative bool
	// Pattern optionally narrows the walk to paths matching a glob,
	// relative to each searched directory.
	Pattern string
}

// DefaultExtensions are the file suffixes treated as DICOM files when
// no explicit extension filter is given.
var DefaultExtensions = []string{".dcm"}

// Files walks every given directory and returns the matching files in
// deterministic sorted order.
func Files(dirs []string, opts Options) ([]string, error) {
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}

	var found []string
	for _, dir := range dirs {
		root := dir
		if !opts.Relative {
			abs, err := filepath.Abs(dir)
			if err != nil {
				return nil, err
			}
			root = abs
		}

		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if !matchesExtension(d.Name(), exts) {
				return nil
			}
			if opts.Pattern != "" {
				rel, err := filepath.Rel(root, path)
				if err != nil {
					return err
				}
				ok, err := doublestar.Match(opts.Pattern, filepath.ToSlash(rel))
				if err != nil {
					return err
				}
				if !ok {
					return nil
				}
			}
			found = append(found, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(found)
	return found, nil
}

func matchesExtension(name string, exts []string) bool {
	for _, ext := range exts {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
