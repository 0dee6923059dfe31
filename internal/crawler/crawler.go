// Package crawler scans a directory tree for Python source files.
package crawler

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// Crawler walks a workspace root and streams matching file paths.
type Crawler struct {
	ignored []string
}

// New creates a crawler. Extra ignore names are added to the defaults.
func New(ignored ...string) *Crawler {
	return &Crawler{
		ignored: append([]string{".git", "__pycache__", "node_modules", ".tox"}, ignored...),
	}
}

// Scan walks the root directory and invokes onFile for every Python source
// file. Ignored directories are skipped whole.
func (c *Crawler) Scan(root string, onFile func(path string)) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			for _, ign := range c.ignored {
				if d.Name() == ign {
					return filepath.SkipDir
				}
			}
			return nil
		}

		if !strings.HasSuffix(d.Name(), ".py") {
			return nil
		}

		onFile(path)
		return nil
	})
}
