/*
Copyright © 2026 Benny Powers <web@bennypowers.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/
package monorepo

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	monofs "bennypowers.dev/monometro/fs"
	"bennypowers.dev/monometro/internal/logging"
)

// DefaultIgnorePatterns excludes any node_modules directory at any
// depth, so workspace globs never match inside installed dependencies.
var DefaultIgnorePatterns = []string{"**/" + NodeModules}

// expandPatterns expands package-location glob patterns relative to
// rootDir into absolute package directories. Candidates inside an
// expanded ignore directory are dropped. Patterns that fail to expand
// are skipped, not fatal.
func expandPatterns(fsys monofs.FileSystem, logger logging.Logger, rootDir string, patterns, ignorePatterns []string) []string {
	if ignorePatterns == nil {
		ignorePatterns = DefaultIgnorePatterns
	}

	var ignoreDirs []string
	for _, pattern := range ignorePatterns {
		ignoreDirs = append(ignoreDirs, expandPattern(fsys, logger, rootDir, pattern)...)
	}

	var dirs []string
	for _, pattern := range patterns {
		for _, dir := range expandPattern(fsys, logger, rootDir, pattern) {
			if underAny(dir, ignoreDirs) {
				continue
			}
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// expandPattern matches one glob pattern against the tree rooted at
// rootDir and returns the matching directories as absolute paths.
func expandPattern(fsys monofs.FileSystem, logger logging.Logger, rootDir, pattern string) []string {
	pattern = strings.TrimSuffix(filepath.ToSlash(pattern), "/")
	if pattern == "" {
		return nil
	}

	matches, err := doublestar.Glob(rootedFS{fsys, rootDir}, pattern)
	if err != nil {
		logger.Debug("skipping pattern %q: %v", pattern, err)
		return nil
	}

	var dirs []string
	for _, match := range matches {
		full := filepath.Join(rootDir, filepath.FromSlash(match))
		if info, err := fsys.Stat(full); err == nil && info.IsDir() {
			dirs = append(dirs, full)
		}
	}
	return dirs
}

// underAny reports whether dir equals or is nested below any of roots.
func underAny(dir string, roots []string) bool {
	for _, root := range roots {
		if dir == root || strings.HasPrefix(dir, root+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// rootedFS adapts a FileSystem rooted at dir to io/fs, so doublestar
// can glob the same filesystems the rest of the code uses.
type rootedFS struct {
	fsys monofs.FileSystem
	dir  string
}

func (r rootedFS) Open(name string) (fs.File, error) {
	return r.fsys.Open(r.join(name))
}

func (r rootedFS) ReadDir(name string) ([]fs.DirEntry, error) {
	return r.fsys.ReadDir(r.join(name))
}

func (r rootedFS) Stat(name string) (fs.FileInfo, error) {
	return r.fsys.Stat(r.join(name))
}

func (r rootedFS) join(name string) string {
	if name == "." {
		return r.dir
	}
	return filepath.Join(r.dir, filepath.FromSlash(name))
}
