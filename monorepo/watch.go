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

	monofs "bennypowers.dev/monometro/fs"
)

// WatchFolders computes the deduplicated, order-preserving folder list
// the bundler should watch: the monorepo root, every package root, then
// every caller-declared extra folder. Symlinked entries are replaced by
// their target (one level), and entries that are not existing
// directories are silently dropped: config authors may declare
// optimistic paths.
func WatchFolders(fsys monofs.FileSystem, info *Info, extra []string) []string {
	var candidates []string
	if info != nil {
		candidates = append(candidates, info.Root)
		for _, pkg := range info.Packages {
			candidates = append(candidates, pkg.Root)
		}
	}
	candidates = append(candidates, extra...)

	seen := make(map[string]struct{})
	var folders []string
	for _, dir := range candidates {
		dir = resolveLink(fsys, filepath.Clean(dir))
		if _, dup := seen[dir]; dup {
			continue
		}
		stat, err := fsys.Stat(dir)
		if err != nil || !stat.IsDir() {
			continue
		}
		seen[dir] = struct{}{}
		folders = append(folders, dir)
	}
	return folders
}

// resolveLink follows one level of symbolic link. Relative link targets
// are resolved against the link's own directory.
func resolveLink(fsys monofs.FileSystem, path string) string {
	stat, err := fsys.Lstat(path)
	if err != nil || stat.Mode()&fs.ModeSymlink == 0 {
		return path
	}
	target, err := fsys.Readlink(path)
	if err != nil {
		return path
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(path), target)
	}
	return filepath.Clean(target)
}
