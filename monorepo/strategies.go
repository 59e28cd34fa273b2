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
	"path/filepath"

	monofs "bennypowers.dev/monometro/fs"
	"bennypowers.dev/monometro/internal/logging"
	"bennypowers.dev/monometro/manifest"
)

// LernaStrategy recognizes monorepos by a dedicated lerna.json manifest.
// When lerna delegates to yarn workspaces, package-location patterns are
// read from the co-located package.json instead of lerna.json itself.
type LernaStrategy struct {
	FS             monofs.FileSystem
	Logger         logging.Logger
	IgnorePatterns []string
}

func (s *LernaStrategy) Locate(startDir string) (*Info, error) {
	for _, dir := range parentDirs(startDir) {
		lerna, err := manifest.LoadLerna(s.FS, filepath.Join(dir, "lerna.json"))
		if err != nil {
			return nil, err
		}
		if lerna == nil {
			continue
		}

		patterns := lerna.PackagePatterns()
		if lerna.DelegatesToYarn() {
			pkg, err := manifest.Load(s.FS, filepath.Join(dir, "package.json"))
			if err != nil {
				return nil, err
			}
			if pkg != nil {
				patterns = pkg.Workspaces.Patterns
			}
		}

		s.Logger.Debug("found lerna.json at %s", dir)
		packageDirs := expandPatterns(s.FS, s.Logger, dir, patterns, s.IgnorePatterns)
		return newInfo(dir, packageDirs, startDir), nil
	}
	return nil, nil
}

// WorkspacesStrategy recognizes monorepos by a package.json with a
// workspaces field. The first directory whose manifest yields at least
// one expanded package path wins.
type WorkspacesStrategy struct {
	FS             monofs.FileSystem
	Logger         logging.Logger
	IgnorePatterns []string
}

func (s *WorkspacesStrategy) Locate(startDir string) (*Info, error) {
	for _, dir := range parentDirs(startDir) {
		pkg, err := manifest.Load(s.FS, filepath.Join(dir, "package.json"))
		if err != nil {
			return nil, err
		}
		if pkg == nil || pkg.Workspaces.IsZero() {
			continue
		}

		packageDirs := expandPatterns(s.FS, s.Logger, dir, pkg.Workspaces.Patterns, s.IgnorePatterns)
		if len(packageDirs) == 0 {
			continue
		}

		s.Logger.Debug("found package.json workspaces at %s", dir)
		return newInfo(dir, packageDirs, startDir), nil
	}
	return nil, nil
}
