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
// Package monorepo discovers JavaScript monorepo boundaries by walking
// upward from a project directory and expanding the package-location
// patterns declared in workspace manifests.
package monorepo

import (
	"path/filepath"

	monofs "bennypowers.dev/monometro/fs"
	"bennypowers.dev/monometro/internal/logging"
)

// NodeModules is the conventional dependency-store directory name.
const NodeModules = "node_modules"

// PackagePaths is a package root together with its local dependency store.
type PackagePaths struct {
	Root            string
	NodeModulesRoot string
}

// Info is the normalized description of a discovered monorepo. Values
// are immutable once constructed; callers needing a different monorepo
// replace the whole Info.
type Info struct {
	// Root is the absolute path of the monorepo's top-level directory.
	Root string
	// NodeModulesRoot is the monorepo-level dependency store.
	NodeModulesRoot string
	// Project is the invoking sub-project, always at or below Root.
	Project PackagePaths
	// Packages lists discovered packages in manifest-declaration order.
	Packages []PackagePaths
}

// newInfo builds an Info from the manifest directory, expanded package
// directories, and the directory discovery started from.
func newInfo(root string, packageDirs []string, projectRoot string) *Info {
	info := &Info{
		Root:            filepath.Clean(root),
		NodeModulesRoot: filepath.Join(root, NodeModules),
		Project: PackagePaths{
			Root:            filepath.Clean(projectRoot),
			NodeModulesRoot: filepath.Join(projectRoot, NodeModules),
		},
	}
	for _, dir := range packageDirs {
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(root, dir)
		}
		dir = filepath.Clean(dir)
		info.Packages = append(info.Packages, PackagePaths{
			Root:            dir,
			NodeModulesRoot: filepath.Join(dir, NodeModules),
		})
	}
	return info
}

// Strategy is one way of recognizing a monorepo. Locate returns nil
// (not an error) when the strategy finds nothing before the filesystem
// root; errors are reserved for malformed manifests.
type Strategy interface {
	Locate(startDir string) (*Info, error)
}

// Locator tries strategies in a fixed priority order; the first
// strategy to succeed wins, with no merging. Every call performs a
// fresh walk: callers that want caching cache the result.
type Locator struct {
	strategies []Strategy
}

// NewLocator creates a Locator with the given strategy order.
func NewLocator(strategies ...Strategy) *Locator {
	return &Locator{strategies: strategies}
}

// DefaultLocator tries lerna.json discovery first, then embedded
// package.json workspaces.
func DefaultLocator(fsys monofs.FileSystem, logger logging.Logger) *Locator {
	logger = logging.OrNop(logger)
	return NewLocator(
		&LernaStrategy{FS: fsys, Logger: logger},
		&WorkspacesStrategy{FS: fsys, Logger: logger},
	)
}

// Locate walks upward from startDir with each strategy in turn.
// A nil Info with nil error means no monorepo was found.
func (l *Locator) Locate(startDir string) (*Info, error) {
	startDir = filepath.Clean(startDir)
	for _, strategy := range l.strategies {
		info, err := strategy.Locate(startDir)
		if err != nil {
			return nil, err
		}
		if info != nil {
			return info, nil
		}
	}
	return nil, nil
}

// parentDirs yields dir and every ancestor up to and including the
// filesystem root.
func parentDirs(dir string) []string {
	var dirs []string
	for {
		dirs = append(dirs, dir)
		parent := filepath.Dir(dir)
		if parent == dir {
			return dirs
		}
		dir = parent
	}
}
