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
package resolver

import (
	"path/filepath"

	monofs "bennypowers.dev/monometro/fs"
	"bennypowers.dev/monometro/manifest"
	"bennypowers.dev/monometro/monorepo"
)

// resolveNodeModules resolves a bare specifier the way the node
// algorithm does: node_modules directories collected upward from
// basedir, then the configured search paths. The package manifest's
// react-native main entry substitutes for main before resolution
// proceeds. Every failure, including "not found" and unparsable
// package.json, is a no-match, never an error.
func (r *Resolver) resolveNodeModules(specifier, basedir string, cexts []string) string {
	for _, dir := range r.moduleDirs(basedir) {
		if !r.fs.Exists(dir) {
			continue
		}
		if path := r.loadPackage(filepath.Join(dir, specifier), cexts); path != "" {
			return path
		}
	}
	return ""
}

// moduleDirs returns the node_modules directories to search, in
// priority order.
func (r *Resolver) moduleDirs(basedir string) []string {
	var dirs []string
	for dir := filepath.Clean(basedir); ; {
		dirs = append(dirs, filepath.Join(dir, monorepo.NodeModules))
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	for _, path := range r.searchPaths {
		dirs = append(dirs, filepath.Join(path, monorepo.NodeModules))
	}
	return dirs
}

// loadPackage resolves a candidate path as a file, a package directory
// with a manifest entry, or a directory with an index file.
func (r *Resolver) loadPackage(candidate string, cexts []string) string {
	info, err := r.fs.Stat(candidate)
	if err != nil {
		// The candidate may still exist once an extension is appended.
		return r.fileWithExtensions(candidate, cexts)
	}

	if monofs.IsRegularOrPipe(info) {
		return candidate
	}

	if !info.IsDir() {
		return ""
	}

	if entry := r.manifestEntry(candidate); entry != "" {
		target := filepath.Join(candidate, entry)
		if path := r.loadFileOrIndex(target, cexts); path != "" {
			return path
		}
	}

	return r.loadFileOrIndex(filepath.Join(candidate, "index"), cexts)
}

// manifestEntry reads the package manifest's entry point, applying the
// react-native main override. Missing or malformed manifests yield "".
// Parsed manifests are cached; missing ones are cached as nil.
func (r *Resolver) manifestEntry(dir string) string {
	path := filepath.Join(dir, "package.json")
	pkg, err := r.manifests.GetOrLoad(path, func() (*manifest.PackageJSON, error) {
		return manifest.Load(r.fs, path)
	})
	if err != nil || pkg == nil {
		if err != nil {
			r.logger.Debug("ignoring manifest in %s: %v", dir, err)
		}
		return ""
	}
	return pkg.EntryPoint()
}

// loadFileOrIndex tries target as a file (exact, then with extensions),
// then as a directory containing an index file.
func (r *Resolver) loadFileOrIndex(target string, cexts []string) string {
	if info, err := r.fs.Stat(target); err == nil {
		if monofs.IsRegularOrPipe(info) {
			return target
		}
		if info.IsDir() {
			return r.fileWithExtensions(filepath.Join(target, "index"), cexts)
		}
	}
	return r.fileWithExtensions(target, cexts)
}
