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
// Package resolver resolves module specifiers to concrete files across
// monorepo package boundaries.
//
// Resolution is attempted against two roots (the requesting sub-project
// first, then the monorepo root) and within each root against two kinds
// (source extensions, then asset extensions). The first of the four
// attempts to produce an existing file wins: files local to the
// importing package beat files elsewhere in the monorepo, and source
// code beats assets.
package resolver

import (
	"path/filepath"
	"strings"

	monofs "bennypowers.dev/monometro/fs"
	"bennypowers.dev/monometro/internal/logging"
	"bennypowers.dev/monometro/manifest"
	"bennypowers.dev/monometro/monorepo"
)

// Kind classifies a resolved file.
type Kind int

const (
	// SourceFile is a module the bundler transforms.
	SourceFile Kind = iota
	// Asset is a static file the bundler copies.
	Asset
)

func (k Kind) String() string {
	if k == Asset {
		return "asset"
	}
	return "sourceFile"
}

// Resolution is the successful outcome of a resolve call.
type Resolution struct {
	Kind     Kind
	FilePath string
}

// Request carries one resolution request. It is created per call and
// carries no state across calls; the extension slices are read-only to
// the resolver.
type Request struct {
	// OriginModulePath is the absolute path of the importing file.
	OriginModulePath string
	// ModuleName is the raw specifier: relative ("./x", "../x") or bare.
	ModuleName string
	// Platform is a target tag ("ios", "android") used to build
	// platform-qualified extension variants. May be empty.
	Platform string
	// SourceExts and AssetExts are ordered candidate extension lists,
	// without leading dots.
	SourceExts []string
	AssetExts  []string
}

// Resolver resolves specifiers against a discovered monorepo. It
// performs no writes and is safe for concurrent use.
type Resolver struct {
	fs           monofs.FileSystem
	logger       logging.Logger
	projectRoot  string
	monorepoRoot string
	searchPaths  []string
	manifests    manifest.Cache
}

// New creates a Resolver for the given monorepo. info must be non-nil:
// callers that may not have found a monorepo check the locator result
// before constructing a Resolver. Package roots become additional
// search paths for bare-specifier resolution. Parsed manifests are
// cached for the lifetime of the Resolver.
func New(fsys monofs.FileSystem, logger logging.Logger, info *monorepo.Info) *Resolver {
	r := &Resolver{
		fs:           fsys,
		logger:       logging.OrNop(logger),
		projectRoot:  info.Project.Root,
		monorepoRoot: info.Root,
		manifests:    manifest.NewMemoryCache(),
	}
	for _, pkg := range info.Packages {
		r.searchPaths = append(r.searchPaths, pkg.Root)
	}
	return r
}

// WithSearchPaths returns a new Resolver with the given additional
// search paths for bare-specifier resolution, replacing the defaults.
func (r *Resolver) WithSearchPaths(paths []string) *Resolver {
	return &Resolver{
		fs:           r.fs,
		logger:       r.logger,
		projectRoot:  r.projectRoot,
		monorepoRoot: r.monorepoRoot,
		searchPaths:  paths,
		manifests:    r.manifests,
	}
}

// WithManifestCache returns a new Resolver using the given manifest
// cache, for callers that share one cache across resolvers or need to
// invalidate entries on file change.
func (r *Resolver) WithManifestCache(cache manifest.Cache) *Resolver {
	return &Resolver{
		fs:           r.fs,
		logger:       r.logger,
		projectRoot:  r.projectRoot,
		monorepoRoot: r.monorepoRoot,
		searchPaths:  r.searchPaths,
		manifests:    cache,
	}
}

// Resolve tries the four-attempt cascade and returns the first match,
// or nil when every attempt fails. A nil result is a normal outcome;
// the bundler falls back to its default resolution mechanism.
//
// Policy note: a relative specifier that fails to resolve against its
// origin directory does NOT fall through to bare-specifier resolution.
// Only bare specifiers delegate to node_modules search.
func (r *Resolver) Resolve(req Request) *Resolution {
	attempts := []struct {
		root string
		kind Kind
		exts []string
	}{
		{r.projectRoot, SourceFile, req.SourceExts},
		{r.projectRoot, Asset, req.AssetExts},
		{r.monorepoRoot, SourceFile, req.SourceExts},
		{r.monorepoRoot, Asset, req.AssetExts},
	}

	for _, attempt := range attempts {
		path := r.attempt(attempt.root, attempt.exts, req)
		if path != "" {
			return &Resolution{Kind: attempt.kind, FilePath: path}
		}
	}

	r.logger.Debug("no match for %q from %s", req.ModuleName, req.OriginModulePath)
	return nil
}

// attempt runs a single (root, extension list) resolution attempt.
func (r *Resolver) attempt(root string, exts []string, req Request) string {
	cexts := complementaryExtensions(req.Platform, exts)

	if isRelative(req.ModuleName) {
		path := r.resolveRelative(req.OriginModulePath, req.ModuleName, cexts)
		if path == "" {
			r.logger.Debug("relative %q not found near %s", req.ModuleName, req.OriginModulePath)
		}
		return path
	}

	path := r.resolveNodeModules(req.ModuleName, root, cexts)
	if path == "" {
		r.logger.Debug("bare %q not found from %s", req.ModuleName, root)
	}
	return path
}

// resolveRelative resolves a relative specifier against the origin
// file's directory. The joined path is accepted as-is when it names an
// existing file or pipe; an existing directory retries with an implicit
// index basename; otherwise each complementary extension is appended in
// order.
func (r *Resolver) resolveRelative(originPath, name string, cexts []string) string {
	base := filepath.Join(filepath.Dir(originPath), name)

	if info, err := r.fs.Stat(base); err == nil {
		if monofs.IsRegularOrPipe(info) {
			return base
		}
		if info.IsDir() {
			return r.fileWithExtensions(filepath.Join(base, "index"), cexts)
		}
	}

	return r.fileWithExtensions(base, cexts)
}

// fileWithExtensions appends each complementary extension to base and
// returns the first existing regular file.
func (r *Resolver) fileWithExtensions(base string, cexts []string) string {
	for _, ext := range cexts {
		candidate := base + "." + ext
		if info, err := r.fs.Stat(candidate); err == nil && monofs.IsRegularOrPipe(info) {
			return candidate
		}
	}
	return ""
}

// complementaryExtensions expands each base extension into the bare
// extension followed immediately by its platform-qualified variant,
// preserving caller order. Priority is list order: callers control it
// purely by the order of extensions they supply.
func complementaryExtensions(platform string, exts []string) []string {
	if platform == "" {
		return exts
	}
	out := make([]string, 0, len(exts)*2)
	for _, ext := range exts {
		out = append(out, ext, platform+"."+ext)
	}
	return out
}

func isRelative(name string) bool {
	return name == "." || name == ".." ||
		strings.HasPrefix(name, "./") || strings.HasPrefix(name, "../")
}
