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
// Package metroconfig assembles Metro bundler configuration from a
// discovered monorepo: a watch-folder list plus a resolver function,
// embedded in a plain configuration record.
package metroconfig

import (
	"errors"
	"fmt"
	"slices"

	monofs "bennypowers.dev/monometro/fs"
	"bennypowers.dev/monometro/internal/logging"
	"bennypowers.dev/monometro/monorepo"
	"bennypowers.dev/monometro/resolver"
)

// DefaultTransformerModule is the transform module enabled by the
// TypeScript convenience toggle when the caller has not set one.
const DefaultTransformerModule = "react-native-typescript-transformer"

// Default extension lists, in resolution priority order.
var (
	DefaultSourceExts = []string{"js", "jsx", "json"}
	DefaultAssetExts  = []string{"png", "jpg", "jpeg", "gif", "svg", "ttf"}
)

// typeScriptExts are appended to the source extensions by the
// TypeScript toggle.
var typeScriptExts = []string{"ts", "tsx"}

// Config is the assembled configuration record consumed by the bundler.
type Config struct {
	Monorepo            *monorepo.Info    `json:"-"`
	WatchFolders        []string          `json:"watchFolders"`
	SourceExts          []string          `json:"sourceExts"`
	AssetExts           []string          `json:"assetExts"`
	ExtraNodeModules    map[string]string `json:"extraNodeModules,omitempty"`
	TransformModulePath string            `json:"transformModulePath,omitempty"`

	// ResolveRequest is the four-attempt layered resolver, or the
	// caller's override. A nil result means "let the default mechanism
	// try instead".
	ResolveRequest func(resolver.Request) *resolver.Resolution `json:"-"`
}

// Builder accumulates configuration immutably: every With method
// returns a new Builder, and Build produces the final Config without
// mutating the Builder. The zero-ish builder from New is valid.
type Builder struct {
	fs                monofs.FileSystem
	logger            logging.Logger
	projectRoot       string
	info              *monorepo.Info
	extraWatchFolders []string
	sourceExts        []string
	assetExts         []string
	extraNodeModules  map[string]string
	transformModule   string
	transformSet      bool
	typescript        bool
	resolveRequest    func(resolver.Request) *resolver.Resolution
}

// New creates a Builder for a project directory.
func New(fsys monofs.FileSystem, logger logging.Logger, projectRoot string) *Builder {
	return &Builder{
		fs:          fsys,
		logger:      logging.OrNop(logger),
		projectRoot: projectRoot,
	}
}

// WithMonorepo returns a Builder that uses the given Info instead of
// running discovery.
func (b *Builder) WithMonorepo(info *monorepo.Info) *Builder {
	next := *b
	next.info = info
	return &next
}

// WithWatchFolders returns a Builder with extra watch folders, merged
// after the computed monorepo folders.
func (b *Builder) WithWatchFolders(folders ...string) *Builder {
	next := *b
	next.extraWatchFolders = append(slices.Clone(b.extraWatchFolders), folders...)
	return &next
}

// WithSourceExts returns a Builder with the given source extensions,
// replacing the defaults.
func (b *Builder) WithSourceExts(exts []string) *Builder {
	next := *b
	next.sourceExts = exts
	return &next
}

// WithAssetExts returns a Builder with the given asset extensions,
// replacing the defaults.
func (b *Builder) WithAssetExts(exts []string) *Builder {
	next := *b
	next.assetExts = exts
	return &next
}

// WithExtraNodeModules returns a Builder with an extraNodeModules
// pass-through mapping.
func (b *Builder) WithExtraNodeModules(mapping map[string]string) *Builder {
	next := *b
	next.extraNodeModules = mapping
	return &next
}

// WithTypeScript returns a Builder with the TypeScript toggle enabled:
// ts and tsx are appended to the source extensions and the transform
// module defaults to DefaultTransformerModule unless already set.
func (b *Builder) WithTypeScript() *Builder {
	next := *b
	next.typescript = true
	return &next
}

// WithTransformerModule returns a Builder with an explicit transform
// module name. Setting an empty name is a configuration error reported
// by Build.
func (b *Builder) WithTransformerModule(name string) *Builder {
	next := *b
	next.transformModule = name
	next.transformSet = true
	return &next
}

// WithResolveRequest returns a Builder whose Config carries the given
// resolver function instead of the layered resolver.
func (b *Builder) WithResolveRequest(fn func(resolver.Request) *resolver.Resolution) *Builder {
	next := *b
	next.resolveRequest = fn
	return &next
}

// Build assembles the Config. Discovery runs here when no monorepo was
// provided; the result is embedded in the Config, so callers that need
// it again read it from there rather than re-running the walk.
func (b *Builder) Build() (*Config, error) {
	if b.projectRoot == "" {
		return nil, errors.New("metroconfig: project root is required")
	}
	if b.fs == nil {
		return nil, errors.New("metroconfig: filesystem is required")
	}
	if b.transformSet && b.transformModule == "" {
		return nil, errors.New("metroconfig: transformer module name is empty")
	}

	info := b.info
	if info == nil {
		located, err := monorepo.DefaultLocator(b.fs, b.logger).Locate(b.projectRoot)
		if err != nil {
			return nil, err
		}
		if located == nil {
			return nil, fmt.Errorf("metroconfig: no monorepo found above %s", b.projectRoot)
		}
		info = located
	}

	sourceExts := slices.Clone(b.sourceExts)
	if sourceExts == nil {
		sourceExts = slices.Clone(DefaultSourceExts)
	}
	assetExts := slices.Clone(b.assetExts)
	if assetExts == nil {
		assetExts = slices.Clone(DefaultAssetExts)
	}

	transformModule := b.transformModule
	if b.typescript {
		for _, ext := range typeScriptExts {
			if !slices.Contains(sourceExts, ext) {
				sourceExts = append(sourceExts, ext)
			}
		}
		if !b.transformSet {
			transformModule = DefaultTransformerModule
		}
	}

	resolveRequest := b.resolveRequest
	if resolveRequest == nil {
		resolveRequest = resolver.New(b.fs, b.logger, info).Resolve
	}

	return &Config{
		Monorepo:            info,
		WatchFolders:        monorepo.WatchFolders(b.fs, info, b.extraWatchFolders),
		SourceExts:          sourceExts,
		AssetExts:           assetExts,
		ExtraNodeModules:    b.extraNodeModules,
		TransformModulePath: transformModule,
		ResolveRequest:      resolveRequest,
	}, nil
}
