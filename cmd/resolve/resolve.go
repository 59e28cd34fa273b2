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

// Package resolve provides the resolve command for monometro.
package resolve

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/monometro/fs"
	"bennypowers.dev/monometro/internal/logging"
	"bennypowers.dev/monometro/metroconfig"
	"bennypowers.dev/monometro/resolver"
)

// Cmd is the resolve cobra command that resolves a single specifier
// through the layered resolver.
var Cmd = &cobra.Command{
	Use:   "resolve <specifier>",
	Short: "Resolve a module specifier",
	Long: `Resolve a module specifier the way the bundler would: against the
sub-project root first, then the monorepo root, preferring source files
over assets.`,
	Example: `  # Resolve a relative import
  monometro resolve ./util --from packages/app/index.js

  # Resolve a package for a platform
  monometro resolve react-native --from packages/app/index.js --platform ios`,
	Args: cobra.ExactArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().String("from", "", "Origin module path (required)")
	Cmd.Flags().String("platform", "", "Target platform tag (e.g. ios, android)")
	Cmd.Flags().StringSlice("source-ext", nil, "Source extensions in priority order")
	Cmd.Flags().StringSlice("asset-ext", nil, "Asset extensions in priority order")
	_ = Cmd.MarkFlagRequired("from")
}

func run(cmd *cobra.Command, args []string) error {
	osfs := fs.NewOSFileSystem()
	logger := logging.NewCharmLogger(viper.GetBool("verbose"))

	absRoot, err := filepath.Abs(viper.GetString("project"))
	if err != nil {
		return fmt.Errorf("invalid project directory: %w", err)
	}

	from, _ := cmd.Flags().GetString("from")
	origin, err := filepath.Abs(from)
	if err != nil {
		return fmt.Errorf("invalid origin path: %w", err)
	}

	builder := metroconfig.New(osfs, logger, absRoot)
	if exts, _ := cmd.Flags().GetStringSlice("source-ext"); len(exts) > 0 {
		builder = builder.WithSourceExts(exts)
	}
	if exts, _ := cmd.Flags().GetStringSlice("asset-ext"); len(exts) > 0 {
		builder = builder.WithAssetExts(exts)
	}

	cfg, err := builder.Build()
	if err != nil {
		return fmt.Errorf("failed to assemble config: %w", err)
	}

	platform, _ := cmd.Flags().GetString("platform")
	res := cfg.ResolveRequest(resolver.Request{
		OriginModulePath: origin,
		ModuleName:       args[0],
		Platform:         platform,
		SourceExts:       cfg.SourceExts,
		AssetExts:        cfg.AssetExts,
	})
	if res == nil {
		return fmt.Errorf("no match for %q from %s", args[0], origin)
	}

	fmt.Printf("%s %s\n", res.Kind, res.FilePath)
	return nil
}
