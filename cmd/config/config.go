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

// Package config provides the config command for monometro.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/monometro/fs"
	"bennypowers.dev/monometro/internal/logging"
	"bennypowers.dev/monometro/internal/output"
	"bennypowers.dev/monometro/metroconfig"
)

// Cmd is the config cobra command that discovers the monorepo and
// emits the assembled Metro configuration record.
var Cmd = &cobra.Command{
	Use:   "config",
	Short: "Generate Metro configuration for the monorepo",
	Long: `Generate Metro bundler configuration from the discovered monorepo.

The monorepo is located by walking upward from the project directory,
trying lerna.json first, then package.json workspaces.`,
	Example: `  # Generate config for the current project
  monometro config

  # From a specific package in the monorepo
  monometro config -p packages/app

  # With the TypeScript convenience toggle
  monometro config --typescript

  # Watch additional folders
  monometro config --watch-folder ../shared --watch-folder ../assets`,
	RunE: run,
}

func init() {
	Cmd.Flags().Bool("typescript", false, "Append ts/tsx source extensions and set the transformer")
	Cmd.Flags().String("transformer", "", "Transform module path (default: "+metroconfig.DefaultTransformerModule+" when --typescript)")
	Cmd.Flags().StringArray("watch-folder", nil, "Extra folder to watch (can be repeated)")
	Cmd.Flags().StringSlice("source-ext", nil, "Source extensions in priority order")
	Cmd.Flags().StringSlice("asset-ext", nil, "Asset extensions in priority order")
	Cmd.Flags().StringToString("extra-node-modules", nil, "Extra module name to path mappings")
}

func run(cmd *cobra.Command, args []string) error {
	osfs := fs.NewOSFileSystem()
	logger := logging.NewCharmLogger(viper.GetBool("verbose"))

	absRoot, err := filepath.Abs(viper.GetString("project"))
	if err != nil {
		return fmt.Errorf("invalid project directory: %w", err)
	}

	builder := metroconfig.New(osfs, logger, absRoot)

	if folders, _ := cmd.Flags().GetStringArray("watch-folder"); len(folders) > 0 {
		for i, folder := range folders {
			if folders[i], err = filepath.Abs(folder); err != nil {
				return fmt.Errorf("invalid watch folder %q: %w", folder, err)
			}
		}
		builder = builder.WithWatchFolders(folders...)
	}
	if exts, _ := cmd.Flags().GetStringSlice("source-ext"); len(exts) > 0 {
		builder = builder.WithSourceExts(exts)
	}
	if exts, _ := cmd.Flags().GetStringSlice("asset-ext"); len(exts) > 0 {
		builder = builder.WithAssetExts(exts)
	}
	if extra, _ := cmd.Flags().GetStringToString("extra-node-modules"); len(extra) > 0 {
		builder = builder.WithExtraNodeModules(extra)
	}
	if ts, _ := cmd.Flags().GetBool("typescript"); ts {
		builder = builder.WithTypeScript()
	}
	if cmd.Flags().Changed("transformer") {
		transformer, _ := cmd.Flags().GetString("transformer")
		builder = builder.WithTransformerModule(transformer)
	}

	cfg, err := builder.Build()
	if err != nil {
		return fmt.Errorf("failed to assemble config: %w", err)
	}

	return output.JSON(osfs, cfg)
}
