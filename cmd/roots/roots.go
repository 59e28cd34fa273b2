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

// Package roots provides the roots command for monometro.
package roots

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/monometro/fs"
	"bennypowers.dev/monometro/internal/logging"
	"bennypowers.dev/monometro/internal/output"
	"bennypowers.dev/monometro/monorepo"
)

// Cmd is the roots cobra command that prints the watch-folder list.
var Cmd = &cobra.Command{
	Use:   "roots",
	Short: "Print the monorepo watch folders",
	Long: `Print the deduplicated watch-folder list for the discovered monorepo:
the monorepo root, every package root, then any extra folders.`,
	Example: `  # Print watch folders, one per line
  monometro roots

  # As JSON
  monometro roots --format json

  # Include extra folders (missing ones are dropped)
  monometro roots --watch-folder ../shared`,
	RunE: run,
}

func init() {
	Cmd.Flags().StringP("format", "f", "text", "Output format (text, json)")
	Cmd.Flags().StringArray("watch-folder", nil, "Extra folder to include (can be repeated)")
}

func run(cmd *cobra.Command, args []string) error {
	osfs := fs.NewOSFileSystem()
	logger := logging.NewCharmLogger(viper.GetBool("verbose"))

	format, _ := cmd.Flags().GetString("format")
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid format %q: must be 'text' or 'json'", format)
	}

	absRoot, err := filepath.Abs(viper.GetString("project"))
	if err != nil {
		return fmt.Errorf("invalid project directory: %w", err)
	}

	info, err := monorepo.DefaultLocator(osfs, logger).Locate(absRoot)
	if err != nil {
		return fmt.Errorf("failed to locate monorepo: %w", err)
	}
	if info == nil {
		return fmt.Errorf("no monorepo found above %s", absRoot)
	}

	extra, _ := cmd.Flags().GetStringArray("watch-folder")
	for i, folder := range extra {
		if extra[i], err = filepath.Abs(folder); err != nil {
			return fmt.Errorf("invalid watch folder %q: %w", folder, err)
		}
	}

	folders := monorepo.WatchFolders(osfs, info, extra)

	if format == "json" {
		return output.JSON(osfs, folders)
	}
	return output.Lines(osfs, folders)
}
