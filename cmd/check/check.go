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

// Package check provides the check command for monometro.
package check

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/monometro/check"
	"bennypowers.dev/monometro/fs"
	"bennypowers.dev/monometro/internal/logging"
	"bennypowers.dev/monometro/metroconfig"
)

// Cmd is the check cobra command that parses JavaScript and TypeScript
// files and verifies every import resolves under the assembled config.
var Cmd = &cobra.Command{
	Use:   "check [file...]",
	Short: "Check that imports resolve",
	Long: `Check source files for imports that would fail to resolve under the
generated Metro configuration.

Each file is parsed for static imports, re-exports, and dynamic imports.
Every specifier is resolved the way the bundler would; unresolved
imports are reported and the command exits non-zero.`,
	Example: `  # Check specific files
  monometro check packages/app/index.js

  # Check everything matching a glob pattern
  monometro check --glob "packages/**/*.{ts,tsx}"

  # Check for a platform with custom worker count
  monometro check --glob "packages/**/*.js" --platform ios -j 8

  # NDJSON output, one result per file
  monometro check --glob "packages/**/*.js" --format json`,
	RunE: run,
}

func init() {
	Cmd.Flags().String("glob", "", "Glob pattern to match source files (e.g., \"packages/**/*.ts\")")
	Cmd.Flags().String("platform", "", "Target platform tag (e.g. ios, android)")
	Cmd.Flags().StringP("format", "f", "text", "Output format (text, json)")
	Cmd.Flags().IntP("jobs", "j", 0, "Number of parallel workers (default: number of CPUs)")
}

func run(cmd *cobra.Command, args []string) error {
	osfs := fs.NewOSFileSystem()
	logger := logging.NewCharmLogger(viper.GetBool("verbose"))

	absRoot, err := filepath.Abs(viper.GetString("project"))
	if err != nil {
		return fmt.Errorf("invalid project directory: %w", err)
	}

	format, _ := cmd.Flags().GetString("format")
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid format %q: must be 'text' or 'json'", format)
	}

	// Collect files from args and glob pattern, deduplicating by absolute path
	seen := make(map[string]struct{})
	var files []string

	for _, arg := range args {
		absPath, err := filepath.Abs(arg)
		if err != nil {
			return fmt.Errorf("invalid file path %q: %w", arg, err)
		}
		if _, exists := seen[absPath]; !exists {
			seen[absPath] = struct{}{}
			files = append(files, absPath)
		}
	}

	globPattern, _ := cmd.Flags().GetString("glob")
	if globPattern != "" {
		matches, err := doublestar.FilepathGlob(globPattern)
		if err != nil {
			return fmt.Errorf("invalid glob pattern: %w", err)
		}
		for _, match := range matches {
			absPath, err := filepath.Abs(match)
			if err != nil {
				return fmt.Errorf("invalid file path %q: %w", match, err)
			}
			if _, exists := seen[absPath]; !exists {
				seen[absPath] = struct{}{}
				files = append(files, absPath)
			}
		}
	}

	if len(files) == 0 {
		return fmt.Errorf("no files to check: provide file arguments or use --glob")
	}

	cfg, err := metroconfig.New(osfs, logger, absRoot).Build()
	if err != nil {
		return fmt.Errorf("failed to assemble config: %w", err)
	}

	platform, _ := cmd.Flags().GetString("platform")
	parallel, _ := cmd.Flags().GetInt("jobs")

	results := check.Files(osfs, cfg, files, check.Options{
		Platform: platform,
		Parallel: parallel,
	})

	encoder := json.NewEncoder(os.Stdout)
	var allUnresolved []check.Unresolved
	var errorCount int
	var totalCount int

	for result := range results {
		totalCount++
		if result.Error != "" {
			errorCount++
			fmt.Fprintf(os.Stderr, "Error: %s: %s\n", result.File, result.Error)
		}
		allUnresolved = append(allUnresolved, result.Unresolved...)
		if format == "json" {
			if err := encoder.Encode(result); err != nil {
				fmt.Fprintf(os.Stderr, "Error encoding result for %s: %v\n", result.File, err)
			}
		}
	}

	// Warnings go to stderr serially, after the worker pool drains
	for _, u := range allUnresolved {
		fmt.Fprintf(os.Stderr, "Warning: %s:%d\n", u.File, u.Line)
		fmt.Fprintf(os.Stderr, "  Import %q does not resolve\n", u.Specifier)
	}

	if errorCount == totalCount {
		return fmt.Errorf("all %d files failed to check", errorCount)
	}

	if format == "text" {
		fmt.Printf("checked %d files, %d unresolved imports\n", totalCount, len(allUnresolved))
	}

	if len(allUnresolved) > 0 {
		return fmt.Errorf("%d unresolved imports", len(allUnresolved))
	}
	return nil
}
