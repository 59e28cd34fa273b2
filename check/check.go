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
package check

import (
	"runtime"
	"strings"
	"sync"

	monofs "bennypowers.dev/monometro/fs"
	"bennypowers.dev/monometro/metroconfig"
	"bennypowers.dev/monometro/resolver"
)

// Options configures a check run.
type Options struct {
	// Platform is the target tag used for platform-qualified extensions.
	Platform string
	// Parallel is the number of parallel workers.
	// Defaults to runtime.NumCPU() if <= 0.
	Parallel int
}

// Unresolved is one import that failed to resolve.
type Unresolved struct {
	File      string `json:"file"`
	Line      int    `json:"line"`
	Specifier string `json:"specifier"`
}

// FileResult holds the outcome of checking a single file.
type FileResult struct {
	File       string       `json:"file"`
	Imports    int          `json:"imports"`
	Unresolved []Unresolved `json:"unresolved,omitempty"`
	Error      string       `json:"error,omitempty"`
}

// Files checks every import in the given files against the config's
// resolver. Results arrive on the returned channel, which is closed
// when all files have been processed.
func Files(fsys monofs.FileSystem, cfg *metroconfig.Config, files []string, opts Options) <-chan FileResult {
	results := make(chan FileResult, len(files))

	go func() {
		defer close(results)

		parallel := opts.Parallel
		if parallel <= 0 {
			parallel = runtime.NumCPU()
		}

		jobs := make(chan string, len(files))

		var wg sync.WaitGroup
		for range parallel {
			wg.Go(func() {
				for file := range jobs {
					results <- checkFile(fsys, cfg, file, opts.Platform)
				}
			})
		}

		for _, file := range files {
			jobs <- file
		}
		close(jobs)

		wg.Wait()
	}()

	return results
}

// checkFile extracts imports from one file and resolves each.
func checkFile(fsys monofs.FileSystem, cfg *metroconfig.Config, file, platform string) FileResult {
	result := FileResult{File: file}

	content, err := fsys.ReadFile(file)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	imports, err := ExtractImports(content)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.Imports = len(imports)
	for _, imp := range imports {
		if isBuiltin(imp.Specifier) {
			continue
		}
		res := cfg.ResolveRequest(resolver.Request{
			OriginModulePath: file,
			ModuleName:       imp.Specifier,
			Platform:         platform,
			SourceExts:       cfg.SourceExts,
			AssetExts:        cfg.AssetExts,
		})
		if res == nil {
			result.Unresolved = append(result.Unresolved, Unresolved{
				File:      file,
				Line:      imp.Line,
				Specifier: imp.Specifier,
			})
		}
	}

	return result
}

// isBuiltin reports whether the specifier names a runtime-provided
// module rather than a file on disk.
func isBuiltin(specifier string) bool {
	return strings.HasPrefix(specifier, "node:")
}
