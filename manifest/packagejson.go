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
// Package manifest provides parsing for the workspace manifests monometro
// reads: package.json and lerna.json.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	monofs "bennypowers.dev/monometro/fs"
)

// PackageJSON represents the subset of package.json relevant for
// monorepo discovery and module resolution.
type PackageJSON struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Main            string            `json:"main,omitempty"`
	ReactNativeMain string            `json:"react-native,omitempty"`
	Dependencies    map[string]string `json:"dependencies,omitempty"`
	DevDependencies map[string]string `json:"devDependencies,omitempty"`
	Workspaces      Workspaces        `json:"workspaces,omitempty"`
}

// EntryPoint returns the package's main entry, preferring the
// react-native field over main when both are set. This is the
// packageFilter substitution Metro applies before standard resolution.
func (pkg *PackageJSON) EntryPoint() string {
	if pkg.ReactNativeMain != "" {
		return pkg.ReactNativeMain
	}
	return pkg.Main
}

// Parse parses package.json data.
func Parse(data []byte) (*PackageJSON, error) {
	var pkg PackageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, err
	}
	return &pkg, nil
}

// ParseFile parses a package.json file. A missing file is an error;
// use Load when absence is expected.
func ParseFile(fsys monofs.FileSystem, path string) (*PackageJSON, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, err
	}
	pkg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return pkg, nil
}

// Load parses a package.json file, returning (nil, nil) when the file
// does not exist. Malformed JSON is still an error: a monorepo with
// unparsable metadata cannot be discovered correctly.
func Load(fsys monofs.FileSystem, path string) (*PackageJSON, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if isNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	pkg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return pkg, nil
}

func isNotExist(err error) bool {
	// fs.ErrNotExist covers both os and fstest errors
	return errors.Is(err, fs.ErrNotExist)
}
