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
package manifest

import (
	"encoding/json"
	"fmt"

	monofs "bennypowers.dev/monometro/fs"
)

// LernaJSON represents the subset of lerna.json relevant for monorepo
// discovery.
type LernaJSON struct {
	RawPackages   []any  `json:"packages,omitempty"`
	UseWorkspaces bool   `json:"useWorkspaces,omitempty"`
	NpmClient     string `json:"npmClient,omitempty"`
}

// PackagePatterns returns the declared package-location patterns.
// Non-string entries are silently skipped.
func (l *LernaJSON) PackagePatterns() []string {
	return stringsOf(l.RawPackages)
}

// DelegatesToYarn reports whether lerna is configured to defer package
// locations to yarn workspaces in the co-located package.json.
func (l *LernaJSON) DelegatesToYarn() bool {
	return l.UseWorkspaces && l.NpmClient == "yarn"
}

// LoadLerna parses a lerna.json file, returning (nil, nil) when the
// file does not exist. Malformed JSON is an error.
func LoadLerna(fsys monofs.FileSystem, path string) (*LernaJSON, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if isNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var lerna LernaJSON
	if err := json.Unmarshal(data, &lerna); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &lerna, nil
}
