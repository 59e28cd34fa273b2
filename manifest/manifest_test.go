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
package manifest_test

import (
	"reflect"
	"testing"

	"bennypowers.dev/monometro/internal/mapfs"
	"bennypowers.dev/monometro/manifest"
)

func TestWorkspacesShapes(t *testing.T) {
	tests := []struct {
		name     string
		json     string
		kind     manifest.WorkspacesKind
		patterns []string
	}{
		{
			"plain list",
			`{"name": "root", "workspaces": ["packages/*", "tools/*"]}`,
			manifest.WorkspacesList,
			[]string{"packages/*", "tools/*"},
		},
		{
			"object with packages",
			`{"name": "root", "workspaces": {"packages": ["libs/*"], "nohoist": ["**/react-native"]}}`,
			manifest.WorkspacesObject,
			[]string{"libs/*"},
		},
		{
			"absent",
			`{"name": "root"}`,
			manifest.WorkspacesNone,
			nil,
		},
		{
			"non-string entries skipped",
			`{"name": "root", "workspaces": ["packages/*", 42, null]}`,
			manifest.WorkspacesList,
			[]string{"packages/*"},
		},
		{
			"unrecognized shape",
			`{"name": "root", "workspaces": "packages/*"}`,
			manifest.WorkspacesNone,
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkg, err := manifest.Parse([]byte(tt.json))
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if pkg.Workspaces.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", pkg.Workspaces.Kind, tt.kind)
			}
			if !reflect.DeepEqual(pkg.Workspaces.Patterns, tt.patterns) {
				t.Errorf("Patterns = %v, want %v", pkg.Workspaces.Patterns, tt.patterns)
			}
		})
	}
}

func TestEntryPoint(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{"react-native wins over main", `{"main": "index.js", "react-native": "index.native.js"}`, "index.native.js"},
		{"main only", `{"main": "lib/index.js"}`, "lib/index.js"},
		{"neither", `{}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkg, err := manifest.Parse([]byte(tt.json))
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if got := pkg.EntryPoint(); got != tt.want {
				t.Errorf("EntryPoint() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddDir("/proj", 0755)

	pkg, err := manifest.Load(mfs, "/proj/package.json")
	if err != nil {
		t.Fatalf("Load returned error for missing file: %v", err)
	}
	if pkg != nil {
		t.Errorf("Load returned %+v for missing file, want nil", pkg)
	}
}

func TestLoadMalformedJSON(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/proj/package.json", `{"name": `, 0644)

	if _, err := manifest.Load(mfs, "/proj/package.json"); err == nil {
		t.Error("Load did not propagate parse error for malformed JSON")
	}
}

func TestLoadLerna(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/m/lerna.json", `{"packages": ["packages/*", 7], "npmClient": "yarn", "useWorkspaces": true}`, 0644)

	lerna, err := manifest.LoadLerna(mfs, "/m/lerna.json")
	if err != nil {
		t.Fatalf("LoadLerna failed: %v", err)
	}
	if !lerna.DelegatesToYarn() {
		t.Error("expected DelegatesToYarn for useWorkspaces + yarn client")
	}
	if got := lerna.PackagePatterns(); !reflect.DeepEqual(got, []string{"packages/*"}) {
		t.Errorf("PackagePatterns() = %v, want [packages/*]", got)
	}

	missing, err := manifest.LoadLerna(mfs, "/m/other/lerna.json")
	if err != nil || missing != nil {
		t.Errorf("LoadLerna for missing file = (%v, %v), want (nil, nil)", missing, err)
	}
}
