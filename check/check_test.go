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
package check_test

import (
	"reflect"
	"testing"

	"bennypowers.dev/monometro/check"
	"bennypowers.dev/monometro/internal/mapfs"
	"bennypowers.dev/monometro/metroconfig"
)

func TestExtractImports(t *testing.T) {
	source := `import React from 'react';
import { util } from "./util";
export { thing } from './thing';
const lazy = await import('./lazy');
`

	imports, err := check.ExtractImports([]byte(source))
	if err != nil {
		t.Fatalf("ExtractImports failed: %v", err)
	}

	want := []check.ModuleImport{
		{Specifier: "react", Line: 1},
		{Specifier: "./util", Line: 2},
		{Specifier: "./thing", Line: 3},
		{Specifier: "./lazy", IsDynamic: true, Line: 4},
	}
	if !reflect.DeepEqual(imports, want) {
		t.Errorf("ExtractImports mismatch:\n  got:      %v\n  expected: %v", imports, want)
	}
}

func TestCheckFiles(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/m/lerna.json", `{"packages": ["packages/*"]}`, 0644)
	mfs.AddFile("/m/packages/app/package.json", `{"name": "app"}`, 0644)
	mfs.AddFile("/m/packages/app/util.js", ``, 0644)
	mfs.AddFile("/m/packages/app/index.js",
		"import { util } from './util';\nimport missing from './missing';\nimport fs from 'node:fs';\n", 0644)
	mfs.AddFile("/m/node_modules/react/index.js", ``, 0644)
	mfs.AddFile("/m/packages/lib/package.json", `{"name": "lib"}`, 0644)
	mfs.AddFile("/m/packages/lib/main.js", "import React from 'react';\n", 0644)

	cfg, err := metroconfig.New(mfs, nil, "/m/packages/app").Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	files := []string{"/m/packages/app/index.js", "/m/packages/lib/main.js"}
	byFile := make(map[string]check.FileResult)
	for result := range check.Files(mfs, cfg, files, check.Options{Parallel: 2}) {
		byFile[result.File] = result
	}

	app := byFile["/m/packages/app/index.js"]
	if app.Error != "" {
		t.Fatalf("app check errored: %s", app.Error)
	}
	if app.Imports != 3 {
		t.Errorf("app Imports = %d, want 3", app.Imports)
	}
	if len(app.Unresolved) != 1 || app.Unresolved[0].Specifier != "./missing" {
		t.Errorf("app Unresolved = %v, want just ./missing", app.Unresolved)
	}
	if app.Unresolved[0].Line != 2 {
		t.Errorf("Unresolved line = %d, want 2", app.Unresolved[0].Line)
	}

	lib := byFile["/m/packages/lib/main.js"]
	if len(lib.Unresolved) != 0 {
		t.Errorf("lib Unresolved = %v, want none (react installed at root)", lib.Unresolved)
	}
}

func TestCheckUnreadableFile(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/m/lerna.json", `{"packages": ["packages/*"]}`, 0644)
	mfs.AddFile("/m/packages/app/package.json", `{"name": "app"}`, 0644)

	cfg, err := metroconfig.New(mfs, nil, "/m/packages/app").Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	for result := range check.Files(mfs, cfg, []string{"/m/gone.js"}, check.Options{}) {
		if result.Error == "" {
			t.Errorf("expected error for unreadable file, got %+v", result)
		}
	}
}
