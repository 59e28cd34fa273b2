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
package monorepo_test

import (
	"reflect"
	"testing"

	"bennypowers.dev/monometro/internal/mapfs"
	"bennypowers.dev/monometro/monorepo"
	"bennypowers.dev/monometro/testutil"
)

func lernaFixture() *mapfs.MapFileSystem {
	mfs := mapfs.New()
	mfs.AddFile("/m/lerna.json", `{"packages": ["packages/*"]}`, 0644)
	mfs.AddFile("/m/packages/app/package.json", `{"name": "app"}`, 0644)
	mfs.AddFile("/m/packages/app/index.js", ``, 0644)
	mfs.AddFile("/m/packages/lib/package.json", `{"name": "lib"}`, 0644)
	return mfs
}

func TestLocateLerna(t *testing.T) {
	mfs := lernaFixture()

	info, err := monorepo.DefaultLocator(mfs, nil).Locate("/m/packages/app")
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	if info == nil {
		t.Fatal("Locate returned nil for a lerna monorepo")
	}

	if info.Root != "/m" {
		t.Errorf("Root = %q, want /m", info.Root)
	}
	if info.NodeModulesRoot != "/m/node_modules" {
		t.Errorf("NodeModulesRoot = %q, want /m/node_modules", info.NodeModulesRoot)
	}
	if info.Project.Root != "/m/packages/app" {
		t.Errorf("Project.Root = %q, want /m/packages/app", info.Project.Root)
	}

	wantPackages := []monorepo.PackagePaths{
		{Root: "/m/packages/app", NodeModulesRoot: "/m/packages/app/node_modules"},
		{Root: "/m/packages/lib", NodeModulesRoot: "/m/packages/lib/node_modules"},
	}
	if !reflect.DeepEqual(info.Packages, wantPackages) {
		t.Errorf("Packages mismatch:\n  got:      %v\n  expected: %v", info.Packages, wantPackages)
	}
}

func TestLocateConvergesFromAnyDepth(t *testing.T) {
	mfs := lernaFixture()
	mfs.AddFile("/m/packages/app/src/components/deep/file.js", ``, 0644)

	locator := monorepo.DefaultLocator(mfs, nil)
	for _, start := range []string{"/m", "/m/packages", "/m/packages/app", "/m/packages/app/src/components/deep"} {
		info, err := locator.Locate(start)
		if err != nil {
			t.Fatalf("Locate(%q) failed: %v", start, err)
		}
		if info == nil || info.Root != "/m" {
			t.Errorf("Locate(%q) root = %v, want /m", start, info)
		}
	}
}

func TestLocateIdempotent(t *testing.T) {
	mfs := lernaFixture()
	locator := monorepo.DefaultLocator(mfs, nil)

	first, err := locator.Locate("/m/packages/app")
	if err != nil {
		t.Fatalf("first Locate failed: %v", err)
	}
	second, err := locator.Locate("/m/packages/app")
	if err != nil {
		t.Fatalf("second Locate failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Locate not idempotent:\n  first:  %v\n  second: %v", first, second)
	}
}

func TestLocateLernaDelegatesToYarn(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/m/lerna.json", `{"useWorkspaces": true, "npmClient": "yarn", "packages": ["ignored/*"]}`, 0644)
	mfs.AddFile("/m/package.json", `{"name": "root", "workspaces": {"packages": ["apps/*"]}}`, 0644)
	mfs.AddFile("/m/apps/mobile/package.json", `{"name": "mobile"}`, 0644)
	mfs.AddFile("/m/ignored/stale/package.json", `{"name": "stale"}`, 0644)

	info, err := monorepo.DefaultLocator(mfs, nil).Locate("/m/apps/mobile")
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	if info == nil {
		t.Fatal("Locate returned nil")
	}
	if len(info.Packages) != 1 || info.Packages[0].Root != "/m/apps/mobile" {
		t.Errorf("Packages = %v, want just /m/apps/mobile from yarn workspaces", info.Packages)
	}
}

func TestLocateWorkspacesStrategy(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/repo/package.json", `{"name": "root", "workspaces": ["packages/*"]}`, 0644)
	mfs.AddFile("/repo/packages/a/package.json", `{"name": "a"}`, 0644)
	mfs.AddFile("/repo/packages/b/package.json", `{"name": "b"}`, 0644)

	info, err := monorepo.DefaultLocator(mfs, nil).Locate("/repo/packages/a")
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	if info == nil {
		t.Fatal("Locate returned nil for yarn workspaces monorepo")
	}
	if info.Root != "/repo" {
		t.Errorf("Root = %q, want /repo", info.Root)
	}
	if len(info.Packages) != 2 {
		t.Errorf("Packages = %v, want two entries", info.Packages)
	}
}

func TestLocateStrategyPriority(t *testing.T) {
	// Both manifests present: the lerna strategy is tried first and wins.
	mfs := mapfs.New()
	mfs.AddFile("/m/lerna.json", `{"packages": ["lerna-pkgs/*"]}`, 0644)
	mfs.AddFile("/m/package.json", `{"workspaces": ["yarn-pkgs/*"]}`, 0644)
	mfs.AddFile("/m/lerna-pkgs/one/package.json", `{"name": "one"}`, 0644)
	mfs.AddFile("/m/yarn-pkgs/two/package.json", `{"name": "two"}`, 0644)

	info, err := monorepo.DefaultLocator(mfs, nil).Locate("/m/lerna-pkgs/one")
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	if len(info.Packages) != 1 || info.Packages[0].Root != "/m/lerna-pkgs/one" {
		t.Errorf("Packages = %v, want lerna-declared packages only", info.Packages)
	}
}

func TestLocateExcludesNodeModules(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/m/lerna.json", `{"packages": ["**/app"]}`, 0644)
	mfs.AddFile("/m/packages/app/package.json", `{"name": "app"}`, 0644)
	mfs.AddFile("/m/node_modules/dep/app/package.json", `{"name": "impostor"}`, 0644)

	info, err := monorepo.DefaultLocator(mfs, nil).Locate("/m")
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	want := []monorepo.PackagePaths{
		{Root: "/m/packages/app", NodeModulesRoot: "/m/packages/app/node_modules"},
	}
	if !reflect.DeepEqual(info.Packages, want) {
		t.Errorf("Packages = %v, want %v (node_modules excluded)", info.Packages, want)
	}
}

func TestLocateWorkspacesFixture(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "monorepo/yarn-workspaces", "/repo")

	info, err := monorepo.DefaultLocator(mfs, nil).Locate("/repo/packages/app")
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	if info == nil {
		t.Fatal("Locate returned nil for workspaces fixture")
	}
	if info.Root != "/repo" {
		t.Errorf("Root = %q, want /repo", info.Root)
	}
	want := []monorepo.PackagePaths{
		{Root: "/repo/packages/app", NodeModulesRoot: "/repo/packages/app/node_modules"},
		{Root: "/repo/packages/lib", NodeModulesRoot: "/repo/packages/lib/node_modules"},
	}
	if !reflect.DeepEqual(info.Packages, want) {
		t.Errorf("Packages = %v, want %v", info.Packages, want)
	}
}

func TestLocateNotFound(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/lonely/project/index.js", ``, 0644)

	info, err := monorepo.DefaultLocator(mfs, nil).Locate("/lonely/project")
	if err != nil {
		t.Fatalf("Locate returned error for plain project: %v", err)
	}
	if info != nil {
		t.Errorf("Locate = %v, want nil for no monorepo", info)
	}
}

func TestLocateMalformedManifest(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/m/lerna.json", `{"packages": [`, 0644)

	if _, err := monorepo.DefaultLocator(mfs, nil).Locate("/m"); err == nil {
		t.Error("Locate did not propagate malformed lerna.json")
	}
}
