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
package metroconfig_test

import (
	"reflect"
	"testing"

	"bennypowers.dev/monometro/internal/mapfs"
	"bennypowers.dev/monometro/metroconfig"
	"bennypowers.dev/monometro/resolver"
)

func monorepoFixture() *mapfs.MapFileSystem {
	mfs := mapfs.New()
	mfs.AddFile("/m/lerna.json", `{"packages": ["packages/*"]}`, 0644)
	mfs.AddFile("/m/packages/app/package.json", `{"name": "app"}`, 0644)
	mfs.AddFile("/m/packages/app/util.js", ``, 0644)
	mfs.AddFile("/m/packages/lib/package.json", `{"name": "lib"}`, 0644)
	return mfs
}

func TestBuild(t *testing.T) {
	mfs := monorepoFixture()

	cfg, err := metroconfig.New(mfs, nil, "/m/packages/app").Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	wantFolders := []string{"/m", "/m/packages/app", "/m/packages/lib"}
	if !reflect.DeepEqual(cfg.WatchFolders, wantFolders) {
		t.Errorf("WatchFolders = %v, want %v", cfg.WatchFolders, wantFolders)
	}
	if !reflect.DeepEqual(cfg.SourceExts, metroconfig.DefaultSourceExts) {
		t.Errorf("SourceExts = %v, want defaults", cfg.SourceExts)
	}
	if cfg.TransformModulePath != "" {
		t.Errorf("TransformModulePath = %q, want empty without TypeScript toggle", cfg.TransformModulePath)
	}

	res := cfg.ResolveRequest(resolver.Request{
		OriginModulePath: "/m/packages/app/index.js",
		ModuleName:       "./util",
		SourceExts:       cfg.SourceExts,
		AssetExts:        cfg.AssetExts,
	})
	if res == nil || res.FilePath != "/m/packages/app/util.js" {
		t.Errorf("ResolveRequest = %+v, want util.js", res)
	}
}

func TestBuildTypeScript(t *testing.T) {
	cfg, err := metroconfig.New(monorepoFixture(), nil, "/m/packages/app").
		WithTypeScript().
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	want := []string{"js", "jsx", "json", "ts", "tsx"}
	if !reflect.DeepEqual(cfg.SourceExts, want) {
		t.Errorf("SourceExts = %v, want %v", cfg.SourceExts, want)
	}
	if cfg.TransformModulePath != metroconfig.DefaultTransformerModule {
		t.Errorf("TransformModulePath = %q, want default transformer", cfg.TransformModulePath)
	}
}

func TestBuildTypeScriptKeepsExplicitTransformer(t *testing.T) {
	cfg, err := metroconfig.New(monorepoFixture(), nil, "/m/packages/app").
		WithTypeScript().
		WithTransformerModule("my-transformer").
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if cfg.TransformModulePath != "my-transformer" {
		t.Errorf("TransformModulePath = %q, want my-transformer", cfg.TransformModulePath)
	}
}

func TestBuildEmptyTransformerIsError(t *testing.T) {
	_, err := metroconfig.New(monorepoFixture(), nil, "/m/packages/app").
		WithTransformerModule("").
		Build()
	if err == nil {
		t.Error("Build accepted an explicitly empty transformer module name")
	}
}

func TestBuildRequiresProjectRoot(t *testing.T) {
	if _, err := metroconfig.New(monorepoFixture(), nil, "").Build(); err == nil {
		t.Error("Build accepted an empty project root")
	}
}

func TestBuildNoMonorepoIsError(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/plain/index.js", ``, 0644)

	if _, err := metroconfig.New(mfs, nil, "/plain").Build(); err == nil {
		t.Error("Build succeeded without a discoverable monorepo")
	}
}

func TestBuilderImmutable(t *testing.T) {
	base := metroconfig.New(monorepoFixture(), nil, "/m/packages/app")
	withTS := base.WithTypeScript()

	cfg, err := base.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if reflect.DeepEqual(cfg.SourceExts, []string{"js", "jsx", "json", "ts", "tsx"}) {
		t.Error("WithTypeScript mutated the base builder")
	}

	tsCfg, err := withTS.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(tsCfg.SourceExts) != 5 {
		t.Errorf("derived builder SourceExts = %v, want typescript extensions", tsCfg.SourceExts)
	}
}

func TestBuildMergesWatchFolders(t *testing.T) {
	mfs := monorepoFixture()
	mfs.AddDir("/extra", 0755)

	cfg, err := metroconfig.New(mfs, nil, "/m/packages/app").
		WithWatchFolders("/extra", "/missing").
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	want := []string{"/m", "/m/packages/app", "/m/packages/lib", "/extra"}
	if !reflect.DeepEqual(cfg.WatchFolders, want) {
		t.Errorf("WatchFolders = %v, want %v (missing folder dropped)", cfg.WatchFolders, want)
	}
}

func TestBuildResolverOverride(t *testing.T) {
	called := false
	override := func(req resolver.Request) *resolver.Resolution {
		called = true
		return nil
	}

	cfg, err := metroconfig.New(monorepoFixture(), nil, "/m/packages/app").
		WithResolveRequest(override).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	cfg.ResolveRequest(resolver.Request{ModuleName: "./x"})
	if !called {
		t.Error("ResolveRequest override was not used")
	}
}
