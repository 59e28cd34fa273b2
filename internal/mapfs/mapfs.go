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
// Package mapfs provides an in-memory filesystem implementation for testing.
package mapfs

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"
	"testing/fstest"
	"time"
)

// MapFileSystem implements FileSystem using an in-memory fstest.MapFS.
// This is useful for testing without touching the real filesystem.
// Symlinks are modeled as a separate name -> target table and followed
// one level, which matches how the watch-folder computation uses them.
type MapFileSystem struct {
	mu       sync.RWMutex
	mapFS    fstest.MapFS
	symlinks map[string]string
	modTime  time.Time
}

// New creates a new in-memory filesystem for testing.
func New() *MapFileSystem {
	return &MapFileSystem{
		mapFS:    make(fstest.MapFS),
		symlinks: make(map[string]string),
		modTime:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// AddFile adds a file to the in-memory filesystem.
func (mfs *MapFileSystem) AddFile(path string, content string, mode fs.FileMode) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	path = mfs.cleanPath(path)
	mfs.mapFS[path] = &fstest.MapFile{
		Data:    []byte(content),
		Mode:    mode,
		ModTime: mfs.modTime,
	}
}

// AddDir adds a directory to the in-memory filesystem.
func (mfs *MapFileSystem) AddDir(path string, mode fs.FileMode) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	path = mfs.cleanPath(path)
	keepFile := path + "/.keep"
	mfs.mapFS[keepFile] = &fstest.MapFile{
		Data:    []byte(""),
		Mode:    mode.Perm(),
		ModTime: mfs.modTime,
	}
}

// AddPipe adds a named pipe to the in-memory filesystem.
func (mfs *MapFileSystem) AddPipe(path string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	path = mfs.cleanPath(path)
	mfs.mapFS[path] = &fstest.MapFile{
		Mode:    fs.ModeNamedPipe | 0644,
		ModTime: mfs.modTime,
	}
}

// AddSymlink adds a symbolic link pointing at target. The link itself is
// visible to Lstat and Readlink; all other operations follow it.
func (mfs *MapFileSystem) AddSymlink(name, target string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	mfs.symlinks[mfs.cleanPath(name)] = target
}

// WriteFile implements FileSystem.
func (mfs *MapFileSystem) WriteFile(name string, data []byte, perm fs.FileMode) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	name = mfs.cleanPath(name)

	mfs.mapFS[name] = &fstest.MapFile{
		Data:    append([]byte(nil), data...),
		Mode:    perm,
		ModTime: mfs.modTime,
	}

	return nil
}

// ReadFile implements FileSystem.
func (mfs *MapFileSystem) ReadFile(name string) ([]byte, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	return fs.ReadFile(mfs.mapFS, mfs.resolveLocked(mfs.cleanPath(name)))
}

// Stat implements FileSystem. Symlinks are followed.
func (mfs *MapFileSystem) Stat(name string) (fs.FileInfo, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	return fs.Stat(mfs.mapFS, mfs.resolveLocked(mfs.cleanPath(name)))
}

// Lstat implements FileSystem. Symlinks are reported, not followed.
func (mfs *MapFileSystem) Lstat(name string) (fs.FileInfo, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	cleaned := mfs.cleanPath(name)
	if _, ok := mfs.symlinks[cleaned]; ok {
		return linkInfo{name: path.Base(cleaned), modTime: mfs.modTime}, nil
	}
	return fs.Stat(mfs.mapFS, cleaned)
}

// Readlink implements FileSystem.
func (mfs *MapFileSystem) Readlink(name string) (string, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	if target, ok := mfs.symlinks[mfs.cleanPath(name)]; ok {
		return target, nil
	}
	return "", &fs.PathError{Op: "readlink", Path: name, Err: fmt.Errorf("not a symlink")}
}

// Exists implements FileSystem.
func (mfs *MapFileSystem) Exists(path string) bool {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	path = mfs.resolveLocked(mfs.cleanPath(path))

	if _, exists := mfs.mapFS[path]; exists {
		return true
	}

	prefix := path + "/"
	for filePath := range mfs.mapFS {
		if strings.HasPrefix(filePath, prefix) {
			return true
		}
	}

	return false
}

// ReadDir implements FileSystem.
func (mfs *MapFileSystem) ReadDir(name string) ([]fs.DirEntry, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	return fs.ReadDir(mfs.mapFS, mfs.resolveLocked(mfs.cleanPath(name)))
}

// Open implements FileSystem.
func (mfs *MapFileSystem) Open(name string) (fs.File, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	return mfs.mapFS.Open(mfs.resolveLocked(mfs.cleanPath(name)))
}

// resolveLocked follows one level of symlink, including links on a
// parent component. Callers must hold mfs.mu.
func (mfs *MapFileSystem) resolveLocked(p string) string {
	if target, ok := mfs.symlinks[p]; ok {
		return mfs.cleanPath(target)
	}
	for link, target := range mfs.symlinks {
		prefix := link + "/"
		if strings.HasPrefix(p, prefix) {
			return mfs.cleanPath(target) + "/" + strings.TrimPrefix(p, prefix)
		}
	}
	return p
}

func (mfs *MapFileSystem) cleanPath(p string) string {
	cleaned := path.Clean(p)
	if !path.IsAbs(cleaned) {
		cleaned = "/" + cleaned
	}
	return strings.TrimPrefix(cleaned, "/")
}

// linkInfo is the FileInfo reported by Lstat for symlink entries.
type linkInfo struct {
	name    string
	modTime time.Time
}

func (li linkInfo) Name() string       { return li.name }
func (li linkInfo) Size() int64        { return 0 }
func (li linkInfo) Mode() fs.FileMode  { return fs.ModeSymlink | 0777 }
func (li linkInfo) ModTime() time.Time { return li.modTime }
func (li linkInfo) IsDir() bool        { return false }
func (li linkInfo) Sys() any           { return nil }
