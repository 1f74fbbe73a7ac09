// Copyright 2026 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package walker

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Extension is the file extension of BML sources.
const Extension = ".bml"

// File represents a file in the file system.
type File struct {
	Path    string
	Info    os.FileInfo
	RelPath string
}

// FileView represents a view of a directory tree, with ignore patterns.
type FileView struct {
	Dir    string
	Ignore *IgnoreList
}

// NewFileView creates a FileView of dir that skips .git, the given patterns
// and everything listed in the ignore files of dir.
func NewFileView(dir string, ignorePatterns []string) (*FileView, error) {
	il, err := LoadIgnoreList(dir, append([]string{".git/"}, ignorePatterns...))
	if err != nil {
		return nil, err
	}
	return &FileView{Dir: dir, Ignore: il}, nil
}

// Walk walks the directory tree and calls callback for each file.
func (v *FileView) Walk(callback func(File) error) error {
	return filepath.Walk(v.Dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(v.Dir, path)
		if err != nil {
			return err
		}
		if relPath == "." {
			return nil
		}

		if v.Ignore != nil && v.Ignore.ShouldIgnore(relPath, info.IsDir()) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() || !info.Mode().IsRegular() {
			return nil
		}

		return callback(File{
			Path:    path,
			Info:    info,
			RelPath: relPath,
		})
	})
}

// BMLFiles returns the sorted BML sources named by paths, which are relative
// to root unless absolute. Directories are walked; files are taken as they
// are. No paths means all of root.
func BMLFiles(root string, paths []string, skip []string) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, p := range paths {
		abs := p
		if !filepath.IsAbs(p) {
			abs = filepath.Join(root, p)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("error checking %s: %w", p, err)
		}
		if !info.IsDir() {
			add(abs)
			continue
		}

		fv, err := NewFileView(abs, skip)
		if err != nil {
			return nil, err
		}
		err = fv.Walk(func(f File) error {
			if strings.EqualFold(filepath.Ext(f.Path), Extension) {
				add(f.Path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("error walking %s: %w", p, err)
		}
	}

	sort.Strings(files)
	return files, nil
}
