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
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// IgnoreFiles are read from the root of a walk, in order.
var IgnoreFiles = []string{".gitignore", ".bmllintignore"}

// IgnoreList matches paths against gitignore patterns.
type IgnoreList struct {
	gi *ignore.GitIgnore
}

// NewIgnoreList creates a new IgnoreList from patterns in gitignore syntax.
func NewIgnoreList(patterns []string) *IgnoreList {
	return &IgnoreList{gi: ignore.CompileIgnoreLines(patterns...)}
}

// LoadIgnoreList combines patterns with the ignore files found in dir.
// Missing ignore files are not an error.
func LoadIgnoreList(dir string, patterns []string) (*IgnoreList, error) {
	lines := append([]string{}, patterns...)
	for _, name := range IgnoreFiles {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("error reading %s: %w", name, err)
		}
		lines = append(lines, strings.Split(string(data), "\n")...)
	}
	return NewIgnoreList(lines), nil
}

// ShouldIgnore returns true if the path should be ignored.
// path should be relative to the root of the walk.
func (l *IgnoreList) ShouldIgnore(path string, isDir bool) bool {
	path = filepath.ToSlash(path)
	if isDir {
		// Directory patterns end in "/" and only match with the slash present.
		return l.gi.MatchesPath(path + "/")
	}
	return l.gi.MatchesPath(path)
}
