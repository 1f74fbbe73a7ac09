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

// Package cache remembers file hashes, formatting state and lint results
// between runs.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/diagnostics"
)

// Finding is a diagnostic as stored in the cache, with its rule name.
type Finding struct {
	Rule string `json:"rule"`
	diagnostics.Diagnostic
}

type Caches struct {
	Metadata  map[string]*FileMetadata `json:"metadata"`
	Formatted map[string]bool          `json:"formatted"`
	Lint      map[string][]Finding     `json:"lint"`
}

// init replaces maps that a cache file decoded as null.
func (c *Caches) init() {
	if c.Metadata == nil {
		c.Metadata = make(map[string]*FileMetadata)
	}
	if c.Formatted == nil {
		c.Formatted = make(map[string]bool)
	}
	if c.Lint == nil {
		c.Lint = make(map[string][]Finding)
	}
}

type Manager struct {
	dir    string
	caches *Caches
	mu     sync.Mutex
}

// DefaultDir returns the cache directory under the user cache dir.
func DefaultDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cacheDir, "bmllint"), nil
}

// NewManager opens the cache stored in dir, creating dir if needed.
// Unreadable cache files are ignored and start out empty.
func NewManager(dir string) (*Manager, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("error creating cache dir: %w", err)
	}

	m := &Manager{
		dir:    dir,
		caches: &Caches{},
	}
	m.load("metadata.json", &m.caches.Metadata)
	m.load("formatted.json", &m.caches.Formatted)
	m.load("lint.json", &m.caches.Lint)
	m.caches.init()
	return m, nil
}

func (m *Manager) load(name string, into any) {
	data, err := os.ReadFile(filepath.Join(m.dir, name))
	if err != nil {
		return
	}
	// A corrupt file leaves the empty map in place.
	_ = json.Unmarshal(data, into)
}

func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	files := []struct {
		name string
		v    any
	}{
		{"metadata.json", m.caches.Metadata},
		{"formatted.json", m.caches.Formatted},
		{"lint.json", m.caches.Lint},
	}
	for _, f := range files {
		data, err := json.MarshalIndent(f.v, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(m.dir, f.name), data, 0644); err != nil {
			return err
		}
	}
	return nil
}

// GetOrUpdateMetadata returns the FileMetadata with Hash populated.
// If the file on disk matches the cached metadata (Size, Mtime, Inode), the cached Hash is used.
// Otherwise, the file is read and hashed, and the cache is updated.
func (m *Manager) GetOrUpdateMetadata(path string) (*FileMetadata, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, err := GetMetadata(path)
	if err != nil {
		return nil, err
	}

	if cached, ok := m.caches.Metadata[path]; ok && cached.sameFile(current) {
		return cached, nil
	}

	hash, err := hashFile(path)
	if err != nil {
		return nil, err
	}
	current.Hash = hash
	m.caches.Metadata[path] = current
	return current, nil
}

func (m *Manager) IsFormatted(hash string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.caches.Formatted[hash]
}

func (m *Manager) MarkFormatted(hash string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.caches.Formatted[hash] = true
}

func lintKey(hash, fingerprint string) string {
	return hash + "/" + fingerprint
}

// LookupLint returns the diagnostics stored for content with the given hash
// under the settings identified by fingerprint.
func (m *Manager) LookupLint(hash, fingerprint string) ([]diagnostics.Diagnostic, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	findings, ok := m.caches.Lint[lintKey(hash, fingerprint)]
	if !ok {
		return nil, false
	}
	diags := make([]diagnostics.Diagnostic, 0, len(findings))
	for _, f := range findings {
		d := f.Diagnostic
		d.Rule = f.Rule
		diags = append(diags, d)
	}
	return diags, true
}

// StoreLint remembers diags for content with the given hash.
func (m *Manager) StoreLint(hash, fingerprint string, diags []diagnostics.Diagnostic) {
	m.mu.Lock()
	defer m.mu.Unlock()

	findings := make([]Finding, 0, len(diags))
	for _, d := range diags {
		findings = append(findings, Finding{Rule: d.Rule, Diagnostic: d})
	}
	m.caches.Lint[lintKey(hash, fingerprint)] = findings
}
