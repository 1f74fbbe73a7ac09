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

package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/diagnostics"
)

func TestGetMetadata(t *testing.T) {
	f, err := os.CreateTemp("", "bmllint-metadata-test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(f.Name())
	if _, err := f.WriteString("x = 1;\n"); err != nil {
		t.Fatal(err)
	}
	f.Close()

	meta, err := GetMetadata(f.Name())
	if err != nil {
		t.Fatalf("GetMetadata failed: %v", err)
	}

	if meta.Path != f.Name() {
		t.Errorf("expected path %s, got %s", f.Name(), meta.Path)
	}

	fi, err := os.Stat(f.Name())
	if err != nil {
		t.Fatal(err)
	}
	if meta.Size != fi.Size() {
		t.Errorf("expected size %d, got %d", fi.Size(), meta.Size)
	}
	if meta.Mtime != fi.ModTime().UnixNano() {
		t.Errorf("expected mtime %d, got %d", fi.ModTime().UnixNano(), meta.Mtime)
	}
	if meta.Hash != "" {
		t.Errorf("expected no hash, got %s", meta.Hash)
	}
}

func TestManager(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(t.TempDir(), "a.bml")
	content := []byte("x = 1\n")
	if err := os.WriteFile(src, content, 0644); err != nil {
		t.Fatal(err)
	}

	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	meta, err := m.GetOrUpdateMetadata(src)
	if err != nil {
		t.Fatalf("GetOrUpdateMetadata failed: %v", err)
	}
	if meta.Hash != HashContent(content) {
		t.Errorf("hash = %s, want %s", meta.Hash, HashContent(content))
	}

	if m.IsFormatted(meta.Hash) {
		t.Errorf("expected file not formatted yet")
	}
	m.MarkFormatted(meta.Hash)

	diags := []diagnostics.Diagnostic{{
		Range:    diagnostics.LineRange(0, 0, 5),
		Message:  "Missing semicolon at end of statement.",
		Severity: diagnostics.SeverityError,
		Rule:     "missing-semicolon",
	}}
	m.StoreLint(meta.Hash, "cfg1", diags)

	if err := m.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reopened, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	if !reopened.IsFormatted(meta.Hash) {
		t.Errorf("formatted state was not persisted")
	}
	got, ok := reopened.LookupLint(meta.Hash, "cfg1")
	if !ok || len(got) != 1 || got[0] != diags[0] {
		t.Errorf("LookupLint = %+v, %v; want %+v", got, ok, diags)
	}
	if _, ok := reopened.LookupLint(meta.Hash, "cfg2"); ok {
		t.Errorf("expected miss for a different config fingerprint")
	}
	again, err := reopened.GetOrUpdateMetadata(src)
	if err != nil {
		t.Fatalf("GetOrUpdateMetadata failed: %v", err)
	}
	if again.Hash != meta.Hash {
		t.Errorf("cached hash changed")
	}
}

func TestManagerIgnoresCorruptFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "lint.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "formatted.json"), []byte("null"), 0644); err != nil {
		t.Fatal(err)
	}
	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	m.MarkFormatted("abc")
	m.StoreLint("abc", "cfg", nil)
	if _, ok := m.LookupLint("abc", "cfg"); !ok {
		t.Errorf("expected stored entry")
	}
}
