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

package lint

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/cache"
	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/diagnostics"
	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/engine"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestRun(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"b.bml":         "x = 1\nreturn x;\n",
		"a.bml":         "return 1;\n",
		"sub/c.BML":     "y = 2;\nreturn y;\n",
		"notes.txt":     "x = 1",
		"skipped/d.bml": "z = 1\n",
	})

	files, err := Run(context.Background(), engine.New(nil), root, nil, Options{Skip: []string{"skipped/"}, Jobs: 2})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	var rels []string
	for _, f := range files {
		rels = append(rels, filepath.ToSlash(f.RelPath))
	}
	if got, want := strings.Join(rels, " "), "a.bml b.bml sub/c.BML"; got != want {
		t.Fatalf("linted %q, want %q", got, want)
	}

	b := files[1]
	if !strings.HasPrefix(b.Result.URI, "file://") || !strings.HasSuffix(b.Result.URI, "/b.bml") {
		t.Errorf("URI = %q", b.Result.URI)
	}
	if b.Text != "x = 1\nreturn x;\n" {
		t.Errorf("Text = %q", b.Text)
	}
	var found bool
	for _, d := range b.Result.Diagnostics {
		if d.Rule == "missing-semicolon" && d.Range.Start.Line == 0 {
			found = true
		}
	}
	if !found {
		t.Errorf("missing-semicolon not reported for b.bml: %+v", b.Result.Diagnostics)
	}
	if files[0].Result.Diagnostics == nil {
		t.Error("clean file has nil diagnostics, want an empty list")
	}
}

func TestRunUsesCache(t *testing.T) {
	root := t.TempDir()
	content := "x = 1\n"
	writeFiles(t, root, map[string]string{"a.bml": content})

	m, err := cache.NewManager(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	canned := []diagnostics.Diagnostic{{
		Range:    diagnostics.LineRange(0, 0, 1),
		Message:  "from cache",
		Severity: diagnostics.SeverityHint,
		Rule:     "line-length",
	}}
	m.StoreLint(cache.HashContent([]byte(content)), "k1", canned)

	files, err := Run(context.Background(), engine.New(nil), root, nil, Options{Cache: m, CacheKey: "k1"})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(files) != 1 || len(files[0].Result.Diagnostics) != 1 || files[0].Result.Diagnostics[0].Message != "from cache" {
		t.Fatalf("cached result not used: %+v", files)
	}

	// A different key analyzes again and stores the fresh result.
	files, err = Run(context.Background(), engine.New(nil), root, nil, Options{Cache: m, CacheKey: "k2"})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	for _, d := range files[0].Result.Diagnostics {
		if d.Message == "from cache" {
			t.Errorf("stale cached result used under a new key")
		}
	}
	stored, ok := m.LookupLint(cache.HashContent([]byte(content)), "k2")
	if !ok || len(stored) != len(files[0].Result.Diagnostics) {
		t.Errorf("fresh result not stored: %v %+v", ok, stored)
	}
}

func TestRunCanceled(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"a.bml": "x = 1;\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Run(ctx, engine.New(nil), root, nil, Options{}); err == nil {
		t.Error("expected an error for a canceled context")
	}
}
