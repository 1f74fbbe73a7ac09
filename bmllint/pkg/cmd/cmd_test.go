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

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/config"
)

// setupRepo writes files into a temporary repository root and points the
// commands at it.
func setupRepo(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	t.Setenv(config.RootEnv, root)
	return root
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := BuildRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append(args, "--no-cache"))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestLintCommand(t *testing.T) {
	tests := []struct {
		name     string
		files    map[string]string
		args     []string
		wantErr  error
		wantText string
	}{
		{
			name:     "failure",
			files:    map[string]string{"a.bml": "x = 1\nreturn x;\n"},
			args:     []string{"lint", "--color", "never"},
			wantErr:  ErrLintFailures,
			wantText: "a.bml:1:1: error: ",
		},
		{
			name: "downgraded severity passes",
			files: map[string]string{
				"a.bml":         "x = 1\nreturn x;\n",
				config.FileName: "rules:\n  missing-semicolon:\n    severity: warning\n",
			},
			args:     []string{"lint", "--color", "never"},
			wantText: "a.bml:1:1: warning: ",
		},
		{
			name: "failOn warning",
			files: map[string]string{
				"a.bml":         "x = 1\nreturn x;\n",
				config.FileName: "failOn: warning\nrules:\n  missing-semicolon:\n    severity: warning\n",
			},
			args:    []string{"lint"},
			wantErr: ErrLintFailures,
		},
		{
			name:  "no files",
			files: map[string]string{"notes.txt": "x = 1"},
			args:  []string{"lint"},
		},
		{
			name:  "explicit path",
			files: map[string]string{"a.bml": "x = 1\n", "ok/b.bml": ""},
			args:  []string{"lint", "ok"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupRepo(t, tt.files)
			out, err := execute(t, "", tt.args...)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("lint failed: %v\n%s", err, out)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("lint error = %v, want %v", err, tt.wantErr)
			}
			if !strings.Contains(out, tt.wantText) {
				t.Errorf("output %q does not contain %q", out, tt.wantText)
			}
		})
	}
}

func TestLintCommandJSON(t *testing.T) {
	setupRepo(t, map[string]string{"a.bml": "x = 1\nreturn x;\n", "b.bml": ""})
	out, err := execute(t, "", "lint", "--output", "json")
	if !errors.Is(err, ErrLintFailures) {
		t.Fatalf("lint error = %v", err)
	}
	var results []struct {
		URI         string            `json:"uri"`
		Diagnostics []json.RawMessage `json:"diagnostics"`
	}
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(results) != 2 || !strings.HasSuffix(results[0].URI, "/a.bml") || len(results[0].Diagnostics) == 0 {
		t.Errorf("unexpected results %s", out)
	}
}

func TestLintCommandErrors(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		args  []string
		want  string
	}{
		{
			name:  "unknown output",
			files: map[string]string{"a.bml": "x = 1;"},
			args:  []string{"lint", "--output", "xml"},
			want:  "unknown output format",
		},
		{
			name:  "bad config",
			files: map[string]string{config.FileName: "rules:\n  no-such-rule: {}\n"},
			args:  []string{"lint"},
			want:  "error loading config",
		},
		{
			name:  "bad github repo",
			files: map[string]string{"a.bml": "x = 1;"},
			args:  []string{"lint", "--github-repo", "nope", "--github-sha", "abc", "--token", "t"},
			want:  "owner/name",
		},
		{
			name:  "missing path",
			files: map[string]string{},
			args:  []string{"lint", "missing.bml"},
			want:  "missing.bml",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupRepo(t, tt.files)
			_, err := execute(t, "", tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want one containing %q", err, tt.want)
			}
		})
	}
}

func TestFormatCommand(t *testing.T) {
	const messy = "if(x){\ny = 1;\n}"
	root := setupRepo(t, map[string]string{"a.bml": messy, "b.bml": "z = 1;\n"})

	out, err := execute(t, "", "format", "--dry-run")
	if err != nil {
		t.Fatalf("format --dry-run failed: %v", err)
	}
	if strings.TrimSpace(out) != "a.bml" {
		t.Errorf("dry run listed %q, want a.bml", out)
	}
	if data, _ := os.ReadFile(filepath.Join(root, "a.bml")); string(data) != messy {
		t.Errorf("dry run modified the file: %q", data)
	}

	if _, err := execute(t, "", "format"); err != nil {
		t.Fatalf("format failed: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(root, "a.bml"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "if (x) {\n    y = 1;\n}\n" {
		t.Errorf("formatted content = %q", data)
	}
}

func TestRulesCommand(t *testing.T) {
	setupRepo(t, map[string]string{config.FileName: "rules:\n  line-length:\n    enabled: false\n"})
	out, err := execute(t, "", "rules")
	if err != nil {
		t.Fatalf("rules failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 9 {
		t.Fatalf("listed %d rules, want 9:\n%s", len(lines), out)
	}
	for _, line := range lines {
		fields := strings.Fields(line)
		want := "on"
		if fields[0] == "line-length" {
			want = "off"
		}
		if fields[1] != want {
			t.Errorf("%s is %s, want %s", fields[0], fields[1], want)
		}
	}
}

func TestDocsCommand(t *testing.T) {
	setupRepo(t, map[string]string{
		config.FileName: "snippets: snippets/bml.json\n",
		"snippets/bml.json": `{
  "Upper": {"prefix": "upper", "functionName": "upper", "category": "String",
            "description": "Upper-cases a string.", "body": "upper($1)", "signature": "upper(str)"},
  "Lower": {"prefix": "lower", "functionName": "lower", "body": "lower($1)"}
}`,
	})
	out, err := execute(t, "", "docs", "UPP")
	if err != nil {
		t.Fatalf("docs failed: %v", err)
	}
	want := "Upper (upper) [String]\n    upper(str)\n    Upper-cases a string.\n"
	if out != want {
		t.Errorf("docs output = %q, want %q", out, want)
	}

	setupRepo(t, nil)
	if _, err := execute(t, "", "docs"); err == nil {
		t.Error("expected an error without a snippets file")
	}
}

func TestLSPCommand(t *testing.T) {
	setupRepo(t, nil)
	var in bytes.Buffer
	for _, msg := range []string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`,
		`{"jsonrpc":"2.0","id":2,"method":"shutdown"}`,
		`{"jsonrpc":"2.0","method":"exit"}`,
	} {
		fmt.Fprintf(&in, "Content-Length: %d\r\n\r\n%s", len(msg), msg)
	}
	out, err := execute(t, in.String(), "lsp")
	if err != nil {
		t.Fatalf("lsp failed: %v", err)
	}
	if !strings.Contains(out, `"capabilities"`) || !strings.Contains(out, `"id":2`) {
		t.Errorf("unexpected output %q", out)
	}
}

func TestVersionCommand(t *testing.T) {
	setupRepo(t, nil)
	out, err := execute(t, "", "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out, "Version: ") {
		t.Errorf("unexpected output %q", out)
	}
}
