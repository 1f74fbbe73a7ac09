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

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/diagnostics"
)

func TestLoad(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "bmllint-config-test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tempDir)

	yamlContent := `
rules:
  line-length:
    max: 200
  unguarded-print:
    enabled: false
  missing-semicolon:
    severity: warning
skip:
  - generated/
format:
  indentSize: 2
  useTabs: true
snippets: snippets/snippets.json
failOn: warning
`
	if err := os.WriteFile(filepath.Join(tempDir, FileName), []byte(yamlContent), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tempDir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.IsRuleEnabled("unguarded-print") != false {
		t.Errorf("expected unguarded-print enabled to be false")
	}
	if cfg.IsRuleEnabled("missing-semicolon") != true {
		t.Errorf("expected missing-semicolon enabled to be true")
	}
	if got := cfg.RuleSeverity("missing-semicolon", diagnostics.SeverityError); got != diagnostics.SeverityWarning {
		t.Errorf("missing-semicolon severity = %v, want warning", got)
	}
	if got := cfg.RuleSeverity("empty-block", diagnostics.SeverityInformation); got != diagnostics.SeverityInformation {
		t.Errorf("empty-block severity = %v, want information", got)
	}
	if opt := cfg.RuleOptions(); opt.MaxLineLength != 200 || opt.MaxLoopDepth != 2 {
		t.Errorf("unexpected rule options: %+v", opt)
	}
	if len(cfg.Skip) != 1 || cfg.Skip[0] != "generated/" {
		t.Errorf("unexpected skip list: %v", cfg.Skip)
	}
	if cfg.IndentSize() != 2 || !cfg.UseTabs() {
		t.Errorf("unexpected format settings: %d %v", cfg.IndentSize(), cfg.UseTabs())
	}
	if got, want := cfg.SnippetsPath(tempDir), filepath.Join(tempDir, "snippets/snippets.json"); got != want {
		t.Errorf("SnippetsPath = %q, want %q", got, want)
	}
	if cfg.FailOnSeverity() != diagnostics.SeverityWarning {
		t.Errorf("expected failOn warning, got %v", cfg.FailOnSeverity())
	}
}

func TestLoadDefault(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "bmllint-config-test-default")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tempDir)

	cfg, err := Load(tempDir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.IsRuleEnabled("line-length") != true {
		t.Errorf("expected default line-length enabled to be true")
	}
	if opt := cfg.RuleOptions(); opt.MaxLineLength != 150 || opt.MaxLoopDepth != 2 {
		t.Errorf("unexpected default rule options: %+v", opt)
	}
	if cfg.IndentSize() != 4 || cfg.UseTabs() {
		t.Errorf("unexpected default format settings")
	}
	if cfg.FailOnSeverity() != diagnostics.SeverityError {
		t.Errorf("expected default failOn error")
	}
	if cfg.SnippetsPath(tempDir) != "" {
		t.Errorf("expected no snippets path")
	}
}

func TestLoadInvalid(t *testing.T) {
	tempDir := t.TempDir()
	yamlContent := `
rules:
  no-such-rule: {}
  line-length:
    severity: fatal
    max: 0
failOn: sometimes
`
	if err := os.WriteFile(filepath.Join(tempDir, FileName), []byte(yamlContent), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(tempDir)
	if err == nil {
		t.Fatalf("expected error")
	}
	for _, want := range []string{`unknown rule "no-such-rule"`, `unknown severity "fatal"`, "max must be positive", "failOn"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestFingerprint(t *testing.T) {
	limit := 200
	a := &Config{Rules: map[string]*RuleConfig{"line-length": {Max: &limit}}}
	b := &Config{Rules: map[string]*RuleConfig{"line-length": {Max: &limit}}, Skip: []string{"x/"}}
	c := &Config{}

	if a.Fingerprint() != b.Fingerprint() {
		t.Errorf("skip list should not change the fingerprint")
	}
	if a.Fingerprint() == c.Fingerprint() {
		t.Errorf("rule settings should change the fingerprint")
	}
	var nilConfig *Config
	if nilConfig.Fingerprint() == "" {
		t.Errorf("expected a fingerprint for nil config")
	}
}

func TestFindRepoRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, ".git"), 0755); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	t.Setenv(RootEnv, "")
	got, err := FindRepoRoot(nested)
	if err != nil {
		t.Fatalf("FindRepoRoot failed: %v", err)
	}
	if got != root {
		t.Errorf("FindRepoRoot = %q, want %q", got, root)
	}

	other := t.TempDir()
	t.Setenv(RootEnv, other)
	got, err = FindRepoRoot(nested)
	if err != nil {
		t.Fatalf("FindRepoRoot failed: %v", err)
	}
	if got != other {
		t.Errorf("FindRepoRoot with %s = %q, want %q", RootEnv, got, other)
	}
}
