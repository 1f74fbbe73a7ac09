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
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/diagnostics"
	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/rules"
	"sigs.k8s.io/yaml"
)

// FileName is the name of the configuration file in the repository root.
const FileName = ".bmllint.yaml"

// RootEnv overrides repository root detection.
const RootEnv = "BMLLINT_ROOT"

type Config struct {
	Rules    map[string]*RuleConfig `json:"rules,omitempty"`
	Skip     []string               `json:"skip,omitempty"`
	Format   *FormatConfig          `json:"format,omitempty"`
	Snippets string                 `json:"snippets,omitempty"`
	FailOn   string                 `json:"failOn,omitempty"`
}

type RuleConfig struct {
	Enabled  *bool  `json:"enabled,omitempty"`
	Severity string `json:"severity,omitempty"`
	Max      *int   `json:"max,omitempty"`
}

type FormatConfig struct {
	IndentSize *int  `json:"indentSize,omitempty"`
	UseTabs    *bool `json:"useTabs,omitempty"`
}

// Load loads the configuration from .bmllint.yaml in the repository root.
// A missing file yields the defaults.
func Load(repoRoot string) (*Config, error) {
	configFile := filepath.Join(repoRoot, FileName)

	var config Config
	if _, err := os.Stat(configFile); err == nil {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("error reading %s: %w", configFile, err)
		}

		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("error parsing %s: %w", configFile, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("error checking %s: %w", configFile, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", configFile, err)
	}
	return &config, nil
}

// Validate reports unknown rule names and unparseable severities.
func (c *Config) Validate() error {
	var errs []error
	known := rules.Names()
	for name, rc := range c.Rules {
		if !slices.Contains(known, name) {
			errs = append(errs, fmt.Errorf("unknown rule %q", name))
			continue
		}
		if rc == nil {
			continue
		}
		if rc.Severity != "" {
			if _, err := diagnostics.ParseSeverity(rc.Severity); err != nil {
				errs = append(errs, fmt.Errorf("rule %q: %w", name, err))
			}
		}
		if rc.Max != nil && *rc.Max <= 0 {
			errs = append(errs, fmt.Errorf("rule %q: max must be positive, got %d", name, *rc.Max))
		}
	}
	if c.FailOn != "" {
		if _, err := diagnostics.ParseSeverity(c.FailOn); err != nil {
			errs = append(errs, fmt.Errorf("failOn: %w", err))
		}
	}
	if c.Format != nil && c.Format.IndentSize != nil && *c.Format.IndentSize < 0 {
		errs = append(errs, fmt.Errorf("format.indentSize must not be negative"))
	}
	return errors.Join(errs...)
}

func (c *Config) rule(name string) *RuleConfig {
	if c == nil || c.Rules == nil {
		return nil
	}
	return c.Rules[name]
}

// IsRuleEnabled returns true if the named rule is enabled in the config (defaulting to true).
func (c *Config) IsRuleEnabled(name string) bool {
	if rc := c.rule(name); rc != nil && rc.Enabled != nil {
		return *rc.Enabled
	}
	return true
}

// RuleSeverity returns the configured severity of the named rule, or def.
func (c *Config) RuleSeverity(name string, def diagnostics.Severity) diagnostics.Severity {
	rc := c.rule(name)
	if rc == nil || rc.Severity == "" {
		return def
	}
	sev, err := diagnostics.ParseSeverity(rc.Severity)
	if err != nil {
		return def
	}
	return sev
}

// RuleOptions returns the rule thresholds with configured overrides applied.
func (c *Config) RuleOptions() rules.Options {
	opt := rules.DefaultOptions()
	if rc := c.rule("line-length"); rc != nil && rc.Max != nil {
		opt.MaxLineLength = *rc.Max
	}
	if rc := c.rule("loop-nesting"); rc != nil && rc.Max != nil {
		opt.MaxLoopDepth = *rc.Max
	}
	return opt
}

// FailOnSeverity returns the least severe diagnostic that fails a lint run
// (defaulting to error).
func (c *Config) FailOnSeverity() diagnostics.Severity {
	if c != nil && c.FailOn != "" {
		if sev, err := diagnostics.ParseSeverity(c.FailOn); err == nil {
			return sev
		}
	}
	return diagnostics.SeverityError
}

// IndentSize returns the formatter indent width (defaulting to 4).
func (c *Config) IndentSize() int {
	if c != nil && c.Format != nil && c.Format.IndentSize != nil {
		return *c.Format.IndentSize
	}
	return 4
}

// UseTabs returns true if the formatter indents with tabs (defaulting to false).
func (c *Config) UseTabs() bool {
	if c != nil && c.Format != nil && c.Format.UseTabs != nil {
		return *c.Format.UseTabs
	}
	return false
}

// SnippetsPath returns the snippets file resolved against repoRoot, or "".
func (c *Config) SnippetsPath(repoRoot string) string {
	if c == nil || c.Snippets == "" {
		return ""
	}
	if filepath.IsAbs(c.Snippets) {
		return c.Snippets
	}
	return filepath.Join(repoRoot, c.Snippets)
}

// Fingerprint identifies the settings that affect lint results.
func (c *Config) Fingerprint() string {
	var data []byte
	if c != nil {
		// Marshal sorts map keys, so equal configs hash equally.
		data, _ = yaml.Marshal(struct {
			Rules map[string]*RuleConfig `json:"rules,omitempty"`
		}{c.Rules})
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// FindRepoRoot returns $BMLLINT_ROOT if set, otherwise the closest parent
// of startDir that contains .git.
func FindRepoRoot(startDir string) (string, error) {
	if root := os.Getenv(RootEnv); root != "" {
		return filepath.Abs(root)
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("could not find git repository root (starting at %s)", startDir)
}
