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

package rules

import (
	"strings"

	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/diagnostics"
	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/scanner"
)

// ParseRuleMarkdown parses the rule name and short message from the markdown content.
func ParseRuleMarkdown(content string) (string, string) {
	lines := strings.Split(content, "\n")
	var name, message string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") && name == "" {
			name = strings.TrimPrefix(line, "# ")
		} else if line != "" && !strings.HasPrefix(line, "#") && message == "" {
			message = line
		}
		if name != "" && message != "" {
			break
		}
	}
	return name, message
}

// Rule defines a linter rule. Check must not retain or modify the index.
type Rule interface {
	Name() string
	Summary() string
	Check(idx *scanner.Index) []diagnostics.Diagnostic
}

// Options holds the tunable thresholds of the rules that have one.
type Options struct {
	MaxLineLength int
	MaxLoopDepth  int
}

const (
	DefaultMaxLineLength = 150
	DefaultMaxLoopDepth  = 2
)

func DefaultOptions() Options {
	return Options{
		MaxLineLength: DefaultMaxLineLength,
		MaxLoopDepth:  DefaultMaxLoopDepth,
	}
}

// AllRules returns all registered rules, in reporting order.
func AllRules(opt Options) []Rule {
	if opt.MaxLineLength <= 0 {
		opt.MaxLineLength = DefaultMaxLineLength
	}
	if opt.MaxLoopDepth <= 0 {
		opt.MaxLoopDepth = DefaultMaxLoopDepth
	}
	return []Rule{
		NewUnusedVariable(),
		NewEmptyBlock(),
		NewMissingSemicolon(),
		NewLoopNesting(opt.MaxLoopDepth),
		NewNamingConvention(),
		NewOneStatementPerLine(),
		NewUnguardedPrint(),
		NewSingleArgParens(),
		NewLineLength(opt.MaxLineLength),
	}
}

// Names returns the names of all registered rules.
func Names() []string {
	var names []string
	for _, r := range AllRules(DefaultOptions()) {
		names = append(names, r.Name())
	}
	return names
}

// doc is the metadata every rule reads from its markdown.
type doc struct {
	name    string
	summary string
}

func newDoc(md string) doc {
	name, summary := ParseRuleMarkdown(md)
	return doc{name: name, summary: summary}
}

func (d doc) Name() string {
	return d.name
}

func (d doc) Summary() string {
	return d.summary
}

// diag builds a diagnostic attributed to the rule.
func (d doc) diag(r diagnostics.Range, sev diagnostics.Severity, message string) diagnostics.Diagnostic {
	return diagnostics.Diagnostic{
		Range:    r,
		Message:  message,
		Severity: sev,
		Rule:     d.name,
	}
}

// wholeLine spans the entire raw text of line.
func wholeLine(idx *scanner.Index, line int) diagnostics.Range {
	return diagnostics.LineRange(line, 0, idx.LineLen(line))
}

// spanAt remaps [start, end) in the joined text to a clamped document range.
func spanAt(idx *scanner.Index, start, end int) diagnostics.Range {
	sl, sc := idx.Position(start)
	el, ec := idx.Position(end)
	return diagnostics.Range{
		Start: diagnostics.Position{Line: sl, Character: idx.Clamp(sl, sc)},
		End:   diagnostics.Position{Line: el, Character: idx.Clamp(el, ec)},
	}
}
