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

// Package format re-indents BML source and normalizes its keywords.
package format

import (
	"regexp"
	"strings"

	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/scanner"
)

type Options struct {
	IndentSize int
	UseTabs    bool
}

func DefaultOptions() Options {
	return Options{IndentSize: 4}
}

// rewrite replaces every match of pattern in the code of a line. Patterns
// only ever match code, so the replacement is the same for the raw text and
// its masked copy.
type rewrite struct {
	pattern *regexp.Regexp
	repl    string
}

var rewrites = []rewrite{
	{regexp.MustCompile(`(?i)\belif\s*\(`), "elif ("},
	{regexp.MustCompile(`\belse\s+if\s*\(`), "elif ("},
	{regexp.MustCompile(`(?i)\b(if|for|while|switch)\s*\(`), "${1} ("},
	{regexp.MustCompile(`\)[ \t]*\{`), ") {"},
	{regexp.MustCompile(`[ \t]*&&[ \t]*`), " AND "},
	{regexp.MustCompile(`[ \t]*\|\|[ \t]*`), " OR "},
	{regexp.MustCompile(`<[ \t]*>`), "<>"},
}

var (
	conditionPattern = regexp.MustCompile(`(?i)\b(if|elif|while|for) \(([^)]*)\)`)
	logicalWord      = regexp.MustCompile(`(?i)\b(and|or)\b`)
)

// Format returns text re-indented by bracket depth with BML keywords
// normalized. Comments and string literals are left alone, and lines that
// start inside a block comment are kept verbatim. The result ends with a
// single newline unless it is empty.
func Format(text string, opt Options) string {
	if opt.IndentSize <= 0 {
		opt.IndentSize = DefaultOptions().IndentSize
	}
	unit := strings.Repeat(" ", opt.IndentSize)
	if opt.UseTabs {
		unit = "\t"
	}

	var out []string
	var state scanner.State
	depth := 0
	for _, raw := range scanner.SplitLines(text) {
		segs, next := scanner.SegmentLine(raw, state)
		if state.InsideBlockComment {
			out = append(out, raw)
			depth = max(0, depth+nesting(maskSegments(segs)))
			state = next
			continue
		}
		state = next

		line, masked := raw, maskSegments(segs)
		for _, rw := range rewrites {
			line, masked = apply(line, masked, rw)
		}
		line, masked = upperConditionWords(line, masked)

		lead := len(masked) - len(strings.TrimLeft(masked, " \t"))
		line, masked = line[lead:], masked[lead:]
		if !endsInOpenString(segs) {
			line = strings.TrimRight(line, " \t")
			masked = masked[:len(line)]
		}
		if line == "" {
			out = append(out, "")
			continue
		}

		level := max(0, depth-leadingClosers(masked))
		out = append(out, strings.Repeat(unit, level)+line)
		depth = max(0, depth+nesting(masked))
	}

	result := strings.TrimRight(strings.Join(out, "\n"), "\n")
	if strings.TrimSpace(result) == "" {
		return ""
	}
	return result + "\n"
}

// maskSegments returns the line with every byte of comments and string
// contents replaced by NUL. Quotes are kept and offsets are unchanged.
func maskSegments(segs []scanner.Segment) string {
	var b strings.Builder
	for _, s := range segs {
		switch s.Kind {
		case scanner.KindCode:
			b.WriteString(s.Text)
		case scanner.KindString:
			if closedString(s.Text) {
				b.WriteString(`"` + strings.Repeat("\x00", len(s.Text)-2) + `"`)
			} else {
				b.WriteString(`"` + strings.Repeat("\x00", len(s.Text)-1))
			}
		default:
			b.WriteString(strings.Repeat("\x00", len(s.Text)))
		}
	}
	return b.String()
}

func apply(line, masked string, rw rewrite) (string, string) {
	matches := rw.pattern.FindAllStringSubmatchIndex(masked, -1)
	if len(matches) == 0 {
		return line, masked
	}
	var l, m strings.Builder
	last := 0
	for _, idx := range matches {
		repl := rw.pattern.ExpandString(nil, rw.repl, masked, idx)
		l.WriteString(line[last:idx[0]])
		l.Write(repl)
		m.WriteString(masked[last:idx[0]])
		m.Write(repl)
		last = idx[1]
	}
	l.WriteString(line[last:])
	m.WriteString(masked[last:])
	return l.String(), m.String()
}

// upperConditionWords upper-cases "and" and "or" inside the parentheses of
// if, elif, while and for headers.
func upperConditionWords(line, masked string) (string, string) {
	matches := conditionPattern.FindAllStringSubmatchIndex(masked, -1)
	if len(matches) == 0 {
		return line, masked
	}
	l, m := []byte(line), []byte(masked)
	for _, idx := range matches {
		start := idx[4]
		for _, w := range logicalWord.FindAllStringIndex(masked[start:idx[5]], -1) {
			for i := start + w[0]; i < start+w[1]; i++ {
				l[i] = upper(l[i])
				m[i] = upper(m[i])
			}
		}
	}
	return string(l), string(m)
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

func endsInOpenString(segs []scanner.Segment) bool {
	if len(segs) == 0 {
		return false
	}
	last := segs[len(segs)-1]
	return last.Kind == scanner.KindString && !closedString(last.Text)
}

// closedString reports whether a string segment ends with its closing quote.
func closedString(s string) bool {
	escaped := false
	for i := 1; i < len(s); i++ {
		switch {
		case escaped:
			escaped = false
		case s[i] == '\\':
			escaped = true
		case s[i] == '"':
			return true
		}
	}
	return false
}

// leadingClosers counts the closing brackets a line starts with.
func leadingClosers(masked string) int {
	n := 0
	for i := 0; i < len(masked); i++ {
		switch masked[i] {
		case '}', ')', ']':
			n++
		case ' ', '\t':
		default:
			return n
		}
	}
	return n
}

func nesting(masked string) int {
	n := 0
	for i := 0; i < len(masked); i++ {
		switch masked[i] {
		case '{', '(', '[':
			n++
		case '}', ')', ']':
			n--
		}
	}
	return n
}
