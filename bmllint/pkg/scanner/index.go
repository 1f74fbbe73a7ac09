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

package scanner

import (
	"regexp"
	"strings"
)

// CodeLine is one physical line with comments removed.
type CodeLine struct {
	// Line is the zero-based line number in the document.
	Line int
	// Code is the line with comments stripped, or "" when nothing but
	// whitespace or a comment remainder survived.
	Code string
	// Masked is Code with string literal contents blanked out.
	Masked string
}

// Index is the comment-stripped view of a document that every rule reads.
// It is built once per analysis pass.
type Index struct {
	raw   []string
	lines []CodeLine
}

// NewIndex scans rawLines in order, starting outside of any block comment.
func NewIndex(rawLines []string) *Index {
	idx := &Index{
		raw:   rawLines,
		lines: make([]CodeLine, 0, len(rawLines)),
	}

	var state State
	for i, raw := range rawLines {
		var code string
		code, state = ScanLine(raw, state)

		trimmed := strings.TrimSpace(code)
		if trimmed == "" || strings.HasPrefix(trimmed, "//") {
			code = ""
		}
		idx.lines = append(idx.lines, CodeLine{
			Line:   i,
			Code:   code,
			Masked: Mask(code),
		})
	}
	return idx
}

// FromText splits text into lines and indexes them.
func FromText(text string) *Index {
	return NewIndex(SplitLines(text))
}

// Lines returns the code lines in document order. Callers must not modify the slice.
func (x *Index) Lines() []CodeLine {
	return x.lines
}

// Raw returns the unmodified text of the given line, or "" when out of range.
func (x *Index) Raw(line int) string {
	if line < 0 || line >= len(x.raw) {
		return ""
	}
	return x.raw[line]
}

// LineLen returns the length of the raw line in bytes.
func (x *Index) LineLen(line int) int {
	return len(x.Raw(line))
}

// Clamp restricts col to [0, length of the raw line].
// Stripped code can be shorter than the raw line, so offsets computed on code
// are clamped before they are reported.
func (x *Index) Clamp(line, col int) int {
	if col < 0 {
		return 0
	}
	if n := x.LineLen(line); col > n {
		return n
	}
	return col
}

// Joined returns all code lines joined with "\n".
func (x *Index) Joined() string {
	return x.join(func(l CodeLine) string { return l.Code })
}

// JoinedMasked returns all masked code lines joined with "\n".
// Offsets into it are interchangeable with offsets into Joined.
func (x *Index) JoinedMasked() string {
	return x.join(func(l CodeLine) string { return l.Masked })
}

func (x *Index) join(text func(CodeLine) string) string {
	parts := make([]string, len(x.lines))
	for i, l := range x.lines {
		parts[i] = text(l)
	}
	return strings.Join(parts, "\n")
}

// Position maps an offset in the joined text back to a line and a column within
// that line's code. Offsets past the end map to the end of the last line.
func (x *Index) Position(offset int) (line, col int) {
	if len(x.lines) == 0 {
		return 0, 0
	}
	if offset < 0 {
		offset = 0
	}
	total := 0
	for _, l := range x.lines {
		next := total + len(l.Code) + 1
		if next > offset {
			return l.Line, offset - total
		}
		total = next
	}
	last := x.lines[len(x.lines)-1]
	return last.Line, len(last.Code)
}

// DeclaredVariable is an identifier assigned with "name =".
type DeclaredVariable struct {
	Name string
	Line int
	Col  int
}

var declPattern = regexp.MustCompile(`(^|[^\w.])([A-Za-z_]\w*)\s*=`)

// Declarations returns every plain assignment target in document order.
// Property assignments (obj.name =), comparisons (name ==) and anything
// inside a string literal are excluded.
func (x *Index) Declarations() []DeclaredVariable {
	var vars []DeclaredVariable
	for _, l := range x.lines {
		if l.Masked == "" {
			continue
		}
		for _, m := range declPattern.FindAllStringSubmatchIndex(l.Masked, -1) {
			end := m[1]
			if end < len(l.Masked) && l.Masked[end] == '=' {
				continue
			}
			vars = append(vars, DeclaredVariable{
				Name: l.Masked[m[4]:m[5]],
				Line: l.Line,
				Col:  m[4],
			})
		}
	}
	return vars
}
