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

package lsp

import (
	"unicode/utf8"

	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/scanner"
)

// Positions on the wire count UTF-16 code units; the engine counts bytes.

func applyChanges(text string, changes []textDocumentContentChangeEvent) string {
	for _, change := range changes {
		if change.Range == nil {
			text = change.Text
			continue
		}
		start := offsetForPosition(text, change.Range.Start)
		end := offsetForPosition(text, change.Range.End)
		if end < start {
			end = start
		}
		text = text[:start] + change.Text + text[end:]
	}
	return text
}

func offsetForPosition(text string, pos position) int {
	if pos.Line < 0 || pos.Character < 0 {
		return 0
	}
	line := 0
	i := 0
	for i < len(text) && line < pos.Line {
		if text[i] == '\n' {
			line++
		}
		i++
	}
	if line < pos.Line {
		return len(text)
	}
	end := i
	for end < len(text) && text[end] != '\n' {
		end++
	}
	return i + byteOffset(text[i:end], pos.Character)
}

// byteOffset converts a UTF-16 column on line to a byte offset, clamped to the
// line.
func byteOffset(line string, char int) int {
	units := 0
	for i, r := range line {
		if units >= char {
			return i
		}
		units += utf16Width(r)
	}
	return len(line)
}

// utf16Column converts a byte column on line to UTF-16 code units, clamped to
// the line.
func utf16Column(line string, col int) int {
	if col > len(line) {
		col = len(line)
	}
	units := 0
	for i, r := range line {
		if i >= col {
			break
		}
		units += utf16Width(r)
	}
	return units
}

func utf16Width(r rune) int {
	if r == utf8.RuneError || r <= 0xFFFF {
		return 1
	}
	return 2
}

// lineAt returns line n of text without its terminator, or "" past the end.
func lineAt(text string, n int) string {
	lines := scanner.SplitLines(text)
	if n < 0 || n >= len(lines) {
		return ""
	}
	return lines[n]
}

// endPosition is the position just past the last character of text.
func endPosition(text string) position {
	lines := scanner.SplitLines(text)
	last := len(lines) - 1
	return position{Line: last, Character: utf16Column(lines[last], len(lines[last]))}
}
