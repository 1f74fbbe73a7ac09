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

// Package scanner classifies BML source text into comments, string literals and code.
package scanner

import "strings"

// State is the scanner state carried from one physical line to the next.
// Only block comments cross line boundaries.
type State struct {
	InsideBlockComment bool
}

// SegmentKind classifies a run of characters on a line.
type SegmentKind int

const (
	KindCode SegmentKind = iota
	KindString
	KindComment
)

// Segment is a maximal run of characters of one kind. String segments include
// their quotes. Comment segments include their delimiters.
type Segment struct {
	Kind SegmentKind
	Text string
}

// SegmentLine splits raw into code, string and comment segments and returns
// them together with the state to pass to the next line. Concatenating the
// segment texts yields raw.
//
// String literals are assumed to close on the line they open on: the in-string flag
// starts false on every call, so a literal broken across a real line break resyncs
// at the start of the next line.
func SegmentLine(raw string, prior State) ([]Segment, State) {
	var segs []Segment
	insideBlock := prior.InsideBlockComment
	inString := false
	escaped := false

	kind := KindCode
	if insideBlock {
		kind = KindComment
	}
	start := 0
	// cut ends the current segment at end and starts one of kind next.
	cut := func(end int, next SegmentKind) {
		if end > start {
			if n := len(segs); n > 0 && segs[n-1].Kind == kind {
				segs[n-1].Text += raw[start:end]
			} else {
				segs = append(segs, Segment{Kind: kind, Text: raw[start:end]})
			}
		}
		start = end
		kind = next
	}

	for i := 0; i < len(raw); {
		ch := raw[i]

		if insideBlock {
			if strings.HasPrefix(raw[i:], "*/") {
				insideBlock = false
				i += 2
				cut(i, KindCode)
				continue
			}
			i++
			continue
		}

		if ch == '"' && !escaped {
			if inString {
				inString = false
				i++
				cut(i, KindCode)
			} else {
				cut(i, KindString)
				inString = true
				i++
			}
			continue
		}

		if ch == '\\' && inString && !escaped {
			escaped = true
			i++
			continue
		}

		escaped = false

		if !inString && strings.HasPrefix(raw[i:], "/*") {
			cut(i, KindComment)
			insideBlock = true
			i += 2
			continue
		}

		if !inString && strings.HasPrefix(raw[i:], "//") {
			cut(i, KindComment)
			break
		}

		i++
	}
	cut(len(raw), kind)

	return segs, State{InsideBlockComment: insideBlock}
}

// ScanLine removes comments from raw and returns the surviving code together with
// the state to pass to the next line.
func ScanLine(raw string, prior State) (string, State) {
	segs, next := SegmentLine(raw, prior)
	var out strings.Builder
	out.Grow(len(raw))
	for _, s := range segs {
		if s.Kind != KindComment {
			out.WriteString(s.Text)
		}
	}
	return out.String(), next
}

// SplitLines splits document text into physical lines on "\n" or "\r\n".
func SplitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// Mask blanks the interior of every double-quoted string literal in code with spaces.
// The result has the same byte length as code, so offsets carry over unchanged.
// Quotes themselves are kept.
func Mask(code string) string {
	if strings.IndexByte(code, '"') < 0 {
		return code
	}
	b := []byte(code)
	inString := false
	escaped := false
	for i, ch := range b {
		if ch == '"' && !escaped {
			inString = !inString
			continue
		}
		if !inString {
			continue
		}
		escaped = ch == '\\' && !escaped
		b[i] = ' '
	}
	return string(b)
}
