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

package docs

import (
	"fmt"
	"regexp"
	"strings"
)

// Index looks up function documentation by name, ignoring case.
// Only snippets with a prefix are documented functions.
type Index struct {
	snippets []*Snippet
	byName   map[string]*Snippet
}

func NewIndex(snippets []*Snippet) *Index {
	x := &Index{
		snippets: snippets,
		byName:   make(map[string]*Snippet),
	}
	for _, s := range snippets {
		if len(s.Prefixes) == 0 || s.FunctionName == "" {
			continue
		}
		// Later entries win, as in a JSON object with repeated keys.
		x.byName[strings.ToLower(s.FunctionName)] = s
	}
	return x
}

// Lookup returns the documented function called name.
func (x *Index) Lookup(name string) (*Snippet, bool) {
	if x == nil {
		return nil, false
	}
	s, ok := x.byName[strings.ToLower(name)]
	return s, ok
}

// Len returns the number of documented functions.
func (x *Index) Len() int {
	if x == nil {
		return 0
	}
	return len(x.byName)
}

var wordPattern = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)

// WordAt returns the identifier that contains or ends at byte offset char.
func WordAt(line string, char int) (string, int, int, bool) {
	for _, m := range wordPattern.FindAllStringIndex(line, -1) {
		if m[0] <= char && char <= m[1] {
			return line[m[0]:m[1]], m[0], m[1], true
		}
	}
	return "", 0, 0, false
}

// Hover returns markdown for the function named at byte offset char of line.
func (x *Index) Hover(line string, char int) (string, bool) {
	word, _, _, ok := WordAt(line, char)
	if !ok {
		return "", false
	}
	s, ok := x.Lookup(word)
	if !ok {
		return "", false
	}
	desc := s.Description
	if desc == "" {
		desc = DefaultDescription
	}
	return fmt.Sprintf("%s\n\n```bml\n%s\n```", desc, s.Body), true
}

// Signature describes the parameters of a call being typed.
type Signature struct {
	Label           string
	Parameters      []string
	ActiveParameter int
}

var (
	openCallPattern  = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_]*)\s*\([^()]*$`)
	parameterPattern = regexp.MustCompile(`\(([^)]*)\)`)
)

// SignatureHelp returns the signature of the innermost unclosed call before
// byte offset char of line. The active parameter is the number of commas
// between the call's opening parenthesis and char.
func (x *Index) SignatureHelp(line string, char int) (*Signature, bool) {
	if char > len(line) {
		char = len(line)
	}
	before := line[:char]
	m := openCallPattern.FindStringSubmatchIndex(before)
	if m == nil {
		return nil, false
	}
	s, ok := x.Lookup(before[m[2]:m[3]])
	if !ok || s.Signature == "" {
		return nil, false
	}

	sig := &Signature{Label: s.Signature}
	if pm := parameterPattern.FindStringSubmatch(s.Signature); pm != nil {
		for _, p := range strings.Split(pm[1], ",") {
			if p = strings.TrimSpace(p); p != "" {
				sig.Parameters = append(sig.Parameters, p)
			}
		}
	}
	paren := m[3] + strings.IndexByte(before[m[3]:], '(')
	sig.ActiveParameter = strings.Count(before[paren:], ",")
	return sig, true
}

// Search returns the snippets whose key or prefix contains query, ignoring
// case, in file order. An empty query matches everything.
func (x *Index) Search(query string) []*Snippet {
	if x == nil {
		return nil
	}
	q := strings.ToLower(query)
	var out []*Snippet
	for _, s := range x.snippets {
		if matches(s, q) {
			out = append(out, s)
		}
	}
	return out
}

func matches(s *Snippet, q string) bool {
	if q == "" || strings.Contains(strings.ToLower(s.Key), q) {
		return true
	}
	for _, p := range s.Prefixes {
		if strings.Contains(strings.ToLower(p), q) {
			return true
		}
	}
	return false
}
