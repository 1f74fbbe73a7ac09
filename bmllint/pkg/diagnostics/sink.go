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

package diagnostics

import (
	"sort"
	"sync"
)

// Result is the outcome of one analysis pass over one document.
type Result struct {
	URI         string       `json:"uri"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// HasAtLeast reports whether any diagnostic is at least as severe as sev.
func (r Result) HasAtLeast(sev Severity) bool {
	for _, d := range r.Diagnostics {
		if d.Severity.AtLeast(sev) {
			return true
		}
	}
	return false
}

// Sink collects the diagnostics of a single pass in emission order.
// Overlapping ranges are kept as they are; columns are expected to be clamped
// by the producer.
type Sink struct {
	uri    string
	items  []Diagnostic
	starts map[Position]struct{}
}

// NewSink creates a Sink for the document identified by uri.
func NewSink(uri string) *Sink {
	return &Sink{
		uri:    uri,
		starts: make(map[Position]struct{}),
	}
}

// Record appends d.
func (s *Sink) Record(d Diagnostic) {
	s.items = append(s.items, d)
	s.starts[d.Range.Start] = struct{}{}
}

// RecordAll appends every diagnostic in diags.
func (s *Sink) RecordAll(diags []Diagnostic) {
	for _, d := range diags {
		s.Record(d)
	}
}

// Contains reports whether a recorded diagnostic starts at line and col.
func (s *Sink) Contains(line, col int) bool {
	_, ok := s.starts[Position{Line: line, Character: col}]
	return ok
}

func (s *Sink) Len() int {
	return len(s.items)
}

// Finalize returns the collected diagnostics. The returned slice is never nil.
func (s *Sink) Finalize() Result {
	items := make([]Diagnostic, len(s.items))
	copy(items, s.items)
	return Result{URI: s.uri, Diagnostics: items}
}

// Collection holds the latest diagnostics per document. Every Set replaces the
// previous set for that document.
type Collection struct {
	mu   sync.Mutex
	docs map[string][]Diagnostic
}

func NewCollection() *Collection {
	return &Collection{docs: make(map[string][]Diagnostic)}
}

// Set replaces the diagnostics stored for r.URI.
func (c *Collection) Set(r Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.docs[r.URI] = r.Diagnostics
}

// Get returns the diagnostics stored for uri.
func (c *Collection) Get(uri string) ([]Diagnostic, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	diags, ok := c.docs[uri]
	return diags, ok
}

// Delete forgets uri.
func (c *Collection) Delete(uri string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.docs, uri)
}

// URIs returns the known documents in sorted order.
func (c *Collection) URIs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	uris := make([]string, 0, len(c.docs))
	for uri := range c.docs {
		uris = append(uris, uri)
	}
	sort.Strings(uris)
	return uris
}
