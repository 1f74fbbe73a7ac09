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

// Package docs serves the BML function reference from a snippets file.
package docs

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultDescription is shown for functions documented without a description.
const DefaultDescription = "No description available."

// Snippet is one entry of a snippets file.
type Snippet struct {
	Key          string
	Prefixes     []string
	FunctionName string
	Category     string
	Description  string
	Body         string
	Signature    string
	// Line is the line of the entry in the snippets file.
	Line int
}

// Parse reads a snippets file. The file is a mapping from snippet key to
// snippet. It may be JSON or YAML; "body" and "prefix" may be a string or a
// list of strings.
func Parse(r io.Reader) ([]*Snippet, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: snippets must be a mapping", root.Line)
	}

	var snippets []*Snippet
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if value.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("line %d: snippet %q must be a mapping", value.Line, key.Value)
		}
		s := &Snippet{Key: key.Value, Line: key.Line}
		for j := 0; j+1 < len(value.Content); j += 2 {
			field, v := value.Content[j].Value, value.Content[j+1]
			var err error
			switch field {
			case "prefix":
				s.Prefixes, err = stringList(v)
			case "body":
				var lines []string
				lines, err = stringList(v)
				s.Body = strings.Join(lines, "\n")
			case "functionName":
				s.FunctionName, err = scalar(v)
			case "category":
				s.Category, err = scalar(v)
			case "description":
				s.Description, err = scalar(v)
			case "signature":
				s.Signature, err = scalar(v)
			}
			if err != nil {
				return nil, fmt.Errorf("snippet %q field %q: %w", key.Value, field, err)
			}
		}
		snippets = append(snippets, s)
	}
	return snippets, nil
}

func scalar(n *yaml.Node) (string, error) {
	if n.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("line %d: expected a string", n.Line)
	}
	return n.Value, nil
}

func stringList(n *yaml.Node) ([]string, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return []string{n.Value}, nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := scalar(item)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	}
	return nil, fmt.Errorf("line %d: expected a string or a list of strings", n.Line)
}

// Load reads and indexes the snippets file at path.
func Load(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	snippets, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", path, err)
	}
	return NewIndex(snippets), nil
}
