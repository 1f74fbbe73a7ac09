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

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// DocsOptions holds the configuration for the "docs" command.
type DocsOptions struct {
	*RootOptions
	Query string
	Out   io.Writer
}

// BuildDocsCommand constructs the cobra command for "docs".
func BuildDocsCommand(rootOpt *RootOptions) *cobra.Command {
	opt := DocsOptions{
		RootOptions: rootOpt,
	}

	cmd := &cobra.Command{
		Use:   "docs [query]",
		Short: "Search the BML function reference",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opt.Query = args[0]
			}
			opt.Out = cmd.OutOrStdout()
			return RunDocs(cmd.Context(), opt)
		},
	}

	return cmd
}

// RunDocs executes the business logic for the "docs" command.
func RunDocs(ctx context.Context, opt DocsOptions) error {
	cfg, err := opt.LoadConfig()
	if err != nil {
		return err
	}
	if opt.Out == nil {
		opt.Out = os.Stdout
	}
	if cfg.SnippetsPath(opt.RepoRoot) == "" {
		return fmt.Errorf("no snippets file configured (set snippets in .bmllint.yaml)")
	}
	index := loadDocs(ctx, cfg, opt.RepoRoot)
	if index == nil {
		return fmt.Errorf("could not load %s", cfg.SnippetsPath(opt.RepoRoot))
	}

	for _, s := range index.Search(opt.Query) {
		fmt.Fprintf(opt.Out, "%s", s.Key)
		if len(s.Prefixes) > 0 {
			fmt.Fprintf(opt.Out, " (%s)", strings.Join(s.Prefixes, ", "))
		}
		if s.Category != "" {
			fmt.Fprintf(opt.Out, " [%s]", s.Category)
		}
		fmt.Fprintln(opt.Out)
		if s.Signature != "" {
			fmt.Fprintf(opt.Out, "    %s\n", s.Signature)
		}
		if s.Description != "" {
			fmt.Fprintf(opt.Out, "    %s\n", s.Description)
		}
	}
	return nil
}
