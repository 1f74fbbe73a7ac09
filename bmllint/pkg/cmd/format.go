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
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/format"
)

// FormatOptions holds the configuration for the "format" command.
type FormatOptions struct {
	*RootOptions
	Paths  []string
	DryRun bool
	Out    io.Writer
}

// BuildFormatCommand constructs the cobra command for "format".
func BuildFormatCommand(rootOpt *RootOptions) *cobra.Command {
	opt := FormatOptions{
		RootOptions: rootOpt,
	}

	cmd := &cobra.Command{
		Use:     "format [path...]",
		Aliases: []string{"fmt"},
		Short:   "Format BML files in place",
		RunE: func(cmd *cobra.Command, args []string) error {
			opt.Paths = args
			opt.Out = cmd.OutOrStdout()
			return RunFormat(cmd.Context(), opt)
		},
	}

	cmd.Flags().BoolVar(&opt.DryRun, "dry-run", false, "List the files that would change without writing them")

	return cmd
}

// RunFormat executes the business logic for the "format" command.
// It prints the files that changed, or would change in a dry run.
func RunFormat(ctx context.Context, opt FormatOptions) error {
	cfg, err := opt.LoadConfig()
	if err != nil {
		return err
	}
	if opt.Out == nil {
		opt.Out = os.Stdout
	}

	m := opt.openCache(ctx)
	defer saveCache(ctx, m)

	changed, err := format.Run(ctx, opt.RepoRoot, opt.Paths, format.RunOptions{
		Format: format.Options{IndentSize: cfg.IndentSize(), UseTabs: cfg.UseTabs()},
		Skip:   cfg.Skip,
		DryRun: opt.DryRun,
		Cache:  m,
	})
	for _, f := range changed {
		if rel, err := filepath.Rel(opt.RepoRoot, f); err == nil {
			f = rel
		}
		fmt.Fprintln(opt.Out, f)
	}
	return err
}
