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
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/config"
	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/docs"
	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/engine"
	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/format"
	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/lsp"
	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/version"
	"k8s.io/klog/v2"
)

// LSPOptions holds the configuration for the "lsp" command.
type LSPOptions struct {
	*RootOptions
	In  io.Reader
	Out io.Writer
}

// BuildLSPCommand constructs the cobra command for "lsp".
func BuildLSPCommand(rootOpt *RootOptions) *cobra.Command {
	opt := LSPOptions{
		RootOptions: rootOpt,
	}

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Run the language server on stdin and stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opt.In = cmd.InOrStdin()
			opt.Out = cmd.OutOrStdout()
			return RunLSP(cmd.Context(), opt)
		},
	}

	return cmd
}

// RunLSP executes the business logic for the "lsp" command.
func RunLSP(ctx context.Context, opt LSPOptions) error {
	cfg, err := opt.LoadConfig()
	if err != nil {
		return err
	}
	if opt.In == nil {
		opt.In = os.Stdin
	}
	if opt.Out == nil {
		opt.Out = os.Stdout
	}

	server := lsp.NewServer(opt.In, opt.Out, lsp.Options{
		Engine:  engine.New(cfg),
		Docs:    loadDocs(ctx, cfg, opt.RepoRoot),
		Format:  format.Options{IndentSize: cfg.IndentSize(), UseTabs: cfg.UseTabs()},
		Version: version.Get().Version,
	})
	err = server.Run(ctx)
	if errors.Is(err, lsp.ErrExit) {
		return nil
	}
	return err
}

// loadDocs loads the configured snippets file. Documentation is optional, so
// a missing or broken file only disables hover and signature help.
func loadDocs(ctx context.Context, cfg *config.Config, repoRoot string) *docs.Index {
	path := cfg.SnippetsPath(repoRoot)
	if path == "" {
		return nil
	}
	index, err := docs.Load(path)
	if err != nil {
		klog.FromContext(ctx).Error(err, "Function documentation disabled")
		return nil
	}
	klog.FromContext(ctx).V(2).Info("Loaded function documentation", "path", path, "functions", index.Len())
	return index
}
