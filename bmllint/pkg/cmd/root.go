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
	"flag"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/cache"
	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/config"
	"k8s.io/klog/v2"
)

// RootOptions holds the configuration for the root command.
type RootOptions struct {
	// RepoRoot is the repository root, or the working directory outside a
	// repository.
	RepoRoot string
	NoCache  bool
}

// BuildRootCommand constructs the root cobra command.
func BuildRootCommand() *cobra.Command {
	var opt RootOptions

	cmd := &cobra.Command{
		Use:           "bmllint",
		Short:         "bmllint checks and formats BML scripts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			root, err := config.FindRepoRoot(wd)
			if err != nil {
				klog.FromContext(cmd.Context()).V(2).Info("Not in a git repository, using the working directory", "dir", wd)
				root = wd
			}
			opt.RepoRoot = root
			return nil
		},
	}

	fs := cmd.PersistentFlags()
	fs.BoolVar(&opt.NoCache, "no-cache", false, "Do not read or write the result cache")
	klogFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(klogFlags)
	fs.AddGoFlagSet(klogFlags)

	cmd.AddCommand(BuildLintCommand(&opt))
	cmd.AddCommand(BuildFormatCommand(&opt))
	cmd.AddCommand(BuildLSPCommand(&opt))
	cmd.AddCommand(BuildServeCommand(&opt))
	cmd.AddCommand(BuildRulesCommand(&opt))
	cmd.AddCommand(BuildDocsCommand(&opt))
	cmd.AddCommand(BuildVersionCommand(&opt))

	return cmd
}

// LoadConfig reads the repository configuration.
func (o *RootOptions) LoadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.RepoRoot)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	return cfg, nil
}

// openCache returns the result cache, or nil when caching is off or the
// cache cannot be opened.
func (o *RootOptions) openCache(ctx context.Context) *cache.Manager {
	if o.NoCache {
		return nil
	}
	log := klog.FromContext(ctx)
	dir, err := cache.DefaultDir()
	if err != nil {
		log.Info("Cache disabled", "reason", err)
		return nil
	}
	m, err := cache.NewManager(dir)
	if err != nil {
		log.Info("Cache disabled", "reason", err)
		return nil
	}
	return m
}

func saveCache(ctx context.Context, m *cache.Manager) {
	if m == nil {
		return
	}
	if err := m.Save(); err != nil {
		klog.FromContext(ctx).Error(err, "Failed to save cache")
	}
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	rootCmd := BuildRootCommand()
	return rootCmd.ExecuteContext(ctx)
}
