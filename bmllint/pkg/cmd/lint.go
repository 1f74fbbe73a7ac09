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
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/diagnostics"
	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/engine"
	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/lint"
	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/report"
	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/version"
)

// ErrLintFailures is returned when a diagnostic reaches the failure severity.
var ErrLintFailures = errors.New("lint failures found")

// LintOptions holds the configuration for the "lint" command.
type LintOptions struct {
	*RootOptions
	Paths  []string
	Output string
	Color  string

	GitHubRepo string
	GitHubSHA  string
	Token      string

	Out io.Writer
}

// BuildLintCommand constructs the cobra command for "lint".
func BuildLintCommand(rootOpt *RootOptions) *cobra.Command {
	opt := LintOptions{
		RootOptions: rootOpt,
	}

	cmd := &cobra.Command{
		Use:   "lint [path...]",
		Short: "Report problems in BML files",
		RunE: func(cmd *cobra.Command, args []string) error {
			opt.Paths = args
			opt.Out = cmd.OutOrStdout()
			return RunLint(cmd.Context(), opt)
		},
	}

	cmd.Flags().StringVarP(&opt.Output, "output", "o", "text", "Output format: text or json")
	cmd.Flags().StringVar(&opt.Color, "color", "auto", "Colorize text output: auto, always or never")
	cmd.Flags().StringVar(&opt.GitHubRepo, "github-repo", "", "Publish a check run to this owner/name repository")
	cmd.Flags().StringVar(&opt.GitHubSHA, "github-sha", "", "Commit SHA for the check run")
	cmd.Flags().StringVar(&opt.Token, "token", "", "GitHub token (defaults to $GITHUB_TOKEN)")

	return cmd
}

// RunLint executes the business logic for the "lint" command.
func RunLint(ctx context.Context, opt LintOptions) error {
	cfg, err := opt.LoadConfig()
	if err != nil {
		return err
	}
	if opt.Out == nil {
		opt.Out = os.Stdout
	}

	m := opt.openCache(ctx)
	defer saveCache(ctx, m)

	files, lintErr := lint.Run(ctx, engine.New(cfg), opt.RepoRoot, opt.Paths, lint.Options{
		Skip:     cfg.Skip,
		Cache:    m,
		CacheKey: cfg.Fingerprint() + "/" + version.Get().CacheKey(),
	})
	if files == nil && lintErr != nil {
		return lintErr
	}

	switch opt.Output {
	case "text":
		colored, err := report.ColorEnabled(opt.Color)
		if err != nil {
			return err
		}
		if err := report.Text(opt.Out, files, report.TextOptions{Color: colored}); err != nil {
			return err
		}
	case "json":
		if err := report.JSON(opt.Out, files); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown output format %q (want text or json)", opt.Output)
	}

	if opt.GitHubRepo != "" {
		if err := publishCheckRun(ctx, opt, files, cfg.FailOnSeverity()); err != nil {
			return err
		}
	}

	for _, f := range files {
		if f.Result.HasAtLeast(cfg.FailOnSeverity()) {
			return errors.Join(lintErr, ErrLintFailures)
		}
	}
	return lintErr
}

func publishCheckRun(ctx context.Context, opt LintOptions, files []lint.File, failOn diagnostics.Severity) error {
	owner, repo, ok := strings.Cut(opt.GitHubRepo, "/")
	if !ok || owner == "" || repo == "" {
		return fmt.Errorf("--github-repo must be owner/name, got %q", opt.GitHubRepo)
	}
	if opt.GitHubSHA == "" {
		return fmt.Errorf("--github-sha is required with --github-repo")
	}
	token := opt.Token
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}
	if token == "" {
		return fmt.Errorf("--token or $GITHUB_TOKEN is required with --github-repo")
	}

	client := report.NewGitHubClient(ctx, token)
	_, err := report.PublishCheckRun(ctx, client, report.GitHubOptions{
		Owner:   owner,
		Repo:    repo,
		HeadSHA: opt.GitHubSHA,
		FailOn:  failOn,
	}, files)
	return err
}
