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
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/rules"
)

// RulesOptions holds the configuration for the "rules" command.
type RulesOptions struct {
	*RootOptions
	Out io.Writer
}

// BuildRulesCommand constructs the cobra command for "rules".
func BuildRulesCommand(rootOpt *RootOptions) *cobra.Command {
	opt := RulesOptions{
		RootOptions: rootOpt,
	}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the lint rules and whether they are enabled",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opt.Out = cmd.OutOrStdout()
			return RunRules(cmd.Context(), opt)
		},
	}

	return cmd
}

// RunRules executes the business logic for the "rules" command.
func RunRules(ctx context.Context, opt RulesOptions) error {
	cfg, err := opt.LoadConfig()
	if err != nil {
		return err
	}
	if opt.Out == nil {
		opt.Out = os.Stdout
	}

	tw := tabwriter.NewWriter(opt.Out, 0, 4, 2, ' ', 0)
	for _, r := range rules.AllRules(cfg.RuleOptions()) {
		state := "on"
		if !cfg.IsRuleEnabled(r.Name()) {
			state = "off"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Name(), state, r.Summary())
	}
	return tw.Flush()
}
