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

package report

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/go-github/v81/github"
	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/diagnostics"
	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/lint"
	"golang.org/x/oauth2"
	"k8s.io/klog/v2"
)

// MaxAnnotationsPerRequest is the GitHub limit on annotations in one check
// run create or update call.
const MaxAnnotationsPerRequest = 50

// CheckRunName is the name of the check run shown on the commit.
const CheckRunName = "bmllint"

// NewGitHubClient returns a client authenticated with token.
func NewGitHubClient(ctx context.Context, token string) *github.Client {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	return github.NewClient(tc)
}

type GitHubOptions struct {
	Owner   string
	Repo    string
	HeadSHA string
	// FailOn is the lowest severity that fails the check run.
	FailOn diagnostics.Severity
}

// PublishCheckRun reports the results as one completed check run on
// HeadSHA. Annotations beyond the first request are added by updates.
func PublishCheckRun(ctx context.Context, client *github.Client, opt GitHubOptions, files []lint.File) (*github.CheckRun, error) {
	log := klog.FromContext(ctx)

	annotations, failed := checkRunAnnotations(files, opt.FailOn)
	conclusion := "success"
	if failed {
		conclusion = "failure"
	}
	title := fmt.Sprintf("%s found", plural(len(annotations), "problem"))
	summary := fmt.Sprintf("%s in %s checked.", plural(len(annotations), "problem"), plural(len(files), "file"))

	first, rest := splitBatch(annotations)
	run, _, err := client.Checks.CreateCheckRun(ctx, opt.Owner, opt.Repo, github.CreateCheckRunOptions{
		Name:       CheckRunName,
		HeadSHA:    opt.HeadSHA,
		Status:     github.Ptr("completed"),
		Conclusion: github.Ptr(conclusion),
		Output: &github.CheckRunOutput{
			Title:       github.Ptr(title),
			Summary:     github.Ptr(summary),
			Annotations: first,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("error creating check run: %w", err)
	}
	log.Info("Created check run", "id", run.GetID(), "conclusion", conclusion, "annotations", len(annotations))

	for len(rest) > 0 {
		var batch []*github.CheckRunAnnotation
		batch, rest = splitBatch(rest)
		run, _, err = client.Checks.UpdateCheckRun(ctx, opt.Owner, opt.Repo, run.GetID(), github.UpdateCheckRunOptions{
			Name: CheckRunName,
			Output: &github.CheckRunOutput{
				Title:       github.Ptr(title),
				Summary:     github.Ptr(summary),
				Annotations: batch,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("error adding annotations to check run: %w", err)
		}
		log.V(2).Info("Added annotations to check run", "id", run.GetID(), "count", len(batch))
	}
	return run, nil
}

func splitBatch(a []*github.CheckRunAnnotation) (batch, rest []*github.CheckRunAnnotation) {
	if len(a) <= MaxAnnotationsPerRequest {
		return a, nil
	}
	return a[:MaxAnnotationsPerRequest], a[MaxAnnotationsPerRequest:]
}

// checkRunAnnotations converts diagnostics to annotations and reports
// whether any is at least failOn.
func checkRunAnnotations(files []lint.File, failOn diagnostics.Severity) ([]*github.CheckRunAnnotation, bool) {
	var out []*github.CheckRunAnnotation
	failed := false
	for _, f := range files {
		if f.Result.HasAtLeast(failOn) {
			failed = true
		}
		path := filepath.ToSlash(f.RelPath)
		for _, d := range f.Result.Diagnostics {
			a := &github.CheckRunAnnotation{
				Path:            github.Ptr(path),
				StartLine:       github.Ptr(d.Range.Start.Line + 1),
				EndLine:         github.Ptr(d.Range.End.Line + 1),
				AnnotationLevel: github.Ptr(annotationLevel(d.Severity)),
				Message:         github.Ptr(d.Message),
			}
			if d.Rule != "" {
				a.Title = github.Ptr(d.Rule)
			}
			// Columns are only accepted on single-line annotations.
			if d.Range.Start.Line == d.Range.End.Line {
				a.StartColumn = github.Ptr(d.Range.Start.Character + 1)
				a.EndColumn = github.Ptr(d.Range.End.Character + 1)
			}
			out = append(out, a)
		}
	}
	return out, failed
}

func annotationLevel(s diagnostics.Severity) string {
	switch s {
	case diagnostics.SeverityError:
		return "failure"
	case diagnostics.SeverityWarning:
		return "warning"
	}
	return "notice"
}
