package actions

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/clintrovert/nbactions/internal/colab"
	"github.com/clintrovert/nbactions/internal/gitinfo"
	"github.com/clintrovert/nbactions/pkg/types"
)

// NewFailureReport builds the issue for a notebook that failed to run,
// resolving its repository from the local git checkout.
func NewFailureReport(path, traceback string) (types.FailureReport, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return types.FailureReport{}, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	repo, err := gitinfo.Open(abs)
	if err != nil {
		return types.FailureReport{}, err
	}
	slug, err := repo.OriginRepo()
	if err != nil {
		return types.FailureReport{}, err
	}
	branch, err := repo.MainBranch()
	if err != nil {
		return types.FailureReport{}, err
	}
	rel, err := repo.RelPath(abs)
	if err != nil {
		return types.FailureReport{}, err
	}

	return types.FailureReport{
		Title:  "Failed to run " + abs,
		Body:   FailureBody(rel, branch, slug, traceback),
		Labels: []string{BugLabel},
	}, nil
}

// FailureBody renders the issue body for the notebook at rel in repo
func FailureBody(rel, branch, repo, traceback string) string {
	return "The following notebooks failed to run:\n\n" +
		"|notebook name|               |\n" +
		"|-------------|---------------|\n" +
		fmt.Sprintf("| %s   | %s |\n\n", colab.SourceLink(rel, branch, repo), colab.Badge(rel, branch, repo)) +
		"------------------------------\n" +
		"The recovered traceback is:\n\n" +
		"```python\n" +
		traceback + "\n" +
		"```"
}

// ReportFailure opens a bug issue for the notebook at path. Every call opens
// a new issue.
func (a *Actions) ReportFailure(ctx context.Context, path, traceback string) (*types.IssueInfo, error) {
	report, err := NewFailureReport(path, traceback)
	if err != nil {
		return nil, err
	}

	a.logger.Info("reporting failed notebook",
		zap.String("title", report.Title),
		zap.Int("traceback_bytes", len(traceback)),
	)

	return a.api.CreateIssue(ctx, report.Title, report.Body, report.Labels)
}
