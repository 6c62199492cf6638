// Package actions implements the CI steps that link changed notebooks to
// Colab on pull requests and report notebooks that fail to run.
package actions

import (
	"context"

	"go.uber.org/zap"

	"github.com/clintrovert/nbactions/pkg/types"
)

const (
	// CommentTitle heads the notebook links comment and marks it for updates
	CommentTitle = "The following colabs where changed"
	// BugLabel is applied to every failure issue
	BugLabel = "bug"
)

// API is the subset of the GitHub API the actions use
type API interface {
	ListPullRequestFiles(ctx context.Context, number int) ([]string, error)
	ListIssueComments(ctx context.Context, number int) ([]types.Comment, error)
	CreateComment(ctx context.Context, number int, body string) (int64, error)
	UpdateComment(ctx context.Context, commentID int64, body string) error
	CreateIssue(ctx context.Context, title, body string, labels []string) (*types.IssueInfo, error)
	ListWorkflowRunArtifacts(ctx context.Context, runID int64) ([]types.Artifact, error)
	DownloadArtifact(ctx context.Context, artifact types.Artifact) ([]byte, error)
}

// Actions runs the pipelines against one repository
type Actions struct {
	api    API
	logger *zap.Logger
}

// New creates a new Actions
func New(api API, logger *zap.Logger) *Actions {
	return &Actions{
		api:    api,
		logger: logger,
	}
}

// CommentResult describes the outcome of a comment pipeline
type CommentResult struct {
	// Notebooks are the changed notebooks the comment links to
	Notebooks []string
	// Draft is the rendered comment, empty when nothing was rendered
	Draft types.CommentDraft
	// Target is where the comment went or is meant to go
	Target types.CommentTarget
	// Written is true when a comment was created or updated
	Written bool
}
