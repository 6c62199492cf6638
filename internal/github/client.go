package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v57/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/clintrovert/nbactions/pkg/types"
)

const perPage = 100

// Client wraps the GitHub REST API for a single repository
type Client struct {
	apiClient     *github.Client
	storageClient *http.Client
	logger        *zap.Logger
	repo          types.RepositoryInfo
}

// NewClient creates a new GitHub client bound to repo. An empty apiURL talks
// to api.github.com.
func NewClient(accessToken, apiURL string, repo types.RepositoryInfo, logger *zap.Logger) (*Client, error) {
	ctx := context.Background()
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: accessToken},
	)
	tc := oauth2.NewClient(ctx, ts)

	apiClient := github.NewClient(tc)
	if apiURL != "" {
		if !strings.HasSuffix(apiURL, "/") {
			apiURL += "/"
		}
		base, err := url.Parse(apiURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse api url: %w", err)
		}
		apiClient.BaseURL = base
	}

	return &Client{
		apiClient:     apiClient,
		storageClient: http.DefaultClient,
		logger:        logger,
		repo:          repo,
	}, nil
}

// Repository returns the repository the client is bound to
func (c *Client) Repository() types.RepositoryInfo {
	return c.repo
}

// ListPullRequestFiles returns the names of all files changed by a pull request
func (c *Client) ListPullRequestFiles(ctx context.Context, number int) ([]string, error) {
	opts := &github.ListOptions{PerPage: perPage}

	var names []string
	for {
		files, resp, err := c.apiClient.PullRequests.ListFiles(ctx, c.repo.Owner, c.repo.Name, number, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list files of PR #%d: %w", number, err)
		}
		for _, f := range files {
			names = append(names, f.GetFilename())
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	c.logger.Debug("listed pull request files",
		zap.Int("pr_number", number),
		zap.Int("count", len(names)),
	)

	return names, nil
}

// ListIssueComments returns all comments on an issue or pull request
func (c *Client) ListIssueComments(ctx context.Context, number int) ([]types.Comment, error) {
	opts := &github.IssueListCommentsOptions{
		ListOptions: github.ListOptions{PerPage: perPage},
	}

	var comments []types.Comment
	for {
		page, resp, err := c.apiClient.Issues.ListComments(ctx, c.repo.Owner, c.repo.Name, number, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list comments of #%d: %w", number, err)
		}
		for _, ic := range page {
			comments = append(comments, types.Comment{ID: ic.GetID(), Body: ic.GetBody()})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return comments, nil
}

// CreateComment adds a comment to an issue or pull request
func (c *Client) CreateComment(ctx context.Context, number int, body string) (int64, error) {
	comment, _, err := c.apiClient.Issues.CreateComment(ctx, c.repo.Owner, c.repo.Name, number, &github.IssueComment{
		Body: github.String(body),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create comment on #%d: %w", number, err)
	}

	c.logger.Info("created comment",
		zap.String("repo", c.repo.FullName()),
		zap.Int("issue_number", number),
		zap.Int64("comment_id", comment.GetID()),
	)

	return comment.GetID(), nil
}

// UpdateComment replaces the body of an existing comment
func (c *Client) UpdateComment(ctx context.Context, commentID int64, body string) error {
	_, _, err := c.apiClient.Issues.EditComment(ctx, c.repo.Owner, c.repo.Name, commentID, &github.IssueComment{
		Body: github.String(body),
	})
	if err != nil {
		return fmt.Errorf("failed to update comment %d: %w", commentID, err)
	}

	c.logger.Info("updated comment",
		zap.String("repo", c.repo.FullName()),
		zap.Int64("comment_id", commentID),
	)

	return nil
}

// CreateIssue opens a new issue
func (c *Client) CreateIssue(ctx context.Context, title, body string, labels []string) (*types.IssueInfo, error) {
	issue, _, err := c.apiClient.Issues.Create(ctx, c.repo.Owner, c.repo.Name, &github.IssueRequest{
		Title:  github.String(title),
		Body:   github.String(body),
		Labels: &labels,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create issue: %w", err)
	}

	info := &types.IssueInfo{
		Number: issue.GetNumber(),
		URL:    issue.GetHTMLURL(),
	}

	c.logger.Info("created issue",
		zap.String("repo", c.repo.FullName()),
		zap.Int("issue_number", info.Number),
		zap.String("issue_url", info.URL),
	)

	return info, nil
}

// ListWorkflowRunArtifacts returns the artifacts uploaded by a workflow run
func (c *Client) ListWorkflowRunArtifacts(ctx context.Context, runID int64) ([]types.Artifact, error) {
	opts := &github.ListOptions{PerPage: perPage}

	var artifacts []types.Artifact
	for {
		list, resp, err := c.apiClient.Actions.ListWorkflowRunArtifacts(ctx, c.repo.Owner, c.repo.Name, runID, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list artifacts of run %d: %w", runID, err)
		}
		for _, a := range list.Artifacts {
			artifacts = append(artifacts, types.Artifact{
				ID:   a.GetID(),
				Name: a.GetName(),
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return artifacts, nil
}

// DownloadArtifact fetches the zip archive of an artifact. GitHub answers the
// archive endpoint with a redirect to pre-signed storage, which is fetched
// without the repository token.
func (c *Client) DownloadArtifact(ctx context.Context, artifact types.Artifact) ([]byte, error) {
	location, _, err := c.apiClient.Actions.DownloadArtifact(ctx, c.repo.Owner, c.repo.Name, artifact.ID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve download of artifact %d: %w", artifact.ID, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build artifact request: %w", err)
	}

	resp, err := c.storageClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download artifact %d: %w", artifact.ID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download artifact %d: unexpected status %s", artifact.ID, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact %d: %w", artifact.ID, err)
	}

	c.logger.Info("downloaded artifact",
		zap.Int64("artifact_id", artifact.ID),
		zap.String("name", artifact.Name),
		zap.Int("bytes", len(data)),
	)

	return data, nil
}
