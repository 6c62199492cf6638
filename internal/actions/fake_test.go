package actions

import (
	"context"
	"errors"

	"github.com/clintrovert/nbactions/pkg/types"
)

var errNotFound = errors.New("404 Not Found")

type call struct {
	Method    string
	Number    int
	CommentID int64
	Title     string
	Body      string
	Labels    []string
}

// fakeAPI records every call and serves canned responses
type fakeAPI struct {
	files     map[int][]string
	comments  map[int][]types.Comment
	artifacts map[int64][]types.Artifact
	archives  map[int64][]byte
	updateErr error
	nextID    int64
	calls     []call
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		files:     map[int][]string{},
		comments:  map[int][]types.Comment{},
		artifacts: map[int64][]types.Artifact{},
		archives:  map[int64][]byte{},
		nextID:    1000,
	}
}

func (f *fakeAPI) ListPullRequestFiles(_ context.Context, number int) ([]string, error) {
	f.calls = append(f.calls, call{Method: "ListPullRequestFiles", Number: number})
	return f.files[number], nil
}

func (f *fakeAPI) ListIssueComments(_ context.Context, number int) ([]types.Comment, error) {
	f.calls = append(f.calls, call{Method: "ListIssueComments", Number: number})
	return f.comments[number], nil
}

func (f *fakeAPI) CreateComment(_ context.Context, number int, body string) (int64, error) {
	f.calls = append(f.calls, call{Method: "CreateComment", Number: number, Body: body})
	f.nextID++
	return f.nextID, nil
}

func (f *fakeAPI) UpdateComment(_ context.Context, commentID int64, body string) error {
	f.calls = append(f.calls, call{Method: "UpdateComment", CommentID: commentID, Body: body})
	return f.updateErr
}

func (f *fakeAPI) CreateIssue(_ context.Context, title, body string, labels []string) (*types.IssueInfo, error) {
	f.calls = append(f.calls, call{Method: "CreateIssue", Title: title, Body: body, Labels: labels})
	return &types.IssueInfo{Number: 77, URL: "https://github.com/wandb/nb_helpers/issues/77"}, nil
}

func (f *fakeAPI) ListWorkflowRunArtifacts(_ context.Context, runID int64) ([]types.Artifact, error) {
	f.calls = append(f.calls, call{Method: "ListWorkflowRunArtifacts"})
	return f.artifacts[runID], nil
}

func (f *fakeAPI) DownloadArtifact(_ context.Context, artifact types.Artifact) ([]byte, error) {
	f.calls = append(f.calls, call{Method: "DownloadArtifact"})
	data, ok := f.archives[artifact.ID]
	if !ok {
		return nil, errNotFound
	}
	return data, nil
}

// writes returns the calls that change state on GitHub
func (f *fakeAPI) writes() []call {
	var out []call
	for _, c := range f.calls {
		switch c.Method {
		case "CreateComment", "UpdateComment", "CreateIssue":
			out = append(out, c)
		}
	}
	return out
}
