// Package event decodes the GitHub Actions event payload that triggered a run.
package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/google/go-github/v57/github"
	"github.com/tidwall/gjson"

	"github.com/clintrovert/nbactions/pkg/types"
)

// FallbackIssueNumber is the issue number used when a run was triggered by a
// workflow event rather than directly by a pull request.
const FallbackIssueNumber = 1

var (
	// ErrNoPullRequest is returned when the payload carries no pull request
	ErrNoPullRequest = errors.New("event payload has no pull_request")
	// ErrNoWorkflowRun is returned when the payload carries no workflow run
	ErrNoWorkflowRun = errors.New("event payload has no workflow_run")
)

// Trigger distinguishes the two payload shapes the actions run under
type Trigger int

const (
	// TriggerPullRequest is a payload delivered by a pull_request event
	TriggerPullRequest Trigger = iota
	// TriggerWorkflow is a payload carrying a "workflow" key, delivered by
	// workflow_run or a reusable workflow call
	TriggerWorkflow
)

func (t Trigger) String() string {
	switch t {
	case TriggerPullRequest:
		return "pull_request"
	case TriggerWorkflow:
		return "workflow"
	default:
		return fmt.Sprintf("Trigger(%d)", int(t))
	}
}

// Event is a decoded event payload
type Event struct {
	Trigger     Trigger
	Number      int
	PullRequest *github.PullRequest
	WorkflowRun *github.WorkflowRun
}

type payload struct {
	Number      int                 `json:"number"`
	PullRequest *github.PullRequest `json:"pull_request"`
	WorkflowRun *github.WorkflowRun `json:"workflow_run"`
}

// Load reads and decodes the payload file at path
func Load(path string) (*Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read event payload: %w", err)
	}
	return Parse(data)
}

// Parse decodes a raw event payload
func Parse(data []byte) (*Event, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("event payload is not valid JSON")
	}

	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode event payload: %w", err)
	}

	ev := &Event{
		Trigger:     TriggerPullRequest,
		Number:      p.Number,
		PullRequest: p.PullRequest,
		WorkflowRun: p.WorkflowRun,
	}
	if gjson.GetBytes(data, "workflow").Exists() {
		ev.Trigger = TriggerWorkflow
	}

	return ev, nil
}

// IssueNumber returns the issue or pull request number comments go to
func (e *Event) IssueNumber() int {
	if e.Trigger == TriggerWorkflow {
		return FallbackIssueNumber
	}
	return e.Number
}

// Head returns the head branch and repository of the pull request
func (e *Event) Head() (types.PRHead, error) {
	if e.PullRequest == nil || e.PullRequest.Head == nil {
		return types.PRHead{}, ErrNoPullRequest
	}
	return types.PRHead{
		Branch:   e.PullRequest.GetHead().GetRef(),
		FullName: e.PullRequest.GetHead().GetRepo().GetFullName(),
	}, nil
}

// WorkflowRunID returns the id of the completed workflow run
func (e *Event) WorkflowRunID() (int64, error) {
	if e.WorkflowRun == nil || e.WorkflowRun.ID == nil {
		return 0, ErrNoWorkflowRun
	}
	return e.WorkflowRun.GetID(), nil
}

// FromPullRequestEvent wraps a pull_request webhook delivery
func FromPullRequestEvent(e *github.PullRequestEvent) *Event {
	return &Event{
		Trigger:     TriggerPullRequest,
		Number:      e.GetNumber(),
		PullRequest: e.PullRequest,
	}
}
