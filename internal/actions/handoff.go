package actions

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/clintrovert/nbactions/internal/event"
	"github.com/clintrovert/nbactions/internal/handoff"
)

// ErrNoArtifacts is returned when the workflow run uploaded no artifacts
var ErrNoArtifacts = errors.New("workflow run has no artifacts")

// PostHandoff posts the comment stored in the first artifact of the completed
// workflow run. member names the record file inside the artifact archive.
func (a *Actions) PostHandoff(ctx context.Context, ev *event.Event, member string) (*CommentResult, error) {
	runID, err := ev.WorkflowRunID()
	if err != nil {
		return nil, err
	}

	artifacts, err := a.api.ListWorkflowRunArtifacts(ctx, runID)
	if err != nil {
		return nil, err
	}
	if len(artifacts) == 0 {
		return nil, fmt.Errorf("%w: run %d", ErrNoArtifacts, runID)
	}

	artifact := artifacts[0]
	data, err := a.api.DownloadArtifact(ctx, artifact)
	if err != nil {
		return nil, err
	}

	rec, err := handoff.FromZip(data, member)
	if err != nil {
		return nil, err
	}

	a.logger.Info("read handoff record",
		zap.Int64("run_id", runID),
		zap.String("artifact", artifact.Name),
		zap.Int("pr_number", rec.PR),
		zap.Int64("comment_id", rec.CommentID),
	)

	target := rec.Target()
	id, err := a.UpsertComment(ctx, target, rec.Body)
	if err != nil {
		return nil, err
	}
	target.CommentID = id

	return &CommentResult{Target: target, Written: true}, nil
}
