package actions

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/clintrovert/nbactions/internal/colab"
	"github.com/clintrovert/nbactions/internal/event"
	"github.com/clintrovert/nbactions/internal/handoff"
	"github.com/clintrovert/nbactions/internal/notebook"
)

// PostNotebookLinks comments on the pull request with a Colab link for every
// changed notebook, updating the previous links comment if there is exactly
// one. Nothing is written when no notebook changed.
func (a *Actions) PostNotebookLinks(ctx context.Context, ev *event.Event) (*CommentResult, error) {
	result, err := a.draftNotebookLinks(ctx, ev)
	if err != nil || len(result.Notebooks) == 0 {
		return result, err
	}

	id, err := a.UpsertComment(ctx, result.Target, result.Draft.Body)
	if err != nil {
		return nil, err
	}
	result.Target.CommentID = id
	result.Written = true

	return result, nil
}

// PrepareHandoff renders the notebook links comment and stores it in the
// handoff file at path for a later job to post. No file is written when no
// notebook changed.
func (a *Actions) PrepareHandoff(ctx context.Context, ev *event.Event, path string) (*CommentResult, error) {
	result, err := a.draftNotebookLinks(ctx, ev)
	if err != nil || len(result.Notebooks) == 0 {
		return result, err
	}

	if err := handoff.Write(path, handoff.NewRecord(result.Target, result.Draft.Body)); err != nil {
		return nil, err
	}

	a.logger.Info("wrote handoff record",
		zap.String("path", path),
		zap.Int("pr_number", result.Target.Number),
		zap.Int64("comment_id", result.Target.CommentID),
	)

	return result, nil
}

func (a *Actions) draftNotebookLinks(ctx context.Context, ev *event.Event) (*CommentResult, error) {
	number := ev.IssueNumber()

	head, err := ev.Head()
	if err != nil {
		return nil, err
	}

	files, err := a.api.ListPullRequestFiles(ctx, number)
	if err != nil {
		return nil, err
	}

	result := &CommentResult{Notebooks: notebook.Filter(files)}
	result.Target.Number = number

	a.logger.Info("collected changed notebooks",
		zap.String("trigger", ev.Trigger.String()),
		zap.Int("pr_number", number),
		zap.Strings("files", files),
		zap.Strings("notebooks", result.Notebooks),
	)

	if len(result.Notebooks) == 0 {
		return result, nil
	}

	result.Draft = colab.NewDraft(CommentTitle, result.Notebooks, head.Branch, head.FullName)

	id, err := a.FindComment(ctx, number, CommentTitle)
	if err != nil {
		return nil, fmt.Errorf("failed to look up existing comment: %w", err)
	}
	result.Target.CommentID = id

	return result, nil
}
