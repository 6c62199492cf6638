package actions

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/clintrovert/nbactions/pkg/types"
)

// ResolveCommentID returns the id of the single comment whose body contains
// title. Zero or several matches return types.NoComment.
func ResolveCommentID(comments []types.Comment, title string) int64 {
	id := types.NoComment
	matches := 0
	for _, c := range comments {
		if strings.Contains(c.Body, title) {
			id = c.ID
			matches++
		}
	}
	if matches != 1 {
		return types.NoComment
	}
	return id
}

// FindComment lists the comments on number and resolves the one carrying title
func (a *Actions) FindComment(ctx context.Context, number int, title string) (int64, error) {
	comments, err := a.api.ListIssueComments(ctx, number)
	if err != nil {
		return 0, err
	}

	id := ResolveCommentID(comments, title)
	a.logger.Debug("resolved existing comment",
		zap.Int("issue_number", number),
		zap.Int("comments", len(comments)),
		zap.Int64("comment_id", id),
	)

	return id, nil
}

// UpsertComment updates the comment target.CommentID when it is positive and
// otherwise creates a new comment on target.Number. It returns the id of the
// comment that now carries body.
func (a *Actions) UpsertComment(ctx context.Context, target types.CommentTarget, body string) (int64, error) {
	if target.HasComment() {
		a.logger.Info("updating comment",
			zap.Int("issue_number", target.Number),
			zap.Int64("comment_id", target.CommentID),
			zap.String("body", body),
		)
		if err := a.api.UpdateComment(ctx, target.CommentID, body); err != nil {
			return 0, err
		}
		return target.CommentID, nil
	}

	a.logger.Info("creating comment",
		zap.Int("issue_number", target.Number),
		zap.String("body", body),
	)
	return a.api.CreateComment(ctx, target.Number, body)
}
