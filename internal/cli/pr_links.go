package cli

import (
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/clintrovert/nbactions/internal/actions"
	"github.com/clintrovert/nbactions/internal/ghoutput"
)

func newPRLinksCommand(a *app) *cobra.Command {
	var handoffPath string

	cmd := &cobra.Command{
		Use:   "pr-links",
		Short: "Comment on the pull request with Colab links for changed notebooks",
		Long: "Comment on the pull request with Colab links for every changed notebook, updating the " +
			"previous links comment when there is one. With --handoff the comment is written to a " +
			"file instead, for a later job to post with post-handoff.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			acts, session, err := a.actions()
			if err != nil {
				return err
			}
			ev, err := session.RequireEvent()
			if err != nil {
				return err
			}

			var result *actions.CommentResult
			if handoffPath != "" {
				result, err = acts.PrepareHandoff(cmd.Context(), ev, handoffPath)
			} else {
				result, err = acts.PostNotebookLinks(cmd.Context(), ev)
			}
			if err != nil {
				return err
			}

			if len(result.Notebooks) == 0 {
				a.logger.Info("no notebooks changed", zap.Int("pr_number", result.Target.Number))
			}

			return ghoutput.Write(map[string]string{
				"pr_number":  strconv.Itoa(result.Target.Number),
				"notebooks":  strconv.Itoa(len(result.Notebooks)),
				"comment_id": strconv.FormatInt(result.Target.CommentID, 10),
			})
		},
	}

	cmd.Flags().StringVar(&handoffPath, "handoff", "", "Write the comment to this file instead of posting it")
	cmd.Flags().Lookup("handoff").NoOptDefVal = a.cfg.HandoffFile

	return cmd
}
