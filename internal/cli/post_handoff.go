package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/clintrovert/nbactions/internal/ghoutput"
)

func newPostHandoffCommand(a *app) *cobra.Command {
	var member string

	cmd := &cobra.Command{
		Use:   "post-handoff",
		Short: "Post the comment handed off by pr-links --handoff",
		Long: "Run on workflow_run completion: download the first artifact of the completed run, " +
			"read the handoff record from it and create or update the pull request comment.",
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

			result, err := acts.PostHandoff(cmd.Context(), ev, member)
			if err != nil {
				return err
			}

			return ghoutput.Write(map[string]string{
				"pr_number":  strconv.Itoa(result.Target.Number),
				"comment_id": strconv.FormatInt(result.Target.CommentID, 10),
			})
		},
	}

	cmd.Flags().StringVar(&member, "member", a.cfg.HandoffFile, "Name of the handoff record inside the artifact")

	return cmd
}
