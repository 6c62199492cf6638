package cli

import (
	"github.com/spf13/cobra"

	"github.com/clintrovert/nbactions/internal/webhook"
)

func newServeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a webhook that posts notebook links on pull request events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			acts, _, err := a.actions()
			if err != nil {
				return err
			}

			handler := webhook.NewHandler(acts, a.cfg.Repository(), a.cfg.WebhookSecret, a.logger)
			return webhook.Serve(cmd.Context(), a.cfg.ListenAddr, handler, a.logger)
		},
	}

	cmd.Flags().StringVar(&a.cfg.ListenAddr, "addr", a.cfg.ListenAddr, "Address to listen on")
	cmd.Flags().StringVar(&a.cfg.WebhookSecret, "webhook-secret", a.cfg.WebhookSecret, "Secret used to validate webhook signatures")

	return cmd
}
