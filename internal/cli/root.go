// Package cli defines the nbactions command-line interface.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/clintrovert/nbactions/internal/actions"
	"github.com/clintrovert/nbactions/internal/config"
	"github.com/clintrovert/nbactions/internal/logging"
)

// app carries the state shared by all subcommands
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	stdin  io.Reader
}

// Execute runs the command line in args against cfg
func Execute(ctx context.Context, args []string, cfg *config.Config) error {
	a := &app{cfg: cfg, logger: zap.NewNop(), stdin: os.Stdin}

	cmd := newRootCommand(a)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		a.logger.Error("command failed", zap.Error(err))
	}
	_ = a.logger.Sync()
	return err
}

func newRootCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "nbactions",
		Short:         "Link changed notebooks to Colab and report failing notebooks",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := logging.NewLogger(a.cfg.LogLevel)
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.cfg.Owner, "owner", a.cfg.Owner, "Owner of the repository to write to")
	flags.StringVar(&a.cfg.Repo, "repo", a.cfg.Repo, "Name of the repository to write to")
	flags.StringVar(&a.cfg.Token, "token", a.cfg.Token, "GitHub token (defaults to GITHUB_TOKEN)")
	flags.StringVar(&a.cfg.EventPath, "event-path", a.cfg.EventPath, "Path of the event payload (defaults to GITHUB_EVENT_PATH)")
	flags.StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newPRLinksCommand(a),
		newPostHandoffCommand(a),
		newReportFailureCommand(a),
		newServeCommand(a),
	)

	return cmd
}

// actions opens a session and returns the actions bound to it
func (a *app) actions() (*actions.Actions, *actions.Session, error) {
	session, err := actions.NewSession(a.cfg, a.logger)
	if err != nil {
		return nil, nil, err
	}
	return actions.New(session.Client, a.logger), session, nil
}
