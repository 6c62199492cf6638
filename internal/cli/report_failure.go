package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/clintrovert/nbactions/internal/ghoutput"
)

func newReportFailureCommand(a *app) *cobra.Command {
	var tracebackFile string

	cmd := &cobra.Command{
		Use:   "report-failure <notebook>",
		Short: "Open a bug issue for a notebook that failed to run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			traceback, err := a.readTraceback(tracebackFile)
			if err != nil {
				return err
			}

			acts, _, err := a.actions()
			if err != nil {
				return err
			}

			issue, err := acts.ReportFailure(cmd.Context(), args[0], traceback)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), issue.URL)
			return ghoutput.Write(map[string]string{
				"issue_number": strconv.Itoa(issue.Number),
				"issue_url":    issue.URL,
			})
		},
	}

	cmd.Flags().StringVar(&tracebackFile, "traceback-file", "", "File holding the captured traceback, - for stdin")

	return cmd
}

func (a *app) readTraceback(name string) (string, error) {
	switch name {
	case "":
		return "", nil
	case "-":
		data, err := io.ReadAll(a.stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read traceback from stdin: %w", err)
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(name)
		if err != nil {
			return "", fmt.Errorf("failed to read traceback: %w", err)
		}
		return string(data), nil
	}
}
