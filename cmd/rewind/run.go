package main

import (
	"context"

	"github.com/aretw0/rewind/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <definition>",
	Short: "Drive a state machine interactively",
	Long: `Starts an interactive prompt over the given definition.
With --session the history is persisted under <dir>/.rewind/sessions and
resumed on the next run.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, level, err := loggerFrom(cmd)
		if err != nil {
			return err
		}
		sessionID, _ := cmd.Flags().GetString("session")
		fresh, _ := cmd.Flags().GetBool("fresh")
		quiet, _ := cmd.Flags().GetBool("quiet")

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		return cli.Execute(sigCtx, cli.RunOptions{
			DefinitionPath: args[0],
			SessionID:      sessionID,
			SessionDir:     sessionDir(cmd),
			Fresh:          fresh,
			Quiet:          quiet,
			LogLevel:       level,
		}, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("session", "s", "", "Persist and resume the named session")
	runCmd.Flags().Bool("fresh", false, "Discard the stored session before starting")
	runCmd.Flags().BoolP("quiet", "q", false, "Print command output only (no prompt or banner)")
}
