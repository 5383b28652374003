package cli

import (
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"calculator_lab/internal/fault"
	localModels "calculator_lab/internal/models"
	"calculator_lab/internal/submission"
)

// Execute запускает CLI и завершает процесс с кодом 1 при ошибке.
func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:          "calc",
		Short:        "Four-function calculator with classified errors",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			fault.Install(diagnostics(cmd, quiet), fault.NopTracker{})
		},
	}

	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "do not print diagnostic log lines to stderr")

	cmd.AddCommand(evalCmd(&quiet))
	cmd.AddCommand(replCmd(&quiet))
	cmd.AddCommand(remoteCmd())
	return cmd
}

// diagnostics - логгер диагностического канала (stderr команды).
func diagnostics(cmd *cobra.Command, quiet bool) *log.Logger {
	if quiet {
		return log.New(io.Discard, "", 0)
	}
	return log.New(cmd.ErrOrStderr(), "", log.LstdFlags)
}

// newLocalHandler: граница отправки, которая выводит результат в stdout команды.
func newLocalHandler(cmd *cobra.Command, quiet bool) *submission.Handler {
	return submission.NewHandler(
		submission.WithDisplay(submission.WriterDisplay{W: cmd.OutOrStdout()}),
		submission.WithLogger(diagnostics(cmd, quiet)),
	)
}

func requestFromArgs(args []string) localModels.CalculationRequest {
	return localModels.CalculationRequest{OperandA: args[0], Operator: args[1], OperandB: args[2]}
}
