package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gitlab.com/codejudge.net/internal/domain"
	logger2 "gitlab.com/codejudge.net/internal/global/logger"
)

var (
	runProblemID string
	runFile      string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Judge a single file and print the result",
	Long: `Judges the function body in --file against --problem and prints the
submission result as JSON. The exit code is non-zero unless every test case passed.

Example:
  judge run --problem 1 --file add.js`,
	RunE: runSingle,
}

func init() {
	runCmd.Flags().StringVar(&runProblemID, "problem", "", "problem id to judge against")
	runCmd.Flags().StringVar(&runFile, "file", "", "file holding the function body")
	_ = runCmd.MarkFlagRequired("problem")
	_ = runCmd.MarkFlagRequired("file")
}

func runSingle(cmd *cobra.Command, args []string) error {
	code, err := os.ReadFile(runFile)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", runFile, err)
	}

	app, err := buildApplication(cmd.Context(), sysCfg, false, logger2.Logger)
	if err != nil {
		return err
	}
	defer app.Close()

	result, err := app.submissionSvc.Submit(cmd.Context(), domain.NewSubmission(runProblemID, string(code)))
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return err
	}
	if result.Verdict.Status != domain.StatusAccepted {
		return fmt.Errorf("%s", result.Verdict.Message)
	}
	return nil
}
