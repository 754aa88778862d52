package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"gitlab.com/codejudge.net/internal/config"
	logger2 "gitlab.com/codejudge.net/internal/global/logger"
)

var (
	environment string
	sysCfg      *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:           "judge",
	Short:         "Judge JavaScript submissions against a problem catalog",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadEnv(environment); err != nil {
			return err
		}
		sysCfg = config.NewSystemConfig()
		logger2.Init(sysCfg.DebugMode)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger2.Logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&environment, "env", "", "load <env>.env before reading the configuration")
	rootCmd.AddCommand(serveCmd, runCmd, tokenCmd)
}

// loadEnv reads <env>.env into the process environment. Variables already set win.
func loadEnv(env string) error {
	if env == "" {
		return nil
	}
	if err := godotenv.Load(env + ".env"); err != nil {
		return fmt.Errorf("error loading %s.env file: %w", env, err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
