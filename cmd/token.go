package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"gitlab.com/codejudge.net/internal/adapter/crypto"
)

var (
	tokenSubject string
	tokenTTL     time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for the submission routes (requires JWT_SECRET)",
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := crypto.NewJWTService(sysCfg.JwtConfig).GenerateTokenHMAC(cmd.Context(), tokenSubject, tokenTTL)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
		return err
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "judge-client", "subject claim of the token")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", time.Hour, "token lifetime")
}
