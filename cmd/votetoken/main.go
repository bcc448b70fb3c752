package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Roll-Play/votechain/pkg/config"
	apiutils "github.com/Roll-Play/votechain/pkg/utils/api_utils"
	"github.com/spf13/cobra"
)

var (
	voterID string
	ttl     time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "votetoken",
	Short: "Issue voter tokens for the votechain API",
	Long: `votetoken signs bearer tokens accepted by POST /vote when the API runs
with JWT_SECRET set. The secret is read from the environment or a .env file.`,
}

var issueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Print a signed token for one voter",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		if cfg.JWTSecret == "" {
			return errors.New("JWT_SECRET is not set")
		}

		token, err := apiutils.CreateJWT(voterID, cfg.JWTSecret, ttl)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	issueCmd.Flags().StringVar(&voterID, "voter", "", "voter id placed in the token subject")
	issueCmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	_ = issueCmd.MarkFlagRequired("voter")

	rootCmd.AddCommand(issueCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
