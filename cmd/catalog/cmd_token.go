package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/catalog/config"
	"github.com/shashiranjanraj/catalog/pkg/auth"
)

// catalog token:issue <email>: mint a session token, e.g. for curl:
//
//	curl -b "token=$(catalog token:issue ann@example.com)" localhost:8080/user/profile
var tokenIssueCmd = &cobra.Command{
	Use:   "token:issue <email>",
	Short: "Issue a session token for an email",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		creds := auth.NewCredentials(cfg.JWTSecret, cfg.JWTTTL, cfg.BcryptCost)
		token, err := creds.IssueToken(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}
