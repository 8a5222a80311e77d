package main

import (
	"fmt"

	"github.com/MikeRez0/pointsweep/internal/adapter/auth"
	"github.com/MikeRez0/pointsweep/internal/adapter/config"
	"github.com/spf13/cobra"
)

func tokenCmd() *cobra.Command {
	var subject string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an admin API token signed with ADMIN_TOKEN_KEY",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := config.NewConfig()
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			if conf.Auth.AdminKey == "" {
				return fmt.Errorf("ADMIN_TOKEN_KEY is not set, a token would not verify on the server")
			}

			tokenService, err := auth.New(conf.Auth)
			if err != nil {
				return fmt.Errorf("token service creating error: %w", err)
			}
			token, err := tokenService.CreateToken(subject)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVarP(&subject, "subject", "s", "admin", "token subject recorded in audit logs")

	return cmd
}
