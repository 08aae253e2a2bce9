package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"books-api/pkg/jwt"
)

func newTokenCmd() *cobra.Command {
	var subject, role string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the write routes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cfg.Auth.HasSecret() {
				return fmt.Errorf("JWT_SECRET must be set to mint tokens")
			}

			manager := jwt.NewManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL())
			token, err := manager.GenerateAccessToken(subject, role)
			if err != nil {
				return fmt.Errorf("failed to sign token: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "bookctl", "token subject")
	cmd.Flags().StringVar(&role, "role", jwt.RoleAdmin, "role claim")

	return cmd
}
