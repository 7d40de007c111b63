package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/spec-kit/staffing-portal/internal/session"
)

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Work with session tokens",
	}
	cmd.AddCommand(newTokenInspectCmd())
	return cmd
}

func newTokenInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <token>",
		Short: "Decode a session token the way the portal does, without verifying it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			claims, err := session.DecodeSession(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("decode token: %w", err)
			}

			out := cmd.OutOrStdout()
			role := string(claims.Role)
			if role == "" {
				role = "(none)"
			}
			fmt.Fprintf(out, "role:       %s\n", role)
			fmt.Fprintf(out, "dashboard:  %s\n", claims.Role.DashboardPath())
			expiresAt := "never"
			if exp := claims.ExpiresAt(); !exp.IsZero() {
				expiresAt = exp.UTC().Format(time.RFC3339)
			}
			fmt.Fprintf(out, "expires at: %s\n", expiresAt)
			fmt.Fprintf(out, "expired:    %t\n", claims.Expired(time.Now()))
			return nil
		},
	}
}
