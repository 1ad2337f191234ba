package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/eliseohh/demobot/internal/keychain"
)

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the bot token stored in the OS keychain",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set [token]",
		Short: "Store the bot token (reads stdin when no argument is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var token string
			if len(args) == 1 {
				token = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read token from stdin: %w", err)
				}
				token = line
			}
			token = strings.TrimSpace(token)
			if !looksLikeToken(token) {
				return errors.New("that does not look like a bot token (expected <digits>:<secret>)")
			}
			if err := keychain.Set(keychain.TokenAccount, token); err != nil {
				return fmt.Errorf("store token: %w", err)
			}
			color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), "✔ Token stored in keychain")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete",
		Short: "Remove the stored bot token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := keychain.Delete(keychain.TokenAccount); err != nil {
				return fmt.Errorf("delete token: %w", err)
			}
			color.New(color.FgYellow).Fprintln(cmd.OutOrStdout(), "Token removed from keychain")
			return nil
		},
	})

	return cmd
}

// looksLikeToken checks the "<bot id>:<secret>" shape without validating
// the token against the API.
func looksLikeToken(s string) bool {
	id, secret, ok := strings.Cut(s, ":")
	if !ok || id == "" || len(secret) < 10 {
		return false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
