package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"child-care-tracker/internal/platform/tokenstore"
)

func tokenCmd() *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the care backend token stored in the OS keyring",
	}
	cmd.PersistentFlags().StringVar(&account, "account", defaultAccount(), "keyring account (user id)")

	store := tokenstore.New(tokenstore.DefaultService)

	cmd.AddCommand(&cobra.Command{
		Use:   "set <token>",
		Short: "Store a token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := store.Set(account, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "token stored for %s\n", account)
			return nil
		},
	})

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the stored token (masked unless --reveal)",
		RunE: func(cmd *cobra.Command, args []string) error {
			reveal, _ := cmd.Flags().GetBool("reveal")
			tok, err := store.Get(account)
			if err != nil {
				if errors.Is(err, tokenstore.ErrNoToken) {
					fmt.Fprintf(cmd.OutOrStdout(), "no token stored for %s\n", account)
					return nil
				}
				return err
			}
			if !reveal {
				tok = mask(tok)
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	showCmd.Flags().Bool("reveal", false, "print the full token")
	cmd.AddCommand(showCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := store.Clear(account); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "token cleared for %s\n", account)
			return nil
		},
	})

	return cmd
}

func defaultAccount() string {
	if u := strings.TrimSpace(os.Getenv("USER")); u != "" {
		return u
	}
	return "default"
}

func mask(tok string) string {
	if len(tok) <= 8 {
		return strings.Repeat("*", len(tok))
	}
	return tok[:4] + strings.Repeat("*", len(tok)-8) + tok[len(tok)-4:]
}
