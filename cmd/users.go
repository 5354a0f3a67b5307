package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AndreaCatalan/automated-email/internal/config"
)

func newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage stored accounts",
	}

	cmd.AddCommand(newUsersListCmd())
	cmd.AddCommand(newUsersDeleteCmd())
	return cmd
}

func newUsersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored accounts, most recent login first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := openStore(ctx, config.Load())
			if err != nil {
				return err
			}
			defer s.Close()

			emails, err := s.ListUsers(ctx)
			if err != nil {
				return err
			}
			if len(emails) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No accounts stored.")
				return nil
			}

			for _, email := range emails {
				fmt.Fprintln(cmd.OutOrStdout(), email)
			}
			return nil
		},
	}
}

func newUsersDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <email>",
		Short: "Delete a stored account and its draft history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := openStore(ctx, config.Load())
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.DeleteUser(ctx, args[0]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted account %s.\n", args[0])
			return nil
		},
	}
}
