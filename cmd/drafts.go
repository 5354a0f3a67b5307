package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AndreaCatalan/automated-email/internal/config"
	"github.com/AndreaCatalan/automated-email/internal/gmail"
	"github.com/AndreaCatalan/automated-email/internal/google"
)

func newDraftsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drafts",
		Short: "Inspect Gmail drafts for a stored account",
	}

	cmd.AddCommand(newDraftsListCmd())
	cmd.AddCommand(newDraftsShowCmd())
	cmd.AddCommand(newDraftsHistoryCmd())
	return cmd
}

// draftsClient resolves the account and builds a Gmail client for it.
func draftsClient(ctx context.Context, account string) (*gmail.Client, error) {
	s, err := openStore(ctx, config.Load())
	if err != nil {
		return nil, err
	}
	defer s.Close()

	u, err := resolveUser(ctx, s, account)
	if err != nil {
		return nil, err
	}

	ts, err := google.TokenSource(ctx, u.Bundle)
	if err != nil {
		return nil, err
	}

	return gmail.NewClient(ctx, ts)
}

func newDraftsListCmd() *cobra.Command {
	var account string
	var max int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent Gmail drafts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := draftsClient(ctx, account)
			if err != nil {
				return err
			}

			drafts, err := client.ListDrafts(ctx, max)
			if err != nil {
				return err
			}
			if len(drafts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No drafts found.")
				return nil
			}

			out := cmd.OutOrStdout()
			for _, d := range drafts {
				fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", d.ID, d.Date, d.To, d.Subject)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "", "Stored account email (default: most recent login)")
	cmd.Flags().Int64Var(&max, "max", 5, "Maximum number of drafts to list")
	return cmd
}

func newDraftsShowCmd() *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "show <draft-id>",
		Short: "Show a draft's subject, recipient and cleaned body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := draftsClient(ctx, account)
			if err != nil {
				return err
			}

			draft, err := client.GetDraft(ctx, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Subject: %s\n", draft.Subject)
			fmt.Fprintf(out, "To: %s\n\n", draft.To)
			fmt.Fprintln(out, draft.Body)
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "", "Stored account email (default: most recent login)")
	return cmd
}

func newDraftsHistoryCmd() *cobra.Command {
	var account string
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show drafts this tool has created, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			s, err := openStore(ctx, config.Load())
			if err != nil {
				return err
			}
			defer s.Close()

			u, err := resolveUser(ctx, s, account)
			if err != nil {
				return err
			}

			records, err := s.DraftHistory(ctx, u.ID, limit)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No drafts created yet.")
				return nil
			}

			out := cmd.OutOrStdout()
			for _, r := range records {
				fmt.Fprintf(out, "%s\t%s\t%s\t%s\n",
					r.DraftID, r.CreatedAt.Format("2006-01-02 15:04"), r.Recipient, r.Subject)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "", "Stored account email (default: most recent login)")
	cmd.Flags().IntVar(&limit, "max", 10, "Maximum number of records to show")
	return cmd
}
