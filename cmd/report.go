package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/AndreaCatalan/automated-email/internal/config"
	"github.com/AndreaCatalan/automated-email/internal/gmail"
	"github.com/AndreaCatalan/automated-email/internal/google"
	"github.com/AndreaCatalan/automated-email/internal/logging"
	"github.com/AndreaCatalan/automated-email/internal/report"
	"github.com/AndreaCatalan/automated-email/internal/sheets"
	"github.com/AndreaCatalan/automated-email/internal/store"
)

type reportOptions struct {
	account   string
	sheetID   string
	sheetName string
	recipient string
}

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Compose the daily status email from a Google Sheet",
	}

	cmd.AddCommand(newReportPreviewCmd())
	cmd.AddCommand(newReportDraftCmd())
	return cmd
}

func addReportFlags(cmd *cobra.Command, opts *reportOptions) {
	cmd.Flags().StringVar(&opts.account, "account", "", "Stored account email (default: most recent login)")
	cmd.Flags().StringVar(&opts.sheetID, "sheet", "", "Google Sheets spreadsheet ID")
	cmd.Flags().StringVar(&opts.sheetName, "sheet-name", "Sheet1", "Sheet (tab) name to read")
	_ = cmd.MarkFlagRequired("sheet")
}

func newReportPreviewCmd() *cobra.Command {
	var opts reportOptions

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Generate the email and print it without creating a draft",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := composeReport(cmd.Context(), &opts)
			if err != nil {
				return err
			}
			defer env.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Subject: %s\n\n", env.subject)
			fmt.Fprintln(out, env.body)
			return nil
		},
	}

	addReportFlags(cmd, &opts)
	return cmd
}

func newReportDraftCmd() *cobra.Command {
	var opts reportOptions

	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Generate the email and file it as a Gmail draft",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			env, err := composeReport(ctx, &opts)
			if err != nil {
				return err
			}
			defer env.Close()

			recipient := opts.recipient
			if recipient == "" {
				recipient = env.user.Email
			}

			client, err := gmail.NewClient(ctx, env.tokenSource)
			if err != nil {
				return err
			}

			draftID, err := client.CreateDraft(ctx, recipient, env.subject, env.body)
			if err != nil {
				return err
			}

			if err := env.store.SaveDraftHistory(ctx, env.user.ID, draftID, env.subject, recipient); err != nil {
				slog.Warn("draft created but history write failed",
					logging.DraftID(draftID), logging.Err(err))
			}

			slog.Info("draft created",
				logging.Operation("report.draft"),
				logging.DraftID(draftID),
				logging.UserHash(env.user.Email),
				logging.Status(logging.StatusSuccess))
			fmt.Fprintf(cmd.OutOrStdout(),
				"Draft created for %s (draft ID %s). Check Gmail to send it.\n", recipient, draftID)
			return nil
		},
	}

	addReportFlags(cmd, &opts)
	cmd.Flags().StringVar(&opts.recipient, "to", "", "Recipient email (default: your own account)")
	return cmd
}

// reportEnv carries the composed email plus the resolved account and
// clients from the compose step to the draft step.
type reportEnv struct {
	subject     string
	body        string
	store       *store.Store
	user        *store.User
	tokenSource oauth2.TokenSource
}

func (e *reportEnv) Close() {
	e.store.Close()
}

// composeReport runs the shared pipeline: resolve the account, read the
// sheet, and generate subject and body. The caller must Close the
// returned environment.
func composeReport(ctx context.Context, opts *reportOptions) (*reportEnv, error) {
	cfg := config.Load()

	s, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	ok := false
	defer func() {
		if !ok {
			s.Close()
		}
	}()

	u, err := resolveUser(ctx, s, opts.account)
	if err != nil {
		return nil, err
	}
	if u.AIKey == "" {
		return nil, fmt.Errorf("account %s has no Gemini API key stored; run login again", u.Email)
	}

	ts, err := google.TokenSource(ctx, u.Bundle)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	sheetClient, err := sheets.NewClient(ctx, ts)
	if err != nil {
		return nil, err
	}
	rows, err := sheetClient.Read(ctx, opts.sheetID, opts.sheetName)
	if err != nil {
		return nil, err
	}
	slog.Debug("sheet read",
		logging.Operation("report.read"),
		logging.Spreadsheet(opts.sheetID),
		slog.Int("rows", len(rows)),
		slog.Duration("duration", time.Since(start)))

	gen, err := report.NewGeminiGenerator(ctx, u.AIKey, cfg.Model)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	composer := report.NewComposer(gen, report.NewLimiter(report.MinCallInterval))
	body, err := composer.Compose(ctx, rows, now)
	if err != nil {
		return nil, err
	}

	ok = true
	return &reportEnv{
		subject:     report.Subject(now),
		body:        body,
		store:       s,
		user:        u,
		tokenSource: ts,
	}, nil
}
