package cmd

import (
	"bufio"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/AndreaCatalan/automated-email/internal/config"
	"github.com/AndreaCatalan/automated-email/internal/google"
	"github.com/AndreaCatalan/automated-email/internal/logging"
)

func newLoginCmd() *cobra.Command {
	var credentialsFile string
	var aiKey string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authorize a Google account and store its credentials",
		Long: `Run the Google OAuth flow for an account and store the resulting
tokens, together with your Gemini API key, encrypted in the local
database. The authorization URL is printed; open it in a browser and
paste the code back into the terminal.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.Load()
			if credentialsFile != "" {
				cfg.CredentialsFile = credentialsFile
			}

			s, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			fingerprint, err := google.Fingerprint(cfg.CredentialsFile)
			if err != nil {
				return err
			}
			if existing, err := s.FindFingerprint(ctx, fingerprint); err != nil {
				return err
			} else if existing != "" {
				fmt.Fprintf(cmd.OutOrStdout(),
					"Note: this credentials file was already used by %s.\n", existing)
			}

			flow, err := google.NewFlow(cfg.CredentialsFile)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			in := bufio.NewReader(cmd.InOrStdin())
			fmt.Fprintf(out, "Open this URL in your browser to authorize:\n\n  %s\n\n", flow.AuthURL())

			code, err := promptLine(out, in, "Paste the authorization code: ")
			if err != nil {
				return err
			}
			if code == "" {
				return fmt.Errorf("authorization code is required")
			}

			bundle, err := flow.Exchange(ctx, code)
			if err != nil {
				return err
			}

			ts, err := google.TokenSource(ctx, bundle)
			if err != nil {
				return err
			}
			email, err := google.UserEmail(ctx, ts)
			if err != nil {
				return err
			}

			if aiKey == "" {
				aiKey, err = promptLine(out, in, "Gemini API key (leave empty to keep the stored one): ")
				if err != nil {
					return err
				}
			}
			if aiKey == "" {
				if existing, err := s.GetUser(ctx, email); err == nil && existing.AIKey != "" {
					aiKey = existing.AIKey
				} else {
					return fmt.Errorf("a Gemini API key is required for the first login")
				}
			}

			if _, err := s.SaveUser(ctx, email, aiKey, bundle); err != nil {
				return err
			}
			if err := s.SaveFingerprint(ctx, email, fingerprint); err != nil {
				return err
			}

			slog.Info("login complete",
				logging.Operation("login"),
				logging.UserHash(email),
				logging.Status(logging.StatusSuccess))
			fmt.Fprintf(out, "Logged in as %s.\n", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&credentialsFile, "credentials", "", "Path to the OAuth client credentials.json (default from environment)")
	cmd.Flags().StringVar(&aiKey, "ai-key", "", "Gemini API key to store for this account")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout <email>",
		Short: "Remove a stored account and its draft history",
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

			fmt.Fprintf(cmd.OutOrStdout(), "Removed account %s.\n", args[0])
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the account the tool will use",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := openStore(ctx, config.Load())
			if err != nil {
				return err
			}
			defer s.Close()

			u, err := resolveUser(ctx, s, "")
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s (last login %s)\n",
				u.Email, u.LastLogin.Format("2006-01-02 15:04"))
			return nil
		},
	}
}
