package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/AndreaCatalan/automated-email/internal/config"
	"github.com/AndreaCatalan/automated-email/internal/cryptox"
	"github.com/AndreaCatalan/automated-email/internal/store"
)

// openStore loads the encryption key and opens the credential store.
// The caller owns the returned store and must close it.
func openStore(ctx context.Context, cfg *config.Config) (*store.Store, error) {
	key, err := cryptox.LoadKey(cfg.SecretKey, cfg.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load encryption key: %w", err)
	}

	cipher, err := cryptox.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cipher: %w", err)
	}

	s, err := store.Open(ctx, cfg.DatabasePath, cipher)
	if err != nil {
		return nil, fmt.Errorf("failed to open credential store: %w", err)
	}
	return s, nil
}

// resolveUser finds the account to operate on. An explicit email wins;
// otherwise the most recently logged-in account is used.
func resolveUser(ctx context.Context, s *store.Store, email string) (*store.User, error) {
	if email == "" {
		emails, err := s.ListUsers(ctx)
		if err != nil {
			return nil, err
		}
		if len(emails) == 0 {
			return nil, fmt.Errorf("no accounts found; run \"automated-email login\" first")
		}
		email = emails[0]
	}

	u, err := s.GetUser(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("account %s: %w", email, err)
	}
	return u, nil
}

// promptLine prints a prompt and reads one trimmed line from in. The
// caller passes a shared reader so consecutive prompts do not lose
// buffered input.
func promptLine(out io.Writer, in *bufio.Reader, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
