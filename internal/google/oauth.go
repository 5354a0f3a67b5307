package google

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"github.com/AndreaCatalan/automated-email/internal/store"
)

// OOB is the out-of-band redirect URI for installed applications. The
// user pastes the authorization code back into the terminal instead of
// being redirected to a local server.
const OOB = "urn:ietf:wg:oauth:2.0:oob"

// Flow drives the installed-app OAuth authorization flow for a client
// configuration loaded from a Google credentials.json file.
type Flow struct {
	conf *oauth2.Config
}

// NewFlow loads the OAuth client configuration from credentialsFile.
func NewFlow(credentialsFile string) (*Flow, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	conf, err := google.ConfigFromJSON(data, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %w", err)
	}
	conf.RedirectURL = OOB

	return &Flow{conf: conf}, nil
}

// AuthURL returns the URL the user opens in a browser to authorize the
// tool. Offline access is requested so a refresh token is issued.
func (f *Flow) AuthURL() string {
	return f.conf.AuthCodeURL("state", oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// Exchange trades an authorization code for tokens and packages them as
// a credential bundle suitable for encrypted storage.
func (f *Flow) Exchange(ctx context.Context, authCode string) (*store.CredentialBundle, error) {
	t, err := f.conf.Exchange(ctx, authCode)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange auth code: %w", err)
	}

	return &store.CredentialBundle{
		Token:        t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenURI:     f.conf.Endpoint.TokenURL,
		ClientID:     f.conf.ClientID,
		ClientSecret: f.conf.ClientSecret,
		Scopes:       f.conf.Scopes,
	}, nil
}

// TokenSource rebuilds an auto-refreshing token source from a stored
// credential bundle. The expiry is set in the past so the first use
// refreshes the access token when a refresh token is present.
func TokenSource(ctx context.Context, b *store.CredentialBundle) (oauth2.TokenSource, error) {
	if b == nil || !b.Valid() {
		return nil, fmt.Errorf("no usable stored credentials; run login again")
	}

	conf := &oauth2.Config{
		ClientID:     b.ClientID,
		ClientSecret: b.ClientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:  google.Endpoint.AuthURL,
			TokenURL: b.TokenURI,
		},
		Scopes: b.Scopes,
	}

	tok := &oauth2.Token{
		AccessToken:  b.Token,
		TokenType:    "Bearer",
		RefreshToken: b.RefreshToken,
	}
	if b.RefreshToken != "" {
		tok.Expiry = time.Unix(1, 0)
	}

	return conf.TokenSource(ctx, tok), nil
}

// UserEmail asks Google who the token belongs to.
func UserEmail(ctx context.Context, ts oauth2.TokenSource) (string, error) {
	svc, err := oauth2api.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return "", fmt.Errorf("failed to create userinfo service: %w", err)
	}

	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to fetch user info: %w", err)
	}
	if info.Email == "" {
		return "", fmt.Errorf("userinfo response contained no email")
	}

	return info.Email, nil
}
