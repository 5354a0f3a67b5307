// Package google provides OAuth2 authorization and token management
// for the Google APIs the tool talks to.
//
// Login runs the installed-app flow against a credentials.json client
// configuration and produces a credential bundle that the store keeps
// encrypted at rest. TokenSource rebuilds an auto-refreshing
// oauth2.TokenSource from such a bundle for the Sheets and Gmail
// clients.
package google
