// Package cmd implements the command-line interface for automated-email.
//
// This package provides the following commands:
//   - login: Authorize a Google account and store its credentials
//   - logout: Remove a stored account
//   - whoami: Show which account the tool will use
//   - users: List and delete stored accounts
//   - report: Compose the daily status email (preview or Gmail draft)
//   - drafts: List and show Gmail drafts
//   - version: Display version information
package cmd
