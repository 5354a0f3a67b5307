// Package report composes the daily status email: it renders the
// spreadsheet rows into a prompt, asks the Gemini model for body text,
// and derives the dated subject line. Model calls are spaced by a
// shared rate limiter and quota failures get a single retry.
package report
