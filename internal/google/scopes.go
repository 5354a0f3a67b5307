package google

// Scopes are the Google OAuth scopes the tool requests during login.
//
// The scopes provide access to:
//   - Google Sheets: read-only (status rows)
//   - Gmail: compose (drafts only, no send)
//   - User info: the authenticated account's email address
var Scopes = []string{
	"https://www.googleapis.com/auth/spreadsheets.readonly",
	"https://www.googleapis.com/auth/gmail.compose",
	"https://www.googleapis.com/auth/userinfo.email",
	"openid",
}
