package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"strings"
	"time"

	"golang.org/x/oauth2"
	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// Client wraps the Gmail Users service for draft management.
type Client struct {
	svc *gmail.UsersService
}

// NewClient creates a Gmail client authenticated by the token source.
func NewClient(ctx context.Context, ts oauth2.TokenSource) (*Client, error) {
	svc, err := gmail.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}
	return &Client{svc: svc.Users}, nil
}

// Draft is a compact view of a Gmail draft for listings.
type Draft struct {
	ID      string
	Subject string
	To      string
	Date    string
}

// DraftContent is a draft with its decoded body for display.
type DraftContent struct {
	ID      string
	Subject string
	To      string
	Body    string
}

// CreateDraft files an email as a Gmail draft and returns the draft ID.
// The body is the raw generated text; it is normalized to HTML before
// being wrapped in the email shell.
func (c *Client) CreateDraft(ctx context.Context, to, subject, body string) (string, error) {
	if to == "" {
		return "", fmt.Errorf("recipient is required")
	}
	if subject == "" {
		return "", fmt.Errorf("subject is required")
	}
	if body == "" {
		return "", fmt.Errorf("body is required")
	}

	raw := buildMessage(to, subject, RenderBody(body))

	draft, err := c.svc.Drafts.Create("me", &gmail.Draft{
		Message: &gmail.Message{Raw: raw},
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create draft: %w", err)
	}

	return draft.Id, nil
}

// ListDrafts returns the most recent drafts, newest first.
func (c *Client) ListDrafts(ctx context.Context, maxResults int64) ([]Draft, error) {
	res, err := c.svc.Drafts.List("me").MaxResults(maxResults).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}

	drafts := make([]Draft, 0, len(res.Drafts))
	for _, d := range res.Drafts {
		detail, err := c.svc.Drafts.Get("me", d.Id).Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("failed to get draft %s: %w", d.Id, err)
		}
		drafts = append(drafts, summarizeDraft(detail))
	}

	return drafts, nil
}

// GetDraft fetches a single draft with its decoded and cleaned body.
func (c *Client) GetDraft(ctx context.Context, draftID string) (*DraftContent, error) {
	detail, err := c.svc.Drafts.Get("me", draftID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get draft %s: %w", draftID, err)
	}

	payload := detail.Message.Payload
	body, err := extractBody(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode draft %s body: %w", draftID, err)
	}

	return &DraftContent{
		ID:      detail.Id,
		Subject: headerValue(payload, "Subject", "No Subject"),
		To:      headerValue(payload, "To", "Unknown"),
		Body:    CleanHTML(body),
	}, nil
}

func summarizeDraft(d *gmail.Draft) Draft {
	payload := d.Message.Payload

	date := "Unknown"
	if d.Message.InternalDate > 0 {
		date = time.UnixMilli(d.Message.InternalDate).Format("2006-01-02 15:04")
	}

	return Draft{
		ID:      d.Id,
		Subject: headerValue(payload, "Subject", "No Subject"),
		To:      headerValue(payload, "To", "Unknown"),
		Date:    date,
	}
}

func headerValue(payload *gmail.MessagePart, name, fallback string) string {
	if payload == nil {
		return fallback
	}
	for _, h := range payload.Headers {
		if h.Name == name {
			return h.Value
		}
	}
	return fallback
}

// extractBody decodes the message body, preferring the HTML part of a
// multipart payload and falling back to plain text.
func extractBody(payload *gmail.MessagePart) (string, error) {
	if payload == nil {
		return "", nil
	}

	if len(payload.Parts) > 0 {
		var plain string
		for _, part := range payload.Parts {
			if part.Body == nil || part.Body.Data == "" {
				continue
			}
			switch part.MimeType {
			case "text/html":
				return decodePart(part.Body.Data)
			case "text/plain":
				if plain == "" {
					decoded, err := decodePart(part.Body.Data)
					if err != nil {
						return "", err
					}
					plain = decoded
				}
			}
		}
		return plain, nil
	}

	if payload.Body != nil && payload.Body.Data != "" {
		return decodePart(payload.Body.Data)
	}
	return "", nil
}

func decodePart(data string) (string, error) {
	decoded, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		// Gmail omits padding on some parts.
		decoded, err = base64.RawURLEncoding.DecodeString(data)
		if err != nil {
			return "", err
		}
	}
	return string(decoded), nil
}

// buildMessage assembles a single-part HTML email in RFC 2822 format
// and returns it base64url-encoded for the Gmail API.
func buildMessage(to, subject, htmlBody string) string {
	var b strings.Builder

	b.WriteString("To: ")
	b.WriteString(to)
	b.WriteString("\r\n")

	b.WriteString("Subject: ")
	b.WriteString(encodeRFC2047(subject))
	b.WriteString("\r\n")

	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)

	return base64.URLEncoding.EncodeToString([]byte(b.String()))
}

// encodeRFC2047 encodes a header value when it carries non-ASCII
// characters.
func encodeRFC2047(s string) string {
	for _, r := range s {
		if r > 127 {
			return mime.BEncoding.Encode("UTF-8", s)
		}
	}
	return s
}
