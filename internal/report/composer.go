package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"
)

// retryBackoff is how long to wait before the single retry after a
// quota failure.
const retryBackoff = 10 * time.Second

// Generator produces email text from a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiGenerator calls the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a generator for the given API key and
// model name.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("model returned an empty response")
	}
	return text, nil
}

// Composer turns sheet rows into email body text, respecting the rate
// limit and retrying once on quota failures.
type Composer struct {
	gen     Generator
	limiter *Limiter

	sleep func(time.Duration)
}

// NewComposer wires a generator to the shared rate limiter.
func NewComposer(gen Generator, limiter *Limiter) *Composer {
	return &Composer{
		gen:     gen,
		limiter: limiter,
		sleep:   time.Sleep,
	}
}

// Compose builds the prompt from rows and asks the model for the email
// body. A quota failure is retried exactly once after a fixed backoff;
// every other failure is returned immediately, classified for the user.
func (c *Composer) Compose(ctx context.Context, rows [][]string, now time.Time) (string, error) {
	prompt := BuildPrompt(rows, now)

	c.limiter.Wait()
	c.limiter.Record()

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		text, err := c.gen.Generate(ctx, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if attempt == 0 && isQuotaError(err) {
			slog.Warn("model call hit a quota limit, retrying once",
				slog.Duration("backoff", retryBackoff))
			c.sleep(retryBackoff)
			continue
		}
		break
	}

	return "", classifyGenerateError(lastErr)
}

// isQuotaError reports whether err looks like a quota or rate-limit
// failure, the only class worth retrying.
func isQuotaError(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == 429 {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "quota") || strings.Contains(s, "rate") || strings.Contains(s, "429")
}

// classifyGenerateError maps raw model failures to actionable messages.
func classifyGenerateError(err error) error {
	msg := err.Error()
	lower := strings.ToLower(msg)

	switch {
	case strings.Contains(msg, "API_KEY") || strings.Contains(lower, "invalid"):
		return fmt.Errorf("invalid Gemini API key, please check your key: %w", err)
	case strings.Contains(lower, "quota") || strings.Contains(lower, "rate") || strings.Contains(lower, "429"):
		return fmt.Errorf("rate limit reached: wait 90 seconds before trying again (free tier allows 15 requests/minute), or use a paid API key: %w", err)
	case strings.Contains(lower, "timeout"):
		return fmt.Errorf("request timed out, please try again: %w", err)
	default:
		if len(msg) > 300 {
			msg = msg[:300]
		}
		return fmt.Errorf("model request failed: %s", msg)
	}
}
