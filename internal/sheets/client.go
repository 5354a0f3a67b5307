package sheets

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"
)

// ErrNoData indicates the requested range exists but contains no rows.
var ErrNoData = errors.New("no data found in the requested range")

// Client wraps the Google Sheets API for reading status rows.
type Client struct {
	service *sheets.Service
}

// NewClient creates a Sheets client authenticated by the token source.
func NewClient(ctx context.Context, ts oauth2.TokenSource) (*Client, error) {
	service, err := sheets.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &Client{service: service}, nil
}

// Read fetches the values in rangeName from the spreadsheet and returns
// them as rows of strings. Non-string cell values are rendered through
// the API's formatted-value projection.
func (c *Client) Read(ctx context.Context, spreadsheetID, rangeName string) ([][]string, error) {
	resp, err := c.service.Spreadsheets.Values.Get(spreadsheetID, rangeName).
		Context(ctx).Do()
	if err != nil {
		return nil, classifyError(err, spreadsheetID)
	}

	if len(resp.Values) == 0 {
		return nil, ErrNoData
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, 0, len(raw))
		for _, cell := range raw {
			row = append(row, fmt.Sprintf("%v", cell))
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// classifyError turns Google API failures into actionable messages.
func classifyError(err error, spreadsheetID string) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 403:
			return fmt.Errorf("permission denied for spreadsheet %s: share it with the authorized account: %w", spreadsheetID, err)
		case 404:
			return fmt.Errorf("spreadsheet %s not found: check the spreadsheet ID: %w", spreadsheetID, err)
		}
	}
	return fmt.Errorf("failed to read spreadsheet %s: %w", spreadsheetID, err)
}
