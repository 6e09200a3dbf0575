// Package omeka downloads CSV exports from an Omeka Classic installation.
package omeka

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/bassettarchive/omeka-ingest/internal/table"
)

// Client fetches export tables over HTTP. The zero API key means the export
// is publicly readable.
type Client struct {
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new export client.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// FetchExport downloads the CSV export at exportURL and parses it into a
// table.
func (c *Client) FetchExport(ctx context.Context, exportURL string) (*table.Table, error) {
	reqURL, err := url.Parse(exportURL)
	if err != nil {
		return nil, fmt.Errorf("parsing export URL: %w", err)
	}
	if c.apiKey != "" {
		q := reqURL.Query()
		q.Set("key", c.apiKey)
		reqURL.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/csv")

	slog.InfoContext(ctx, "downloading export", "url", exportURL)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ClientError{Message: fmt.Sprintf("export download failed: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &apiError{StatusCode: resp.StatusCode, Message: "export download failed"}
	}

	t, err := table.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing export: %w", err)
	}

	slog.InfoContext(ctx, "export downloaded", "rows", len(t.Rows))
	return t, nil
}
