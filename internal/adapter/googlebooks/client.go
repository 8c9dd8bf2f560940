package googlebooks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"shelfio-backend/internal/config"
	"shelfio-backend/pkg/logger"
)

const (
	defaultAuthorFirstName = "Unknown"
	defaultAuthorLastName  = "Author"
)

// Client looks up book metadata on the Google Books volumes API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(cfg *config.GoogleBooksConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// normalizeISBN strips hyphens and spaces.
func normalizeISBN(isbn string) string {
	normalized := strings.ReplaceAll(isbn, "-", "")
	return strings.ReplaceAll(normalized, " ", "")
}

// FetchByISBN queries the volumes endpoint for an ISBN. A lookup with
// no matching items returns (nil, nil): absence is not an error, only
// transport failures and malformed responses are.
func (c *Client) FetchByISBN(ctx context.Context, isbn string) (*ExternalBook, error) {
	if isbn == "" {
		return nil, fmt.Errorf("isbn is required")
	}

	normalized := normalizeISBN(isbn)

	endpoint := fmt.Sprintf("%s/volumes?q=%s", c.baseURL, url.QueryEscape("isbn:"+normalized))
	if c.apiKey != "" {
		endpoint += "&key=" + url.QueryEscape(c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build google books request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google books request failed for ISBN %s: %w", isbn, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google books returned status %d for ISBN %s", resp.StatusCode, isbn)
	}

	var result volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode google books response for ISBN %s: %w", isbn, err)
	}

	if result.TotalItems == 0 || len(result.Items) == 0 {
		logger.Info("no google books match", map[string]interface{}{"isbn": isbn})
		return nil, nil
	}

	book := normalize(result.Items[0].VolumeInfo, isbn)

	logger.Info("fetched book metadata", map[string]interface{}{
		"isbn":  isbn,
		"title": book.Title,
	})

	return book, nil
}

// normalize maps a raw volumeInfo onto the canonical external record.
func normalize(info volumeInfo, isbn string) *ExternalBook {
	book := &ExternalBook{
		Title:           info.Title,
		ISBN:            isbn,
		Pages:           info.PageCount,
		Publisher:       info.Publisher,
		Categories:      stringCategories(info.Categories),
		AuthorFirstName: defaultAuthorFirstName,
		AuthorLastName:  defaultAuthorLastName,
	}

	if len(info.Authors) > 0 && info.Authors[0] != "" {
		book.AuthorFirstName, book.AuthorLastName = splitAuthorName(info.Authors[0])
	}

	if info.ImageLinks != nil {
		book.CoverURL = info.ImageLinks.Thumbnail
	}

	return book
}

// stringCategories keeps only string entries; a malformed or absent
// category list degrades to empty.
func stringCategories(raw []interface{}) []string {
	categories := make([]string, 0, len(raw))
	for _, entry := range raw {
		if s, ok := entry.(string); ok {
			categories = append(categories, s)
		}
	}
	return categories
}

// splitAuthorName splits on the first space. A single-token author name
// keeps the default last name.
func splitAuthorName(name string) (string, string) {
	parts := strings.SplitN(name, " ", 2)
	first := parts[0]
	last := defaultAuthorLastName
	if len(parts) > 1 {
		last = parts[1]
	}
	return first, last
}
