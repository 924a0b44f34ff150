package zendesk

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
)

// Credentials is an email/API-token pair. The token authenticates as
// "<email>/token" over HTTP Basic, per the Zendesk API convention.
type Credentials struct {
	Email string
	Token string
}

type Client struct {
	httpClient *http.Client
}

type APIError struct {
	Status int
	Body   string
}

const maxErrorBody = 512

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.Status, e.Body)
}

func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{httpClient: httpClient}
}

func (c *Client) doRequest(ctx context.Context, fullURL string, creds Credentials) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(creds.Email+"/token", creds.Token)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode, Body: truncate(string(body), maxErrorBody)}
	}
	return body, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

var schemeRe = regexp.MustCompile(`(?i)https?://`)

// SanitizeDomain normalizes a user-entered subdomain like
// "https://acme.zendesk.com/" down to "acme.zendesk.com".
func SanitizeDomain(domain string) string {
	clean := schemeRe.ReplaceAllString(domain, "")
	clean = strings.ReplaceAll(clean, "://", "")
	clean = strings.Trim(clean, "/")
	return strings.TrimSpace(clean)
}
