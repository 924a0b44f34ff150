package zendesk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// FetchIncrementalTickets fetches one page of tickets changed since
// startTime (epoch seconds), with users, metric sets and brands sideloaded.
func (c *Client) FetchIncrementalTickets(ctx context.Context, domain string, creds Credentials, startTime int64) (*IncrementalPage, error) {
	domain = SanitizeDomain(domain)
	if domain == "" {
		return nil, fmt.Errorf("domain is required")
	}
	query := url.Values{}
	query.Set("start_time", strconv.FormatInt(startTime, 10))
	query.Set("include", "users,metric_sets,brands")
	fullURL := "https://" + domain + "/api/v2/incremental/tickets.json?" + query.Encode()

	body, err := c.doRequest(ctx, fullURL, creds)
	if err != nil {
		return nil, err
	}
	var page IncrementalPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("failed to decode incremental export page: %w", err)
	}
	return &page, nil
}

// FetchStaff fetches the agent/admin roster. Unlike the incremental export
// this is a plain snapshot endpoint with no watermark.
func (c *Client) FetchStaff(ctx context.Context, domain string, creds Credentials) (*StaffPage, error) {
	domain = SanitizeDomain(domain)
	if domain == "" {
		return nil, fmt.Errorf("domain is required")
	}
	fullURL := "https://" + domain + "/api/v2/users.json?role%5B%5D=agent&role%5B%5D=admin"

	body, err := c.doRequest(ctx, fullURL, creds)
	if err != nil {
		return nil, err
	}
	var page StaffPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("failed to decode users page: %w", err)
	}
	return &page, nil
}
