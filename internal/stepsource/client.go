// Package stepsource fetches daily step counts from an external pedometer service.
package stepsource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	requestTimeout = 10 * time.Second
	maxBodySize    = 1 << 20 // 1 MB
)

var (
	// ErrUnauthorized indicates the token is missing, expired or invalid.
	ErrUnauthorized = errors.New("stepsource: unauthorized (token expired or invalid)")
	// ErrRateLimited indicates the provider rate limit was hit.
	ErrRateLimited = errors.New("stepsource: rate limited")
)

// Provider reports the step count recorded for a date (YYYY-MM-DD).
type Provider interface {
	Steps(ctx context.Context, date string) (int, error)
}

// HTTPProvider reads steps from GET {base}/steps?date=YYYY-MM-DD.
type HTTPProvider struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewHTTPProvider creates a provider for baseURL. Returns nil if baseURL is empty.
func NewHTTPProvider(baseURL, token string) *HTTPProvider {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil
	}
	return &HTTPProvider{
		baseURL: baseURL,
		token:   strings.TrimSpace(token),
		http:    &http.Client{},
	}
}

type stepsResponse struct {
	Date  string `json:"date"`
	Steps int    `json:"steps"`
}

// Steps fetches the step count for date.
func (p *HTTPProvider) Steps(ctx context.Context, date string) (int, error) {
	body, err := p.get(ctx, "/steps?date="+url.QueryEscape(date))
	if err != nil {
		return 0, err
	}

	var resp stepsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, fmt.Errorf("stepsource: parsing steps: %w", err)
	}
	if resp.Date != "" && resp.Date != date {
		return 0, fmt.Errorf("stepsource: asked for %s, got %s", date, resp.Date)
	}
	if resp.Steps < 0 {
		return 0, fmt.Errorf("stepsource: negative step count %d", resp.Steps)
	}
	return resp.Steps, nil
}

// get performs an authenticated GET request and returns the response body.
func (p *HTTPProvider) get(ctx context.Context, path string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("stepsource: creating request: %w", err)
	}
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "truvida/1.0")

	resp, err := p.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stepsource: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrUnauthorized
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("stepsource: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("stepsource: reading response: %w", err)
	}
	return body, nil
}
