// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package facebook publishes promotional posts to a Facebook Page
// through the Graph API using a long-lived page access token.
package facebook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Config holds the Graph API settings for one Facebook page.
type Config struct {
	PageID      string
	AccessToken string
	// BaseURL overrides the Graph API endpoint, for tests.
	BaseURL string
}

// Client posts to a single Facebook page.
type Client struct {
	cfg    Config
	client *http.Client
}

// NewClient creates a Facebook Graph client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://graph.facebook.com/v18.0"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// PublishPost publishes a feed post with an optional link attachment
// and returns the Graph post ID.
func (c *Client) PublishPost(ctx context.Context, message, link string) (string, error) {
	form := url.Values{}
	form.Set("message", message)
	if link != "" {
		form.Set("link", link)
	}
	form.Set("access_token", c.cfg.AccessToken)

	endpoint := fmt.Sprintf("%s/%s/feed", c.cfg.BaseURL, c.cfg.PageID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("facebook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("facebook http: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("facebook read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("facebook API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("facebook unmarshal: %w", err)
	}
	if result.ID == "" {
		return "", fmt.Errorf("facebook: response has no post id")
	}
	return result.ID, nil
}

// VerifyToken checks the access token by fetching the page object.
func (c *Client) VerifyToken(ctx context.Context) error {
	endpoint := fmt.Sprintf("%s/%s?fields=id,name&access_token=%s",
		c.cfg.BaseURL, c.cfg.PageID, url.QueryEscape(c.cfg.AccessToken))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("facebook request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("facebook http: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("facebook token check failed (status %d): %s", resp.StatusCode, string(body))
	}
	return nil
}
