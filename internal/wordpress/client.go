// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package wordpress is a client for the WordPress REST API (wp/v2).
// It publishes generated city pages as Elementor-backed pages and
// generated articles as regular posts, authenticating with an
// application password over HTTP Basic auth.
package wordpress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Config holds the connection settings for one WordPress site.
type Config struct {
	// BaseURL is the site root, e.g. https://example-market.com.
	BaseURL string
	// Username is the WordPress account owning the application password.
	Username string
	// AppPassword is a WordPress application password.
	AppPassword string
}

// Client talks to a single WordPress site.
type Client struct {
	cfg    Config
	client *http.Client
}

// NewClient creates a WordPress client. The base URL may carry a
// trailing slash; it is normalized away.
func NewClient(cfg Config) *Client {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

// renderedField is WordPress's {"rendered": "..."} wrapper.
type renderedField struct {
	Rendered string `json:"rendered"`
}

// Page is the subset of a wp/v2 page object the pipeline reads back.
type Page struct {
	ID     int           `json:"id"`
	Slug   string        `json:"slug"`
	Status string        `json:"status"`
	Link   string        `json:"link"`
	Title  renderedField `json:"title"`
}

// PageContent is the payload for creating or updating a page. When
// ElementorData is set the page is published in builder mode and HTML
// is ignored by the theme; plain HTML pages leave it empty.
type PageContent struct {
	Title         string
	Slug          string
	Status        string
	HTML          string
	ElementorData string
}

// Post is the subset of a wp/v2 post object the pipeline reads back.
type Post struct {
	ID     int           `json:"id"`
	Slug   string        `json:"slug"`
	Status string        `json:"status"`
	Link   string        `json:"link"`
	Title  renderedField `json:"title"`
}

// PostContent is the payload for creating an article post.
type PostContent struct {
	Title      string
	HTML       string
	Status     string
	Categories []int
}

// Verify checks credentials by fetching the authenticated user.
func (c *Client) Verify(ctx context.Context) error {
	var me struct {
		ID int `json:"id"`
	}
	if err := c.do(ctx, http.MethodGet, "/wp-json/wp/v2/users/me", nil, &me); err != nil {
		return fmt.Errorf("wordpress verify: %w", err)
	}
	return nil
}

// FindPageBySlug looks a page up by its slug, in any status. Returns
// (nil, nil) when no page has the slug.
func (c *Client) FindPageBySlug(ctx context.Context, slug string) (*Page, error) {
	path := "/wp-json/wp/v2/pages?status=any&slug=" + url.QueryEscape(slug)
	var pages []Page
	if err := c.do(ctx, http.MethodGet, path, nil, &pages); err != nil {
		return nil, fmt.Errorf("wordpress find page %q: %w", slug, err)
	}
	if len(pages) == 0 {
		return nil, nil
	}
	return &pages[0], nil
}

// CreatePage publishes a new page.
func (c *Client) CreatePage(ctx context.Context, content PageContent) (*Page, error) {
	var page Page
	if err := c.do(ctx, http.MethodPost, "/wp-json/wp/v2/pages", pageBody(content), &page); err != nil {
		return nil, fmt.Errorf("wordpress create page %q: %w", content.Slug, err)
	}
	return &page, nil
}

// UpdatePage overwrites an existing page's content and status.
func (c *Client) UpdatePage(ctx context.Context, id int, content PageContent) (*Page, error) {
	var page Page
	path := fmt.Sprintf("/wp-json/wp/v2/pages/%d", id)
	if err := c.do(ctx, http.MethodPost, path, pageBody(content), &page); err != nil {
		return nil, fmt.Errorf("wordpress update page %d: %w", id, err)
	}
	return &page, nil
}

// CreatePost publishes an article as a regular post.
func (c *Client) CreatePost(ctx context.Context, content PostContent) (*Post, error) {
	body := map[string]any{
		"title":   content.Title,
		"content": content.HTML,
		"status":  content.Status,
	}
	if len(content.Categories) > 0 {
		body["categories"] = content.Categories
	}

	var post Post
	if err := c.do(ctx, http.MethodPost, "/wp-json/wp/v2/posts", body, &post); err != nil {
		return nil, fmt.Errorf("wordpress create post %q: %w", content.Title, err)
	}
	return &post, nil
}

// pageBody builds the wp/v2 request body for a page. Elementor pages
// carry the tree in meta._elementor_data with the edit mode forced to
// builder, so the plugin renders the injected design instead of the
// post content.
func pageBody(content PageContent) map[string]any {
	body := map[string]any{
		"title":  content.Title,
		"slug":   content.Slug,
		"status": content.Status,
	}
	if content.ElementorData != "" {
		body["content"] = " "
		body["meta"] = map[string]any{
			"_elementor_data":      content.ElementorData,
			"_elementor_edit_mode": "builder",
		}
	} else {
		body["content"] = content.HTML
	}
	return body
}

// do performs one authenticated API call and decodes the response into
// out (when non-nil).
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.SetBasicAuth(c.cfg.Username, c.cfg.AppPassword)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, truncate(respBody, 500))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
