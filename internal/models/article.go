// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// ArticleStatus tracks an article through the generation queue.
type ArticleStatus string

const (
	ArticleStatusQueued     ArticleStatus = "queued"
	ArticleStatusGenerating ArticleStatus = "generating"
	ArticleStatusGenerated  ArticleStatus = "generated"
	ArticleStatusPublishing ArticleStatus = "publishing"
	ArticleStatusPublished  ArticleStatus = "published"
	ArticleStatusFailed     ArticleStatus = "failed"
)

// Article is one SEO article for a (template, service, city) slot.
// Titles are unique across the table; the queue never produces the
// same article twice.
type Article struct {
	ID uuid.UUID `json:"id"`
	// TemplateKey names the article formula, e.g. "best-in-city".
	TemplateKey string        `json:"template_key"`
	Service     string        `json:"service"`
	ServiceSlug string        `json:"service_slug"`
	City        string        `json:"city"`
	State       string        `json:"state"`
	Title       string        `json:"title"`
	Markdown    string        `json:"markdown"`
	HTML        string        `json:"html"`
	Status      ArticleStatus `json:"status"`
	// CategoryID is the WordPress category the post is filed under.
	CategoryID  int       `json:"category_id"`
	WordPressID *int      `json:"wordpress_id,omitempty"`
	URL         *string   `json:"url,omitempty"`
	Error       *string   `json:"error,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsPublished reports whether the article is live on WordPress.
func (a *Article) IsPublished() bool {
	return a.Status == ArticleStatusPublished
}
