// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// PageStatus tracks a generated city page through its lifecycle.
type PageStatus string

const (
	PageStatusPending   PageStatus = "pending"
	PageStatusPublished PageStatus = "published"
	PageStatusFailed    PageStatus = "failed"
)

// GeneratedPage records one generation attempt of a template for a
// city. At most one row exists per (template, city, state); re-running
// a failed generation reuses the row.
type GeneratedPage struct {
	ID         uuid.UUID `json:"id"`
	TemplateID uuid.UUID `json:"template_id"`
	City       string    `json:"city"`
	// CitySlug, StateAbbr, Service and ServiceSlug are denormalized from
	// the template and the rollout list at attempt time, so page rows
	// stay meaningful after a template is renamed or deleted.
	CitySlug    string     `json:"city_slug"`
	State       string     `json:"state"`
	StateAbbr   string     `json:"state_abbr"`
	Service     string     `json:"service"`
	ServiceSlug string     `json:"service_slug"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Status      PageStatus `json:"status"`
	// WordPressID, URL and PublishedAt are set once the page is live.
	WordPressID *int       `json:"wordpress_id,omitempty"`
	URL         *string    `json:"url,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Error       *string    `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// IsPublished reports whether the page is live on WordPress.
func (p *GeneratedPage) IsPublished() bool {
	return p.Status == PageStatusPublished
}
