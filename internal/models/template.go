// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// TemplateKind distinguishes how a page template's content is rendered.
type TemplateKind string

const (
	// TemplateKindElementor templates store an Elementor tree export;
	// generation rewrites its text blocks through the AI pipeline.
	TemplateKindElementor TemplateKind = "elementor"
	// TemplateKindHTML templates store flat HTML with {token}
	// placeholders; generation is pure substitution, no AI involved.
	TemplateKindHTML TemplateKind = "html"
)

// Default patterns used when a template does not set its own.
const (
	DefaultTitleTemplate = "{service} in {city}, {state_abbr}"
	DefaultSlugTemplate  = "{service_slug}-{city_slug}-{state_abbr_lower}"
)

// PageTemplate is a master page design for one service vertical. City
// pages are stamped out of it, one per (template, city) pairing.
type PageTemplate struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	Service     string       `json:"service"`
	ServiceSlug string       `json:"service_slug"`
	Kind        TemplateKind `json:"kind"`
	// Content is the Elementor JSON export or the flat HTML body,
	// depending on Kind.
	Content       string    `json:"content"`
	TitleTemplate string    `json:"title_template"`
	SlugTemplate  string    `json:"slug_template"`
	// CategoryID is the WordPress category articles for this service
	// are filed under.
	CategoryID int `json:"category_id"`
	// IsActive gates the daily rollout; inactive templates are still
	// editable and can be generated by ID, but automation skips them.
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TitlePattern returns the template's title pattern, falling back to
// the default.
func (t *PageTemplate) TitlePattern() string {
	if t.TitleTemplate != "" {
		return t.TitleTemplate
	}
	return DefaultTitleTemplate
}

// SlugPattern returns the template's slug pattern, falling back to the
// default.
func (t *PageTemplate) SlugPattern() string {
	if t.SlugTemplate != "" {
		return t.SlugTemplate
	}
	return DefaultSlugTemplate
}
