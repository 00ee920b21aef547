// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// SocialPostStatus tracks a Facebook feed post attempt.
type SocialPostStatus string

const (
	SocialPostStatusPublished SocialPostStatus = "published"
	SocialPostStatusFailed    SocialPostStatus = "failed"
)

// SocialPost records one promotional post made to the Facebook page.
type SocialPost struct {
	ID uuid.UUID `json:"id"`
	// ArticleID links back to the promoted article, when the post
	// promotes one.
	ArticleID *uuid.UUID `json:"article_id,omitempty"`
	// Category is the content rotation slot the post was drawn from.
	Category   string           `json:"category"`
	Message    string           `json:"message"`
	Link       string           `json:"link,omitempty"`
	FacebookID *string          `json:"facebook_id,omitempty"`
	Status     SocialPostStatus `json:"status"`
	Error      *string          `json:"error,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
}
