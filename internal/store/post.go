// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"localpress/internal/models"
)

// PostStore handles Facebook post history database operations.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a PostStore on the given connection pool.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

const postColumns = `id, article_id, category, message, link, facebook_id, status, error, created_at`

func scanPost(row interface{ Scan(...any) error }) (*models.SocialPost, error) {
	p := &models.SocialPost{}
	err := row.Scan(
		&p.ID, &p.ArticleID, &p.Category, &p.Message, &p.Link,
		&p.FacebookID, &p.Status, &p.Error, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Create records one post attempt, successful or not.
func (s *PostStore) Create(p *models.SocialPost) (*models.SocialPost, error) {
	created, err := scanPost(s.db.QueryRow(`
		INSERT INTO social_posts (article_id, category, message, link, facebook_id, status, error)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+postColumns,
		p.ArticleID, p.Category, p.Message, p.Link, p.FacebookID, p.Status, p.Error))
	if err != nil {
		return nil, fmt.Errorf("create social post: %w", err)
	}
	return created, nil
}

// List returns posts, newest first.
func (s *PostStore) List(limit int) ([]models.SocialPost, error) {
	rows, err := s.db.Query(
		`SELECT `+postColumns+` FROM social_posts ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list social posts: %w", err)
	}
	defer rows.Close()

	var items []models.SocialPost
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan social post: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// Count returns the total number of recorded posts.
func (s *PostStore) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM social_posts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count social posts: %w", err)
	}
	return n, nil
}
