// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"localpress/internal/models"
)

// ArticleStore handles article queue database operations.
type ArticleStore struct {
	db *sql.DB
}

// NewArticleStore creates an ArticleStore on the given connection pool.
func NewArticleStore(db *sql.DB) *ArticleStore {
	return &ArticleStore{db: db}
}

const articleColumns = `id, template_key, service, service_slug, city, state, title,
       markdown, html, status, category_id, wordpress_id, url, error,
       created_at, updated_at`

func scanArticle(row interface{ Scan(...any) error }) (*models.Article, error) {
	a := &models.Article{}
	err := row.Scan(
		&a.ID, &a.TemplateKey, &a.Service, &a.ServiceSlug, &a.City, &a.State, &a.Title,
		&a.Markdown, &a.HTML, &a.Status, &a.CategoryID, &a.WordPressID, &a.URL, &a.Error,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Enqueue inserts a queued article. The unique title index rejects
// duplicates; callers check TitleExists first and treat a conflict
// here as a benign race.
func (s *ArticleStore) Enqueue(a *models.Article) (*models.Article, error) {
	created, err := scanArticle(s.db.QueryRow(`
		INSERT INTO articles (template_key, service, service_slug, city, state, title, category_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'queued')
		RETURNING `+articleColumns,
		a.TemplateKey, a.Service, a.ServiceSlug, a.City, a.State, a.Title, a.CategoryID))
	if err != nil {
		return nil, fmt.Errorf("enqueue article: %w", err)
	}
	return created, nil
}

// TitleExists reports whether any article already carries the title.
func (s *ArticleStore) TitleExists(title string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`SELECT EXISTS (SELECT 1 FROM articles WHERE title = $1)`, title).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check article title: %w", err)
	}
	return exists, nil
}

// FindByID retrieves an article by its UUID. Returns nil if not found.
func (s *ArticleStore) FindByID(id uuid.UUID) (*models.Article, error) {
	a, err := scanArticle(s.db.QueryRow(
		`SELECT `+articleColumns+` FROM articles WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find article by id: %w", err)
	}
	return a, nil
}

// NextQueued claims the oldest queued article and flips it to
// generating in one statement, so concurrent runners never pick the
// same article. Returns nil when the queue is empty.
func (s *ArticleStore) NextQueued() (*models.Article, error) {
	a, err := scanArticle(s.db.QueryRow(`
		UPDATE articles
		SET status = 'generating', updated_at = now()
		WHERE id = (
			SELECT id FROM articles WHERE status = 'queued'
			ORDER BY created_at
			FOR UPDATE SKIP LOCKED
			LIMIT 1
		)
		RETURNING ` + articleColumns))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("claim queued article: %w", err)
	}
	return a, nil
}

// MarkGenerated stores the generated content and advances the status.
func (s *ArticleStore) MarkGenerated(id uuid.UUID, markdown, html string) error {
	_, err := s.db.Exec(`
		UPDATE articles
		SET status = 'generated', markdown = $2, html = $3, error = NULL, updated_at = now()
		WHERE id = $1`, id, markdown, html)
	if err != nil {
		return fmt.Errorf("mark article generated: %w", err)
	}
	return nil
}

// SetStatus moves an article to the given status.
func (s *ArticleStore) SetStatus(id uuid.UUID, status models.ArticleStatus) error {
	_, err := s.db.Exec(`UPDATE articles SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("set article status: %w", err)
	}
	return nil
}

// MarkPublished records a successful WordPress publish.
func (s *ArticleStore) MarkPublished(id uuid.UUID, wordpressID int, url string) error {
	_, err := s.db.Exec(`
		UPDATE articles
		SET status = 'published', wordpress_id = $2, url = $3, error = NULL, updated_at = now()
		WHERE id = $1`, id, wordpressID, url)
	if err != nil {
		return fmt.Errorf("mark article published: %w", err)
	}
	return nil
}

// MarkFailed records a failure with its error message.
func (s *ArticleStore) MarkFailed(id uuid.UUID, errMsg string) error {
	_, err := s.db.Exec(`
		UPDATE articles
		SET status = 'failed', error = $2, updated_at = now()
		WHERE id = $1`, id, errMsg)
	if err != nil {
		return fmt.Errorf("mark article failed: %w", err)
	}
	return nil
}

// List returns articles, newest first, optionally filtered by status.
func (s *ArticleStore) List(status models.ArticleStatus, limit int) ([]models.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles`
	args := []any{limit}
	if status != "" {
		query += ` WHERE status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY updated_at DESC LIMIT $1`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	var items []models.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		items = append(items, *a)
	}
	return items, rows.Err()
}

// NextUnpromoted returns the oldest published article that has no
// social post yet. Returns nil when every published article has been
// promoted.
func (s *ArticleStore) NextUnpromoted() (*models.Article, error) {
	a, err := scanArticle(s.db.QueryRow(`
		SELECT ` + articleColumns + ` FROM articles a
		WHERE a.status = 'published'
		  AND NOT EXISTS (SELECT 1 FROM social_posts sp WHERE sp.article_id = a.id)
		ORDER BY a.updated_at
		LIMIT 1`))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find unpromoted article: %w", err)
	}
	return a, nil
}

// CountByStatus returns article counts grouped by status.
func (s *ArticleStore) CountByStatus() (map[models.ArticleStatus]int, error) {
	rows, err := s.db.Query(`SELECT status, COUNT(*) FROM articles GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count articles by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.ArticleStatus]int)
	for rows.Next() {
		var status models.ArticleStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan article count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
