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

// PageStore handles generated city page database operations.
type PageStore struct {
	db *sql.DB
}

// NewPageStore creates a PageStore on the given connection pool.
func NewPageStore(db *sql.DB) *PageStore {
	return &PageStore{db: db}
}

const pageColumns = `id, template_id, city, city_slug, state, state_abbr,
       service, service_slug, title, slug, status,
       wordpress_id, url, published_at, error, created_at, updated_at`

func scanPage(row interface{ Scan(...any) error }) (*models.GeneratedPage, error) {
	p := &models.GeneratedPage{}
	err := row.Scan(
		&p.ID, &p.TemplateID, &p.City, &p.CitySlug, &p.State, &p.StateAbbr,
		&p.Service, &p.ServiceSlug, &p.Title, &p.Slug, &p.Status,
		&p.WordPressID, &p.URL, &p.PublishedAt, &p.Error, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// FindByTemplateAndCity retrieves the page row for a (template, city,
// state) slot. Returns nil if no generation has been attempted yet.
func (s *PageStore) FindByTemplateAndCity(templateID uuid.UUID, city, state string) (*models.GeneratedPage, error) {
	p, err := scanPage(s.db.QueryRow(
		`SELECT `+pageColumns+` FROM generated_pages
		 WHERE template_id = $1 AND city = $2 AND state = $3`,
		templateID, city, state))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find page by template and city: %w", err)
	}
	return p, nil
}

// BeginAttempt creates or resets the page row for a generation attempt.
// The unique (template_id, city, state) index makes this the
// concurrency backstop: two concurrent attempts for the same slot
// converge on one row.
func (s *PageStore) BeginAttempt(page *models.GeneratedPage) (*models.GeneratedPage, error) {
	p, err := scanPage(s.db.QueryRow(`
		INSERT INTO generated_pages (template_id, city, city_slug, state, state_abbr,
		                             service, service_slug, title, slug, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 'pending')
		ON CONFLICT (template_id, city, state)
		DO UPDATE SET city_slug = $3, state_abbr = $5, service = $6, service_slug = $7,
		              title = $8, slug = $9, status = 'pending', error = NULL, updated_at = now()
		RETURNING `+pageColumns,
		page.TemplateID, page.City, page.CitySlug, page.State, page.StateAbbr,
		page.Service, page.ServiceSlug, page.Title, page.Slug))
	if err != nil {
		return nil, fmt.Errorf("begin page attempt: %w", err)
	}
	return p, nil
}

// MarkPublished records a successful publish.
func (s *PageStore) MarkPublished(id uuid.UUID, wordpressID int, url string) error {
	_, err := s.db.Exec(`
		UPDATE generated_pages
		SET status = 'published', wordpress_id = $2, url = $3, error = NULL,
		    published_at = now(), updated_at = now()
		WHERE id = $1`, id, wordpressID, url)
	if err != nil {
		return fmt.Errorf("mark page published: %w", err)
	}
	return nil
}

// MarkFailed records a failed attempt with its error message.
func (s *PageStore) MarkFailed(id uuid.UUID, errMsg string) error {
	_, err := s.db.Exec(`
		UPDATE generated_pages
		SET status = 'failed', error = $2, updated_at = now()
		WHERE id = $1`, id, errMsg)
	if err != nil {
		return fmt.Errorf("mark page failed: %w", err)
	}
	return nil
}

// List returns pages, newest first, optionally filtered by status.
// Pass an empty status for all pages.
func (s *PageStore) List(status models.PageStatus, limit int) ([]models.GeneratedPage, error) {
	query := `SELECT ` + pageColumns + ` FROM generated_pages`
	args := []any{limit}
	if status != "" {
		query += ` WHERE status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY updated_at DESC LIMIT $1`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	defer rows.Close()

	var items []models.GeneratedPage
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan page: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// CitiesWithPublishedPages returns the distinct cities that already
// have at least one published page, used for rotation bookkeeping.
func (s *PageStore) CitiesWithPublishedPages() (map[string]bool, error) {
	rows, err := s.db.Query(`SELECT DISTINCT city FROM generated_pages WHERE status = 'published'`)
	if err != nil {
		return nil, fmt.Errorf("list published cities: %w", err)
	}
	defer rows.Close()

	cities := make(map[string]bool)
	for rows.Next() {
		var city string
		if err := rows.Scan(&city); err != nil {
			return nil, fmt.Errorf("scan city: %w", err)
		}
		cities[city] = true
	}
	return cities, rows.Err()
}

// CountByStatus returns page counts grouped by status.
func (s *PageStore) CountByStatus() (map[models.PageStatus]int, error) {
	rows, err := s.db.Query(`SELECT status, COUNT(*) FROM generated_pages GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count pages by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.PageStatus]int)
	for rows.Next() {
		var status models.PageStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan page count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
