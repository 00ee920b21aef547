// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store implements the persistence layer over PostgreSQL.
// Each aggregate gets its own store type on a shared *sql.DB pool.
package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"localpress/internal/models"
)

// TemplateStore handles page template database operations.
type TemplateStore struct {
	db *sql.DB
}

// NewTemplateStore creates a TemplateStore on the given connection pool.
func NewTemplateStore(db *sql.DB) *TemplateStore {
	return &TemplateStore{db: db}
}

const templateColumns = `id, name, service, service_slug, kind, content,
       title_template, slug_template, category_id, is_active, created_at, updated_at`

func scanTemplate(row interface{ Scan(...any) error }) (*models.PageTemplate, error) {
	t := &models.PageTemplate{}
	err := row.Scan(
		&t.ID, &t.Name, &t.Service, &t.ServiceSlug, &t.Kind, &t.Content,
		&t.TitleTemplate, &t.SlugTemplate, &t.CategoryID, &t.IsActive, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// List returns all templates ordered by service name, active or not.
// The dashboard uses this; automation goes through ListActive.
func (s *TemplateStore) List() ([]models.PageTemplate, error) {
	return s.list(`SELECT ` + templateColumns + ` FROM page_templates ORDER BY service`)
}

// ListActive returns only the templates enabled for automated rollout.
func (s *TemplateStore) ListActive() ([]models.PageTemplate, error) {
	return s.list(`SELECT ` + templateColumns + ` FROM page_templates WHERE is_active ORDER BY service`)
}

func (s *TemplateStore) list(query string) ([]models.PageTemplate, error) {
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var items []models.PageTemplate
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		items = append(items, *t)
	}
	return items, rows.Err()
}

// FindByID retrieves a template by its UUID. Returns nil if not found.
func (s *TemplateStore) FindByID(id uuid.UUID) (*models.PageTemplate, error) {
	t, err := scanTemplate(s.db.QueryRow(
		`SELECT `+templateColumns+` FROM page_templates WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find template by id: %w", err)
	}
	return t, nil
}

// FindByServiceSlug retrieves the template for a service vertical.
// Returns nil if not found.
func (s *TemplateStore) FindByServiceSlug(serviceSlug string) (*models.PageTemplate, error) {
	t, err := scanTemplate(s.db.QueryRow(
		`SELECT `+templateColumns+` FROM page_templates WHERE service_slug = $1`, serviceSlug))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find template by service slug: %w", err)
	}
	return t, nil
}

// Create inserts a new template and returns it with the generated ID.
func (s *TemplateStore) Create(t *models.PageTemplate) (*models.PageTemplate, error) {
	created, err := scanTemplate(s.db.QueryRow(`
		INSERT INTO page_templates (name, service, service_slug, kind, content,
		                            title_template, slug_template, category_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+templateColumns,
		t.Name, t.Service, t.ServiceSlug, t.Kind, t.Content,
		t.TitleTemplate, t.SlugTemplate, t.CategoryID, t.IsActive))
	if err != nil {
		return nil, fmt.Errorf("create template: %w", err)
	}
	return created, nil
}

// Update overwrites a template's mutable fields.
func (s *TemplateStore) Update(t *models.PageTemplate) (*models.PageTemplate, error) {
	updated, err := scanTemplate(s.db.QueryRow(`
		UPDATE page_templates
		SET name = $2, service = $3, service_slug = $4, kind = $5, content = $6,
		    title_template = $7, slug_template = $8, category_id = $9, is_active = $10,
		    updated_at = now()
		WHERE id = $1
		RETURNING `+templateColumns,
		t.ID, t.Name, t.Service, t.ServiceSlug, t.Kind, t.Content,
		t.TitleTemplate, t.SlugTemplate, t.CategoryID, t.IsActive))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("update template: not found")
	}
	if err != nil {
		return nil, fmt.Errorf("update template: %w", err)
	}
	return updated, nil
}

// Delete removes a template and, via cascade, its generated pages.
func (s *TemplateStore) Delete(id uuid.UUID) error {
	result, err := s.db.Exec(`DELETE FROM page_templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("delete template: not found")
	}
	return nil
}
