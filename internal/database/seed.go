package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// seedService is one starter template row.
type seedService struct {
	name        string
	service     string
	serviceSlug string
	categoryID  int
	content     string
}

// seedServices are the marketplace verticals. The starter content is a
// flat HTML template; operators replace it with a real Elementor export
// once the first master page is designed in WordPress.
var seedServices = []seedService{
	{"Massage city page", "Massage", "massage", 189, starterHTML},
	{"Cleaning city page", "Cleaning", "cleaning", 187, starterHTML},
	{"Skincare city page", "Skincare", "skincare", 272, starterHTML},
	{"Beauty city page", "Beauty", "beauty", 213, starterHTML},
	{"Wellness city page", "Wellness", "wellness", 468, starterHTML},
}

const starterHTML = `<h1>{service} in {city}, {state_abbr}</h1>
<p>Find trusted {service_lower} providers in {city}, {state}. Browse verified local listings, compare reviews, and book online.</p>
<p><a href="{listing_url}">Browse {service_lower} providers in {city_state_abbr}</a></p>
<p>Are you a provider? <a href="{provider_url}">List your business</a>.</p>`

// Seed populates the database with initial data: one starter page
// template per service vertical and the settings the schedulers rely
// on. Safe to call repeatedly; it only writes when tables are empty.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM page_templates").Scan(&count); err != nil {
		return fmt.Errorf("seed check templates: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	for _, s := range seedServices {
		_, err := db.Exec(`
			INSERT INTO page_templates (name, service, service_slug, kind, content, category_id)
			VALUES ($1, $2, $3, 'html', $4, $5)
		`, s.name, s.service, s.serviceSlug, s.content, s.categoryID)
		if err != nil {
			return fmt.Errorf("seed template %s: %w", s.serviceSlug, err)
		}
	}

	_, err := db.Exec(`
		INSERT INTO settings (key, value) VALUES ('facebook_rotation_index', '0')
		ON CONFLICT (key) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}

	slog.Info("database seeded", "templates", len(seedServices))
	return nil
}
