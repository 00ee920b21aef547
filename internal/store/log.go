// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"localpress/internal/models"
)

// LogStore handles the persistent activity log.
type LogStore struct {
	db *sql.DB
}

// NewLogStore creates a LogStore on the given connection pool.
func NewLogStore(db *sql.DB) *LogStore {
	return &LogStore{db: db}
}

// Add appends one entry. detail may be empty; it is stored as NULL.
func (s *LogStore) Add(level models.LogLevel, area, message, detail string) error {
	var detailArg any
	if detail != "" {
		detailArg = detail
	}
	_, err := s.db.Exec(`
		INSERT INTO activity_logs (level, area, message, detail)
		VALUES ($1, $2, $3, $4)`, level, area, message, detailArg)
	if err != nil {
		return fmt.Errorf("add log entry: %w", err)
	}
	return nil
}

// List returns entries newest first, optionally filtered by area.
func (s *LogStore) List(area string, limit int) ([]models.LogEntry, error) {
	query := `SELECT id, level, area, message, detail, created_at FROM activity_logs`
	args := []any{limit}
	if area != "" {
		query += ` WHERE area = $2`
		args = append(args, area)
	}
	query += ` ORDER BY created_at DESC LIMIT $1`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list log entries: %w", err)
	}
	defer rows.Close()

	var items []models.LogEntry
	for rows.Next() {
		var e models.LogEntry
		if err := rows.Scan(&e.ID, &e.Level, &e.Area, &e.Message, &e.Detail, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan log entry: %w", err)
		}
		items = append(items, e)
	}
	return items, rows.Err()
}
