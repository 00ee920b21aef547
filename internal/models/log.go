// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// LogLevel is the severity of an activity log entry.
type LogLevel string

const (
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LogEntry is one row in the persistent activity log, which records
// pipeline outcomes (page published, article failed, post skipped) for
// the operations API.
type LogEntry struct {
	ID    uuid.UUID `json:"id"`
	Level LogLevel  `json:"level"`
	// Area groups entries by subsystem: "citypage", "article",
	// "facebook", "scheduler".
	Area    string `json:"area"`
	Message string `json:"message"`
	// Detail carries structured context as a JSON document.
	Detail    *string   `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
