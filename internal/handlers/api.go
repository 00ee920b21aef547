// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the JSON HTTP handlers for the operations
// API. Handlers receive their dependencies through the API struct and
// depend on narrow interfaces so tests can supply in-memory fakes.
package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"localpress/internal/generator"
	"localpress/internal/models"
)

// templateStore is the template surface the API needs.
type templateStore interface {
	List() ([]models.PageTemplate, error)
	FindByID(id uuid.UUID) (*models.PageTemplate, error)
	Create(t *models.PageTemplate) (*models.PageTemplate, error)
	Update(t *models.PageTemplate) (*models.PageTemplate, error)
	Delete(id uuid.UUID) error
}

type pageStore interface {
	List(status models.PageStatus, limit int) ([]models.GeneratedPage, error)
	CountByStatus() (map[models.PageStatus]int, error)
}

type articleStore interface {
	List(status models.ArticleStatus, limit int) ([]models.Article, error)
	CountByStatus() (map[models.ArticleStatus]int, error)
}

type socialPostStore interface {
	List(limit int) ([]models.SocialPost, error)
	Count() (int, error)
}

type logStore interface {
	List(area string, limit int) ([]models.LogEntry, error)
}

// cityPageGenerator is the city page pipeline surface.
type cityPageGenerator interface {
	Generate(ctx context.Context, templateID uuid.UUID, city, state, status string) (*generator.Outcome, error)
	BatchGenerate(ctx context.Context, templateID uuid.UUID, cities []generator.CityState, status string) (*generator.Summary, error)
	GenerateAllForCity(ctx context.Context, city, state string) (*generator.Summary, error)
	NextCity() (*generator.CityState, error)
}

type articleGenerator interface {
	QueueMissing(limit int) (int, error)
	RunNext(ctx context.Context) (*models.Article, error)
}

type promoter interface {
	PublishNext(ctx context.Context) (*models.SocialPost, error)
}

// connectionVerifier checks one external integration's credentials.
type connectionVerifier interface {
	Verify(ctx context.Context) error
}

// VerifierFunc adapts a plain function to connectionVerifier.
type VerifierFunc func(ctx context.Context) error

// Verify calls the wrapped function.
func (f VerifierFunc) Verify(ctx context.Context) error { return f(ctx) }

// statsCache is the short-TTL cache in front of the stats aggregate.
// Nil disables caching.
type statsCache interface {
	Get(ctx context.Context) ([]byte, bool)
	Set(ctx context.Context, payload []byte)
}

// API groups the operations API handlers and their dependencies.
type API struct {
	templates templateStore
	pages     pageStore
	articles  articleStore
	posts     socialPostStore
	logs      logStore

	cityPages  cityPageGenerator
	articleGen articleGenerator
	promoter   promoter

	// wordpress and facebook are nil when the integration is not
	// configured; the connections endpoint reports them as such.
	wordpress connectionVerifier
	facebook  connectionVerifier

	stats statsCache
}

// Deps bundles the API's constructor arguments.
type Deps struct {
	Templates templateStore
	Pages     pageStore
	Articles  articleStore
	Posts     socialPostStore
	Logs      logStore

	CityPages  cityPageGenerator
	ArticleGen articleGenerator
	Promoter   promoter

	WordPress connectionVerifier
	Facebook  connectionVerifier

	Stats statsCache
}

// New creates the API handler group.
func New(d Deps) *API {
	return &API{
		templates:  d.Templates,
		pages:      d.Pages,
		articles:   d.Articles,
		posts:      d.Posts,
		logs:       d.Logs,
		cityPages:  d.CityPages,
		articleGen: d.ArticleGen,
		promoter:   d.Promoter,
		wordpress:  d.WordPress,
		facebook:   d.Facebook,
		stats:      d.Stats,
	}
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// respondError writes a JSON error body.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// decodeBody decodes a JSON request body into dst, rejecting unknown
// fields so typos in payloads fail loudly.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// pathID parses the {id} URL parameter as a UUID.
func pathID(w http.ResponseWriter, raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}
