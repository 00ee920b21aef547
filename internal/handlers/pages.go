// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"localpress/internal/generator"
	"localpress/internal/models"
)

// generateRequest targets one template/city pairing. Status is the
// WordPress post status; omitted means publish, "draft" stages the page
// for review.
type generateRequest struct {
	TemplateID string `json:"template_id"`
	City       string `json:"city"`
	State      string `json:"state"`
	Status     string `json:"status"`
}

// PageGenerate produces and publishes a single city page.
func (a *API) PageGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	templateID, err := uuid.Parse(req.TemplateID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid template_id")
		return
	}
	city, state := strings.TrimSpace(req.City), strings.TrimSpace(req.State)
	if city == "" || state == "" {
		respondError(w, http.StatusBadRequest, "city and state are required")
		return
	}
	if !validPostStatus(req.Status) {
		respondError(w, http.StatusBadRequest, "status must be publish or draft")
		return
	}

	outcome, err := a.cityPages.Generate(r.Context(), templateID, city, state, req.Status)
	if errors.Is(err, generator.ErrTemplateNotFound) {
		respondError(w, http.StatusNotFound, "template not found")
		return
	}
	if err != nil && outcome == nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	// Failed generations are reported in the outcome body, not as a
	// transport error; the row records the failure for retries.
	respondJSON(w, http.StatusOK, outcome)
}

// batchRequest targets a template across many cities. An empty cities
// list means the full rollout list.
type batchRequest struct {
	TemplateID string                `json:"template_id"`
	Cities     []generator.CityState `json:"cities"`
	Status     string                `json:"status"`
}

// PageBatchGenerate runs one template across a set of cities and
// returns the per-city outcomes.
func (a *API) PageBatchGenerate(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if !decodeBody(w, r, &req) {
		return
	}
	templateID, err := uuid.Parse(req.TemplateID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid template_id")
		return
	}
	if !validPostStatus(req.Status) {
		respondError(w, http.StatusBadRequest, "status must be publish or draft")
		return
	}
	cities := req.Cities
	if len(cities) == 0 {
		cities = generator.Cities
	}

	summary, err := a.cityPages.BatchGenerate(r.Context(), templateID, cities, req.Status)
	if errors.Is(err, generator.ErrTemplateNotFound) {
		respondError(w, http.StatusNotFound, "template not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// cityRequest names one locality.
type cityRequest struct {
	City  string `json:"city"`
	State string `json:"state"`
}

// PageGenerateCity publishes every template's page for one city.
func (a *API) PageGenerateCity(w http.ResponseWriter, r *http.Request) {
	var req cityRequest
	if !decodeBody(w, r, &req) {
		return
	}
	city, state := strings.TrimSpace(req.City), strings.TrimSpace(req.State)
	if city == "" || state == "" {
		respondError(w, http.StatusBadRequest, "city and state are required")
		return
	}

	summary, err := a.cityPages.GenerateAllForCity(r.Context(), city, state)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// PagesList returns generated pages, optionally filtered by status.
func (a *API) PagesList(w http.ResponseWriter, r *http.Request) {
	status := models.PageStatus(r.URL.Query().Get("status"))
	limit := queryLimit(r, 100)

	pages, err := a.pages.List(status, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"pages": pages})
}

// NextCity reports the next rollout target, or done=true when every
// city on the list has full coverage.
func (a *API) NextCity(w http.ResponseWriter, r *http.Request) {
	city, err := a.cityPages.NextCity()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if city == nil {
		respondJSON(w, http.StatusOK, map[string]any{"done": true})
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"done": false, "city": city})
}

// CitiesList returns the rollout catalog.
func (a *API) CitiesList(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"cities": generator.Cities})
}

// validPostStatus accepts the WordPress post statuses generation
// supports. Empty defaults to publish downstream.
func validPostStatus(status string) bool {
	return status == "" || status == "publish" || status == "draft"
}

// queryLimit reads the limit query parameter, clamped to sane bounds.
func queryLimit(r *http.Request, fallback int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	if n > 500 {
		return 500
	}
	return n
}
