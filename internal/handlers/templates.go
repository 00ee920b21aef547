// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"localpress/internal/elementor"
	"localpress/internal/models"
	"localpress/internal/slug"
)

// Field limits for template payloads.
const (
	maxNameLen    = 200
	maxServiceLen = 100
	maxContentLen = 2_000_000
	maxPatternLen = 300
)

// templatePayload is the create/update body for a page template.
// IsActive is a pointer so an omitted field keeps the current value on
// update and defaults to active on create.
type templatePayload struct {
	Name          string `json:"name"`
	Service       string `json:"service"`
	ServiceSlug   string `json:"service_slug"`
	Kind          string `json:"kind"`
	Content       string `json:"content"`
	TitleTemplate string `json:"title_template"`
	SlugTemplate  string `json:"slug_template"`
	CategoryID    int    `json:"category_id"`
	IsActive      *bool  `json:"is_active"`
}

// validate checks the payload and returns the first problem found.
func (p *templatePayload) validate() string {
	if strings.TrimSpace(p.Name) == "" {
		return "name is required"
	}
	if utf8.RuneCountInString(p.Name) > maxNameLen {
		return "name is too long (max 200 characters)"
	}
	if strings.TrimSpace(p.Service) == "" {
		return "service is required"
	}
	if utf8.RuneCountInString(p.Service) > maxServiceLen {
		return "service is too long (max 100 characters)"
	}
	switch models.TemplateKind(p.Kind) {
	case models.TemplateKindElementor, models.TemplateKindHTML:
	default:
		return "kind must be elementor or html"
	}
	if strings.TrimSpace(p.Content) == "" {
		return "content is required"
	}
	if len(p.Content) > maxContentLen {
		return "content is too long"
	}
	if utf8.RuneCountInString(p.TitleTemplate) > maxPatternLen {
		return "title_template is too long (max 300 characters)"
	}
	if utf8.RuneCountInString(p.SlugTemplate) > maxPatternLen {
		return "slug_template is too long (max 300 characters)"
	}
	if models.TemplateKind(p.Kind) == models.TemplateKindElementor {
		if _, err := elementor.Parse([]byte(p.Content)); err != nil {
			return "content is not a valid Elementor export: " + err.Error()
		}
	}
	return ""
}

func (p *templatePayload) apply(t *models.PageTemplate) {
	t.Name = strings.TrimSpace(p.Name)
	t.Service = strings.TrimSpace(p.Service)
	t.ServiceSlug = p.ServiceSlug
	if t.ServiceSlug == "" {
		t.ServiceSlug = slug.Generate(t.Service)
	}
	t.Kind = models.TemplateKind(p.Kind)
	t.Content = p.Content
	t.TitleTemplate = p.TitleTemplate
	t.SlugTemplate = p.SlugTemplate
	t.CategoryID = p.CategoryID
	if p.IsActive != nil {
		t.IsActive = *p.IsActive
	}
}

// TemplatesList returns every page template, content omitted.
func (a *API) TemplatesList(w http.ResponseWriter, r *http.Request) {
	templates, err := a.templates.List()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	// Elementor exports run to megabytes; the listing strips them.
	for i := range templates {
		templates[i].Content = ""
	}
	respondJSON(w, http.StatusOK, map[string]any{"templates": templates})
}

// TemplateGet returns one template with its full content.
func (a *API) TemplateGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	tpl, err := a.templates.FindByID(id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if tpl == nil {
		respondError(w, http.StatusNotFound, "template not found")
		return
	}
	respondJSON(w, http.StatusOK, tpl)
}

// TemplateCreate registers a new page template.
func (a *API) TemplateCreate(w http.ResponseWriter, r *http.Request) {
	var payload templatePayload
	if !decodeBody(w, r, &payload) {
		return
	}
	if msg := payload.validate(); msg != "" {
		respondError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	tpl := &models.PageTemplate{IsActive: true}
	payload.apply(tpl)

	created, err := a.templates.Create(tpl)
	if err != nil {
		respondError(w, http.StatusConflict, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// TemplateUpdate replaces a template's fields.
func (a *API) TemplateUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	tpl, err := a.templates.FindByID(id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if tpl == nil {
		respondError(w, http.StatusNotFound, "template not found")
		return
	}

	var payload templatePayload
	if !decodeBody(w, r, &payload) {
		return
	}
	if msg := payload.validate(); msg != "" {
		respondError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	payload.apply(tpl)
	updated, err := a.templates.Update(tpl)
	if err != nil {
		respondError(w, http.StatusConflict, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// TemplateDelete removes a template. Generated page rows for it are
// removed by the foreign key cascade.
func (a *API) TemplateDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	if err := a.templates.Delete(id); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
