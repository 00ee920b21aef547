// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package generator orchestrates the content pipelines: city pages
// (template -> AI rewrite -> WordPress), SEO articles, and Facebook
// promotion. It depends on narrow interfaces so each pipeline can be
// tested with in-memory fakes.
package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"localpress/internal/cache"
	"localpress/internal/elementor"
	"localpress/internal/models"
	"localpress/internal/placeholder"
	"localpress/internal/rewrite"
	"localpress/internal/wordpress"
)

// ErrTemplateNotFound is returned when a generation is requested for an
// unknown template ID.
var ErrTemplateNotFound = errors.New("generator: page template not found")

// templateReader is the template slice of the store layer. Rollout
// operations only ever see active templates.
type templateReader interface {
	FindByID(id uuid.UUID) (*models.PageTemplate, error)
	ListActive() ([]models.PageTemplate, error)
}

// pageWriter is the generated-page slice of the store layer.
type pageWriter interface {
	FindByTemplateAndCity(templateID uuid.UUID, city, state string) (*models.GeneratedPage, error)
	BeginAttempt(page *models.GeneratedPage) (*models.GeneratedPage, error)
	MarkPublished(id uuid.UUID, wordpressID int, url string) error
	MarkFailed(id uuid.UUID, errMsg string) error
}

// pagePublisher is the WordPress surface the city page pipeline uses.
type pagePublisher interface {
	FindPageBySlug(ctx context.Context, slug string) (*wordpress.Page, error)
	CreatePage(ctx context.Context, content wordpress.PageContent) (*wordpress.Page, error)
	UpdatePage(ctx context.Context, id int, content wordpress.PageContent) (*wordpress.Page, error)
}

// textRewriter is the AI rewrite surface.
type textRewriter interface {
	Rewrite(ctx context.Context, target rewrite.Target, texts []string) ([]rewrite.Result, error)
}

// slotLocker guards a generation slot against concurrent runs.
// A nil locker disables locking (tests, single-process deployments
// without Valkey).
type slotLocker interface {
	Acquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string)
}

// activityLogger appends to the persistent activity log.
type activityLogger interface {
	Add(level models.LogLevel, area, message, detail string) error
}

// OutcomeStatus classifies one generation attempt.
type OutcomeStatus string

const (
	OutcomePublished OutcomeStatus = "published"
	OutcomeSkipped   OutcomeStatus = "skipped"
	OutcomeFailed    OutcomeStatus = "failed"
)

// Outcome is the result of generating one city page.
type Outcome struct {
	Status OutcomeStatus `json:"status"`
	City   string        `json:"city"`
	State  string        `json:"state"`
	Title  string        `json:"title,omitempty"`
	Slug   string        `json:"slug,omitempty"`
	URL    string        `json:"url,omitempty"`
	Reason string        `json:"reason,omitempty"`
	Error  string        `json:"error,omitempty"`
}

// Summary aggregates a batch run.
type Summary struct {
	Total     int       `json:"total"`
	Published int       `json:"published"`
	Skipped   int       `json:"skipped"`
	Failed    int       `json:"failed"`
	Results   []Outcome `json:"results"`
}

func (s *Summary) add(o Outcome) {
	s.Total++
	switch o.Status {
	case OutcomePublished:
		s.Published++
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeFailed:
		s.Failed++
	}
	s.Results = append(s.Results, o)
}

// CityPages runs the city page pipeline.
type CityPages struct {
	templates templateReader
	pages     pageWriter
	wp        pagePublisher
	rewriter  textRewriter
	locks     slotLocker
	logs      activityLogger
	siteURL   string
}

// NewCityPages wires the city page pipeline. locks may be nil.
func NewCityPages(templates templateReader, pages pageWriter, wp pagePublisher, rewriter textRewriter, locks slotLocker, logs activityLogger, siteURL string) *CityPages {
	return &CityPages{
		templates: templates,
		pages:     pages,
		wp:        wp,
		rewriter:  rewriter,
		locks:     locks,
		logs:      logs,
		siteURL:   siteURL,
	}
}

// Generate produces and publishes one city page from a template. The
// status is the WordPress post status for the new page; empty means
// publish, and "draft" stages the page for manual review instead.
// Already-published slots are skipped; failed and pending slots are
// retried. The returned error is non-nil for failed attempts, with the
// same message recorded on the page row.
func (g *CityPages) Generate(ctx context.Context, templateID uuid.UUID, city, state, status string) (*Outcome, error) {
	if status == "" {
		status = "publish"
	}

	tpl, err := g.templates.FindByID(templateID)
	if err != nil {
		return nil, fmt.Errorf("load template: %w", err)
	}
	if tpl == nil {
		return nil, ErrTemplateNotFound
	}

	vars := placeholder.Vars(city, state, tpl.Service, tpl.ServiceSlug, g.siteURL)
	title := placeholder.Substitute(tpl.TitlePattern(), vars)
	slug := placeholder.Substitute(tpl.SlugPattern(), vars)
	outcome := Outcome{City: city, State: state, Title: title, Slug: slug}

	existing, err := g.pages.FindByTemplateAndCity(templateID, city, state)
	if err != nil {
		return nil, fmt.Errorf("check existing page: %w", err)
	}
	if existing != nil && existing.IsPublished() {
		outcome.Status = OutcomeSkipped
		outcome.Reason = "already published"
		if existing.URL != nil {
			outcome.URL = *existing.URL
		}
		return &outcome, nil
	}

	if g.locks != nil {
		key := cache.PageLockKey(templateID.String(), city, state)
		ok, err := g.locks.Acquire(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("acquire generation lock: %w", err)
		}
		if !ok {
			outcome.Status = OutcomeSkipped
			outcome.Reason = "generation already in progress"
			return &outcome, nil
		}
		defer g.locks.Release(ctx, key)
	}

	row, err := g.pages.BeginAttempt(&models.GeneratedPage{
		TemplateID:  templateID,
		City:        city,
		CitySlug:    vars["city_slug"],
		State:       state,
		StateAbbr:   vars["state_abbr"],
		Service:     tpl.Service,
		ServiceSlug: tpl.ServiceSlug,
		Title:       title,
		Slug:        slug,
	})
	if err != nil {
		return nil, fmt.Errorf("record attempt: %w", err)
	}

	content, err := g.buildContent(ctx, tpl, city, state, title, slug, status, vars)
	if err != nil {
		return g.fail(&outcome, row.ID, tpl, err)
	}

	page, err := g.publish(ctx, slug, content)
	if err != nil {
		return g.fail(&outcome, row.ID, tpl, err)
	}

	if err := g.pages.MarkPublished(row.ID, page.ID, page.Link); err != nil {
		return nil, fmt.Errorf("record publish: %w", err)
	}

	outcome.Status = OutcomePublished
	outcome.URL = page.Link
	slog.Info("city page published", "service", tpl.ServiceSlug, "city", city, "url", page.Link)
	g.log(models.LogLevelInfo, fmt.Sprintf("published %s page for %s, %s", tpl.ServiceSlug, city, state), page.Link)
	return &outcome, nil
}

// buildContent renders the template for a city, rewriting text through
// the AI pipeline for Elementor templates and substituting tokens for
// flat HTML ones.
func (g *CityPages) buildContent(ctx context.Context, tpl *models.PageTemplate, city, state, title, slug, status string, vars map[string]string) (wordpress.PageContent, error) {
	content := wordpress.PageContent{Title: title, Slug: slug, Status: status}

	switch tpl.Kind {
	case models.TemplateKindElementor:
		data, err := g.rewriteTree(ctx, tpl, city, state)
		if err != nil {
			return content, err
		}
		content.ElementorData = data
	case models.TemplateKindHTML:
		content.HTML = placeholder.Substitute(tpl.Content, vars)
	default:
		return content, fmt.Errorf("unknown template kind %q", tpl.Kind)
	}
	return content, nil
}

// rewriteTree runs the Elementor pipeline: parse, extract, rewrite the
// non-button copy, inject, then sweep the whole tree for leftover
// source-city mentions and repoint every button at the new city.
func (g *CityPages) rewriteTree(ctx context.Context, tpl *models.PageTemplate, city, state string) (string, error) {
	nodes, err := elementor.Parse([]byte(tpl.Content))
	if err != nil {
		return "", err
	}

	blocks := elementor.Extract(nodes)
	sourceCity := elementor.DetectTemplateCity(blocks)
	rewritable := elementor.NonButton(blocks)

	texts := make([]string, len(rewritable))
	for i, b := range rewritable {
		texts[i] = b.Original
	}

	results, err := g.rewriter.Rewrite(ctx, rewrite.Target{City: city, State: state, Service: tpl.Service}, texts)
	if err != nil {
		return "", err
	}
	for _, r := range results {
		if r.RewrittenText != "" {
			rewritable[r.Index].Apply(r.RewrittenText)
		}
	}
	if len(results) < len(rewritable) {
		slog.Warn("rewrite covered a subset of blocks",
			"service", tpl.ServiceSlug, "city", city,
			"rewritten", len(results), "total", len(rewritable))
	}

	elementor.ReplaceCity(nodes, sourceCity, city, state, tpl.ServiceSlug, g.siteURL)

	return elementor.Serialize(nodes)
}

// publish creates the page, or updates it in place when the slug is
// already taken (a previous partial run, or a manually created page).
func (g *CityPages) publish(ctx context.Context, slug string, content wordpress.PageContent) (*wordpress.Page, error) {
	existing, err := g.wp.FindPageBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return g.wp.UpdatePage(ctx, existing.ID, content)
	}
	return g.wp.CreatePage(ctx, content)
}

func (g *CityPages) fail(outcome *Outcome, rowID uuid.UUID, tpl *models.PageTemplate, cause error) (*Outcome, error) {
	outcome.Status = OutcomeFailed
	outcome.Error = cause.Error()
	if err := g.pages.MarkFailed(rowID, cause.Error()); err != nil {
		slog.Error("record page failure", "error", err)
	}
	slog.Error("city page generation failed",
		"service", tpl.ServiceSlug, "city", outcome.City, "error", cause)
	g.log(models.LogLevelError, fmt.Sprintf("failed %s page for %s, %s", tpl.ServiceSlug, outcome.City, outcome.State), cause.Error())
	return outcome, cause
}

func (g *CityPages) log(level models.LogLevel, message, detail string) {
	if g.logs == nil {
		return
	}
	if err := g.logs.Add(level, "citypage", message, detail); err != nil {
		slog.Error("write activity log", "error", err)
	}
}

// BatchGenerate runs Generate for every city in the list, collecting
// per-city outcomes. It stops early only when the template is missing
// or the context is cancelled.
func (g *CityPages) BatchGenerate(ctx context.Context, templateID uuid.UUID, cities []CityState, status string) (*Summary, error) {
	summary := &Summary{}
	for _, cs := range cities {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		outcome, err := g.Generate(ctx, templateID, cs.City, cs.State, status)
		if errors.Is(err, ErrTemplateNotFound) {
			return summary, err
		}
		if outcome != nil {
			summary.add(*outcome)
		}
	}
	return summary, nil
}

// GenerateAllForCity publishes every active template's page for one
// city, used by the daily rollout.
func (g *CityPages) GenerateAllForCity(ctx context.Context, city, state string) (*Summary, error) {
	templates, err := g.templates.ListActive()
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}

	summary := &Summary{}
	for _, tpl := range templates {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		outcome, err := g.Generate(ctx, tpl.ID, city, state, "")
		if errors.Is(err, ErrTemplateNotFound) {
			return summary, err
		}
		if outcome != nil {
			summary.add(*outcome)
		}
	}
	return summary, nil
}

// NextCity walks the rollout list and returns the first city that does
// not yet have a published page for every template. Returns nil when
// the whole list is done.
func (g *CityPages) NextCity() (*CityState, error) {
	templates, err := g.templates.ListActive()
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	if len(templates) == 0 {
		return nil, nil
	}

	for _, cs := range Cities {
		published := 0
		for _, tpl := range templates {
			page, err := g.pages.FindByTemplateAndCity(tpl.ID, cs.City, cs.State)
			if err != nil {
				return nil, fmt.Errorf("check city coverage: %w", err)
			}
			if page != nil && page.IsPublished() {
				published++
			}
		}
		if published < len(templates) {
			city := cs
			return &city, nil
		}
	}
	return nil, nil
}
