// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"localpress/internal/generator"
	"localpress/internal/models"
)

// queueRequest caps how many new articles one queue run may add.
type queueRequest struct {
	Limit int `json:"limit"`
}

// ArticlesQueue tops up the article queue from the formula catalog.
func (a *API) ArticlesQueue(w http.ResponseWriter, r *http.Request) {
	var req queueRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Limit <= 0 {
		req.Limit = 10
	}

	queued, err := a.articleGen.QueueMissing(req.Limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"queued": queued})
}

// ArticlesRun drains one article from the queue: generate, convert,
// publish. Returns 200 with the article, or queue_empty=true.
func (a *API) ArticlesRun(w http.ResponseWriter, r *http.Request) {
	article, err := a.articleGen.RunNext(r.Context())
	if err != nil && article == nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if article == nil {
		respondJSON(w, http.StatusOK, map[string]any{"queue_empty": true})
		return
	}
	// Failed articles come back with their status and recorded error.
	respondJSON(w, http.StatusOK, article)
}

// ArticlesList returns articles, optionally filtered by status.
func (a *API) ArticlesList(w http.ResponseWriter, r *http.Request) {
	status := models.ArticleStatus(r.URL.Query().Get("status"))
	limit := queryLimit(r, 100)

	articles, err := a.articles.List(status, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	// Bodies are large; the listing drops them.
	for i := range articles {
		articles[i].Markdown = ""
		articles[i].HTML = ""
	}
	respondJSON(w, http.StatusOK, map[string]any{"articles": articles})
}

// ArticleFormulas returns the article formula catalog.
func (a *API) ArticleFormulas(w http.ResponseWriter, r *http.Request) {
	type formula struct {
		Key          string `json:"key"`
		TitlePattern string `json:"title_pattern"`
		Description  string `json:"description"`
	}
	out := make([]formula, len(generator.ArticleTemplates))
	for i, t := range generator.ArticleTemplates {
		out[i] = formula{Key: t.Key, TitlePattern: t.TitlePattern, Description: t.Description}
	}
	respondJSON(w, http.StatusOK, map[string]any{"formulas": out})
}

// PostsRun promotes the next unpromoted article on Facebook.
func (a *API) PostsRun(w http.ResponseWriter, r *http.Request) {
	post, err := a.promoter.PublishNext(r.Context())
	if err != nil && post == nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if post == nil {
		respondJSON(w, http.StatusOK, map[string]any{"nothing_to_promote": true})
		return
	}
	respondJSON(w, http.StatusOK, post)
}

// PostsList returns the Facebook post history, newest first.
func (a *API) PostsList(w http.ResponseWriter, r *http.Request) {
	posts, err := a.posts.List(queryLimit(r, 50))
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"posts": posts})
}
