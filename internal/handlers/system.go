// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"
)

// Health reports liveness.
func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// statsPayload is the aggregate counters body.
type statsPayload struct {
	Pages    map[string]int `json:"pages"`
	Articles map[string]int `json:"articles"`
	Posts    int            `json:"posts"`
}

// Stats returns pipeline counters, served from the short-TTL cache
// when available.
func (a *API) Stats(w http.ResponseWriter, r *http.Request) {
	if a.stats != nil {
		if cached, hit := a.stats.Get(r.Context()); hit {
			w.Header().Set("Content-Type", "application/json")
			w.Write(cached)
			return
		}
	}

	pageCounts, err := a.pages.CountByStatus()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	articleCounts, err := a.articles.CountByStatus()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	postCount, err := a.posts.Count()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	payload := statsPayload{
		Pages:    map[string]int{},
		Articles: map[string]int{},
		Posts:    postCount,
	}
	for status, n := range pageCounts {
		payload.Pages[string(status)] = n
	}
	for status, n := range articleCounts {
		payload.Articles[string(status)] = n
	}

	body, err := json.Marshal(payload)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if a.stats != nil {
		a.stats.Set(r.Context(), body)
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

// LogsList returns activity log entries, optionally filtered by area
// (citypage, article, facebook).
func (a *API) LogsList(w http.ResponseWriter, r *http.Request) {
	entries, err := a.logs.List(r.URL.Query().Get("area"), queryLimit(r, 100))
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"logs": entries})
}

// connectionStatus describes one external integration.
type connectionStatus struct {
	Configured bool   `json:"configured"`
	OK         bool   `json:"ok"`
	Error      string `json:"error,omitempty"`
}

// Connections verifies WordPress and Facebook credentials.
func (a *API) Connections(w http.ResponseWriter, r *http.Request) {
	check := func(v connectionVerifier) connectionStatus {
		if v == nil {
			return connectionStatus{}
		}
		status := connectionStatus{Configured: true}
		if err := v.Verify(r.Context()); err != nil {
			status.Error = err.Error()
		} else {
			status.OK = true
		}
		return status
	}

	respondJSON(w, http.StatusOK, map[string]connectionStatus{
		"wordpress": check(a.wordpress),
		"facebook":  check(a.facebook),
	})
}
