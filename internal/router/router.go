// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router wires the operations API routes and middleware.
package router

import (
	"time"

	"github.com/go-chi/chi/v5"

	"localpress/internal/handlers"
	"localpress/internal/middleware"
)

// New creates the configured chi router with all middleware and route
// groups wired up.
func New(api *handlers.API) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)

	// One shared limiter across every generation endpoint: each call
	// can fan out into AI and WordPress requests.
	limiter := middleware.NewRateLimiter(10, time.Minute)

	r.Get("/health", api.Health)

	r.Route("/api", func(r chi.Router) {
		r.Route("/templates", func(r chi.Router) {
			r.Get("/", api.TemplatesList)
			r.Post("/", api.TemplateCreate)
			r.Get("/{id}", api.TemplateGet)
			r.Put("/{id}", api.TemplateUpdate)
			r.Delete("/{id}", api.TemplateDelete)
		})

		r.Route("/pages", func(r chi.Router) {
			r.Get("/", api.PagesList)

			r.Group(func(r chi.Router) {
				r.Use(limiter.Middleware)
				r.Post("/generate", api.PageGenerate)
				r.Post("/generate-batch", api.PageBatchGenerate)
				r.Post("/generate-city", api.PageGenerateCity)
			})
		})

		r.Route("/articles", func(r chi.Router) {
			r.Get("/", api.ArticlesList)
			r.Post("/queue", api.ArticlesQueue)
			r.With(limiter.Middleware).Post("/run", api.ArticlesRun)
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", api.PostsList)
			r.With(limiter.Middleware).Post("/run", api.PostsRun)
		})

		r.Get("/cities", api.CitiesList)
		r.Get("/cities/next", api.NextCity)
		r.Get("/formulas", api.ArticleFormulas)
		r.Get("/logs", api.LogsList)
		r.Get("/stats", api.Stats)
		r.Get("/connections", api.Connections)
	})

	return r
}
