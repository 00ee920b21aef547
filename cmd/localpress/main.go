// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the LocalPress content server.
// It loads configuration, connects to services, wires the content
// pipelines and the operations API, and starts the HTTP server with
// graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"localpress/internal/ai"
	"localpress/internal/cache"
	"localpress/internal/config"
	"localpress/internal/database"
	"localpress/internal/facebook"
	"localpress/internal/generator"
	"localpress/internal/handlers"
	"localpress/internal/rewrite"
	"localpress/internal/router"
	"localpress/internal/scheduler"
	"localpress/internal/store"
	"localpress/internal/wordpress"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded", "env", cfg.Env, "addr", cfg.Addr())

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	if err := database.Seed(db); err != nil {
		slog.Error("failed to seed database", "error", err)
		os.Exit(1)
	}

	// Valkey is optional: without it, generation locks and the stats
	// cache are disabled but the pipelines still work.
	var locks *cache.GenerationLock
	var stats *cache.StatsCache
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Warn("valkey unavailable, generation locks and stats cache disabled", "error", err)
	} else {
		defer valkeyClient.Close()
		locks = cache.NewGenerationLock(valkeyClient, 10*time.Minute)
		stats = cache.NewStatsCache(valkeyClient, time.Minute)
	}

	templateStore := store.NewTemplateStore(db)
	pageStore := store.NewPageStore(db)
	articleStore := store.NewArticleStore(db)
	postStore := store.NewPostStore(db)
	settingStore := store.NewSettingStore(db)
	logStore := store.NewLogStore(db)

	aiRegistry := ai.NewRegistry(cfg.AIProvider, map[string]ai.ProviderConfig{
		"openai": {APIKey: cfg.OpenAIKey, Model: cfg.OpenAIModel, BaseURL: cfg.OpenAIBaseURL},
		"claude": {APIKey: cfg.ClaudeKey, Model: cfg.ClaudeModel, BaseURL: cfg.ClaudeBaseURL},
	})
	slog.Info("ai providers initialized",
		"active", aiRegistry.ActiveName(),
		"available", aiRegistry.Available(),
	)

	wpClient := wordpress.NewClient(wordpress.Config{
		BaseURL:     cfg.WordPressBaseURL,
		Username:    cfg.WordPressUsername,
		AppPassword: cfg.WordPressAppPassword,
	})
	if !cfg.HasWordPress() {
		slog.Warn("wordpress credentials not configured, publishing will fail")
	}

	fbClient := facebook.NewClient(facebook.Config{
		PageID:      cfg.FacebookPageID,
		AccessToken: cfg.FacebookAccessToken,
	})
	if !cfg.HasFacebook() {
		slog.Warn("facebook credentials not configured, promotion will fail")
	}

	rewriter := rewrite.NewClient(aiRegistry)

	cityPages := newCityPages(templateStore, pageStore, wpClient, rewriter, locks, logStore, cfg.SiteURL)
	articles := generator.NewArticles(articleStore, templateStore, wpClient, aiRegistry, logStore, cfg.SiteURL)
	promoter := generator.NewPromoter(articleStore, postStore, settingStore, fbClient, logStore)

	var sched *scheduler.Scheduler
	if cfg.SchedulerEnabled {
		sched = scheduler.New(cityPages, articles, promoter, settingStore)
		sched.ArticlesPerDay = cfg.ArticlesPerDay
		sched.Start(context.Background())
	} else {
		slog.Info("scheduler disabled")
	}

	deps := handlers.Deps{
		Templates:  templateStore,
		Pages:      pageStore,
		Articles:   articleStore,
		Posts:      postStore,
		Logs:       logStore,
		CityPages:  cityPages,
		ArticleGen: articles,
		Promoter:   promoter,
	}
	if stats != nil {
		deps.Stats = stats
	}
	if cfg.HasWordPress() {
		deps.WordPress = handlers.VerifierFunc(wpClient.Verify)
	}
	if cfg.HasFacebook() {
		deps.Facebook = handlers.VerifierFunc(fbClient.VerifyToken)
	}

	r := router.New(handlers.New(deps))

	// WriteTimeout must accommodate generation endpoints that wait on
	// LLM and WordPress round trips.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 300 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	if sched != nil {
		sched.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

// newCityPages keeps the nil-interface wiring in one place: a nil
// *cache.GenerationLock must become a nil interface, not a typed nil.
func newCityPages(templates *store.TemplateStore, pages *store.PageStore, wp *wordpress.Client, rewriter *rewrite.Client, locks *cache.GenerationLock, logs *store.LogStore, siteURL string) *generator.CityPages {
	if locks == nil {
		return generator.NewCityPages(templates, pages, wp, rewriter, nil, logs, siteURL)
	}
	return generator.NewCityPages(templates, pages, wp, rewriter, locks, logs, siteURL)
}
