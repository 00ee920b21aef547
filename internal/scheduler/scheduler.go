// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package scheduler runs the daily content jobs: one city's pages in
// the morning, article generation at midday, and Facebook promotion in
// the evening. Each job runs at most once per day; last-run markers are
// persisted in the settings table so restarts do not repeat work.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"localpress/internal/generator"
	"localpress/internal/models"
)

// Job hours, in the server's local time.
const (
	cityPageHour = 8
	articleHour  = 12
)

// promoteHours are the candidate Facebook posting slots. The day's slot
// is picked by day-of-year, so the feed does not post at the same hour
// every day and the choice is stable across restarts.
var promoteHours = [3]int{9, 15, 19}

func promoteHourFor(day time.Time) int {
	return promoteHours[day.YearDay()%len(promoteHours)]
}

const markerLayout = "2006-01-02"

type cityPageRunner interface {
	NextCity() (*generator.CityState, error)
	GenerateAllForCity(ctx context.Context, city, state string) (*generator.Summary, error)
}

type articleRunner interface {
	QueueMissing(limit int) (int, error)
	RunNext(ctx context.Context) (*models.Article, error)
}

type promoteRunner interface {
	PublishNext(ctx context.Context) (*models.SocialPost, error)
}

// markerStore persists per-job last-run dates.
type markerStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Scheduler drives the daily pipeline. It wakes every minute and runs
// each job whose hour has passed and whose marker is not today's date.
type Scheduler struct {
	cityPages cityPageRunner
	articles  articleRunner
	promoter  promoteRunner
	markers   markerStore

	// ArticlesPerDay caps how many queued articles are drained per
	// article job run.
	ArticlesPerDay int

	now    func() time.Time
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a scheduler. Any runner may be nil to disable its job.
func New(cityPages cityPageRunner, articles articleRunner, promoter promoteRunner, markers markerStore) *Scheduler {
	return &Scheduler{
		cityPages:      cityPages,
		articles:       articles,
		promoter:       promoter,
		markers:        markers,
		ArticlesPerDay: 2,
		now:            time.Now,
	}
}

// Start launches the scheduler loop. Call Stop to shut it down.
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go s.loop(ctx)
	slog.Info("scheduler started",
		"city_page_hour", cityPageHour, "article_hour", articleHour, "promote_hour", promoteHourFor(s.now()))
}

// Stop cancels the loop and waits for any in-flight job to finish.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	slog.Info("scheduler stopped")
}

func (s *Scheduler) loop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runDue(ctx, s.now())
		}
	}
}

// runDue executes every job whose scheduled hour has passed today and
// that has not run today yet. Failed jobs keep their marker unset so
// the next tick retries them.
func (s *Scheduler) runDue(ctx context.Context, now time.Time) {
	if s.cityPages != nil && s.due(now, cityPageHour, "schedule_last_citypage") {
		if s.runCityPages(ctx) {
			s.mark(now, "schedule_last_citypage")
		}
	}
	if s.articles != nil && s.due(now, articleHour, "schedule_last_article") {
		if s.runArticles(ctx) {
			s.mark(now, "schedule_last_article")
		}
	}
	if s.promoter != nil && s.due(now, promoteHourFor(now), "schedule_last_promote") {
		if s.runPromotion(ctx) {
			s.mark(now, "schedule_last_promote")
		}
	}
}

func (s *Scheduler) due(now time.Time, hour int, key string) bool {
	if now.Hour() < hour {
		return false
	}
	last, ok, err := s.markers.Get(key)
	if err != nil {
		slog.Error("read schedule marker", "key", key, "error", err)
		return false
	}
	return !ok || last != now.Format(markerLayout)
}

func (s *Scheduler) mark(now time.Time, key string) {
	if err := s.markers.Set(key, now.Format(markerLayout)); err != nil {
		slog.Error("write schedule marker", "key", key, "error", err)
	}
}

// runCityPages publishes every template's page for the next city on the
// rollout list. Returns true when the job completed, including the case
// where the rollout is finished.
func (s *Scheduler) runCityPages(ctx context.Context) bool {
	city, err := s.cityPages.NextCity()
	if err != nil {
		slog.Error("scheduled city page job", "error", err)
		return false
	}
	if city == nil {
		slog.Info("city rollout complete, nothing to generate")
		return true
	}

	summary, err := s.cityPages.GenerateAllForCity(ctx, city.City, city.State)
	if err != nil {
		slog.Error("scheduled city page job", "city", city.City, "error", err)
		return false
	}
	slog.Info("scheduled city page job done",
		"city", city.City, "published", summary.Published, "skipped", summary.Skipped, "failed", summary.Failed)
	return summary.Failed == 0
}

// runArticles tops up the queue and drains up to ArticlesPerDay from it.
func (s *Scheduler) runArticles(ctx context.Context) bool {
	if _, err := s.articles.QueueMissing(s.ArticlesPerDay); err != nil {
		slog.Error("scheduled article queueing", "error", err)
	}

	for i := 0; i < s.ArticlesPerDay; i++ {
		article, err := s.articles.RunNext(ctx)
		if err != nil {
			slog.Error("scheduled article job", "error", err)
			return false
		}
		if article == nil {
			break
		}
	}
	return true
}

func (s *Scheduler) runPromotion(ctx context.Context) bool {
	if _, err := s.promoter.PublishNext(ctx); err != nil {
		slog.Error("scheduled promotion job", "error", err)
		return false
	}
	return true
}
