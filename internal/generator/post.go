// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generator

import (
	"context"
	"fmt"
	"log/slog"

	"localpress/internal/models"
)

// rotationKey is the settings row holding the promotion rotation
// position. It advances after every successful post so consecutive
// posts vary in tone.
const rotationKey = "facebook_rotation_index"

// promotedArticles is the article slice the promoter reads.
type promotedArticles interface {
	NextUnpromoted() (*models.Article, error)
}

// postRecorder persists post attempts.
type postRecorder interface {
	Create(p *models.SocialPost) (*models.SocialPost, error)
}

// rotationStore persists the rotation position between runs.
type rotationStore interface {
	GetInt(key string, fallback int) (int, error)
	SetInt(key string, value int) error
}

// feedPublisher is the Facebook Graph surface.
type feedPublisher interface {
	PublishPost(ctx context.Context, message, link string) (string, error)
}

// postFormula turns an article into a feed message.
type postFormula struct {
	Category string
	Message  func(a *models.Article) string
}

// postFormulas is the rotation. Position persists across restarts via
// the settings table.
var postFormulas = []postFormula{
	{
		Category: "new-guide",
		Message: func(a *models.Article) string {
			return fmt.Sprintf("New guide: %s\n\nEverything you need to know about %s services in %s. Read it here:", a.Title, a.Service, a.City)
		},
	},
	{
		Category: "city-spotlight",
		Message: func(a *models.Article) string {
			return fmt.Sprintf("Looking for %s in %s, %s? We put together a local guide to help you choose with confidence.", a.Service, a.City, a.State)
		},
	},
	{
		Category: "provider-cta",
		Message: func(a *models.Article) string {
			return fmt.Sprintf("%s professionals in %s: see what clients are searching for and how to stand out. Our latest article: %s", a.Service, a.City, a.Title)
		},
	},
}

// Promoter posts published articles to the Facebook page, one per run,
// oldest unpromoted first.
type Promoter struct {
	articles promotedArticles
	posts    postRecorder
	settings rotationStore
	fb       feedPublisher
	logs     activityLogger
}

// NewPromoter wires the Facebook promotion pipeline.
func NewPromoter(articles promotedArticles, posts postRecorder, settings rotationStore, fb feedPublisher, logs activityLogger) *Promoter {
	return &Promoter{
		articles: articles,
		posts:    posts,
		settings: settings,
		fb:       fb,
		logs:     logs,
	}
}

// PublishNext promotes the oldest published article that has no post
// yet. Returns (nil, nil) when every published article has been
// promoted.
func (g *Promoter) PublishNext(ctx context.Context) (*models.SocialPost, error) {
	article, err := g.articles.NextUnpromoted()
	if err != nil {
		return nil, err
	}
	if article == nil {
		slog.Info("no unpromoted articles")
		return nil, nil
	}

	idx, err := g.settings.GetInt(rotationKey, 0)
	if err != nil {
		return nil, err
	}
	formula := postFormulas[idx%len(postFormulas)]

	link := ""
	if article.URL != nil {
		link = *article.URL
	}
	message := formula.Message(article)

	post := &models.SocialPost{
		ArticleID: &article.ID,
		Category:  formula.Category,
		Message:   message,
		Link:      link,
	}

	fbID, err := g.fb.PublishPost(ctx, message, link)
	if err != nil {
		msg := err.Error()
		post.Status = models.SocialPostStatusFailed
		post.Error = &msg
		if _, createErr := g.posts.Create(post); createErr != nil {
			slog.Error("record failed post", "error", createErr)
		}
		slog.Error("facebook post failed", "article", article.Title, "error", err)
		g.log(models.LogLevelError, "failed to promote: "+article.Title, msg)
		return post, fmt.Errorf("publish to facebook: %w", err)
	}

	post.FacebookID = &fbID
	post.Status = models.SocialPostStatusPublished
	created, err := g.posts.Create(post)
	if err != nil {
		return nil, fmt.Errorf("record post: %w", err)
	}

	if err := g.settings.SetInt(rotationKey, idx+1); err != nil {
		slog.Error("advance rotation index", "error", err)
	}

	slog.Info("article promoted", "article", article.Title, "category", formula.Category, "facebook_id", fbID)
	g.log(models.LogLevelInfo, "promoted article: "+article.Title, link)
	return created, nil
}

func (g *Promoter) log(level models.LogLevel, message, detail string) {
	if g.logs == nil {
		return
	}
	if err := g.logs.Add(level, "facebook", message, detail); err != nil {
		slog.Error("write activity log", "error", err)
	}
}
