// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"localpress/internal/markdown"
	"localpress/internal/models"
	"localpress/internal/placeholder"
	"localpress/internal/wordpress"
)

// articleQueue is the article slice of the store layer.
type articleQueue interface {
	Enqueue(a *models.Article) (*models.Article, error)
	TitleExists(title string) (bool, error)
	NextQueued() (*models.Article, error)
	MarkGenerated(id uuid.UUID, markdown, html string) error
	SetStatus(id uuid.UUID, status models.ArticleStatus) error
	MarkPublished(id uuid.UUID, wordpressID int, url string) error
	MarkFailed(id uuid.UUID, errMsg string) error
}

// postPublisher is the WordPress surface the article pipeline uses.
type postPublisher interface {
	CreatePost(ctx context.Context, content wordpress.PostContent) (*wordpress.Post, error)
}

// articleWriter is the AI surface that drafts article bodies.
type articleWriter interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Articles runs the SEO article pipeline: a queue of
// (formula x service x city) slots drained one article at a time.
type Articles struct {
	queue     articleQueue
	templates templateReader
	wp        postPublisher
	writer    articleWriter
	logs      activityLogger
	siteURL   string
}

// NewArticles wires the article pipeline.
func NewArticles(queue articleQueue, templates templateReader, wp postPublisher, writer articleWriter, logs activityLogger, siteURL string) *Articles {
	return &Articles{
		queue:     queue,
		templates: templates,
		wp:        wp,
		writer:    writer,
		logs:      logs,
		siteURL:   siteURL,
	}
}

// QueueMissing walks every (formula, service, city) combination and
// enqueues the ones whose title has never been used. It stops after
// limit new articles (0 means no limit) so a fresh install does not
// enqueue the whole cross product at once.
func (g *Articles) QueueMissing(limit int) (int, error) {
	services, err := g.templates.ListActive()
	if err != nil {
		return 0, fmt.Errorf("list services: %w", err)
	}

	queued := 0
	for _, formula := range ArticleTemplates {
		for _, svc := range services {
			for _, cs := range Cities {
				vars := placeholder.Vars(cs.City, cs.State, svc.Service, svc.ServiceSlug, g.siteURL)
				title := placeholder.Substitute(formula.TitlePattern, vars)

				exists, err := g.queue.TitleExists(title)
				if err != nil {
					return queued, err
				}
				if exists {
					continue
				}

				_, err = g.queue.Enqueue(&models.Article{
					TemplateKey: formula.Key,
					Service:     svc.Service,
					ServiceSlug: svc.ServiceSlug,
					City:        cs.City,
					State:       cs.State,
					Title:       title,
					CategoryID:  svc.CategoryID,
				})
				if err != nil {
					// A concurrent queue run can win the title race;
					// treat it like exists and move on.
					slog.Warn("enqueue article", "title", title, "error", err)
					continue
				}
				queued++
				if limit > 0 && queued >= limit {
					return queued, nil
				}
			}
		}
	}
	return queued, nil
}

// RunNext claims the oldest queued article, drafts it, converts the
// Markdown to HTML, and publishes it to WordPress. Returns (nil, nil)
// when the queue is empty.
func (g *Articles) RunNext(ctx context.Context) (*models.Article, error) {
	article, err := g.queue.NextQueued()
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, nil
	}

	slog.Info("generating article", "title", article.Title, "city", article.City, "service", article.ServiceSlug)

	md, err := g.draft(ctx, article)
	if err != nil {
		return g.fail(article, fmt.Errorf("draft: %w", err))
	}

	html, err := markdown.ToHTML(md)
	if err != nil {
		return g.fail(article, fmt.Errorf("render html: %w", err))
	}

	if err := g.queue.MarkGenerated(article.ID, md, html); err != nil {
		return nil, fmt.Errorf("record generated article: %w", err)
	}
	if err := g.queue.SetStatus(article.ID, models.ArticleStatusPublishing); err != nil {
		return nil, fmt.Errorf("advance article status: %w", err)
	}

	post, err := g.wp.CreatePost(ctx, wordpress.PostContent{
		Title:      article.Title,
		HTML:       html,
		Status:     "publish",
		Categories: categoriesFor(article),
	})
	if err != nil {
		return g.fail(article, fmt.Errorf("publish: %w", err))
	}

	if err := g.queue.MarkPublished(article.ID, post.ID, post.Link); err != nil {
		return nil, fmt.Errorf("record published article: %w", err)
	}

	article.Status = models.ArticleStatusPublished
	article.Markdown = md
	article.HTML = html
	article.WordPressID = &post.ID
	article.URL = &post.Link

	slog.Info("article published", "title", article.Title, "url", post.Link)
	g.log(models.LogLevelInfo, "published article: "+article.Title, post.Link)
	return article, nil
}

func categoriesFor(a *models.Article) []int {
	if a.CategoryID == 0 {
		return nil
	}
	return []int{a.CategoryID}
}

// draft asks the model for the article body in Markdown.
func (g *Articles) draft(ctx context.Context, a *models.Article) (string, error) {
	formula := articleTemplateByKey(a.TemplateKey)
	vars := placeholder.Vars(a.City, a.State, a.Service, a.ServiceSlug, g.siteURL)

	var b strings.Builder
	fmt.Fprintf(&b, "Write an article titled: %q\n\n", a.Title)
	fmt.Fprintf(&b, "Target city: %s, %s\n", a.City, a.State)
	fmt.Fprintf(&b, "Service category: %s\n", a.Service)
	if formula != nil {
		fmt.Fprintf(&b, "Article type: %s\n", formula.Description)
	}
	b.WriteString("\nEnd the article with exactly two links, each on its own line:\n")
	fmt.Fprintf(&b, "- [Browse %s Providers in %s](%s)\n", a.Service, a.City, vars["listing_url"])
	fmt.Fprintf(&b, "- [Create Your Free Provider Profile](%s)\n", vars["provider_url"])
	b.WriteString("\nOutput the article body as Markdown using ## and ### headings, paragraphs, and lists. Do not repeat the title; it is set separately. Do not wrap the output in code fences. Start directly with the introduction paragraph.")

	raw, err := g.writer.Generate(ctx, articleSystemPrompt, b.String())
	if err != nil {
		return "", err
	}
	return stripHTMLFences(raw), nil
}

const articleSystemPrompt = `You are an SEO content writer for a local services marketplace. You write practical, trustworthy articles that help readers find or become local service providers. Never invent business names, prices, statistics, or reviews. Mention the target city naturally throughout. Keep articles between 700 and 1100 words.`

// stripHTMLFences removes a surrounding markdown code fence, which
// models occasionally add despite instructions.
func stripHTMLFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

func articleTemplateByKey(key string) *ArticleTemplate {
	for i := range ArticleTemplates {
		if ArticleTemplates[i].Key == key {
			return &ArticleTemplates[i]
		}
	}
	return nil
}

func (g *Articles) fail(a *models.Article, cause error) (*models.Article, error) {
	if err := g.queue.MarkFailed(a.ID, cause.Error()); err != nil {
		slog.Error("record article failure", "error", err)
	}
	slog.Error("article generation failed", "title", a.Title, "error", cause)
	g.log(models.LogLevelError, "failed article: "+a.Title, cause.Error())
	a.Status = models.ArticleStatusFailed
	msg := cause.Error()
	a.Error = &msg
	return a, cause
}

func (g *Articles) log(level models.LogLevel, message, detail string) {
	if g.logs == nil {
		return
	}
	if err := g.logs.Add(level, "article", message, detail); err != nil {
		slog.Error("write activity log", "error", err)
	}
}
