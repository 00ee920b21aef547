// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"localpress/internal/generator"
	"localpress/internal/models"
)

type fakeTemplateStore struct {
	items   map[uuid.UUID]*models.PageTemplate
	deleted []uuid.UUID
}

func newFakeTemplateStore() *fakeTemplateStore {
	return &fakeTemplateStore{items: map[uuid.UUID]*models.PageTemplate{}}
}

func (f *fakeTemplateStore) List() ([]models.PageTemplate, error) {
	var out []models.PageTemplate
	for _, t := range f.items {
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTemplateStore) FindByID(id uuid.UUID) (*models.PageTemplate, error) {
	return f.items[id], nil
}

func (f *fakeTemplateStore) Create(t *models.PageTemplate) (*models.PageTemplate, error) {
	t.ID = uuid.New()
	f.items[t.ID] = t
	return t, nil
}

func (f *fakeTemplateStore) Update(t *models.PageTemplate) (*models.PageTemplate, error) {
	f.items[t.ID] = t
	return t, nil
}

func (f *fakeTemplateStore) Delete(id uuid.UUID) error {
	delete(f.items, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakePageStore struct {
	pages  []models.GeneratedPage
	counts map[models.PageStatus]int
}

func (f *fakePageStore) List(status models.PageStatus, limit int) ([]models.GeneratedPage, error) {
	var out []models.GeneratedPage
	for _, p := range f.pages {
		if status != "" && p.Status != status {
			continue
		}
		out = append(out, p)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakePageStore) CountByStatus() (map[models.PageStatus]int, error) {
	return f.counts, nil
}

type fakeArticleStore struct {
	articles []models.Article
	counts   map[models.ArticleStatus]int
}

func (f *fakeArticleStore) List(status models.ArticleStatus, limit int) ([]models.Article, error) {
	return f.articles, nil
}

func (f *fakeArticleStore) CountByStatus() (map[models.ArticleStatus]int, error) {
	return f.counts, nil
}

type fakeSocialStore struct {
	posts []models.SocialPost
}

func (f *fakeSocialStore) List(limit int) ([]models.SocialPost, error) { return f.posts, nil }
func (f *fakeSocialStore) Count() (int, error)                         { return len(f.posts), nil }

type fakeLogStore struct {
	entries  []models.LogEntry
	lastArea string
}

func (f *fakeLogStore) List(area string, limit int) ([]models.LogEntry, error) {
	f.lastArea = area
	return f.entries, nil
}

type fakeCityGen struct {
	outcome    *generator.Outcome
	summary    *generator.Summary
	err        error
	next       *generator.CityState
	lastCities []generator.CityState
	lastStatus string
}

func (f *fakeCityGen) Generate(_ context.Context, templateID uuid.UUID, city, state, status string) (*generator.Outcome, error) {
	f.lastStatus = status
	return f.outcome, f.err
}

func (f *fakeCityGen) BatchGenerate(_ context.Context, templateID uuid.UUID, cities []generator.CityState, status string) (*generator.Summary, error) {
	f.lastCities = cities
	f.lastStatus = status
	return f.summary, f.err
}

func (f *fakeCityGen) GenerateAllForCity(_ context.Context, city, state string) (*generator.Summary, error) {
	return f.summary, f.err
}

func (f *fakeCityGen) NextCity() (*generator.CityState, error) {
	return f.next, f.err
}

type fakeArticleGen struct {
	queued  int
	article *models.Article
	err     error
}

func (f *fakeArticleGen) QueueMissing(limit int) (int, error) { return f.queued, f.err }
func (f *fakeArticleGen) RunNext(context.Context) (*models.Article, error) {
	return f.article, f.err
}

type fakePromoterGen struct {
	post *models.SocialPost
	err  error
}

func (f *fakePromoterGen) PublishNext(context.Context) (*models.SocialPost, error) {
	return f.post, f.err
}

type fakeStats struct {
	cached []byte
	set    []byte
}

func (f *fakeStats) Get(context.Context) ([]byte, bool) {
	return f.cached, f.cached != nil
}

func (f *fakeStats) Set(_ context.Context, payload []byte) { f.set = payload }

// newTestRouter mounts the API on a chi router with the URL params the
// handlers expect.
func newTestRouter(api *API) chi.Router {
	r := chi.NewRouter()
	r.Get("/health", api.Health)
	r.Route("/api", func(r chi.Router) {
		r.Route("/templates", func(r chi.Router) {
			r.Get("/", api.TemplatesList)
			r.Post("/", api.TemplateCreate)
			r.Get("/{id}", api.TemplateGet)
			r.Put("/{id}", api.TemplateUpdate)
			r.Delete("/{id}", api.TemplateDelete)
		})
		r.Post("/pages/generate", api.PageGenerate)
		r.Post("/pages/generate-batch", api.PageBatchGenerate)
		r.Post("/pages/generate-city", api.PageGenerateCity)
		r.Get("/pages", api.PagesList)
		r.Get("/cities/next", api.NextCity)
		r.Post("/articles/queue", api.ArticlesQueue)
		r.Post("/articles/run", api.ArticlesRun)
		r.Get("/articles", api.ArticlesList)
		r.Post("/posts/run", api.PostsRun)
		r.Get("/posts", api.PostsList)
		r.Get("/logs", api.LogsList)
		r.Get("/stats", api.Stats)
		r.Get("/connections", api.Connections)
	})
	return r
}

func doRequest(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
}

func TestHealth(t *testing.T) {
	api := New(Deps{})
	rr := doRequest(t, newTestRouter(api), http.MethodGet, "/health", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var body map[string]string
	decode(t, rr, &body)
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}

func TestTemplateCreateAndGet(t *testing.T) {
	store := newFakeTemplateStore()
	api := New(Deps{Templates: store})
	r := newTestRouter(api)

	payload := `{"name":"Massage master","service":"Massage","kind":"html","content":"<h1>{service} in {city}</h1>","category_id":189}`
	rr := doRequest(t, r, http.MethodPost, "/api/templates", payload)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rr.Code, rr.Body.String())
	}
	var created models.PageTemplate
	decode(t, rr, &created)
	if created.ServiceSlug != "massage" {
		t.Errorf("service slug = %q, want derived massage", created.ServiceSlug)
	}

	rr = doRequest(t, r, http.MethodGet, "/api/templates/"+created.ID.String(), "")
	if rr.Code != http.StatusOK {
		t.Fatalf("get status = %d", rr.Code)
	}
	var got models.PageTemplate
	decode(t, rr, &got)
	if got.Content == "" {
		t.Error("single template fetch should include content")
	}
}

func TestTemplateValidation(t *testing.T) {
	api := New(Deps{Templates: newFakeTemplateStore()})
	r := newTestRouter(api)

	tests := []struct {
		name    string
		payload string
		wantMsg string
	}{
		{"missing name", `{"service":"Massage","kind":"html","content":"x"}`, "name is required"},
		{"missing service", `{"name":"a","kind":"html","content":"x"}`, "service is required"},
		{"bad kind", `{"name":"a","service":"b","kind":"gutenberg","content":"x"}`, "kind must be"},
		{"missing content", `{"name":"a","service":"b","kind":"html"}`, "content is required"},
		{"bad elementor json", `{"name":"a","service":"b","kind":"elementor","content":"not json"}`, "not a valid Elementor export"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(t, r, http.MethodPost, "/api/templates", tt.payload)
			if rr.Code != http.StatusUnprocessableEntity {
				t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
			}
			if !strings.Contains(rr.Body.String(), tt.wantMsg) {
				t.Errorf("body %q missing %q", rr.Body.String(), tt.wantMsg)
			}
		})
	}

	t.Run("unknown field", func(t *testing.T) {
		rr := doRequest(t, r, http.MethodPost, "/api/templates", `{"nme":"typo"}`)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", rr.Code)
		}
	})
}

func TestTemplateActiveFlag(t *testing.T) {
	store := newFakeTemplateStore()
	api := New(Deps{Templates: store})
	r := newTestRouter(api)

	// Creation without the flag defaults to active.
	payload := `{"name":"Massage master","service":"Massage","kind":"html","content":"x"}`
	rr := doRequest(t, r, http.MethodPost, "/api/templates", payload)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rr.Code, rr.Body.String())
	}
	var created models.PageTemplate
	decode(t, rr, &created)
	if !created.IsActive {
		t.Error("new template should default to active")
	}

	// Deactivating pauses the template.
	payload = `{"name":"Massage master","service":"Massage","kind":"html","content":"x","is_active":false}`
	rr = doRequest(t, r, http.MethodPut, "/api/templates/"+created.ID.String(), payload)
	if rr.Code != http.StatusOK {
		t.Fatalf("update status = %d: %s", rr.Code, rr.Body.String())
	}
	var updated models.PageTemplate
	decode(t, rr, &updated)
	if updated.IsActive {
		t.Error("template should be paused after update")
	}
}

func TestTemplatesListOmitsContent(t *testing.T) {
	store := newFakeTemplateStore()
	store.Create(&models.PageTemplate{Name: "t", Content: "big elementor blob"})
	api := New(Deps{Templates: store})

	rr := doRequest(t, newTestRouter(api), http.MethodGet, "/api/templates", "")
	if strings.Contains(rr.Body.String(), "big elementor blob") {
		t.Error("listing should not include template content")
	}
}

func TestTemplateNotFound(t *testing.T) {
	api := New(Deps{Templates: newFakeTemplateStore()})
	r := newTestRouter(api)

	rr := doRequest(t, r, http.MethodGet, "/api/templates/"+uuid.NewString(), "")
	if rr.Code != http.StatusNotFound {
		t.Errorf("get status = %d", rr.Code)
	}
	rr = doRequest(t, r, http.MethodGet, "/api/templates/not-a-uuid", "")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("bad id status = %d", rr.Code)
	}
}

func TestPageGenerate(t *testing.T) {
	gen := &fakeCityGen{outcome: &generator.Outcome{Status: generator.OutcomePublished, City: "Miami", URL: "https://example.com/x/"}}
	api := New(Deps{CityPages: gen})
	r := newTestRouter(api)

	body := `{"template_id":"` + uuid.NewString() + `","city":"Miami","state":"Florida"}`
	rr := doRequest(t, r, http.MethodPost, "/api/pages/generate", body)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
	}
	var outcome generator.Outcome
	decode(t, rr, &outcome)
	if outcome.Status != generator.OutcomePublished {
		t.Errorf("outcome = %+v", outcome)
	}
}

func TestPageGenerateStatus(t *testing.T) {
	t.Run("draft passes through", func(t *testing.T) {
		gen := &fakeCityGen{outcome: &generator.Outcome{Status: generator.OutcomePublished}}
		api := New(Deps{CityPages: gen})
		body := `{"template_id":"` + uuid.NewString() + `","city":"Miami","state":"Florida","status":"draft"}`
		rr := doRequest(t, newTestRouter(api), http.MethodPost, "/api/pages/generate", body)
		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
		}
		if gen.lastStatus != "draft" {
			t.Errorf("generator got status %q, want draft", gen.lastStatus)
		}
	})

	t.Run("invalid status is 400", func(t *testing.T) {
		api := New(Deps{CityPages: &fakeCityGen{}})
		body := `{"template_id":"` + uuid.NewString() + `","city":"Miami","state":"Florida","status":"pending"}`
		rr := doRequest(t, newTestRouter(api), http.MethodPost, "/api/pages/generate", body)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("status = %d", rr.Code)
		}
	})

	t.Run("batch forwards status", func(t *testing.T) {
		gen := &fakeCityGen{summary: &generator.Summary{}}
		api := New(Deps{CityPages: gen})
		body := `{"template_id":"` + uuid.NewString() + `","status":"draft"}`
		rr := doRequest(t, newTestRouter(api), http.MethodPost, "/api/pages/generate-batch", body)
		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
		}
		if gen.lastStatus != "draft" {
			t.Errorf("generator got status %q, want draft", gen.lastStatus)
		}
	})
}

func TestPageGenerateErrors(t *testing.T) {
	t.Run("unknown template is 404", func(t *testing.T) {
		gen := &fakeCityGen{err: generator.ErrTemplateNotFound}
		api := New(Deps{CityPages: gen})
		body := `{"template_id":"` + uuid.NewString() + `","city":"Miami","state":"Florida"}`
		rr := doRequest(t, newTestRouter(api), http.MethodPost, "/api/pages/generate", body)
		if rr.Code != http.StatusNotFound {
			t.Errorf("status = %d", rr.Code)
		}
	})

	t.Run("missing city is 400", func(t *testing.T) {
		api := New(Deps{CityPages: &fakeCityGen{}})
		body := `{"template_id":"` + uuid.NewString() + `","state":"Florida"}`
		rr := doRequest(t, newTestRouter(api), http.MethodPost, "/api/pages/generate", body)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("status = %d", rr.Code)
		}
	})

	t.Run("failed generation still returns the outcome", func(t *testing.T) {
		gen := &fakeCityGen{
			outcome: &generator.Outcome{Status: generator.OutcomeFailed, Error: "rewrite timed out"},
			err:     errors.New("rewrite timed out"),
		}
		api := New(Deps{CityPages: gen})
		body := `{"template_id":"` + uuid.NewString() + `","city":"Miami","state":"Florida"}`
		rr := doRequest(t, newTestRouter(api), http.MethodPost, "/api/pages/generate", body)
		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d", rr.Code)
		}
		var outcome generator.Outcome
		decode(t, rr, &outcome)
		if outcome.Status != generator.OutcomeFailed || outcome.Error == "" {
			t.Errorf("outcome = %+v", outcome)
		}
	})
}

func TestPageBatchDefaultsToRollout(t *testing.T) {
	gen := &fakeCityGen{summary: &generator.Summary{Total: len(generator.Cities)}}
	api := New(Deps{CityPages: gen})

	body := `{"template_id":"` + uuid.NewString() + `"}`
	rr := doRequest(t, newTestRouter(api), http.MethodPost, "/api/pages/generate-batch", body)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if len(gen.lastCities) != len(generator.Cities) {
		t.Errorf("batch targeted %d cities, want full rollout %d", len(gen.lastCities), len(generator.Cities))
	}
}

func TestNextCityEndpoint(t *testing.T) {
	t.Run("reports next city", func(t *testing.T) {
		gen := &fakeCityGen{next: &generator.CityState{City: "Dallas", State: "Texas"}}
		api := New(Deps{CityPages: gen})
		rr := doRequest(t, newTestRouter(api), http.MethodGet, "/api/cities/next", "")
		var body struct {
			Done bool                `json:"done"`
			City generator.CityState `json:"city"`
		}
		decode(t, rr, &body)
		if body.Done || body.City.City != "Dallas" {
			t.Errorf("body = %+v", body)
		}
	})

	t.Run("reports done", func(t *testing.T) {
		api := New(Deps{CityPages: &fakeCityGen{}})
		rr := doRequest(t, newTestRouter(api), http.MethodGet, "/api/cities/next", "")
		var body struct {
			Done bool `json:"done"`
		}
		decode(t, rr, &body)
		if !body.Done {
			t.Error("want done=true when rollout is finished")
		}
	})
}

func TestArticlesEndpoints(t *testing.T) {
	t.Run("queue", func(t *testing.T) {
		api := New(Deps{ArticleGen: &fakeArticleGen{queued: 7}})
		rr := doRequest(t, newTestRouter(api), http.MethodPost, "/api/articles/queue", `{"limit":7}`)
		var body map[string]int
		decode(t, rr, &body)
		if body["queued"] != 7 {
			t.Errorf("body = %v", body)
		}
	})

	t.Run("run drains one", func(t *testing.T) {
		api := New(Deps{ArticleGen: &fakeArticleGen{article: &models.Article{Title: "Best Massage in Miami", Status: models.ArticleStatusPublished}}})
		rr := doRequest(t, newTestRouter(api), http.MethodPost, "/api/articles/run", "")
		var article models.Article
		decode(t, rr, &article)
		if article.Title != "Best Massage in Miami" {
			t.Errorf("article = %+v", article)
		}
	})

	t.Run("run on empty queue", func(t *testing.T) {
		api := New(Deps{ArticleGen: &fakeArticleGen{}})
		rr := doRequest(t, newTestRouter(api), http.MethodPost, "/api/articles/run", "")
		var body struct {
			QueueEmpty bool `json:"queue_empty"`
		}
		decode(t, rr, &body)
		if !body.QueueEmpty {
			t.Error("want queue_empty=true")
		}
	})

	t.Run("listing drops bodies", func(t *testing.T) {
		store := &fakeArticleStore{articles: []models.Article{{Title: "t", Markdown: "# secret md", HTML: "<p>secret html</p>"}}}
		api := New(Deps{Articles: store})
		rr := doRequest(t, newTestRouter(api), http.MethodGet, "/api/articles", "")
		if strings.Contains(rr.Body.String(), "secret") {
			t.Errorf("listing leaked bodies: %s", rr.Body.String())
		}
	})
}

func TestPostsEndpoints(t *testing.T) {
	t.Run("run promotes", func(t *testing.T) {
		api := New(Deps{Promoter: &fakePromoterGen{post: &models.SocialPost{Category: "new-guide", Status: models.SocialPostStatusPublished}}})
		rr := doRequest(t, newTestRouter(api), http.MethodPost, "/api/posts/run", "")
		var post models.SocialPost
		decode(t, rr, &post)
		if post.Category != "new-guide" {
			t.Errorf("post = %+v", post)
		}
	})

	t.Run("nothing to promote", func(t *testing.T) {
		api := New(Deps{Promoter: &fakePromoterGen{}})
		rr := doRequest(t, newTestRouter(api), http.MethodPost, "/api/posts/run", "")
		var body struct {
			NothingToPromote bool `json:"nothing_to_promote"`
		}
		decode(t, rr, &body)
		if !body.NothingToPromote {
			t.Error("want nothing_to_promote=true")
		}
	})
}

func TestStats(t *testing.T) {
	deps := Deps{
		Pages:    &fakePageStore{counts: map[models.PageStatus]int{models.PageStatusPublished: 5, models.PageStatusFailed: 1}},
		Articles: &fakeArticleStore{counts: map[models.ArticleStatus]int{models.ArticleStatusQueued: 3}},
		Posts:    &fakeSocialStore{posts: make([]models.SocialPost, 2)},
	}

	t.Run("aggregates counters", func(t *testing.T) {
		api := New(deps)
		rr := doRequest(t, newTestRouter(api), http.MethodGet, "/api/stats", "")
		var body statsPayload
		decode(t, rr, &body)
		if body.Pages["published"] != 5 || body.Articles["queued"] != 3 || body.Posts != 2 {
			t.Errorf("body = %+v", body)
		}
	})

	t.Run("fills cache on miss", func(t *testing.T) {
		stats := &fakeStats{}
		d := deps
		d.Stats = stats
		api := New(d)
		doRequest(t, newTestRouter(api), http.MethodGet, "/api/stats", "")
		if stats.set == nil {
			t.Error("cache not filled after miss")
		}
	})

	t.Run("serves from cache on hit", func(t *testing.T) {
		stats := &fakeStats{cached: []byte(`{"pages":{"published":99}}`)}
		d := deps
		d.Stats = stats
		api := New(d)
		rr := doRequest(t, newTestRouter(api), http.MethodGet, "/api/stats", "")
		if !strings.Contains(rr.Body.String(), "99") {
			t.Errorf("body = %s", rr.Body.String())
		}
	})
}

func TestLogsList(t *testing.T) {
	store := &fakeLogStore{entries: []models.LogEntry{{Area: "citypage", Message: "published"}}}
	api := New(Deps{Logs: store})

	rr := doRequest(t, newTestRouter(api), http.MethodGet, "/api/logs?area=citypage", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if store.lastArea != "citypage" {
		t.Errorf("area filter = %q", store.lastArea)
	}
}

func TestConnections(t *testing.T) {
	api := New(Deps{
		WordPress: VerifierFunc(func(context.Context) error { return nil }),
		Facebook:  VerifierFunc(func(context.Context) error { return errors.New("token expired") }),
	})

	rr := doRequest(t, newTestRouter(api), http.MethodGet, "/api/connections", "")
	var body map[string]connectionStatus
	decode(t, rr, &body)

	if !body["wordpress"].Configured || !body["wordpress"].OK {
		t.Errorf("wordpress = %+v", body["wordpress"])
	}
	fb := body["facebook"]
	if !fb.Configured || fb.OK || !strings.Contains(fb.Error, "token expired") {
		t.Errorf("facebook = %+v", fb)
	}
}
