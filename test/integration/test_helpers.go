//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"teachings-api/internal/config"
	"teachings-api/internal/handler"
	"teachings-api/internal/metrics"
	"teachings-api/internal/middleware"
	"teachings-api/internal/model"
	"teachings-api/internal/router"
	"teachings-api/internal/service"
)

// memoryStore backs the whole API for integration tests: content, users,
// comments and engagement writes all live in one struct.
type memoryStore struct {
	teachings   []model.Teaching
	series      []model.Series
	users       []model.User
	comments    []model.Comment
	subscribers map[string]bool
	contacts    []model.ContactRequest
}

func (m *memoryStore) ListTeachings(context.Context) ([]model.Teaching, error) {
	out := make([]model.Teaching, len(m.teachings))
	copy(out, m.teachings)
	return out, nil
}

func (m *memoryStore) FindTeachingBySlug(_ context.Context, slug string) (model.Teaching, error) {
	for _, t := range m.teachings {
		if t.Slug == slug {
			return t, nil
		}
	}
	return model.Teaching{}, model.ErrTeachingNotFound
}

func (m *memoryStore) FindTeachingByID(_ context.Context, id string) (model.Teaching, error) {
	for _, t := range m.teachings {
		if t.ID == id {
			return t, nil
		}
	}
	return model.Teaching{}, model.ErrTeachingNotFound
}

func (m *memoryStore) ListSeries(context.Context) ([]model.Series, error) {
	out := make([]model.Series, len(m.series))
	copy(out, m.series)
	for i := range out {
		count, _ := m.CountTeachingsBySeries(context.Background(), out[i].ID)
		out[i].TeachingCount = count
	}
	return out, nil
}

func (m *memoryStore) FindSeriesBySlug(_ context.Context, slug string) (model.Series, error) {
	for _, s := range m.series {
		if s.Slug == slug {
			return s, nil
		}
	}
	return model.Series{}, model.ErrSeriesNotFound
}

func (m *memoryStore) ListTeachingsBySeries(_ context.Context, seriesID string) ([]model.Teaching, error) {
	var out []model.Teaching
	for _, t := range m.teachings {
		if t.SeriesID == seriesID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memoryStore) CountTeachingsBySeries(_ context.Context, seriesID string) (int, error) {
	count := 0
	for _, t := range m.teachings {
		if t.SeriesID == seriesID {
			count++
		}
	}
	return count, nil
}

func (m *memoryStore) ListTagNames(context.Context) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, t := range m.teachings {
		for _, tag := range t.Tags {
			if !seen[tag] {
				seen[tag] = true
				out = append(out, tag)
			}
		}
	}
	return out, nil
}

func (m *memoryStore) TeachingExists(_ context.Context, id string) (bool, error) {
	for _, t := range m.teachings {
		if t.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryStore) FindByID(_ context.Context, id string) (model.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, model.ErrUserNotFound
}

func (m *memoryStore) FindByEmail(_ context.Context, email string) (model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, model.ErrUserNotFound
}

func (m *memoryStore) Create(_ context.Context, u model.User) error {
	m.users = append(m.users, u)
	return nil
}

func (m *memoryStore) List(_ context.Context) ([]model.UserSummary, error) {
	out := make([]model.UserSummary, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u.Summary())
	}
	return out, nil
}

func (m *memoryStore) CreateComment(_ context.Context, c model.Comment) error {
	m.comments = append(m.comments, c)
	return nil
}

func (m *memoryStore) ListByTeaching(_ context.Context, teachingID string) ([]model.Comment, error) {
	var out []model.Comment
	for _, c := range m.comments {
		if c.TeachingID == teachingID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memoryStore) Subscribe(_ context.Context, _ string, email string, _ time.Time) error {
	if m.subscribers == nil {
		m.subscribers = map[string]bool{}
	}
	if m.subscribers[email] {
		return model.ErrAlreadySubscribed
	}
	m.subscribers[email] = true
	return nil
}

func (m *memoryStore) SaveContactMessage(_ context.Context, _ string, req model.ContactRequest, _ time.Time) error {
	m.contacts = append(m.contacts, req)
	return nil
}

// commentStore adapts memoryStore to the comment store contract; Create would
// otherwise collide with the user store method of the same name.
type commentStore struct{ *memoryStore }

func (c commentStore) Create(ctx context.Context, comment model.Comment) error {
	return c.memoryStore.CreateComment(ctx, comment)
}

func seedStore() *memoryStore {
	day := func(s string) time.Time {
		t, _ := time.Parse("2006-01-02", s)
		return t
	}

	return &memoryStore{
		series: []model.Series{
			{ID: "s1", Title: "Beginnings", Slug: "beginnings", Description: "Opening series"},
		},
		teachings: []model.Teaching{
			{
				ID: "t1", Title: "First Light", Slug: "first-light", Excerpt: "opening word",
				Content: "full text", PublishedAt: day("2023-01-10"), ReadingTime: 5,
				SeriesID: "s1", SeriesTitle: "Beginnings",
				TagIDs: []string{"tag-grace"}, Tags: []string{"grace"}, Seq: 1,
			},
			{
				ID: "t2", Title: "Second Wind", Slug: "second-wind", Excerpt: "another word",
				Content: "full text", PublishedAt: day("2023-02-10"), ReadingTime: 7,
				SeriesID: "s1", SeriesTitle: "Beginnings",
				TagIDs: []string{"tag-grace", "tag-hope"}, Tags: []string{"grace", "hope"}, Seq: 2,
			},
		},
	}
}

func newServer(t *testing.T, store *memoryStore) *httptest.Server {
	t.Helper()

	cfg := &config.Config{
		ServerPort:       "8080",
		RequestTimeout:   15 * time.Second,
		JWTSecret:        "test-secret",
		JWTIssuer:        "teachings-api",
		TokenTTL:         6 * time.Hour,
		CORSOrigins:      []string{"*"},
		RateLimitRPM:     1000,
		AuthRateLimitRPM: 1000,
		DefaultPageLimit: 10,
		MaxPageLimit:     100,
	}

	authService, err := service.NewAuthService(store, cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)
	require.NoError(t, err)

	handlers := router.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Teaching:   handler.NewTeachingHandler(service.NewTeachingService(store, cfg.DefaultPageLimit, cfg.MaxPageLimit)),
		Series:     handler.NewSeriesHandler(service.NewSeriesService(store)),
		Tag:        handler.NewTagHandler(service.NewTagService(store)),
		Comment:    handler.NewCommentHandler(service.NewCommentService(commentStore{store}, store)),
		Engagement: handler.NewEngagementHandler(service.NewEngagementService(store)),
	}

	server := httptest.NewServer(router.New(cfg, middleware.NewAuthMiddleware(authService, authService), metrics.NewCollector(), handlers))
	t.Cleanup(server.Close)
	return server
}

func getJSON(t *testing.T, url string) (*http.Response, model.APIResponse) {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var envelope model.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp, envelope
}

func postJSON(t *testing.T, url string, payload any) (*http.Response, model.APIResponse) {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var envelope model.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp, envelope
}
