package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teachings-api/internal/model"
	"teachings-api/internal/service"
)

// fakeContentStore satisfies service.ContentStore for handler tests.
type fakeContentStore struct {
	teachings []model.Teaching
}

func (f *fakeContentStore) ListTeachings(context.Context) ([]model.Teaching, error) {
	out := make([]model.Teaching, len(f.teachings))
	copy(out, f.teachings)
	return out, nil
}

func (f *fakeContentStore) FindTeachingBySlug(_ context.Context, slug string) (model.Teaching, error) {
	for _, t := range f.teachings {
		if t.Slug == slug {
			return t, nil
		}
	}
	return model.Teaching{}, model.ErrTeachingNotFound
}

func (f *fakeContentStore) FindTeachingByID(_ context.Context, id string) (model.Teaching, error) {
	for _, t := range f.teachings {
		if t.ID == id {
			return t, nil
		}
	}
	return model.Teaching{}, model.ErrTeachingNotFound
}

func (f *fakeContentStore) ListSeries(context.Context) ([]model.Series, error) {
	return nil, nil
}

func (f *fakeContentStore) FindSeriesBySlug(context.Context, string) (model.Series, error) {
	return model.Series{}, model.ErrSeriesNotFound
}

func (f *fakeContentStore) ListTeachingsBySeries(context.Context, string) ([]model.Teaching, error) {
	return nil, nil
}

func (f *fakeContentStore) CountTeachingsBySeries(context.Context, string) (int, error) {
	return 0, nil
}

func (f *fakeContentStore) ListTagNames(context.Context) ([]string, error) {
	return nil, nil
}

func (f *fakeContentStore) TeachingExists(_ context.Context, id string) (bool, error) {
	for _, t := range f.teachings {
		if t.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func teachingRouter(store *fakeContentStore) http.Handler {
	h := NewTeachingHandler(service.NewTeachingService(store, 10, 100))
	r := chi.NewRouter()
	r.Get("/teachings", h.List)
	r.Get("/teachings/latest", h.Latest)
	r.Get("/teachings/{slug}", h.GetBySlug)
	return r
}

func fixtureStore() *fakeContentStore {
	day := func(s string) time.Time {
		t, _ := time.Parse("2006-01-02", s)
		return t
	}
	return &fakeContentStore{teachings: []model.Teaching{
		{ID: "t1", Title: "One", Slug: "one", Excerpt: "e", PublishedAt: day("2023-01-01"), ReadingTime: 4, TagIDs: []string{"a"}, Tags: []string{"grace"}, Seq: 1},
		{ID: "t2", Title: "Two", Slug: "two", Excerpt: "e", PublishedAt: day("2023-02-01"), ReadingTime: 4, TagIDs: []string{"b"}, Tags: []string{"hope"}, Seq: 2},
		{ID: "t3", Title: "Three", Slug: "three", Excerpt: "e", PublishedAt: day("2023-03-01"), ReadingTime: 4, TagIDs: []string{"a", "b"}, Tags: []string{"grace", "hope"}, Seq: 3},
	}}
}

func doJSON(t *testing.T, h http.Handler, method string, target string) (*httptest.ResponseRecorder, model.APIResponse) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var envelope model.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return rec, envelope
}

func TestTeachingHandler_List(t *testing.T) {
	router := teachingRouter(fixtureStore())

	t.Run("comma separated tags filter", func(t *testing.T) {
		rec, envelope := doJSON(t, router, "GET", "/teachings?tags=a&limit=10")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, envelope.Success)
		require.NotNil(t, envelope.Meta)
		assert.Equal(t, 2, envelope.Meta.Total)
	})

	t.Run("pagination meta", func(t *testing.T) {
		rec, envelope := doJSON(t, router, "GET", "/teachings?page=2&limit=2")

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, envelope.Meta)
		assert.Equal(t, 3, envelope.Meta.Total)
		assert.Equal(t, 2, envelope.Meta.TotalPages)
		assert.Equal(t, 2, envelope.Meta.Page)
	})

	t.Run("invalid startDate is a 400", func(t *testing.T) {
		rec, envelope := doJSON(t, router, "GET", "/teachings?startDate=notadate")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		require.NotNil(t, envelope.Error)
		assert.Equal(t, "BAD_REQUEST", envelope.Error.Code)
	})

	t.Run("date range filter", func(t *testing.T) {
		rec, envelope := doJSON(t, router, "GET", "/teachings?startDate=2023-02-01&endDate=2023-02-28")

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, envelope.Meta)
		assert.Equal(t, 1, envelope.Meta.Total)
	})
}

func TestTeachingHandler_GetBySlug(t *testing.T) {
	router := teachingRouter(fixtureStore())

	t.Run("found", func(t *testing.T) {
		rec, envelope := doJSON(t, router, "GET", "/teachings/one")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, envelope.Success)
	})

	t.Run("missing slug maps to NOT_FOUND", func(t *testing.T) {
		rec, envelope := doJSON(t, router, "GET", "/teachings/ghost")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		require.NotNil(t, envelope.Error)
		assert.Equal(t, "NOT_FOUND", envelope.Error.Code)
		assert.Equal(t, "Teaching not found", envelope.Error.Message)
	})
}

func TestTeachingHandler_Latest(t *testing.T) {
	router := teachingRouter(fixtureStore())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/teachings/latest", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope struct {
		Data model.Teaching `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "three", envelope.Data.Slug)
}
