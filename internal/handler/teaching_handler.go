package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"teachings-api/internal/model"
	"teachings-api/internal/service"
	"teachings-api/pkg/apierror"
)

type TeachingHandler struct {
	service *service.TeachingService
}

func NewTeachingHandler(service *service.TeachingService) *TeachingHandler {
	return &TeachingHandler{service: service}
}

func (h *TeachingHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseTeachingFilter(r)
	if err != nil {
		writeError(w, err)
		return
	}

	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 0)

	items, meta, err := h.service.List(r.Context(), filter, page, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"teachings": items}, &meta)
}

func (h *TeachingHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	teaching, err := h.service.GetBySlug(r.Context(), slug)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, teaching, nil)
}

func (h *TeachingHandler) Latest(w http.ResponseWriter, r *http.Request) {
	teaching, err := h.service.Latest(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, teaching, nil)
}

func parseTeachingFilter(r *http.Request) (model.TeachingFilter, error) {
	q := r.URL.Query()

	filter := model.TeachingFilter{
		Search:   strings.TrimSpace(q.Get("search")),
		SeriesID: strings.TrimSpace(q.Get("seriesId")),
	}

	// tags may be repeated (?tags=a&tags=b) or comma separated.
	for _, raw := range q["tags"] {
		for _, id := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(id); trimmed != "" {
				filter.TagIDs = append(filter.TagIDs, trimmed)
			}
		}
	}

	start, err := parseDate(q.Get("startDate"))
	if err != nil {
		return model.TeachingFilter{}, apierror.BadRequest("invalid startDate", q.Get("startDate"))
	}
	filter.StartDate = start

	end, err := parseDate(q.Get("endDate"))
	if err != nil {
		return model.TeachingFilter{}, apierror.BadRequest("invalid endDate", q.Get("endDate"))
	}
	filter.EndDate = end

	return filter, nil
}

func parseDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, apierror.BadRequest("invalid date", raw)
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return fallback
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
