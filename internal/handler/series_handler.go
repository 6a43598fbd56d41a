package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"teachings-api/internal/service"
)

type SeriesHandler struct {
	service *service.SeriesService
}

func NewSeriesHandler(service *service.SeriesService) *SeriesHandler {
	return &SeriesHandler{service: service}
}

func (h *SeriesHandler) List(w http.ResponseWriter, r *http.Request) {
	series, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"series": series}, nil)
}

func (h *SeriesHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	detail, err := h.service.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, detail, nil)
}
