package handler

import (
	"encoding/json"
	"net/http"

	"teachings-api/internal/model"
	"teachings-api/internal/service"
	"teachings-api/pkg/apierror"
)

type CommentHandler struct {
	service *service.CommentService
}

func NewCommentHandler(service *service.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

func (h *CommentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body", ""))
		return
	}

	comment, err := h.service.Submit(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, comment, nil)
}

func (h *CommentHandler) ListForTeaching(w http.ResponseWriter, r *http.Request) {
	comments, err := h.service.ListForTeaching(r.Context(), r.URL.Query().Get("teachingId"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"comments": comments}, nil)
}
