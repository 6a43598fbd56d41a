package handler

import (
	"encoding/json"
	"net/http"

	"teachings-api/internal/model"
	"teachings-api/internal/service"
	"teachings-api/pkg/apierror"
)

type EngagementHandler struct {
	service *service.EngagementService
}

func NewEngagementHandler(service *service.EngagementService) *EngagementHandler {
	return &EngagementHandler{service: service}
}

func (h *EngagementHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.NewsletterRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body", ""))
		return
	}

	if err := h.service.Subscribe(r.Context(), payload.Email); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]string{"message": "Thank you for subscribing!"}, nil)
}

func (h *EngagementHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body", ""))
		return
	}

	if err := h.service.SubmitContact(r.Context(), payload); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]string{"message": "Your message has been sent successfully."}, nil)
}
