package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"teachings-api/internal/model"
	"teachings-api/pkg/apierror"
)

type EngagementStore interface {
	Subscribe(ctx context.Context, id string, email string, at time.Time) error
	SaveContactMessage(ctx context.Context, id string, req model.ContactRequest, at time.Time) error
}

// EngagementService handles the two single-document reader writes:
// newsletter signups and contact messages.
type EngagementService struct {
	store EngagementStore
}

func NewEngagementService(store EngagementStore) *EngagementService {
	return &EngagementService{store: store}
}

func (s *EngagementService) Subscribe(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return apierror.BadRequest("a valid email is required", "email")
	}

	return s.store.Subscribe(ctx, uuid.NewString(), email, time.Now().UTC())
}

func (s *EngagementService) SubmitContact(ctx context.Context, req model.ContactRequest) error {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.Message) == "" {
		return apierror.BadRequest("name, email and message are required", "")
	}

	return s.store.SaveContactMessage(ctx, uuid.NewString(), req, time.Now().UTC())
}
