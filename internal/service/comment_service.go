package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"teachings-api/internal/model"
	"teachings-api/pkg/apierror"
)

type CommentStore interface {
	Create(ctx context.Context, c model.Comment) error
	ListByTeaching(ctx context.Context, teachingID string) ([]model.Comment, error)
}

// CommentService appends reader comments. Content passes through an
// allow-list HTML policy before storage, so stored comments are safe to
// render verbatim.
type CommentService struct {
	comments  CommentStore
	teachings ContentStore
	policy    *bluemonday.Policy
}

func NewCommentService(comments CommentStore, teachings ContentStore) *CommentService {
	return &CommentService{
		comments:  comments,
		teachings: teachings,
		policy:    bluemonday.UGCPolicy(),
	}
}

func (s *CommentService) Submit(ctx context.Context, req model.CommentRequest) (model.Comment, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	content := strings.TrimSpace(s.policy.Sanitize(req.Content))

	if req.TeachingID == "" || name == "" || email == "" || content == "" {
		return model.Comment{}, apierror.BadRequest("teachingId, name, email and content are required", "")
	}

	exists, err := s.teachings.TeachingExists(ctx, req.TeachingID)
	if err != nil {
		return model.Comment{}, err
	}
	if !exists {
		return model.Comment{}, model.ErrTeachingNotFound
	}

	comment := model.Comment{
		ID:          uuid.NewString(),
		TeachingID:  req.TeachingID,
		AuthorName:  name,
		AuthorEmail: email,
		Content:     content,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return model.Comment{}, err
	}

	return comment, nil
}

func (s *CommentService) ListForTeaching(ctx context.Context, teachingID string) ([]model.Comment, error) {
	if strings.TrimSpace(teachingID) == "" {
		return nil, apierror.BadRequest("teachingId is required", "teachingId")
	}

	comments, err := s.comments.ListByTeaching(ctx, teachingID)
	if err != nil {
		return nil, err
	}

	// The author email is collected but never exposed on the read side.
	for i := range comments {
		comments[i].AuthorEmail = ""
	}
	return comments, nil
}
