package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teachings-api/internal/model"
)

func TestCommentService_Submit(t *testing.T) {
	store := threeTeachingCorpus()

	t.Run("stores a sanitized comment", func(t *testing.T) {
		comments := &memCommentStore{}
		svc := NewCommentService(comments, store)

		comment, err := svc.Submit(context.Background(), model.CommentRequest{
			TeachingID: "t1",
			Name:       "Reader",
			Email:      "reader@example.com",
			Content:    `Wonderful <script>alert("x")</script>word today`,
		})

		require.NoError(t, err)
		assert.NotContains(t, comment.Content, "<script>")
		assert.Contains(t, comment.Content, "Wonderful")
		require.Len(t, comments.comments, 1)
	})

	t.Run("rejects a comment on a missing teaching", func(t *testing.T) {
		svc := NewCommentService(&memCommentStore{}, store)

		_, err := svc.Submit(context.Background(), model.CommentRequest{
			TeachingID: "ghost",
			Name:       "Reader",
			Email:      "reader@example.com",
			Content:    "hello",
		})

		assert.ErrorIs(t, err, model.ErrTeachingNotFound)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		svc := NewCommentService(&memCommentStore{}, store)

		_, err := svc.Submit(context.Background(), model.CommentRequest{TeachingID: "t1"})

		assert.Error(t, err)
	})
}

func TestCommentService_ListForTeaching_HidesEmails(t *testing.T) {
	store := threeTeachingCorpus()
	comments := &memCommentStore{}
	svc := NewCommentService(comments, store)

	_, err := svc.Submit(context.Background(), model.CommentRequest{
		TeachingID: "t1",
		Name:       "Reader",
		Email:      "reader@example.com",
		Content:    "hello",
	})
	require.NoError(t, err)

	listed, err := svc.ListForTeaching(context.Background(), "t1")

	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Empty(t, listed[0].AuthorEmail)

	_, err = svc.ListForTeaching(context.Background(), "")
	assert.Error(t, err)
}
