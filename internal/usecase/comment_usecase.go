package usecase

import (
	"context"

	"corpgate/internal/domain/entity"
)

// CommentUsecase exposes record comments.
type CommentUsecase interface {
	// ListComments returns all comments on a record, newest first.
	ListComments(ctx context.Context, table, recordID string) ([]*entity.Comment, error)

	// AddComment attaches a comment to a record on behalf of the requester.
	AddComment(ctx context.Context, requester *entity.User, table, recordID, text string) (*entity.Comment, error)
}
