package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "corpgate/internal/delivery/context"
	"corpgate/internal/domain/entity"
	domainerrors "corpgate/internal/domain/errors"
	"corpgate/internal/domain/repository"
	"corpgate/internal/usecase"

	"github.com/pkg/errors"
)

// commentService implements the CommentUsecase interface.
type commentService struct {
	comments repository.CommentRepository
	logger   *slog.Logger
}

// NewCommentService is the constructor for commentService.
func NewCommentService(
	comments repository.CommentRepository,
	logger *slog.Logger,
) usecase.CommentUsecase {
	return &commentService{
		comments: comments,
		logger:   logger,
	}
}

func (srv *commentService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListComments returns all comments on a record, newest first.
func (srv *commentService) ListComments(ctx context.Context, table, recordID string) ([]*entity.Comment, error) {
	if _, ok := entity.LookupTable(table); !ok {
		return nil, errors.WithStack(domainerrors.ErrInvalidTable)
	}

	comments, err := srv.comments.ListForRecord(ctx, table, recordID)
	if err != nil {
		srv.log(ctx).Error("Comment listing failed", slog.String("table", table), slog.Any("error", err))

		return nil, err
	}

	return comments, nil
}

// AddComment attaches a comment to a record on behalf of the requester.
func (srv *commentService) AddComment(ctx context.Context, requester *entity.User, table, recordID, text string) (*entity.Comment, error) {
	if _, ok := entity.LookupTable(table); !ok {
		return nil, errors.WithStack(domainerrors.ErrInvalidTable)
	}
	if strings.TrimSpace(text) == "" {
		return nil, errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("empty comment"))
	}

	comment := &entity.Comment{
		ReferenceTable: table,
		ReferenceID:    recordID,
		Text:           text,
		CreatedBy:      requester.ID,
		CreatedByEmail: requester.Email,
	}
	if err := srv.comments.Add(ctx, comment); err != nil {
		srv.log(ctx).Error("Comment creation failed", slog.String("table", table), slog.Any("error", err))

		return nil, err
	}

	return comment, nil
}
