package postgres

import (
	"context"
	"strings"

	"corpgate/internal/domain/entity"
	"corpgate/internal/domain/repository"
	"corpgate/internal/errors"
	"corpgate/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// commentRepository implements the domain.CommentRepository interface using GORM.
type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository is the constructor for commentRepository.
func NewCommentRepository(db *gorm.DB) repository.CommentRepository {
	return &commentRepository{db: db}
}

// ListForRecord returns all comments on a record, newest first, with the
// author email resolved.
func (repo *commentRepository) ListForRecord(ctx context.Context, table, recordID string) ([]*entity.Comment, error) {
	var rows []struct {
		model.CommentModel
		CreatedByEmail string
	}
	err := repo.db.WithContext(ctx).
		Model(&model.CommentModel{}).
		Select("comments.*, users.email AS created_by_email").
		Joins("LEFT JOIN users ON users.id = comments.created_by").
		Where("comments.reference_table = ? AND comments.reference_id = ?", table, recordID).
		Order("comments.created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list comments")
	}

	comments := make([]*entity.Comment, 0, len(rows))
	for i := range rows {
		comments = append(comments, &entity.Comment{
			ID:             rows[i].ID,
			ReferenceTable: rows[i].ReferenceTable,
			ReferenceID:    rows[i].ReferenceID,
			Text:           rows[i].Comment,
			CreatedBy:      rows[i].CreatedBy,
			CreatedByEmail: rows[i].CreatedByEmail,
			CreatedAt:      rows[i].CreatedAt,
		})
	}

	return comments, nil
}

// Add stores a new comment. The text is trimmed before storage.
func (repo *commentRepository) Add(ctx context.Context, comment *entity.Comment) error {
	commentM := &model.CommentModel{
		ReferenceTable: comment.ReferenceTable,
		ReferenceID:    comment.ReferenceID,
		Comment:        strings.TrimSpace(comment.Text),
		CreatedBy:      comment.CreatedBy,
	}
	if err := repo.db.WithContext(ctx).Create(commentM).Error; err != nil {
		return errors.Wrap(err, "failed to create comment")
	}

	comment.ID = commentM.ID
	comment.Text = commentM.Comment
	comment.CreatedAt = commentM.CreatedAt

	return nil
}
