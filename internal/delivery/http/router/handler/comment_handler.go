package handler

import (
	"log/slog"
	"net/http"
	"time"

	"corpgate/internal/delivery/http/middleware"
	"corpgate/internal/delivery/http/response"
	"corpgate/internal/domain/entity"
	domainerrors "corpgate/internal/domain/errors"
	"corpgate/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CommentHandler serves record comments.
type CommentHandler struct {
	uc     usecase.CommentUsecase
	logger *slog.Logger
}

// NewCommentHandler is the constructor for CommentHandler, injected by Fx.
func NewCommentHandler(uc usecase.CommentUsecase, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{
		uc:     uc,
		logger: logger,
	}
}

type commentPayload struct {
	ID             int64     `json:"id"`
	Table          string    `json:"table"`
	RecordID       string    `json:"recordId"`
	Comment        string    `json:"comment"`
	CreatedBy      string    `json:"createdBy"`
	CreatedByEmail string    `json:"createdByEmail"`
	CreatedAt      time.Time `json:"createdAt"`
}

func toCommentPayload(comment *entity.Comment) commentPayload {
	return commentPayload{
		ID:             comment.ID,
		Table:          comment.ReferenceTable,
		RecordID:       comment.ReferenceID,
		Comment:        comment.Text,
		CreatedBy:      comment.CreatedBy.String(),
		CreatedByEmail: comment.CreatedByEmail,
		CreatedAt:      comment.CreatedAt,
	}
}

type listCommentsRequest struct {
	Table    string `json:"table" validate:"required"`
	RecordID string `json:"recordId" validate:"required"`
}

type listCommentsResponse struct {
	response.Envelope
	Comments []commentPayload `json:"comments"`
}

// List returns all comments on a record, newest first.
func (h *CommentHandler) List(c echo.Context) error {
	var input listCommentsRequest
	if err := c.Bind(&input); err != nil {
		return errors.WithStack(domainerrors.ErrValidationFailed)
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	comments, err := h.uc.ListComments(c.Request().Context(), input.Table, input.RecordID)
	if err != nil {
		return errors.WithStack(err)
	}

	payloads := make([]commentPayload, 0, len(comments))
	for _, comment := range comments {
		payloads = append(payloads, toCommentPayload(comment))
	}

	return c.JSON(http.StatusOK, listCommentsResponse{
		Envelope: response.Success(),
		Comments: payloads,
	})
}

type addCommentRequest struct {
	Table    string `json:"table" validate:"required"`
	RecordID string `json:"recordId" validate:"required"`
	Comment  string `json:"comment" validate:"required"`
}

type addCommentResponse struct {
	response.Envelope
	Comment commentPayload `json:"comment"`
}

// Add attaches a comment to a record.
func (h *CommentHandler) Add(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return response.Fail(c, http.StatusUnauthorized, "Invalid or expired token")
	}

	var input addCommentRequest
	if err := c.Bind(&input); err != nil {
		return errors.WithStack(domainerrors.ErrValidationFailed)
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	comment, err := h.uc.AddComment(c.Request().Context(), user, input.Table, input.RecordID, input.Comment)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, addCommentResponse{
		Envelope: response.Success(),
		Comment:  toCommentPayload(comment),
	})
}
