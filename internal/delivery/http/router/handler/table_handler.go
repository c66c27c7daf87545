package handler

import (
	"log/slog"
	"net/http"

	"corpgate/internal/delivery/http/middleware"
	"corpgate/internal/delivery/http/response"
	"corpgate/internal/domain/entity"
	domainerrors "corpgate/internal/domain/errors"
	"corpgate/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// TableHandler serves the generic, registry-validated data endpoints.
type TableHandler struct {
	uc     usecase.TableUsecase
	logger *slog.Logger
}

// NewTableHandler is the constructor for TableHandler, injected by Fx.
func NewTableHandler(uc usecase.TableUsecase, logger *slog.Logger) *TableHandler {
	return &TableHandler{
		uc:     uc,
		logger: logger,
	}
}

type listRecordsRequest struct {
	Table    string `json:"table" validate:"required"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
}

type listRecordsResponse struct {
	response.Envelope
	Rows []map[string]any `json:"rows"`
}

// List returns one page of rows from a registered table.
func (h *TableHandler) List(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return response.Fail(c, http.StatusUnauthorized, "Invalid or expired token")
	}

	var input listRecordsRequest
	if err := c.Bind(&input); err != nil {
		return errors.WithStack(domainerrors.ErrValidationFailed)
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	rows, err := h.uc.ListRecords(c.Request().Context(), user, input.Table, input.Page, input.PageSize)
	if err != nil {
		return errors.WithStack(err)
	}
	if rows == nil {
		rows = []map[string]any{}
	}

	return c.JSON(http.StatusOK, listRecordsResponse{
		Envelope: response.Success(),
		Rows:     rows,
	})
}

type createRecordRequest struct {
	Table string         `json:"table" validate:"required"`
	Data  map[string]any `json:"data" validate:"required"`
}

type recordResponse struct {
	response.Envelope
	Row map[string]any `json:"row"`
}

// Create inserts a row into a registered table.
func (h *TableHandler) Create(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return response.Fail(c, http.StatusUnauthorized, "Invalid or expired token")
	}

	var input createRecordRequest
	if err := c.Bind(&input); err != nil {
		return errors.WithStack(domainerrors.ErrValidationFailed)
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	row, err := h.uc.CreateRecord(c.Request().Context(), user, input.Table, input.Data)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, recordResponse{
		Envelope: response.Success(),
		Row:      row,
	})
}

type updateStatusRequest struct {
	Table    string `json:"table" validate:"required"`
	RecordID string `json:"recordId" validate:"required"`
	Status   string `json:"status" validate:"required"`
}

// UpdateStatus runs the status workflow for Orders and Issues.
func (h *TableHandler) UpdateStatus(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return response.Fail(c, http.StatusUnauthorized, "Invalid or expired token")
	}

	var input updateStatusRequest
	if err := c.Bind(&input); err != nil {
		return errors.WithStack(domainerrors.ErrValidationFailed)
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	row, err := h.uc.UpdateRecordStatus(c.Request().Context(), user, input.Table, input.RecordID, input.Status)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, recordResponse{
		Envelope: response.Success(),
		Row:      row,
	})
}

type formMetaRequest struct {
	Table string `json:"table" validate:"required"`
}

type formMetaResponse struct {
	response.Envelope
	Columns []entity.ColumnMeta `json:"columns"`
}

// FormMeta describes the columns of a registered table.
func (h *TableHandler) FormMeta(c echo.Context) error {
	var input formMetaRequest
	if err := c.Bind(&input); err != nil {
		return errors.WithStack(domainerrors.ErrValidationFailed)
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	columns, err := h.uc.FormMeta(c.Request().Context(), input.Table)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, formMetaResponse{
		Envelope: response.Success(),
		Columns:  columns,
	})
}

type pagesListResponse struct {
	response.Envelope
	Pages []string `json:"pages"`
}

// PagesList returns all portal page names.
func (h *TableHandler) PagesList(c echo.Context) error {
	pages, err := h.uc.ListPages(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}
	if pages == nil {
		pages = []string{}
	}

	return c.JSON(http.StatusOK, pagesListResponse{
		Envelope: response.Success(),
		Pages:    pages,
	})
}
