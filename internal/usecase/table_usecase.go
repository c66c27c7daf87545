package usecase

import (
	"context"

	"corpgate/internal/domain/entity"
)

// TableUsecase exposes the generic, registry-validated data endpoints.
// The requester is the freshly authenticated user; ownership scoping and
// admin bypass are applied here, not in the handlers.
type TableUsecase interface {
	// ListRecords returns one page of rows from a registered table.
	// Non-admins only see their own rows on ownership-scoped tables.
	ListRecords(ctx context.Context, requester *entity.User, table string, page, pageSize int) ([]map[string]any, error)

	// CreateRecord inserts a row, stamping created_by and created_at on
	// ownership-scoped tables.
	CreateRecord(ctx context.Context, requester *entity.User, table string, data map[string]any) (map[string]any, error)

	// UpdateRecordStatus runs the status workflow for Orders and Issues.
	UpdateRecordStatus(ctx context.Context, requester *entity.User, table, recordID, status string) (map[string]any, error)

	// FormMeta describes the columns of a registered table.
	FormMeta(ctx context.Context, table string) ([]entity.ColumnMeta, error)

	// ListPages returns all portal page names.
	ListPages(ctx context.Context) ([]string, error)
}
