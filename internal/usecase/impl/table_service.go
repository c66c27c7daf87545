package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "corpgate/internal/delivery/context"
	"corpgate/internal/domain/entity"
	domainerrors "corpgate/internal/domain/errors"
	"corpgate/internal/domain/repository"
	"corpgate/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const defaultPageSize = 50

// tableService implements the TableUsecase interface.
type tableService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewTableService is the constructor for tableService.
func NewTableService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.TableUsecase {
	return &tableService{
		txManager: txManager,
		logger:    logger,
	}
}

func (srv *tableService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListRecords returns one page of rows from a registered table.
// Non-admins only see their own rows on ownership-scoped tables.
func (srv *tableService) ListRecords(ctx context.Context, requester *entity.User, table string, page, pageSize int) ([]map[string]any, error) {
	cfg, ok := entity.LookupTable(table)
	if !ok {
		return nil, errors.WithStack(domainerrors.ErrInvalidTable)
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	var ownerFilter *uuid.UUID
	if cfg.OwnershipScoped() && !requester.IsAdmin() {
		ownerFilter = &requester.ID
	}

	var rows []map[string]any
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.TableRepo().List(ctx, cfg, ownerFilter, page, pageSize)
		if err != nil {
			return errors.Wrap(err, "failed to list records")
		}
		rows = found

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Record listing failed", slog.String("table", table), slog.Any("error", err))

		return nil, err
	}

	return rows, nil
}

// CreateRecord inserts a row, stamping created_by and created_at on
// ownership-scoped tables.
func (srv *tableService) CreateRecord(ctx context.Context, requester *entity.User, table string, data map[string]any) (map[string]any, error) {
	cfg, ok := entity.LookupTable(table)
	if !ok {
		return nil, errors.WithStack(domainerrors.ErrInvalidTable)
	}
	if len(data) == 0 {
		return nil, errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("empty record"))
	}

	// The primary key is always DB-generated.
	delete(data, cfg.PrimaryKey)
	if cfg.OwnershipScoped() {
		data[cfg.OwnershipField] = requester.ID
		data["created_at"] = time.Now()
	}

	var row map[string]any
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		stored, err := repoFactory.TableRepo().Insert(ctx, cfg, data)
		if err != nil {
			return errors.Wrap(err, "failed to insert record")
		}
		row = stored

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Record creation failed", slog.String("table", table), slog.Any("error", err))

		return nil, err
	}
	srv.log(ctx).Info("Record created", slog.String("table", table))

	return row, nil
}

// UpdateRecordStatus runs the status workflow. Only Orders and Issues
// carry one.
func (srv *tableService) UpdateRecordStatus(ctx context.Context, requester *entity.User, table, recordID, status string) (map[string]any, error) {
	var row map[string]any

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		tableRepo := repoFactory.TableRepo()

		var (
			stored map[string]any
			err    error
		)
		switch table {
		case "Orders":
			stored, err = tableRepo.UpdateOrderStatus(ctx, recordID, status)
		case "Issues":
			stored, err = tableRepo.UpdateIssueStatus(ctx, recordID, status, requester.ID)
		default:
			return errors.WithStack(domainerrors.ErrInvalidTable)
		}
		if err != nil {
			if errors.Is(err, repository.ErrRecordNotFound) {
				return errors.WithStack(domainerrors.ErrNotFound)
			}

			return errors.Wrap(err, "failed to update record status")
		}
		row = stored

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Status update failed",
			slog.String("table", table),
			slog.String("record_id", recordID),
			slog.Any("error", err))

		return nil, err
	}
	srv.log(ctx).Info("Status updated",
		slog.String("table", table),
		slog.String("record_id", recordID),
		slog.String("status", status))

	return row, nil
}

// FormMeta describes the columns of a registered table.
func (srv *tableService) FormMeta(ctx context.Context, table string) ([]entity.ColumnMeta, error) {
	cfg, ok := entity.LookupTable(table)
	if !ok {
		return nil, errors.WithStack(domainerrors.ErrInvalidTable)
	}

	var columns []entity.ColumnMeta
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.TableRepo().DescribeColumns(ctx, cfg)
		if err != nil {
			return errors.Wrap(err, "failed to describe columns")
		}
		columns = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return columns, nil
}

// ListPages returns all portal page names.
func (srv *tableService) ListPages(ctx context.Context) ([]string, error) {
	var pages []string

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.TableRepo().ListPages(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list pages")
		}
		pages = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return pages, nil
}
