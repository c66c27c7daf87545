package postgres

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"corpgate/internal/domain/entity"
	"corpgate/internal/domain/repository"
	"corpgate/internal/errors"
	"corpgate/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// identifierPattern limits column names taken from request payloads to
// plain SQL identifiers. Table and key names come from the registry and
// are trusted.
var identifierPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// tableRepository implements the domain.TableRepository interface using GORM.
// Rows travel as maps because the reachable tables are declared in the
// registry, not modeled one by one.
type tableRepository struct {
	db *gorm.DB
}

// NewTableRepository is the constructor for tableRepository.
func NewTableRepository(db *gorm.DB) repository.TableRepository {
	return &tableRepository{db: db}
}

// List returns one page of rows, newest first, optionally restricted to
// rows created by the given user.
func (repo *tableRepository) List(ctx context.Context, cfg entity.TableConfig, ownerFilter *uuid.UUID, page, pageSize int) ([]map[string]any, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 50
	}

	query := repo.db.WithContext(ctx).
		Table(cfg.Table).
		Order(cfg.PrimaryKey + " DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize)
	if ownerFilter != nil && cfg.OwnershipScoped() {
		query = query.Where(cfg.OwnershipField+" = ?", *ownerFilter)
	}

	var rows []map[string]any
	if err := query.Find(&rows).Error; err != nil {
		return nil, errors.Wrapf(err, "failed to list rows of %s", cfg.Table)
	}

	return rows, nil
}

// Insert writes one row and returns it as stored.
func (repo *tableRepository) Insert(ctx context.Context, cfg entity.TableConfig, data map[string]any) (map[string]any, error) {
	if len(data) == 0 {
		return nil, errors.New("no columns to insert")
	}

	columns := make([]string, 0, len(data))
	for column := range data {
		if !identifierPattern.MatchString(column) {
			return nil, errors.Errorf("invalid column name %q", column)
		}
		columns = append(columns, column)
	}
	sort.Strings(columns)

	placeholders := make([]string, 0, len(columns))
	args := make([]any, 0, len(columns))
	for _, column := range columns {
		placeholders = append(placeholders, "?")
		args = append(args, data[column])
	}

	// RETURNING gives the stored row back including DB-generated columns.
	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		cfg.Table, strings.Join(columns, ", "), strings.Join(placeholders, ", "))

	row := map[string]any{}
	if err := repo.db.WithContext(ctx).Raw(stmt, args...).Scan(&row).Error; err != nil {
		return nil, errors.Wrapf(err, "failed to insert into %s", cfg.Table)
	}

	return row, nil
}

// FindOwner returns the created_by value of a record on an
// ownership-scoped table.
func (repo *tableRepository) FindOwner(ctx context.Context, cfg entity.TableConfig, recordID string) (uuid.UUID, error) {
	if !cfg.OwnershipScoped() {
		return uuid.Nil, errors.Errorf("table %s is not ownership scoped", cfg.Table)
	}

	var ownerRaw string
	err := repo.db.WithContext(ctx).
		Table(cfg.Table).
		Select(cfg.OwnershipField).
		Where(cfg.PrimaryKey+" = ?", recordID).
		Take(&ownerRaw).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, repository.ErrRecordNotFound
		}

		return uuid.Nil, errors.Wrapf(err, "failed to find owner of %s record", cfg.Table)
	}

	owner, err := uuid.Parse(ownerRaw)
	if err != nil {
		return uuid.Nil, errors.Wrapf(err, "malformed owner id on %s record", cfg.Table)
	}

	return owner, nil
}

// orderStatusUpdates builds the column set for an order status change.
// delivered_date is stamped only when the order becomes Delivered; any
// other status leaves the stored date untouched.
func orderStatusUpdates(status string) map[string]any {
	updates := map[string]any{"status": status}
	if status == "Delivered" {
		updates["delivered_date"] = time.Now()
	}

	return updates
}

// issueStatusUpdates builds the column set for an issue status change.
// solved_by and solved_at are stamped only when the issue becomes
// Solved; any other status leaves the stored values untouched.
func issueStatusUpdates(status string, solvedBy uuid.UUID) map[string]any {
	updates := map[string]any{"status": status}
	if status == "Solved" {
		updates["solved_by"] = solvedBy
		updates["solved_at"] = time.Now()
	}

	return updates
}

// UpdateOrderStatus sets an order's status, stamping delivered_date when
// the order becomes Delivered.
func (repo *tableRepository) UpdateOrderStatus(ctx context.Context, orderID string, status string) (map[string]any, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("order_id = ?", orderID).
		Updates(orderStatusUpdates(status))
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to update order status")
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrRecordNotFound
	}

	return repo.reloadRow(ctx, "orders", "order_id", orderID)
}

// UpdateIssueStatus sets an issue's status, stamping solved_by and
// solved_at when the issue becomes Solved.
func (repo *tableRepository) UpdateIssueStatus(ctx context.Context, issueID string, status string, solvedBy uuid.UUID) (map[string]any, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.IssueModel{}).
		Where("issue_id = ?", issueID).
		Updates(issueStatusUpdates(status, solvedBy))
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to update issue status")
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrRecordNotFound
	}

	return repo.reloadRow(ctx, "issues", "issue_id", issueID)
}

// ListPages returns the names of all pages known to the portal.
func (repo *tableRepository) ListPages(ctx context.Context) ([]string, error) {
	var names []string
	err := repo.db.WithContext(ctx).
		Model(&model.PageModel{}).
		Order("name ASC").
		Pluck("name", &names).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list pages")
	}

	return names, nil
}

// DescribeColumns reports the table's columns from the database catalog.
func (repo *tableRepository) DescribeColumns(ctx context.Context, cfg entity.TableConfig) ([]entity.ColumnMeta, error) {
	var rows []struct {
		ColumnName string
		DataType   string
		IsNullable string
	}
	err := repo.db.WithContext(ctx).
		Raw(`SELECT column_name, data_type, is_nullable
			 FROM information_schema.columns
			 WHERE table_schema = 'public' AND table_name = ?
			 ORDER BY ordinal_position`, cfg.Table).
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrapf(err, "failed to describe columns of %s", cfg.Table)
	}

	columns := make([]entity.ColumnMeta, 0, len(rows))
	for _, row := range rows {
		columns = append(columns, entity.ColumnMeta{
			Name:     row.ColumnName,
			DataType: row.DataType,
			Nullable: row.IsNullable == "YES",
		})
	}

	return columns, nil
}

func (repo *tableRepository) reloadRow(ctx context.Context, table, primaryKey, id string) (map[string]any, error) {
	row := map[string]any{}
	err := repo.db.WithContext(ctx).
		Table(table).
		Where(primaryKey+" = ?", id).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRecordNotFound
		}

		return nil, errors.Wrapf(err, "failed to reload %s row", table)
	}

	return row, nil
}
