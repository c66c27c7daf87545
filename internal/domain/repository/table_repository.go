package repository

import (
	"context"
	"errors"

	"corpgate/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrRecordNotFound is returned when a generic table lookup matches nothing.
var ErrRecordNotFound = errors.New("record not found")

// TableRepository gives registry-validated access to the portal's data
// tables without a dedicated repository per table.
type TableRepository interface {
	// List returns one page of rows, newest first, optionally restricted
	// to rows created by the given user.
	List(ctx context.Context, cfg entity.TableConfig, ownerFilter *uuid.UUID, page, pageSize int) ([]map[string]any, error)

	// Insert writes one row and returns it as stored.
	Insert(ctx context.Context, cfg entity.TableConfig, data map[string]any) (map[string]any, error)

	// FindOwner returns the created_by value of a record on an
	// ownership-scoped table.
	FindOwner(ctx context.Context, cfg entity.TableConfig, recordID string) (uuid.UUID, error)

	// UpdateOrderStatus sets an order's status, stamping delivered_date
	// when the order becomes Delivered. Other statuses leave the stored
	// date untouched.
	UpdateOrderStatus(ctx context.Context, orderID string, status string) (map[string]any, error)

	// UpdateIssueStatus sets an issue's status, stamping solved_by and
	// solved_at when the issue becomes Solved. Other statuses leave the
	// stored values untouched.
	UpdateIssueStatus(ctx context.Context, issueID string, status string, solvedBy uuid.UUID) (map[string]any, error)

	// ListPages returns the names of all pages known to the portal.
	ListPages(ctx context.Context) ([]string, error)

	// DescribeColumns reports the table's columns from the database
	// catalog, in ordinal order.
	DescribeColumns(ctx context.Context, cfg entity.TableConfig) ([]entity.ColumnMeta, error)
}

// CommentRepository persists record comments.
type CommentRepository interface {
	// ListForRecord returns all comments on a record, newest first, with
	// the author email resolved.
	ListForRecord(ctx context.Context, table, recordID string) ([]*entity.Comment, error)

	// Add stores a new comment.
	Add(ctx context.Context, comment *entity.Comment) error
}

// ProfileRepository persists per-user employment profiles.
type ProfileRepository interface {
	// FindByUserID returns the user's profile, or ErrRecordNotFound.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error)

	// Upsert inserts or updates the user's profile.
	Upsert(ctx context.Context, profile *entity.Profile) (*entity.Profile, error)
}
