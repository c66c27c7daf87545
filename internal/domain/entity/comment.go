package entity

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a free-text note attached to a record of any registered table.
type Comment struct {
	ID             int64
	ReferenceTable string    // Logical table name the comment belongs to.
	ReferenceID    string    // Primary key value of the referenced record.
	Text           string
	CreatedBy      uuid.UUID
	CreatedByEmail string // Resolved from the users table when listing.
	CreatedAt      time.Time
}
