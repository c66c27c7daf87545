package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderModel mirrors the 'orders' table, used by the status workflow.
// The generic data endpoints read the table through its registry entry.
type OrderModel struct {
	OrderID       int64      `gorm:"column:order_id;primaryKey;autoIncrement"`
	Status        string     `gorm:"type:varchar(50)"`
	SupplierID    *int64     `gorm:"column:supplier_id"`
	DeliveredDate *time.Time `gorm:"column:delivered_date"`
	CreatedBy     uuid.UUID  `gorm:"type:uuid;column:created_by"`
	CreatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// IssueModel mirrors the 'issues' table, used by the status workflow.
type IssueModel struct {
	IssueID   int64      `gorm:"column:issue_id;primaryKey;autoIncrement"`
	Status    string     `gorm:"type:varchar(50)"`
	DeviceID  *int64     `gorm:"column:device_id"`
	SolvedBy  *uuid.UUID `gorm:"type:uuid;column:solved_by"`
	SolvedAt  *time.Time `gorm:"column:solved_at"`
	CreatedBy uuid.UUID  `gorm:"type:uuid;column:created_by"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (IssueModel) TableName() string {
	return "issues"
}

// CommentModel mirrors the 'comments' table.
type CommentModel struct {
	ID             int64     `gorm:"primaryKey;autoIncrement"`
	ReferenceTable string    `gorm:"type:varchar(100);not null;index:idx_comments_reference"`
	ReferenceID    string    `gorm:"type:varchar(100);not null;index:idx_comments_reference"`
	Comment        string    `gorm:"type:text;not null"`
	CreatedBy      uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (CommentModel) TableName() string {
	return "comments"
}

// ProfileModel mirrors the 'profiles' table; one row per user.
type ProfileModel struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	UserID       uuid.UUID `gorm:"type:uuid;unique;not null"`
	EmployeeID   string    `gorm:"column:employee_id;type:varchar(50)"`
	NationalID   string    `gorm:"column:national_id;type:varchar(50)"`
	SCFHSID      string    `gorm:"column:scfhs_id;type:varchar(50)"`
	DOB          string    `gorm:"column:dob;type:varchar(20)"`
	Gender       string    `gorm:"type:varchar(20)"`
	JobTitle     string    `gorm:"column:job_title;type:varchar(100)"`
	Specialty    string    `gorm:"type:varchar(100)"`
	NetworkID    string    `gorm:"column:network_id;type:varchar(50)"`
	SupervisorID string    `gorm:"column:supervisor_id;type:varchar(50)"`
	FullNameAR   string    `gorm:"column:fullname_ar;type:varchar(200)"`
	FullNameEN   string    `gorm:"column:fullname_en;type:varchar(200)"`
	FacilityID   string    `gorm:"column:facility_id;type:varchar(50)"`
	Phone        string    `gorm:"type:varchar(50)"`
	Address      string    `gorm:"type:text"`
	Comments     string    `gorm:"type:text"`
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProfileModel) TableName() string {
	return "profiles"
}

// PageModel mirrors the 'pages' lookup table listing portal pages.
type PageModel struct {
	ID   int64  `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"type:varchar(100);unique;not null"`
}

// TableName explicitly sets the table name for GORM.
func (PageModel) TableName() string {
	return "pages"
}
