package task

import (
	"context"
	"time"

	"github.com/erurang/wooyangcrm-sub010/internal/domain/shared"
	"github.com/google/uuid"
)

// TaskRepository defines the interface for inventory task persistence
type TaskRepository interface {
	// FindByID finds a task by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryTask, error)

	// FindByDocument finds tasks materialized from a document
	FindByDocument(ctx context.Context, documentID uuid.UUID) ([]InventoryTask, error)

	// FindByTradeRecord finds tasks materialized from a trade record
	FindByTradeRecord(ctx context.Context, tradeRecordID uuid.UUID) ([]InventoryTask, error)

	// FindAll finds tasks matching the filter, both sources unified
	FindAll(ctx context.Context, filter TaskFilter) ([]InventoryTask, error)

	// Save creates or updates a task
	Save(ctx context.Context, task *InventoryTask) error

	// SaveWithLock saves with optimistic locking (checks version)
	SaveWithLock(ctx context.Context, task *InventoryTask) error

	// Count counts tasks matching the filter
	Count(ctx context.Context, filter TaskFilter) (int64, error)

	// CountByStatus counts tasks of one source grouped by status
	CountByStatus(ctx context.Context, source TaskSource) (map[TaskStatus]int64, error)

	// CountOverdue counts open tasks of one source whose expected date
	// has passed
	CountOverdue(ctx context.Context, source TaskSource, now time.Time) (int64, error)
}

// AuditLogRepository records task workflow actions to an optional side
// table. Deployments without the table run without an implementation.
type AuditLogRepository interface {
	// Record appends one audit entry
	Record(ctx context.Context, entry *AuditEntry) error
}

// AuditEntry is one task workflow action
type AuditEntry struct {
	shared.BaseEntity
	TaskID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	Action  string     `gorm:"type:varchar(40);not null"`
	ActorID *uuid.UUID `gorm:"type:uuid"`
	Detail  string     `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (AuditEntry) TableName() string {
	return "inventory_task_audit_logs"
}

// TaskFilter extends shared.Filter with task-specific filters
type TaskFilter struct {
	shared.Filter
	Source      *TaskSource
	TaskType    *TaskType
	Status      *TaskStatus
	CompanyID   *uuid.UUID
	AssignedTo  *uuid.UUID
	StartDate   *time.Time
	EndDate     *time.Time
	OverdueOnly bool
}

// TaskStats summarizes one source's tasks by workflow state
type TaskStats struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Assigned  int64 `json:"assigned"`
	Completed int64 `json:"completed"`
	Canceled  int64 `json:"canceled"`
	Overdue   int64 `json:"overdue"`
}

// Add sums another stats block into the receiver
func (s *TaskStats) Add(other TaskStats) {
	s.Total += other.Total
	s.Pending += other.Pending
	s.Assigned += other.Assigned
	s.Completed += other.Completed
	s.Canceled += other.Canceled
	s.Overdue += other.Overdue
}
