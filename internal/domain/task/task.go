package task

import (
	"time"

	"github.com/erurang/wooyangcrm-sub010/internal/domain/shared"
	"github.com/google/uuid"
)

// TaskSource tells which upstream record materialized the task
type TaskSource string

const (
	// TaskSourceDocument means the task came from an order or estimate document
	TaskSourceDocument TaskSource = "document"
	// TaskSourceTrade means the task came from an overseas trade record
	TaskSourceTrade TaskSource = "trade"
)

// IsValid returns true if the source is valid
func (s TaskSource) IsValid() bool {
	return s == TaskSourceDocument || s == TaskSourceTrade
}

// TaskType represents the stock direction the task tracks
type TaskType string

const (
	TaskTypeInbound  TaskType = "inbound"
	TaskTypeOutbound TaskType = "outbound"
)

// IsValid returns true if the task type is valid
func (t TaskType) IsValid() bool {
	return t == TaskTypeInbound || t == TaskTypeOutbound
}

// TaskStatus represents the workflow state of a task
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusAssigned  TaskStatus = "assigned"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusCanceled  TaskStatus = "canceled"
)

// IsValid returns true if the status is valid
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusAssigned, TaskStatusCompleted, TaskStatusCanceled:
		return true
	}
	return false
}

// IsTerminal returns true if no further transitions are allowed
func (s TaskStatus) IsTerminal() bool {
	return s == TaskStatusCompleted || s == TaskStatusCanceled
}

// InventoryTask is one pending warehouse action derived from a document or
// an overseas trade record. The state machine is pending -> assigned ->
// completed, with cancel allowed from any non-terminal state; assignment is
// optional before completion. Overdue is derived, never stored.
type InventoryTask struct {
	shared.BaseAggregateRoot
	Source         TaskSource `gorm:"type:varchar(20);not null;index"`
	TaskType       TaskType   `gorm:"type:varchar(20);not null;index"`
	DocumentID     *uuid.UUID `gorm:"type:uuid;index"`
	TradeRecordID  *uuid.UUID `gorm:"type:uuid;index"`
	DocumentNumber string     `gorm:"type:varchar(100);not null"`
	CompanyID      *uuid.UUID `gorm:"type:uuid;index"`
	ExpectedDate   *time.Time `gorm:"type:timestamptz;index"`
	Status         TaskStatus `gorm:"type:varchar(20);not null;index"`
	AssignedTo     *uuid.UUID `gorm:"type:uuid;index"`
	AssignedBy     *uuid.UUID `gorm:"type:uuid"`
	AssignedAt     *time.Time `gorm:"type:timestamptz"`
	CompletedBy    *uuid.UUID `gorm:"type:uuid"`
	CompletedAt    *time.Time `gorm:"type:timestamptz"`
	CanceledBy     *uuid.UUID `gorm:"type:uuid"`
	CanceledAt     *time.Time `gorm:"type:timestamptz"`
	Notes          string     `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (InventoryTask) TableName() string {
	return "inventory_tasks"
}

// NewDocumentTask creates a pending task from a document
func NewDocumentTask(documentID uuid.UUID, documentNumber string, taskType TaskType) (*InventoryTask, error) {
	if documentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DOCUMENT", "Document ID cannot be empty")
	}
	task, err := newTask(TaskSourceDocument, documentNumber, taskType)
	if err != nil {
		return nil, err
	}
	task.DocumentID = &documentID
	return task, nil
}

// NewTradeTask creates a pending task from an overseas trade record
func NewTradeTask(tradeRecordID uuid.UUID, documentNumber string, taskType TaskType) (*InventoryTask, error) {
	if tradeRecordID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TRADE_RECORD", "Trade record ID cannot be empty")
	}
	task, err := newTask(TaskSourceTrade, documentNumber, taskType)
	if err != nil {
		return nil, err
	}
	task.TradeRecordID = &tradeRecordID
	return task, nil
}

func newTask(source TaskSource, documentNumber string, taskType TaskType) (*InventoryTask, error) {
	if documentNumber == "" {
		return nil, shared.NewDomainError("INVALID_DOCUMENT_NUMBER", "Document number cannot be empty")
	}
	if !taskType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TASK_TYPE", "Invalid task type")
	}

	return &InventoryTask{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Source:            source,
		TaskType:          taskType,
		DocumentNumber:    documentNumber,
		Status:            TaskStatusPending,
	}, nil
}

// WithCompany links the task to the counterparty company
func (t *InventoryTask) WithCompany(companyID uuid.UUID) *InventoryTask {
	t.CompanyID = &companyID
	return t
}

// WithExpectedDate records the date the movement is expected by
func (t *InventoryTask) WithExpectedDate(expected time.Time) *InventoryTask {
	t.ExpectedDate = &expected
	return t
}

// WithNotes records free-text notes
func (t *InventoryTask) WithNotes(notes string) *InventoryTask {
	t.Notes = notes
	return t
}

// IsOverdue returns true if the task is still open past its expected date.
// A task expected today stays on time for the whole day; the comparison is
// against the start of the current day. Tasks without an expected date are
// never overdue.
func (t *InventoryTask) IsOverdue(now time.Time) bool {
	if t.Status.IsTerminal() || t.ExpectedDate == nil {
		return false
	}
	return t.ExpectedDate.Before(StartOfDay(now))
}

// StartOfDay truncates a timestamp to midnight in its location
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Assign moves a pending task to assigned
func (t *InventoryTask) Assign(assignee uuid.UUID, assignedBy *uuid.UUID) error {
	if assignee == uuid.Nil {
		return shared.NewDomainError("INVALID_ASSIGNEE", "Assignee cannot be empty")
	}
	if t.Status != TaskStatusPending {
		return shared.ErrInvalidState
	}
	now := time.Now()
	t.Status = TaskStatusAssigned
	t.AssignedTo = &assignee
	t.AssignedBy = assignedBy
	t.AssignedAt = &now
	t.UpdatedAt = now
	t.IncrementVersion()
	return nil
}

// Complete closes the task. Assignment is not required first.
func (t *InventoryTask) Complete(completedBy *uuid.UUID) error {
	if t.Status.IsTerminal() {
		return shared.ErrInvalidState
	}
	now := time.Now()
	t.Status = TaskStatusCompleted
	t.CompletedBy = completedBy
	t.CompletedAt = &now
	t.UpdatedAt = now
	t.IncrementVersion()
	return nil
}

// Cancel closes the task without completing it
func (t *InventoryTask) Cancel(canceledBy *uuid.UUID) error {
	if t.Status.IsTerminal() {
		return shared.ErrInvalidState
	}
	now := time.Now()
	t.Status = TaskStatusCanceled
	t.CanceledBy = canceledBy
	t.CanceledAt = &now
	t.UpdatedAt = now
	t.IncrementVersion()
	return nil
}
