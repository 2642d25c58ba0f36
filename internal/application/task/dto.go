package task

import (
	"time"

	"github.com/erurang/wooyangcrm-sub010/internal/domain/task"
	"github.com/google/uuid"
)

// TaskResponse represents an inventory task in API responses
type TaskResponse struct {
	ID             uuid.UUID  `json:"id"`
	Source         string     `json:"source"`
	TaskType       string     `json:"task_type"`
	DocumentID     *uuid.UUID `json:"document_id,omitempty"`
	TradeRecordID  *uuid.UUID `json:"trade_record_id,omitempty"`
	DocumentNumber string     `json:"document_number"`
	CompanyID      *uuid.UUID `json:"company_id,omitempty"`
	ExpectedDate   *time.Time `json:"expected_date,omitempty"`
	Status         string     `json:"status"`
	Overdue        bool       `json:"overdue"`
	AssignedTo     *uuid.UUID `json:"assigned_to,omitempty"`
	AssignedAt     *time.Time `json:"assigned_at,omitempty"`
	CompletedBy    *uuid.UUID `json:"completed_by,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	CanceledAt     *time.Time `json:"canceled_at,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// ToTaskResponse converts a task to its response form, deriving overdue
// against the given clock
func ToTaskResponse(t *task.InventoryTask, now time.Time) *TaskResponse {
	return &TaskResponse{
		ID:             t.ID,
		Source:         string(t.Source),
		TaskType:       string(t.TaskType),
		DocumentID:     t.DocumentID,
		TradeRecordID:  t.TradeRecordID,
		DocumentNumber: t.DocumentNumber,
		CompanyID:      t.CompanyID,
		ExpectedDate:   t.ExpectedDate,
		Status:         string(t.Status),
		Overdue:        t.IsOverdue(now),
		AssignedTo:     t.AssignedTo,
		AssignedAt:     t.AssignedAt,
		CompletedBy:    t.CompletedBy,
		CompletedAt:    t.CompletedAt,
		CanceledAt:     t.CanceledAt,
		Notes:          t.Notes,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

// ToTaskResponses converts a slice of tasks
func ToTaskResponses(tasks []task.InventoryTask, now time.Time) []TaskResponse {
	out := make([]TaskResponse, len(tasks))
	for i := range tasks {
		out[i] = *ToTaskResponse(&tasks[i], now)
	}
	return out
}

// TaskListFilter represents filter options for the unified task list
type TaskListFilter struct {
	Source     string     `form:"source" binding:"omitempty,oneof=document trade"`
	TaskType   string     `form:"task_type" binding:"omitempty,oneof=inbound outbound"`
	Status     string     `form:"status" binding:"omitempty,oneof=pending assigned completed canceled"`
	CompanyID  *uuid.UUID `form:"company_id"`
	AssignedTo *uuid.UUID `form:"assigned_to"`
	StartDate  *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate    *time.Time `form:"end_date" time_format:"2006-01-02"`
	Search     string     `form:"search"`
	Overdue    bool       `form:"overdue"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// AssignRequest carries the assignment fields
type AssignRequest struct {
	AssignedTo uuid.UUID  `json:"assigned_to" binding:"required"`
	Actor      *uuid.UUID `json:"-"`
}

// DocumentTaskInput materializes a task from a completed document
type DocumentTaskInput struct {
	DocumentID     uuid.UUID
	DocumentNumber string
	DocumentType   string // order or estimate
	CompanyID      *uuid.UUID
	DeliveryDate   *time.Time // orders
	ValidUntil     *time.Time // estimates
	Notes          string
}

// TradeTaskInput materializes a task from an overseas trade record
type TradeTaskInput struct {
	TradeRecordID uuid.UUID
	RecordNumber  string
	CompanyID     *uuid.UUID
	ArrivalDate   *time.Time
	Completed     bool // trade status already signals arrival
	Notes         string
}

// StatsResponse reports per-source counts and their sum
type StatsResponse struct {
	Document task.TaskStats `json:"document"`
	Trade    task.TaskStats `json:"trade"`
	Combined task.TaskStats `json:"combined"`
}
