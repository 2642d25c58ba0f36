package handler

import (
	"time"

	taskapp "github.com/erurang/wooyangcrm-sub010/internal/application/task"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TaskHandler handles inventory task workflow API endpoints
type TaskHandler struct {
	BaseHandler
	taskService *taskapp.TaskService
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService *taskapp.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// DocumentTaskRequest materializes a task from a completed sales document
type DocumentTaskRequest struct {
	DocumentID     uuid.UUID  `json:"document_id" binding:"required"`
	DocumentNumber string     `json:"document_number" binding:"required"`
	DocumentType   string     `json:"document_type" binding:"required,oneof=order estimate"`
	CompanyID      *uuid.UUID `json:"company_id"`
	DeliveryDate   *time.Time `json:"delivery_date"`
	ValidUntil     *time.Time `json:"valid_until"`
	Notes          string     `json:"notes"`
}

// TradeTaskRequest materializes a task from an overseas trade record
type TradeTaskRequest struct {
	TradeRecordID uuid.UUID  `json:"trade_record_id" binding:"required"`
	RecordNumber  string     `json:"record_number" binding:"required"`
	CompanyID     *uuid.UUID `json:"company_id"`
	ArrivalDate   *time.Time `json:"arrival_date"`
	Completed     bool       `json:"completed"`
	Notes         string     `json:"notes"`
}

// GetByID returns one task
func (h *TaskHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid task ID format")
		return
	}

	task, err := h.taskService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, task)
}

// List returns tasks matching the filter
func (h *TaskHandler) List(c *gin.Context) {
	var filter taskapp.TaskListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	result, err := h.taskService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, filter.Page, filter.PageSize)
}

// Assign assigns a pending task to a worker
func (h *TaskHandler) Assign(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid task ID format")
		return
	}

	var req taskapp.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.Actor = actorRef(c)

	task, err := h.taskService.Assign(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, task)
}

// Complete marks a task completed
func (h *TaskHandler) Complete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid task ID format")
		return
	}

	task, err := h.taskService.Complete(c.Request.Context(), id, actorRef(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, task)
}

// Cancel cancels a non-terminal task
func (h *TaskHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid task ID format")
		return
	}

	task, err := h.taskService.Cancel(c.Request.Context(), id, actorRef(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, task)
}

// MaterializeFromDocument creates or reuses the task for a completed document
func (h *TaskHandler) MaterializeFromDocument(c *gin.Context) {
	var req DocumentTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.MaterializeFromDocument(c.Request.Context(), taskapp.DocumentTaskInput{
		DocumentID:     req.DocumentID,
		DocumentNumber: req.DocumentNumber,
		DocumentType:   req.DocumentType,
		CompanyID:      req.CompanyID,
		DeliveryDate:   req.DeliveryDate,
		ValidUntil:     req.ValidUntil,
		Notes:          req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, task)
}

// MaterializeFromTradeRecord creates or reuses the task for a trade record
func (h *TaskHandler) MaterializeFromTradeRecord(c *gin.Context) {
	var req TradeTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.MaterializeFromTradeRecord(c.Request.Context(), taskapp.TradeTaskInput{
		TradeRecordID: req.TradeRecordID,
		RecordNumber:  req.RecordNumber,
		CompanyID:     req.CompanyID,
		ArrivalDate:   req.ArrivalDate,
		Completed:     req.Completed,
		Notes:         req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, task)
}

// Stats reports per-source task counts with overdue totals
func (h *TaskHandler) Stats(c *gin.Context) {
	stats, err := h.taskService.Stats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stats)
}
