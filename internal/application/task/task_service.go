package task

import (
	"context"
	"errors"
	"time"

	"github.com/erurang/wooyangcrm-sub010/internal/domain/shared"
	"github.com/erurang/wooyangcrm-sub010/internal/domain/task"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TaskService runs the inventory task workflow over both sources.
// The audit repository is optional: deployments without the audit table run
// with it unset, and audit writes report ErrNotConfigured, which callers
// treat as a skip rather than a failure.
type TaskService struct {
	taskRepo  task.TaskRepository
	auditRepo task.AuditLogRepository
	logger    *zap.Logger
	now       func() time.Time
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo task.TaskRepository, logger *zap.Logger) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		logger:   logger,
		now:      time.Now,
	}
}

// SetAuditRepository wires the optional audit log repository
func (s *TaskService) SetAuditRepository(repo task.AuditLogRepository) {
	s.auditRepo = repo
}

// Get returns one task
func (s *TaskService) Get(ctx context.Context, id uuid.UUID) (*TaskResponse, error) {
	t, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToTaskResponse(t, s.now()), nil
}

// List returns tasks from both sources unified, filtered and paginated
func (s *TaskService) List(ctx context.Context, filter TaskListFilter) (*shared.Paginated[TaskResponse], error) {
	domainFilter := s.toTaskFilter(filter)

	tasks, err := s.taskRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.taskRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToTaskResponses(tasks, s.now()), total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// Assign moves a pending task to assigned
func (s *TaskService) Assign(ctx context.Context, id uuid.UUID, req AssignRequest) (*TaskResponse, error) {
	t, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := t.Assign(req.AssignedTo, req.Actor); err != nil {
		return nil, err
	}
	if err := s.taskRepo.SaveWithLock(ctx, t); err != nil {
		return nil, err
	}
	s.recordAudit(ctx, t.ID, "assign", req.Actor, "")
	return ToTaskResponse(t, s.now()), nil
}

// Complete closes an open task
func (s *TaskService) Complete(ctx context.Context, id uuid.UUID, actor *uuid.UUID) (*TaskResponse, error) {
	t, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := t.Complete(actor); err != nil {
		return nil, err
	}
	if err := s.taskRepo.SaveWithLock(ctx, t); err != nil {
		return nil, err
	}
	s.recordAudit(ctx, t.ID, "complete", actor, "")
	return ToTaskResponse(t, s.now()), nil
}

// Cancel closes an open task without completing it
func (s *TaskService) Cancel(ctx context.Context, id uuid.UUID, actor *uuid.UUID) (*TaskResponse, error) {
	t, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := t.Cancel(actor); err != nil {
		return nil, err
	}
	if err := s.taskRepo.SaveWithLock(ctx, t); err != nil {
		return nil, err
	}
	s.recordAudit(ctx, t.ID, "cancel", actor, "")
	return ToTaskResponse(t, s.now()), nil
}

// MaterializeFromDocument builds a task from a completed document. Orders
// become inbound tasks expected by their delivery date; estimates become
// outbound tasks expected by their validity date. A document that already
// has a task is skipped.
func (s *TaskService) MaterializeFromDocument(ctx context.Context, input DocumentTaskInput) (*TaskResponse, error) {
	existing, err := s.taskRepo.FindByDocument(ctx, input.DocumentID)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return ToTaskResponse(&existing[0], s.now()), nil
	}

	var taskType task.TaskType
	var expected *time.Time
	switch input.DocumentType {
	case "order":
		taskType = task.TaskTypeInbound
		expected = input.DeliveryDate
	case "estimate":
		taskType = task.TaskTypeOutbound
		expected = input.ValidUntil
	default:
		return nil, shared.NewDomainError("INVALID_DOCUMENT_TYPE", "Document type must be order or estimate")
	}

	t, err := task.NewDocumentTask(input.DocumentID, input.DocumentNumber, taskType)
	if err != nil {
		return nil, err
	}
	if input.CompanyID != nil {
		t.WithCompany(*input.CompanyID)
	}
	if expected != nil {
		t.WithExpectedDate(*expected)
	}
	if input.Notes != "" {
		t.WithNotes(input.Notes)
	}

	if err := s.taskRepo.Save(ctx, t); err != nil {
		return nil, err
	}
	s.recordAudit(ctx, t.ID, "materialize_document", nil, input.DocumentNumber)
	return ToTaskResponse(t, s.now()), nil
}

// MaterializeFromTradeRecord builds an inbound task from an overseas trade
// record, expected by its arrival date. When the trade status already
// signals arrival, an existing open task is completed instead.
func (s *TaskService) MaterializeFromTradeRecord(ctx context.Context, input TradeTaskInput) (*TaskResponse, error) {
	existing, err := s.taskRepo.FindByTradeRecord(ctx, input.TradeRecordID)
	if err != nil {
		return nil, err
	}

	if len(existing) > 0 {
		t := &existing[0]
		if input.Completed && !t.Status.IsTerminal() {
			if err := t.Complete(nil); err != nil {
				return nil, err
			}
			if err := s.taskRepo.SaveWithLock(ctx, t); err != nil {
				return nil, err
			}
			s.recordAudit(ctx, t.ID, "complete", nil, "trade arrival")
		}
		return ToTaskResponse(t, s.now()), nil
	}

	t, err := task.NewTradeTask(input.TradeRecordID, input.RecordNumber, task.TaskTypeInbound)
	if err != nil {
		return nil, err
	}
	if input.CompanyID != nil {
		t.WithCompany(*input.CompanyID)
	}
	if input.ArrivalDate != nil {
		t.WithExpectedDate(*input.ArrivalDate)
	}
	if input.Notes != "" {
		t.WithNotes(input.Notes)
	}
	if input.Completed {
		if err := t.Complete(nil); err != nil {
			return nil, err
		}
	}

	if err := s.taskRepo.Save(ctx, t); err != nil {
		return nil, err
	}
	s.recordAudit(ctx, t.ID, "materialize_trade", nil, input.RecordNumber)
	return ToTaskResponse(t, s.now()), nil
}

// Stats computes per-source counts independently, then sums them
func (s *TaskService) Stats(ctx context.Context) (*StatsResponse, error) {
	now := s.now()

	document, err := s.sourceStats(ctx, task.TaskSourceDocument, now)
	if err != nil {
		return nil, err
	}
	trade, err := s.sourceStats(ctx, task.TaskSourceTrade, now)
	if err != nil {
		return nil, err
	}

	combined := document
	combined.Add(trade)
	return &StatsResponse{Document: document, Trade: trade, Combined: combined}, nil
}

func (s *TaskService) sourceStats(ctx context.Context, source task.TaskSource, now time.Time) (task.TaskStats, error) {
	counts, err := s.taskRepo.CountByStatus(ctx, source)
	if err != nil {
		return task.TaskStats{}, err
	}
	overdue, err := s.taskRepo.CountOverdue(ctx, source, now)
	if err != nil {
		return task.TaskStats{}, err
	}

	stats := task.TaskStats{
		Pending:   counts[task.TaskStatusPending],
		Assigned:  counts[task.TaskStatusAssigned],
		Completed: counts[task.TaskStatusCompleted],
		Canceled:  counts[task.TaskStatusCanceled],
		Overdue:   overdue,
	}
	stats.Total = stats.Pending + stats.Assigned + stats.Completed + stats.Canceled
	return stats, nil
}

// RecordAudit appends one audit entry. Without a configured audit
// repository it returns ErrNotConfigured.
func (s *TaskService) RecordAudit(ctx context.Context, taskID uuid.UUID, action string, actor *uuid.UUID, detail string) error {
	if s.auditRepo == nil {
		return shared.ErrNotConfigured
	}
	entry := &task.AuditEntry{
		BaseEntity: shared.NewBaseEntity(),
		TaskID:     taskID,
		Action:     action,
		ActorID:    actor,
		Detail:     detail,
	}
	return s.auditRepo.Record(ctx, entry)
}

// recordAudit writes best-effort: a missing audit table is a skip, anything
// else is logged and swallowed so the workflow action itself stands.
func (s *TaskService) recordAudit(ctx context.Context, taskID uuid.UUID, action string, actor *uuid.UUID, detail string) {
	err := s.RecordAudit(ctx, taskID, action, actor, detail)
	if err == nil || errors.Is(err, shared.ErrNotConfigured) {
		return
	}
	if s.logger != nil {
		s.logger.Warn("task audit write failed",
			zap.String("task_id", taskID.String()),
			zap.String("action", action),
			zap.Error(err))
	}
}

func (s *TaskService) toTaskFilter(filter TaskListFilter) task.TaskFilter {
	base := shared.DefaultFilter()
	if filter.Page > 0 {
		base.Page = filter.Page
	}
	if filter.PageSize > 0 {
		base.PageSize = filter.PageSize
	}
	base.Search = filter.Search

	out := task.TaskFilter{
		Filter:      base,
		CompanyID:   filter.CompanyID,
		AssignedTo:  filter.AssignedTo,
		StartDate:   filter.StartDate,
		EndDate:     filter.EndDate,
		OverdueOnly: filter.Overdue,
	}
	if filter.Source != "" {
		source := task.TaskSource(filter.Source)
		out.Source = &source
	}
	if filter.TaskType != "" {
		taskType := task.TaskType(filter.TaskType)
		out.TaskType = &taskType
	}
	if filter.Status != "" {
		status := task.TaskStatus(filter.Status)
		out.Status = &status
	}
	return out
}
