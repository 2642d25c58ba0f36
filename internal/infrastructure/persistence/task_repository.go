package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/erurang/wooyangcrm-sub010/internal/domain/shared"
	"github.com/erurang/wooyangcrm-sub010/internal/domain/task"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTaskRepository implements TaskRepository using GORM
type GormTaskRepository struct {
	db *gorm.DB
}

// NewGormTaskRepository creates a new GormTaskRepository
func NewGormTaskRepository(db *gorm.DB) *GormTaskRepository {
	return &GormTaskRepository{db: db}
}

// FindByID finds a task by its ID
func (r *GormTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*task.InventoryTask, error) {
	var t task.InventoryTask
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// FindByDocument finds tasks materialized from a document
func (r *GormTaskRepository) FindByDocument(ctx context.Context, documentID uuid.UUID) ([]task.InventoryTask, error) {
	var tasks []task.InventoryTask
	if err := r.db.WithContext(ctx).
		Where("document_id = ?", documentID).
		Order("created_at ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindByTradeRecord finds tasks materialized from a trade record
func (r *GormTaskRepository) FindByTradeRecord(ctx context.Context, tradeRecordID uuid.UUID) ([]task.InventoryTask, error) {
	var tasks []task.InventoryTask
	if err := r.db.WithContext(ctx).
		Where("trade_record_id = ?", tradeRecordID).
		Order("created_at ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindAll finds tasks matching the filter, both sources unified
func (r *GormTaskRepository) FindAll(ctx context.Context, filter task.TaskFilter) ([]task.InventoryTask, error) {
	var tasks []task.InventoryTask
	query := r.applyFilter(r.db.WithContext(ctx).Model(&task.InventoryTask{}), filter)

	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Save creates or updates a task
func (r *GormTaskRepository) Save(ctx context.Context, t *task.InventoryTask) error {
	return r.db.WithContext(ctx).Save(t).Error
}

// SaveWithLock saves a task with optimistic locking (version check).
// Returns shared.ErrConcurrencyConflict if the stored version has moved on.
func (r *GormTaskRepository) SaveWithLock(ctx context.Context, t *task.InventoryTask) error {
	result := r.db.WithContext(ctx).
		Model(&task.InventoryTask{}).
		Where("id = ? AND version = ?", t.ID, t.Version-1).
		Updates(map[string]interface{}{
			"status":       t.Status,
			"assigned_to":  t.AssignedTo,
			"assigned_by":  t.AssignedBy,
			"assigned_at":  t.AssignedAt,
			"completed_by": t.CompletedBy,
			"completed_at": t.CompletedAt,
			"canceled_by":  t.CanceledBy,
			"canceled_at":  t.CanceledAt,
			"notes":        t.Notes,
			"version":      t.Version,
			"updated_at":   t.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Count counts tasks matching the filter
func (r *GormTaskRepository) Count(ctx context.Context, filter task.TaskFilter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&task.InventoryTask{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// statusCountRow is the scan target for the grouped status count
type statusCountRow struct {
	Status task.TaskStatus
	Count  int64
}

// CountByStatus counts tasks of one source grouped by status
func (r *GormTaskRepository) CountByStatus(ctx context.Context, source task.TaskSource) (map[task.TaskStatus]int64, error) {
	var rows []statusCountRow
	if err := r.db.WithContext(ctx).
		Model(&task.InventoryTask{}).
		Select("status, COUNT(*) AS count").
		Where("source = ?", source).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[task.TaskStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// CountOverdue counts open tasks of one source whose expected date lies
// before the start of the current day
func (r *GormTaskRepository) CountOverdue(ctx context.Context, source task.TaskSource, now time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&task.InventoryTask{}).
		Where("source = ? AND status IN ? AND expected_date IS NOT NULL AND expected_date < ?",
			source, []task.TaskStatus{task.TaskStatusPending, task.TaskStatusAssigned}, task.StartOfDay(now)).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormTaskRepository) applyFilter(query *gorm.DB, filter task.TaskFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, TaskSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormTaskRepository) applyFilterWithoutPagination(query *gorm.DB, filter task.TaskFilter) *gorm.DB {
	if filter.Source != nil {
		query = query.Where("source = ?", *filter.Source)
	}
	if filter.TaskType != nil {
		query = query.Where("task_type = ?", *filter.TaskType)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.CompanyID != nil {
		query = query.Where("company_id = ?", *filter.CompanyID)
	}
	if filter.AssignedTo != nil {
		query = query.Where("assigned_to = ?", *filter.AssignedTo)
	}
	if filter.StartDate != nil {
		query = query.Where("expected_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("expected_date <= ?", *filter.EndDate)
	}
	if filter.OverdueOnly {
		query = query.Where("status IN ? AND expected_date IS NOT NULL AND expected_date < ?",
			[]task.TaskStatus{task.TaskStatusPending, task.TaskStatusAssigned}, task.StartOfDay(time.Now()))
	}
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("document_number ILIKE ? OR notes ILIKE ?", searchPattern, searchPattern)
	}

	return query
}

// Ensure GormTaskRepository implements TaskRepository
var _ task.TaskRepository = (*GormTaskRepository)(nil)
