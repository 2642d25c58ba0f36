package persistence

import (
	"context"
	"errors"

	"github.com/erurang/wooyangcrm-sub010/internal/domain/production"
	"github.com/erurang/wooyangcrm-sub010/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRecordRepository implements RecordRepository using GORM
type GormRecordRepository struct {
	db *gorm.DB
}

// NewGormRecordRepository creates a new GormRecordRepository
func NewGormRecordRepository(db *gorm.DB) *GormRecordRepository {
	return &GormRecordRepository{db: db}
}

// FindByID finds a record by its ID
func (r *GormRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*production.ProductionRecord, error) {
	var record production.ProductionRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindByIDWithConsumptions finds a record with its consumption rows loaded
func (r *GormRecordRepository) FindByIDWithConsumptions(ctx context.Context, id uuid.UUID) (*production.ProductionRecord, error) {
	var record production.ProductionRecord
	if err := r.db.WithContext(ctx).
		Preload("Consumptions").
		First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindAll finds records matching the filter
func (r *GormRecordRepository) FindAll(ctx context.Context, filter production.RecordFilter) ([]production.ProductionRecord, error) {
	var records []production.ProductionRecord
	query := r.applyFilter(r.db.WithContext(ctx).Model(&production.ProductionRecord{}), filter)

	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Save creates or updates a record. Consumption rows are persisted through
// their own repository, never cascaded here.
func (r *GormRecordRepository) Save(ctx context.Context, record *production.ProductionRecord) error {
	return r.db.WithContext(ctx).Omit("Consumptions").Save(record).Error
}

// SaveWithLock saves a record with optimistic locking (version check).
// Returns shared.ErrConcurrencyConflict if the stored version has moved on.
func (r *GormRecordRepository) SaveWithLock(ctx context.Context, record *production.ProductionRecord) error {
	result := r.db.WithContext(ctx).
		Model(&production.ProductionRecord{}).
		Where("id = ? AND version = ?", record.ID, record.Version-1).
		Updates(map[string]interface{}{
			"status":        record.Status,
			"notes":         record.Notes,
			"canceled_by":   record.CanceledBy,
			"canceled_at":   record.CanceledAt,
			"cancel_reason": record.CancelReason,
			"version":       record.Version,
			"updated_at":    record.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Count counts records matching the filter
func (r *GormRecordRepository) Count(ctx context.Context, filter production.RecordFilter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&production.ProductionRecord{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormRecordRepository) applyFilter(query *gorm.DB, filter production.RecordFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, RecordSortFields, "production_date")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormRecordRepository) applyFilterWithoutPagination(query *gorm.DB, filter production.RecordFilter) *gorm.DB {
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.StartDate != nil {
		query = query.Where("production_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("production_date <= ?", *filter.EndDate)
	}
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("batch_number ILIKE ? OR notes ILIKE ?", searchPattern, searchPattern)
	}

	return query
}

// Ensure GormRecordRepository implements RecordRepository
var _ production.RecordRepository = (*GormRecordRepository)(nil)
