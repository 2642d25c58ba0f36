package persistence

import (
	"context"
	"errors"

	"github.com/erurang/wooyangcrm-sub010/internal/domain/inventory"
	"github.com/erurang/wooyangcrm-sub010/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormLotRepository implements LotRepository using GORM
type GormLotRepository struct {
	db *gorm.DB
}

// NewGormLotRepository creates a new GormLotRepository
func NewGormLotRepository(db *gorm.DB) *GormLotRepository {
	return &GormLotRepository{db: db}
}

// FindByID finds a LOT by its ID
func (r *GormLotRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Lot, error) {
	var lot inventory.Lot
	if err := r.db.WithContext(ctx).First(&lot, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &lot, nil
}

// FindByLotNumber finds a LOT by its unique lot number
func (r *GormLotRepository) FindByLotNumber(ctx context.Context, lotNumber string) (*inventory.Lot, error) {
	var lot inventory.Lot
	if err := r.db.WithContext(ctx).
		Where("lot_number = ?", lotNumber).
		First(&lot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &lot, nil
}

// FindByIDs finds multiple LOTs by their IDs
func (r *GormLotRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]inventory.Lot, error) {
	if len(ids) == 0 {
		return []inventory.Lot{}, nil
	}

	var lots []inventory.Lot
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&lots).Error; err != nil {
		return nil, err
	}
	return lots, nil
}

// FindAll finds LOTs matching the filter
func (r *GormLotRepository) FindAll(ctx context.Context, filter inventory.LotFilter) ([]inventory.Lot, error) {
	var lots []inventory.Lot
	query := r.applyFilter(r.db.WithContext(ctx).Model(&inventory.Lot{}), filter)

	if err := query.Find(&lots).Error; err != nil {
		return nil, err
	}
	return lots, nil
}

// FindAvailableFIFO finds LOTs with remaining quantity for a product, oldest
// received first. Reserved LOTs still carry deductible quantity, so they are
// included.
func (r *GormLotRepository) FindAvailableFIFO(ctx context.Context, productID uuid.UUID) ([]inventory.Lot, error) {
	var lots []inventory.Lot
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND status IN ? AND current_quantity > 0",
			productID, []inventory.LotStatus{inventory.LotStatusAvailable, inventory.LotStatusReserved}).
		Order("received_at ASC, created_at ASC").
		Find(&lots).Error; err != nil {
		return nil, err
	}
	return lots, nil
}

// Save creates or updates a LOT
func (r *GormLotRepository) Save(ctx context.Context, lot *inventory.Lot) error {
	return r.db.WithContext(ctx).Save(lot).Error
}

// SaveWithLock saves a LOT with optimistic locking (version check).
// Returns shared.ErrConcurrencyConflict if the stored version has moved on.
func (r *GormLotRepository) SaveWithLock(ctx context.Context, lot *inventory.Lot) error {
	result := r.db.WithContext(ctx).
		Model(&inventory.Lot{}).
		Where("id = ? AND version = ?", lot.ID, lot.Version-1).
		Updates(map[string]interface{}{
			"current_quantity": lot.CurrentQuantity,
			"status":           lot.Status,
			"supplier":         lot.Supplier,
			"location":         lot.Location,
			"expiry_date":      lot.ExpiryDate,
			"notes":            lot.Notes,
			"version":          lot.Version,
			"updated_at":       lot.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Count counts LOTs matching the filter
func (r *GormLotRepository) Count(ctx context.Context, filter inventory.LotFilter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&inventory.Lot{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormLotRepository) applyFilter(query *gorm.DB, filter inventory.LotFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, LotSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormLotRepository) applyFilterWithoutPagination(query *gorm.DB, filter inventory.LotFilter) *gorm.DB {
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.SourceType != nil {
		query = query.Where("source_type = ?", *filter.SourceType)
	}
	if filter.Supplier != "" {
		query = query.Where("supplier = ?", filter.Supplier)
	}
	if filter.Location != "" {
		query = query.Where("location = ?", filter.Location)
	}
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("lot_number ILIKE ? OR supplier ILIKE ? OR notes ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	return query
}

// Ensure GormLotRepository implements LotRepository
var _ inventory.LotRepository = (*GormLotRepository)(nil)
