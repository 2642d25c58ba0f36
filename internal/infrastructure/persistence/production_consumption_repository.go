package persistence

import (
	"context"
	"errors"

	"github.com/erurang/wooyangcrm-sub010/internal/domain/production"
	"github.com/erurang/wooyangcrm-sub010/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormConsumptionRepository implements ConsumptionRepository using GORM.
// Consumption rows are append-only; cancellations compensate through the
// ledger instead of deleting rows.
type GormConsumptionRepository struct {
	db *gorm.DB
}

// NewGormConsumptionRepository creates a new GormConsumptionRepository
func NewGormConsumptionRepository(db *gorm.DB) *GormConsumptionRepository {
	return &GormConsumptionRepository{db: db}
}

// FindByID finds a consumption row by its ID
func (r *GormConsumptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*production.ProductionConsumption, error) {
	var consumption production.ProductionConsumption
	if err := r.db.WithContext(ctx).First(&consumption, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &consumption, nil
}

// FindByRecord finds all consumption rows of a record
func (r *GormConsumptionRepository) FindByRecord(ctx context.Context, recordID uuid.UUID) ([]production.ProductionConsumption, error) {
	var consumptions []production.ProductionConsumption
	if err := r.db.WithContext(ctx).
		Where("record_id = ?", recordID).
		Order("created_at ASC").
		Find(&consumptions).Error; err != nil {
		return nil, err
	}
	return consumptions, nil
}

// FindByMaterial finds consumption rows drawing from a material
func (r *GormConsumptionRepository) FindByMaterial(ctx context.Context, materialID uuid.UUID, filter shared.Filter) ([]production.ProductionConsumption, error) {
	query := r.db.WithContext(ctx).
		Model(&production.ProductionConsumption{}).
		Where("material_id = ?", materialID)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, CommonSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)

	var consumptions []production.ProductionConsumption
	if err := query.Order(orderBy + " " + orderDir).Find(&consumptions).Error; err != nil {
		return nil, err
	}
	return consumptions, nil
}

// Create appends a consumption row
func (r *GormConsumptionRepository) Create(ctx context.Context, consumption *production.ProductionConsumption) error {
	return r.db.WithContext(ctx).Create(consumption).Error
}

// Ensure GormConsumptionRepository implements ConsumptionRepository
var _ production.ConsumptionRepository = (*GormConsumptionRepository)(nil)
