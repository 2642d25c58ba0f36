package persistence

import (
	"context"
	"errors"

	"github.com/erurang/wooyangcrm-sub010/internal/domain/inventory"
	"github.com/erurang/wooyangcrm-sub010/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormLotSplitRepository implements LotSplitRepository using GORM.
// Split records are append-only: the repository exposes no update or delete.
type GormLotSplitRepository struct {
	db *gorm.DB
}

// NewGormLotSplitRepository creates a new GormLotSplitRepository
func NewGormLotSplitRepository(db *gorm.DB) *GormLotSplitRepository {
	return &GormLotSplitRepository{db: db}
}

// FindByID finds a split record by its ID
func (r *GormLotSplitRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.LotSplit, error) {
	var split inventory.LotSplit
	if err := r.db.WithContext(ctx).First(&split, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &split, nil
}

// FindBySource finds the splits where the LOT was the source
func (r *GormLotSplitRepository) FindBySource(ctx context.Context, sourceLotID uuid.UUID) ([]inventory.LotSplit, error) {
	var splits []inventory.LotSplit
	if err := r.db.WithContext(ctx).
		Where("source_lot_id = ?", sourceLotID).
		Order("split_at ASC").
		Find(&splits).Error; err != nil {
		return nil, err
	}
	return splits, nil
}

// FindByChild finds splits where the LOT is output or remnant
func (r *GormLotSplitRepository) FindByChild(ctx context.Context, lotID uuid.UUID) ([]inventory.LotSplit, error) {
	var splits []inventory.LotSplit
	if err := r.db.WithContext(ctx).
		Where("output_lot_id = ? OR remnant_lot_id = ?", lotID, lotID).
		Order("split_at ASC").
		Find(&splits).Error; err != nil {
		return nil, err
	}
	return splits, nil
}

// FindInvolving finds all splits touching any of the given LOTs, as source,
// output or remnant
func (r *GormLotSplitRepository) FindInvolving(ctx context.Context, lotIDs []uuid.UUID) ([]inventory.LotSplit, error) {
	if len(lotIDs) == 0 {
		return []inventory.LotSplit{}, nil
	}

	var splits []inventory.LotSplit
	if err := r.db.WithContext(ctx).
		Where("source_lot_id IN ? OR output_lot_id IN ? OR remnant_lot_id IN ?", lotIDs, lotIDs, lotIDs).
		Order("split_at ASC").
		Find(&splits).Error; err != nil {
		return nil, err
	}
	return splits, nil
}

// Create appends a new split record
func (r *GormLotSplitRepository) Create(ctx context.Context, split *inventory.LotSplit) error {
	return r.db.WithContext(ctx).Create(split).Error
}

// Ensure GormLotSplitRepository implements LotSplitRepository
var _ inventory.LotSplitRepository = (*GormLotSplitRepository)(nil)
