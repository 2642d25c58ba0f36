package production

import (
	"context"
	"time"

	"github.com/erurang/wooyangcrm-sub010/internal/domain/shared"
	"github.com/google/uuid"
)

// RecordRepository defines the interface for production record persistence
type RecordRepository interface {
	// FindByID finds a record by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*ProductionRecord, error)

	// FindByIDWithConsumptions finds a record with its consumption rows loaded
	FindByIDWithConsumptions(ctx context.Context, id uuid.UUID) (*ProductionRecord, error)

	// FindAll finds records matching the filter
	FindAll(ctx context.Context, filter RecordFilter) ([]ProductionRecord, error)

	// Save creates or updates a record
	Save(ctx context.Context, record *ProductionRecord) error

	// SaveWithLock saves with optimistic locking (checks version)
	SaveWithLock(ctx context.Context, record *ProductionRecord) error

	// Count counts records matching the filter
	Count(ctx context.Context, filter RecordFilter) (int64, error)
}

// ConsumptionRepository defines the interface for consumption persistence.
// Consumption rows are never deleted; cancellation compensates through the
// ledger instead.
type ConsumptionRepository interface {
	// FindByID finds a consumption row by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*ProductionConsumption, error)

	// FindByRecord finds all consumption rows of a record
	FindByRecord(ctx context.Context, recordID uuid.UUID) ([]ProductionConsumption, error)

	// FindByMaterial finds consumption rows drawing from a material
	FindByMaterial(ctx context.Context, materialID uuid.UUID, filter shared.Filter) ([]ProductionConsumption, error)

	// Create appends a consumption row
	Create(ctx context.Context, consumption *ProductionConsumption) error
}

// RecordFilter extends shared.Filter with production-specific filters
type RecordFilter struct {
	shared.Filter
	ProductID *uuid.UUID
	Status    *RecordStatus
	StartDate *time.Time
	EndDate   *time.Time
}
