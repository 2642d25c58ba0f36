package production

import (
	"time"

	"github.com/erurang/wooyangcrm-sub010/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordStatus represents the state of a production record
type RecordStatus string

const (
	// RecordStatusCompleted is the normal state of a booked production run
	RecordStatusCompleted RecordStatus = "completed"
	// RecordStatusCanceled means the run was reversed and stock restored
	RecordStatusCanceled RecordStatus = "canceled"
)

// IsValid returns true if the status is valid
func (s RecordStatus) IsValid() bool {
	return s == RecordStatusCompleted || s == RecordStatusCanceled
}

// ProductionRecord is one booked production run of a finished product,
// together with the raw materials it consumed. Cancellation never deletes
// the record or its consumptions: stock is restored through compensating
// ledger entries and the record keeps its cancellation audit fields.
type ProductionRecord struct {
	shared.BaseAggregateRoot
	ProductID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	QuantityProduced decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ProductionDate   time.Time       `gorm:"type:timestamptz;not null;index"`
	BatchNumber      string          `gorm:"type:varchar(60)"`
	Notes            string          `gorm:"type:text"`
	Status           RecordStatus    `gorm:"type:varchar(20);not null;index"`
	CreatedBy        *uuid.UUID      `gorm:"type:uuid"`
	CanceledBy       *uuid.UUID      `gorm:"type:uuid"`
	CanceledAt       *time.Time      `gorm:"type:timestamptz"`
	CancelReason     string          `gorm:"type:text"`

	Consumptions []ProductionConsumption `gorm:"foreignKey:RecordID"`
}

// TableName returns the table name for GORM
func (ProductionRecord) TableName() string {
	return "production_records"
}

// NewProductionRecord creates a completed production record
func NewProductionRecord(productID uuid.UUID, quantityProduced decimal.Decimal, productionDate time.Time) (*ProductionRecord, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantityProduced.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Produced quantity must be positive")
	}
	if productionDate.IsZero() {
		productionDate = time.Now()
	}

	return &ProductionRecord{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		QuantityProduced:  quantityProduced,
		ProductionDate:    productionDate,
		Status:            RecordStatusCompleted,
		Consumptions:      make([]ProductionConsumption, 0),
	}, nil
}

// WithBatchNumber records the production batch number
func (r *ProductionRecord) WithBatchNumber(batchNumber string) *ProductionRecord {
	r.BatchNumber = batchNumber
	return r
}

// WithNotes records free-text notes
func (r *ProductionRecord) WithNotes(notes string) *ProductionRecord {
	r.Notes = notes
	return r
}

// WithCreatedBy records the creating user
func (r *ProductionRecord) WithCreatedBy(userID uuid.UUID) *ProductionRecord {
	r.CreatedBy = &userID
	return r
}

// IsCanceled returns true if the record has been canceled
func (r *ProductionRecord) IsCanceled() bool {
	return r.Status == RecordStatusCanceled
}

// CanConsume returns an error if materials may no longer be booked against
// the record
func (r *ProductionRecord) CanConsume() error {
	if r.IsCanceled() {
		return shared.NewDomainError("RECORD_CANCELED", "Cannot consume materials on a canceled production record")
	}
	return nil
}

// Cancel marks the record canceled. A second cancellation is rejected so
// stock is never restored twice.
func (r *ProductionRecord) Cancel(canceledBy *uuid.UUID, reason string) error {
	if r.IsCanceled() {
		return shared.ErrAlreadyCanceled
	}
	now := time.Now()
	r.Status = RecordStatusCanceled
	r.CanceledBy = canceledBy
	r.CanceledAt = &now
	r.CancelReason = reason
	r.UpdatedAt = now
	r.IncrementVersion()
	return nil
}
