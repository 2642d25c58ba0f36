package inventory

import (
	"time"

	"github.com/erurang/wooyangcrm-sub010/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LotStatus represents the lifecycle state of a LOT
type LotStatus string

const (
	// LotStatusAvailable means the LOT can be consumed or split
	LotStatusAvailable LotStatus = "available"
	// LotStatusReserved means the LOT is earmarked but still splittable
	LotStatusReserved LotStatus = "reserved"
	// LotStatusSplit means the LOT was divided into two children and retired
	LotStatusSplit LotStatus = "split"
	// LotStatusConsumed means the LOT quantity was fully used up
	LotStatusConsumed LotStatus = "consumed"
	// LotStatusExpired means the LOT passed its expiry date
	LotStatusExpired LotStatus = "expired"
)

// String returns the string representation of LotStatus
func (s LotStatus) String() string {
	return string(s)
}

// IsValid returns true if the status is valid
func (s LotStatus) IsValid() bool {
	switch s {
	case LotStatusAvailable, LotStatusReserved, LotStatusSplit, LotStatusConsumed, LotStatusExpired:
		return true
	}
	return false
}

// IsTerminal returns true if no further quantity movement is allowed
func (s LotStatus) IsTerminal() bool {
	return s == LotStatusSplit || s == LotStatusConsumed || s == LotStatusExpired
}

// LotSourceType represents how a LOT entered inventory
type LotSourceType string

const (
	LotSourcePurchase   LotSourceType = "purchase"
	LotSourceProduction LotSourceType = "production"
	LotSourceSplit      LotSourceType = "split"
)

// IsValid returns true if the source type is valid
func (s LotSourceType) IsValid() bool {
	switch s {
	case LotSourcePurchase, LotSourceProduction, LotSourceSplit:
		return true
	}
	return false
}

// Lot represents a traceable quantity of a product.
// It is the aggregate root for LOT operations. InitialQuantity is immutable
// once set; CurrentQuantity only moves through ledger-writing operations and
// always satisfies 0 <= CurrentQuantity <= InitialQuantity. LOTs are never
// physically deleted: zero-quantity LOTs are retained for traceability.
type Lot struct {
	shared.BaseAggregateRoot
	ProductID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	LotNumber        string          `gorm:"type:varchar(40);not null;uniqueIndex"`
	InitialQuantity  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CurrentQuantity  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Status           LotStatus       `gorm:"type:varchar(20);not null;index"`
	SourceType       LotSourceType   `gorm:"type:varchar(20);not null;index"`
	SourceDocumentID *uuid.UUID      `gorm:"type:uuid;index"`
	SourceLotID      *uuid.UUID      `gorm:"type:uuid;index"` // parent, for split-derived LOTs
	Supplier         string          `gorm:"type:varchar(200)"`
	Location         string          `gorm:"type:varchar(100)"`
	UnitCost         *decimal.Decimal `gorm:"type:decimal(18,4)"`
	ReceivedAt       time.Time       `gorm:"type:timestamptz;not null"`
	ExpiryDate       *time.Time      `gorm:"type:timestamptz"`
	Notes            string          `gorm:"type:text"`
	CreatedBy        *uuid.UUID      `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (Lot) TableName() string {
	return "inventory_lots"
}

// NewLot creates a new LOT with its full initial quantity available
func NewLot(productID uuid.UUID, lotNumber string, initialQuantity decimal.Decimal, sourceType LotSourceType) (*Lot, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if lotNumber == "" {
		return nil, shared.NewDomainError("INVALID_LOT_NUMBER", "Lot number cannot be empty")
	}
	if initialQuantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Initial quantity must be positive")
	}
	if !sourceType.IsValid() {
		return nil, shared.NewDomainError("INVALID_SOURCE_TYPE", "Invalid lot source type")
	}

	lot := &Lot{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		LotNumber:         lotNumber,
		InitialQuantity:   initialQuantity,
		CurrentQuantity:   initialQuantity,
		Status:            LotStatusAvailable,
		SourceType:        sourceType,
		ReceivedAt:        time.Now(),
	}

	lot.AddDomainEvent(NewLotCreatedEvent(lot))

	return lot, nil
}

// WithSourceDocument links the LOT to the document that produced it
func (l *Lot) WithSourceDocument(documentID uuid.UUID) *Lot {
	l.SourceDocumentID = &documentID
	return l
}

// WithSourceLot links the LOT to the parent it was split from
func (l *Lot) WithSourceLot(sourceLotID uuid.UUID) *Lot {
	l.SourceLotID = &sourceLotID
	return l
}

// WithSupplier records the supplier the LOT was received from
func (l *Lot) WithSupplier(supplier string) *Lot {
	l.Supplier = supplier
	return l
}

// WithLocation records the storage location
func (l *Lot) WithLocation(location string) *Lot {
	l.Location = location
	return l
}

// WithUnitCost records the per-unit cost at receipt
func (l *Lot) WithUnitCost(unitCost decimal.Decimal) *Lot {
	l.UnitCost = &unitCost
	return l
}

// WithReceivedAt overrides the receipt timestamp
func (l *Lot) WithReceivedAt(receivedAt time.Time) *Lot {
	l.ReceivedAt = receivedAt
	return l
}

// WithExpiryDate records the expiry date
func (l *Lot) WithExpiryDate(expiry time.Time) *Lot {
	l.ExpiryDate = &expiry
	return l
}

// WithNotes records free-text notes
func (l *Lot) WithNotes(notes string) *Lot {
	l.Notes = notes
	return l
}

// WithCreatedBy records the creating user
func (l *Lot) WithCreatedBy(userID uuid.UUID) *Lot {
	l.CreatedBy = &userID
	return l
}

// IsSplittable returns true if the LOT may be used as a split source
func (l *Lot) IsSplittable() bool {
	return l.Status == LotStatusAvailable || l.Status == LotStatusReserved
}

// ValidateSplit checks the split preconditions in order and returns the
// first failure: usable status, positive quantity, quantity strictly below
// the remaining quantity. A split that would consume the whole LOT is
// rejected; callers should deduct instead.
func (l *Lot) ValidateSplit(splitQuantity decimal.Decimal) error {
	if !l.IsSplittable() {
		return shared.NewDomainError("LOT_NOT_USABLE", "Lot is not in a splittable state")
	}
	if splitQuantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_SPLIT_QUANTITY", "Split quantity must be positive")
	}
	if splitQuantity.GreaterThanOrEqual(l.CurrentQuantity) {
		return shared.NewDomainError("INVALID_SPLIT_QUANTITY", "Split quantity must be less than the current quantity")
	}
	return nil
}

// MarkSplit retires the LOT after its full remaining quantity has been
// converted into two children. The remaining quantity drops to zero.
func (l *Lot) MarkSplit() error {
	if !l.IsSplittable() {
		return shared.NewDomainError("LOT_NOT_USABLE", "Lot is not in a splittable state")
	}
	l.CurrentQuantity = decimal.Zero
	l.Status = LotStatusSplit
	l.Touch()
	l.IncrementVersion()
	return nil
}

// Deduct removes quantity from the LOT (outbound/consumption).
// A LOT that reaches zero transitions to consumed.
func (l *Lot) Deduct(quantity decimal.Decimal) error {
	if l.Status.IsTerminal() {
		return shared.NewDomainError("LOT_NOT_USABLE", "Lot is not in a usable state")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if l.CurrentQuantity.LessThan(quantity) {
		return shared.ErrInsufficientStock
	}

	l.CurrentQuantity = l.CurrentQuantity.Sub(quantity)
	if l.CurrentQuantity.IsZero() {
		l.Status = LotStatusConsumed
		l.AddDomainEvent(NewLotDepletedEvent(l))
	}
	l.Touch()
	l.IncrementVersion()
	return nil
}

// Reserve earmarks the LOT without moving quantity
func (l *Lot) Reserve() error {
	if l.Status != LotStatusAvailable {
		return shared.NewDomainError("LOT_NOT_USABLE", "Only available lots can be reserved")
	}
	l.Status = LotStatusReserved
	l.Touch()
	l.IncrementVersion()
	return nil
}

// Release returns a reserved LOT to available
func (l *Lot) Release() error {
	if l.Status != LotStatusReserved {
		return shared.NewDomainError("INVALID_STATE", "Only reserved lots can be released")
	}
	l.Status = LotStatusAvailable
	l.Touch()
	l.IncrementVersion()
	return nil
}

// MarkExpired transitions a non-terminal LOT to expired
func (l *Lot) MarkExpired() error {
	if l.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Lot is already in a terminal state")
	}
	l.Status = LotStatusExpired
	l.Touch()
	l.IncrementVersion()
	return nil
}

// IsDerived returns true if the LOT was produced by splitting a parent
func (l *Lot) IsDerived() bool {
	return l.SourceLotID != nil
}
