package inventory

import (
	"time"

	"github.com/erurang/wooyangcrm-sub010/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the direction of a ledger entry
type TransactionType string

const (
	// TransactionTypeInbound represents quantity entering a LOT or product
	TransactionTypeInbound TransactionType = "inbound"
	// TransactionTypeOutbound represents quantity leaving a LOT or product
	TransactionTypeOutbound TransactionType = "outbound"
	// TransactionTypeAdjustment represents a correction or reversal
	TransactionTypeAdjustment TransactionType = "adjustment"
)

// String returns the string representation of TransactionType
func (t TransactionType) String() string {
	return string(t)
}

// IsValid returns true if the transaction type is valid
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeInbound, TransactionTypeOutbound, TransactionTypeAdjustment:
		return true
	}
	return false
}

// LotTransaction is one append-only ledger entry. The ledger is the single
// source of truth for every LOT's current quantity and every product's cached
// stock: entries are never updated or deleted, corrections get new entries.
// LOT-level entries carry LotID; product-level entries (stock adjustments,
// production consumption) carry only ProductID.
type LotTransaction struct {
	shared.BaseEntity
	LotID           *uuid.UUID      `gorm:"type:uuid;index"`
	ProductID       uuid.UUID       `gorm:"type:uuid;not null;index:idx_lot_tx_product_time,priority:1"`
	TransactionType TransactionType `gorm:"type:varchar(20);not null;index"`
	Quantity        decimal.Decimal `gorm:"type:decimal(18,4);not null"` // always positive; direction from type
	QuantityBefore  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	QuantityAfter   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	DocumentID      *uuid.UUID      `gorm:"type:uuid;index"`
	Reference       string          `gorm:"type:varchar(100)"`
	Notes           string          `gorm:"type:text"`
	CreatedBy       *uuid.UUID      `gorm:"type:uuid"`
	TransactionDate time.Time       `gorm:"type:timestamptz;not null;index:idx_lot_tx_product_time,priority:2"`
}

// TableName returns the table name for GORM
func (LotTransaction) TableName() string {
	return "lot_transactions"
}

// NewLotTransaction creates a LOT-level ledger entry
func NewLotTransaction(
	lotID, productID uuid.UUID,
	txType TransactionType,
	quantity, quantityBefore, quantityAfter decimal.Decimal,
) (*LotTransaction, error) {
	if lotID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LOT", "Lot ID cannot be empty")
	}
	tx, err := NewProductTransaction(productID, txType, quantity, quantityBefore, quantityAfter)
	if err != nil {
		return nil, err
	}
	tx.LotID = &lotID
	return tx, nil
}

// NewProductTransaction creates a product-level ledger entry
func NewProductTransaction(
	productID uuid.UUID,
	txType TransactionType,
	quantity, quantityBefore, quantityAfter decimal.Decimal,
) (*LotTransaction, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if !txType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TRANSACTION_TYPE", "Invalid transaction type")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if quantityBefore.IsNegative() || quantityAfter.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Balances cannot be negative")
	}

	return &LotTransaction{
		BaseEntity:      shared.NewBaseEntity(),
		ProductID:       productID,
		TransactionType: txType,
		Quantity:        quantity,
		QuantityBefore:  quantityBefore,
		QuantityAfter:   quantityAfter,
		TransactionDate: time.Now(),
	}, nil
}

// WithDocument links the entry to a source document
func (t *LotTransaction) WithDocument(documentID uuid.UUID) *LotTransaction {
	t.DocumentID = &documentID
	return t
}

// WithReference records a reference number or code
func (t *LotTransaction) WithReference(reference string) *LotTransaction {
	t.Reference = reference
	return t
}

// WithNotes records free-text notes
func (t *LotTransaction) WithNotes(notes string) *LotTransaction {
	t.Notes = notes
	return t
}

// WithCreatedBy records the acting user
func (t *LotTransaction) WithCreatedBy(userID uuid.UUID) *LotTransaction {
	t.CreatedBy = &userID
	return t
}

// SignedQuantity returns the quantity with direction applied
func (t *LotTransaction) SignedQuantity() decimal.Decimal {
	if t.TransactionType == TransactionTypeOutbound {
		return t.Quantity.Neg()
	}
	return t.Quantity
}

// QuantityChange returns the net balance movement recorded by the entry
func (t *LotTransaction) QuantityChange() decimal.Decimal {
	return t.QuantityAfter.Sub(t.QuantityBefore)
}
