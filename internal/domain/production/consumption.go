package production

import (
	"github.com/erurang/wooyangcrm-sub010/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductionConsumption is one raw-material draw against a production
// record. StockBefore/StockAfter snapshot the material's cached stock at
// consumption time so cancellations can be audited against the ledger.
type ProductionConsumption struct {
	shared.BaseEntity
	RecordID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	MaterialID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	QuantityUsed    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPriceAtTime decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	StockBefore     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	StockAfter      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (ProductionConsumption) TableName() string {
	return "production_consumptions"
}

// NewProductionConsumption creates a consumption row with stock snapshots
func NewProductionConsumption(
	recordID, materialID uuid.UUID,
	quantityUsed, unitPriceAtTime, stockBefore, stockAfter decimal.Decimal,
) (*ProductionConsumption, error) {
	if recordID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RECORD", "Record ID cannot be empty")
	}
	if materialID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MATERIAL", "Material ID cannot be empty")
	}
	if quantityUsed.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Consumed quantity must be positive")
	}
	if unitPriceAtTime.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if stockBefore.Sub(quantityUsed).Cmp(stockAfter) != 0 {
		return nil, shared.NewDomainError("INVALID_SNAPSHOT", "Stock snapshots do not match the consumed quantity")
	}

	return &ProductionConsumption{
		BaseEntity:      shared.NewBaseEntity(),
		RecordID:        recordID,
		MaterialID:      materialID,
		QuantityUsed:    quantityUsed,
		UnitPriceAtTime: unitPriceAtTime,
		StockBefore:     stockBefore,
		StockAfter:      stockAfter,
	}, nil
}

// Cost returns the material cost of the consumption at booking time
func (c *ProductionConsumption) Cost() decimal.Decimal {
	return c.QuantityUsed.Mul(c.UnitPriceAtTime)
}
