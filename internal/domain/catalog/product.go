package catalog

import (
	"strings"

	"github.com/erurang/wooyangcrm-sub010/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductType classifies how a product enters and leaves stock
type ProductType string

const (
	ProductTypeRawMaterial ProductType = "raw_material"
	ProductTypePurchased   ProductType = "purchased"
	ProductTypeFinished    ProductType = "finished"
)

// IsValid returns true if the product type is valid
func (t ProductType) IsValid() bool {
	switch t {
	case ProductTypeRawMaterial, ProductTypePurchased, ProductTypeFinished:
		return true
	}
	return false
}

// Product represents a stock-keeping unit.
// CurrentStock is a cached figure derived from the ledger: it must always
// equal the sum of all ledger entries for the product, and is only mutated
// inside logged transactions.
type Product struct {
	shared.BaseAggregateRoot
	Code          string           `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name          string           `gorm:"type:varchar(200);not null"`
	Unit          string           `gorm:"type:varchar(20);not null"`
	Type          ProductType      `gorm:"type:varchar(20);not null"`
	CurrentStock  decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	MinStockAlert *decimal.Decimal `gorm:"type:decimal(18,4)"`
	UnitPrice     *decimal.Decimal `gorm:"type:decimal(18,4)"`
	IsActive      bool             `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(code, name, unit string, productType ProductType) (*Product, error) {
	if strings.TrimSpace(code) == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Product code cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if !productType.IsValid() {
		return nil, shared.NewDomainError("INVALID_PRODUCT_TYPE", "Invalid product type")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		Unit:              unit,
		Type:              productType,
		CurrentStock:      decimal.Zero,
		IsActive:          true,
	}, nil
}

// IncreaseStock adds quantity to the cached stock figure.
// Callers must write a matching ledger entry in the same transaction.
func (p *Product) IncreaseStock(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	p.CurrentStock = p.CurrentStock.Add(quantity)
	p.Touch()
	p.IncrementVersion()
	return nil
}

// DecreaseStock subtracts quantity from the cached stock figure.
// Callers must write a matching ledger entry in the same transaction.
func (p *Product) DecreaseStock(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if p.CurrentStock.LessThan(quantity) {
		return shared.ErrInsufficientStock
	}
	p.CurrentStock = p.CurrentStock.Sub(quantity)
	p.Touch()
	p.IncrementVersion()
	return nil
}

// AdjustStock sets the cached stock to the counted actual quantity and
// returns the signed difference.
func (p *Product) AdjustStock(actual decimal.Decimal, reason string) (decimal.Decimal, error) {
	if actual.IsNegative() {
		return decimal.Zero, shared.NewDomainError("INVALID_QUANTITY", "Actual quantity cannot be negative")
	}
	if strings.TrimSpace(reason) == "" {
		return decimal.Zero, shared.NewDomainError("INVALID_REASON", "Adjustment reason is required")
	}
	diff := actual.Sub(p.CurrentStock)
	p.CurrentStock = actual
	p.Touch()
	p.IncrementVersion()
	return diff, nil
}

// IsBelowMinimum returns true if the cached stock is below the alert threshold
func (p *Product) IsBelowMinimum() bool {
	return p.MinStockAlert != nil && p.CurrentStock.LessThan(*p.MinStockAlert)
}
