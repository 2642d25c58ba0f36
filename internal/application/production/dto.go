package production

import (
	"time"

	"github.com/erurang/wooyangcrm-sub010/internal/domain/production"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ConsumptionInput is one material draw inside a CreateRecordRequest
type ConsumptionInput struct {
	MaterialID      uuid.UUID       `json:"material_id" binding:"required"`
	Quantity        decimal.Decimal `json:"quantity" binding:"required"`
	UnitPriceAtTime decimal.Decimal `json:"unit_price_at_time"`
}

// CreateRecordRequest carries the fields for booking a production run
type CreateRecordRequest struct {
	ProductID        uuid.UUID          `json:"product_id" binding:"required"`
	QuantityProduced decimal.Decimal    `json:"quantity_produced" binding:"required"`
	ProductionDate   time.Time          `json:"production_date"`
	BatchNumber      string             `json:"batch_number"`
	Notes            string             `json:"notes"`
	Consumptions     []ConsumptionInput `json:"consumptions"`
	CreatedBy        *uuid.UUID         `json:"-"`
}

// ConsumeRequest carries the fields for one additional material draw
type ConsumeRequest struct {
	MaterialID      uuid.UUID       `json:"material_id" binding:"required"`
	Quantity        decimal.Decimal `json:"quantity" binding:"required"`
	UnitPriceAtTime decimal.Decimal `json:"unit_price_at_time"`
	Actor           *uuid.UUID      `json:"-"`
}

// CancelRecordRequest carries the cancellation fields
type CancelRecordRequest struct {
	Reason string     `json:"reason"`
	Actor  *uuid.UUID `json:"-"`
}

// ConsumptionResponse represents one consumption row in API responses
type ConsumptionResponse struct {
	ID              uuid.UUID       `json:"id"`
	RecordID        uuid.UUID       `json:"record_id"`
	MaterialID      uuid.UUID       `json:"material_id"`
	QuantityUsed    decimal.Decimal `json:"quantity_used"`
	UnitPriceAtTime decimal.Decimal `json:"unit_price_at_time"`
	StockBefore     decimal.Decimal `json:"stock_before"`
	StockAfter      decimal.Decimal `json:"stock_after"`
	Cost            decimal.Decimal `json:"cost"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ToConsumptionResponse converts a consumption row to its response form
func ToConsumptionResponse(c *production.ProductionConsumption) *ConsumptionResponse {
	return &ConsumptionResponse{
		ID:              c.ID,
		RecordID:        c.RecordID,
		MaterialID:      c.MaterialID,
		QuantityUsed:    c.QuantityUsed,
		UnitPriceAtTime: c.UnitPriceAtTime,
		StockBefore:     c.StockBefore,
		StockAfter:      c.StockAfter,
		Cost:            c.Cost(),
		CreatedAt:       c.CreatedAt,
	}
}

// ToConsumptionResponses converts a slice of consumption rows
func ToConsumptionResponses(rows []production.ProductionConsumption) []ConsumptionResponse {
	out := make([]ConsumptionResponse, len(rows))
	for i := range rows {
		out[i] = *ToConsumptionResponse(&rows[i])
	}
	return out
}

// RecordResponse represents a production record in API responses
type RecordResponse struct {
	ID               uuid.UUID             `json:"id"`
	ProductID        uuid.UUID             `json:"product_id"`
	QuantityProduced decimal.Decimal       `json:"quantity_produced"`
	ProductionDate   time.Time             `json:"production_date"`
	BatchNumber      string                `json:"batch_number,omitempty"`
	Notes            string                `json:"notes,omitempty"`
	Status           string                `json:"status"`
	CanceledBy       *uuid.UUID            `json:"canceled_by,omitempty"`
	CanceledAt       *time.Time            `json:"canceled_at,omitempty"`
	CancelReason     string                `json:"cancel_reason,omitempty"`
	Consumptions     []ConsumptionResponse `json:"consumptions,omitempty"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
	Version          int                   `json:"version"`
}

// ToRecordResponse converts a record to its response form
func ToRecordResponse(r *production.ProductionRecord) *RecordResponse {
	return &RecordResponse{
		ID:               r.ID,
		ProductID:        r.ProductID,
		QuantityProduced: r.QuantityProduced,
		ProductionDate:   r.ProductionDate,
		BatchNumber:      r.BatchNumber,
		Notes:            r.Notes,
		Status:           string(r.Status),
		CanceledBy:       r.CanceledBy,
		CanceledAt:       r.CanceledAt,
		CancelReason:     r.CancelReason,
		Consumptions:     ToConsumptionResponses(r.Consumptions),
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
		Version:          r.Version,
	}
}

// ToRecordResponses converts a slice of records
func ToRecordResponses(records []production.ProductionRecord) []RecordResponse {
	out := make([]RecordResponse, len(records))
	for i := range records {
		out[i] = *ToRecordResponse(&records[i])
	}
	return out
}

// RecordListFilter represents filter options for the record list
type RecordListFilter struct {
	ProductID *uuid.UUID `form:"product_id"`
	Status    string     `form:"status" binding:"omitempty,oneof=completed canceled"`
	StartDate *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"end_date" time_format:"2006-01-02"`
	Search    string     `form:"search"`
	Page      int        `form:"page" binding:"omitempty,min=1"`
	PageSize  int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}
