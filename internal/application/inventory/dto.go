package inventory

import (
	"time"

	"github.com/erurang/wooyangcrm-sub010/internal/domain/catalog"
	"github.com/erurang/wooyangcrm-sub010/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateLotRequest carries the fields needed to receive a new LOT
type CreateLotRequest struct {
	ProductID        uuid.UUID        `json:"product_id" binding:"required"`
	Quantity         decimal.Decimal  `json:"quantity" binding:"required"`
	SourceType       string           `json:"source_type" binding:"required,oneof=purchase production"`
	SourceDocumentID *uuid.UUID       `json:"source_document_id"`
	Supplier         string           `json:"supplier"`
	Location         string           `json:"location"`
	UnitCost         *decimal.Decimal `json:"unit_cost"`
	ReceivedAt       *time.Time       `json:"received_at"`
	ExpiryDate       *time.Time       `json:"expiry_date"`
	Notes            string           `json:"notes"`
	CreatedBy        *uuid.UUID       `json:"-"`
}

// SplitLotRequest carries the fields needed to split a LOT
type SplitLotRequest struct {
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
	Reason   string          `json:"reason"`
	Notes    string          `json:"notes"`
	SplitBy  *uuid.UUID      `json:"-"`
}

// LotResponse represents a LOT in API responses
type LotResponse struct {
	ID               uuid.UUID        `json:"id"`
	ProductID        uuid.UUID        `json:"product_id"`
	ProductCode      string           `json:"product_code,omitempty"`
	ProductName      string           `json:"product_name,omitempty"`
	Unit             string           `json:"unit,omitempty"`
	LotNumber        string           `json:"lot_number"`
	InitialQuantity  decimal.Decimal  `json:"initial_quantity"`
	CurrentQuantity  decimal.Decimal  `json:"current_quantity"`
	Status           string           `json:"status"`
	SourceType       string           `json:"source_type"`
	SourceDocumentID *uuid.UUID       `json:"source_document_id,omitempty"`
	SourceLotID      *uuid.UUID       `json:"source_lot_id,omitempty"`
	Supplier         string           `json:"supplier,omitempty"`
	Location         string           `json:"location,omitempty"`
	UnitCost         *decimal.Decimal `json:"unit_cost,omitempty"`
	ReceivedAt       time.Time        `json:"received_at"`
	ExpiryDate       *time.Time       `json:"expiry_date,omitempty"`
	Notes            string           `json:"notes,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
	Version          int              `json:"version"`
}

// ToLotResponse converts a LOT to its response form
func ToLotResponse(lot *inventory.Lot) *LotResponse {
	return &LotResponse{
		ID:               lot.ID,
		ProductID:        lot.ProductID,
		LotNumber:        lot.LotNumber,
		InitialQuantity:  lot.InitialQuantity,
		CurrentQuantity:  lot.CurrentQuantity,
		Status:           string(lot.Status),
		SourceType:       string(lot.SourceType),
		SourceDocumentID: lot.SourceDocumentID,
		SourceLotID:      lot.SourceLotID,
		Supplier:         lot.Supplier,
		Location:         lot.Location,
		UnitCost:         lot.UnitCost,
		ReceivedAt:       lot.ReceivedAt,
		ExpiryDate:       lot.ExpiryDate,
		Notes:            lot.Notes,
		CreatedAt:        lot.CreatedAt,
		UpdatedAt:        lot.UpdatedAt,
		Version:          lot.Version,
	}
}

// ToLotResponses converts a slice of LOTs
func ToLotResponses(lots []inventory.Lot) []LotResponse {
	out := make([]LotResponse, len(lots))
	for i := range lots {
		out[i] = *ToLotResponse(&lots[i])
	}
	return out
}

// attachProduct fills the product display fields on one response
func attachProduct(resp *LotResponse, product *catalog.Product) {
	resp.ProductCode = product.Code
	resp.ProductName = product.Name
	resp.Unit = product.Unit
}

// attachProducts fills product display fields on lot responses from a
// batch-fetched product set
func attachProducts(responses []LotResponse, products []catalog.Product) {
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	for i := range responses {
		if product, ok := byID[responses[i].ProductID]; ok {
			attachProduct(&responses[i], product)
		}
	}
}

// LotListFilter represents filter options for the LOT list
type LotListFilter struct {
	Search     string     `form:"search"`
	ProductID  *uuid.UUID `form:"product_id"`
	Status     string     `form:"status" binding:"omitempty,oneof=available reserved split consumed expired"`
	SourceType string     `form:"source_type" binding:"omitempty,oneof=purchase production split"`
	Supplier   string     `form:"supplier"`
	Location   string     `form:"location"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// SplitResponse represents one split event in API responses
type SplitResponse struct {
	ID            uuid.UUID       `json:"id"`
	SourceLotID   uuid.UUID       `json:"source_lot_id"`
	OutputLotID   uuid.UUID       `json:"output_lot_id"`
	RemnantLotID  uuid.UUID       `json:"remnant_lot_id"`
	SplitQuantity decimal.Decimal `json:"split_quantity"`
	Reason        string          `json:"reason"`
	Notes         string          `json:"notes,omitempty"`
	SplitBy       *uuid.UUID      `json:"split_by,omitempty"`
	SplitAt       time.Time       `json:"split_at"`
}

// ToSplitResponse converts a split record to its response form
func ToSplitResponse(split *inventory.LotSplit) *SplitResponse {
	return &SplitResponse{
		ID:            split.ID,
		SourceLotID:   split.SourceLotID,
		OutputLotID:   split.OutputLotID,
		RemnantLotID:  split.RemnantLotID,
		SplitQuantity: split.SplitQuantity,
		Reason:        split.Reason,
		Notes:         split.Notes,
		SplitBy:       split.SplitBy,
		SplitAt:       split.SplitAt,
	}
}

// ToSplitResponses converts a slice of split records
func ToSplitResponses(splits []inventory.LotSplit) []SplitResponse {
	out := make([]SplitResponse, len(splits))
	for i := range splits {
		out[i] = *ToSplitResponse(&splits[i])
	}
	return out
}

// SplitResultResponse is returned by a successful split: the retired source
// and the two new children.
type SplitResultResponse struct {
	Split   SplitResponse `json:"split"`
	Source  LotResponse   `json:"source"`
	Output  LotResponse   `json:"output"`
	Remnant LotResponse   `json:"remnant"`
}

// LotHistoryResponse lists the split events directly touching one LOT
type LotHistoryResponse struct {
	LotID     uuid.UUID       `json:"lot_id"`
	SplitFrom *SplitResponse  `json:"split_from,omitempty"`
	SplitInto []SplitResponse `json:"split_into"`
}

// ProvenanceResponse traces a LOT back to its root ancestor
type ProvenanceResponse struct {
	LotID     uuid.UUID       `json:"lot_id"`
	RootLotID uuid.UUID       `json:"root_lot_id"`
	Chain     []SplitResponse `json:"chain"`
	Lots      []LotResponse   `json:"lots"`
}

// LedgerEntryResponse represents one ledger entry in API responses
type LedgerEntryResponse struct {
	ID              uuid.UUID       `json:"id"`
	LotID           *uuid.UUID      `json:"lot_id,omitempty"`
	ProductID       uuid.UUID       `json:"product_id"`
	TransactionType string          `json:"transaction_type"`
	Quantity        decimal.Decimal `json:"quantity"`
	QuantityBefore  decimal.Decimal `json:"quantity_before"`
	QuantityAfter   decimal.Decimal `json:"quantity_after"`
	DocumentID      *uuid.UUID      `json:"document_id,omitempty"`
	Reference       string          `json:"reference,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	TransactionDate time.Time       `json:"transaction_date"`
}

// ToLedgerEntryResponse converts a ledger entry to its response form
func ToLedgerEntryResponse(entry *inventory.LotTransaction) *LedgerEntryResponse {
	return &LedgerEntryResponse{
		ID:              entry.ID,
		LotID:           entry.LotID,
		ProductID:       entry.ProductID,
		TransactionType: string(entry.TransactionType),
		Quantity:        entry.Quantity,
		QuantityBefore:  entry.QuantityBefore,
		QuantityAfter:   entry.QuantityAfter,
		DocumentID:      entry.DocumentID,
		Reference:       entry.Reference,
		Notes:           entry.Notes,
		TransactionDate: entry.TransactionDate,
	}
}

// ToLedgerEntryResponses converts a slice of ledger entries
func ToLedgerEntryResponses(entries []inventory.LotTransaction) []LedgerEntryResponse {
	out := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		out[i] = *ToLedgerEntryResponse(&entries[i])
	}
	return out
}

// LedgerListFilter represents filter options for ledger queries
type LedgerListFilter struct {
	TransactionType string     `form:"transaction_type" binding:"omitempty,oneof=inbound outbound adjustment"`
	StartDate       *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate         *time.Time `form:"end_date" time_format:"2006-01-02"`
	Page            int        `form:"page" binding:"omitempty,min=1"`
	PageSize        int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}
