package inventory

import (
	"context"

	"github.com/erurang/wooyangcrm-sub010/internal/domain/inventory"
	"github.com/erurang/wooyangcrm-sub010/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InboundLine is one document line to receive as its own LOT
type InboundLine struct {
	ProductID uuid.UUID        `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal  `json:"quantity" binding:"required"`
	UnitCost  *decimal.Decimal `json:"unit_cost"`
	Supplier  string           `json:"supplier"`
	Location  string           `json:"location"`
}

// InboundRequest receives a completed inbound document into stock
type InboundRequest struct {
	DocumentID uuid.UUID     `json:"document_id" binding:"required"`
	Reference  string        `json:"reference"`
	Notes      string        `json:"notes"`
	Lines      []InboundLine `json:"lines" binding:"required,min=1,dive"`
	CreatedBy  *uuid.UUID    `json:"-"`
}

// InboundResultResponse reports the LOTs created from a document
type InboundResultResponse struct {
	DocumentID uuid.UUID      `json:"document_id"`
	Lots       []*LotResponse `json:"lots"`
}

// OutboundRequest carries the fields for a FIFO stock deduction
type OutboundRequest struct {
	ProductID  uuid.UUID       `json:"product_id" binding:"required"`
	Quantity   decimal.Decimal `json:"quantity" binding:"required"`
	DocumentID *uuid.UUID      `json:"document_id"`
	Reference  string          `json:"reference"`
	Notes      string          `json:"notes"`
	CreatedBy  *uuid.UUID      `json:"-"`
}

// OutboundResultResponse reports which LOTs a deduction drew from
type OutboundResultResponse struct {
	ProductID  uuid.UUID       `json:"product_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	Deductions []LotDeduction  `json:"deductions"`
	StockAfter decimal.Decimal `json:"stock_after"`
}

// LotDeduction is one LOT's share of an outbound deduction
type LotDeduction struct {
	LotID     uuid.UUID       `json:"lot_id"`
	LotNumber string          `json:"lot_number"`
	Quantity  decimal.Decimal `json:"quantity"`
	Depleted  bool            `json:"depleted"`
}

// AdjustStockRequest sets a product's cached stock to a counted quantity
type AdjustStockRequest struct {
	ActualQuantity decimal.Decimal `json:"actual_quantity"`
	Reason         string          `json:"reason" binding:"required"`
	Notes          string          `json:"notes"`
	CreatedBy      *uuid.UUID      `json:"-"`
}

// AdjustStockResponse reports an applied stock adjustment
type AdjustStockResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	StockBefore decimal.Decimal `json:"stock_before"`
	StockAfter  decimal.Decimal `json:"stock_after"`
	Difference  decimal.Decimal `json:"difference"`
	Reason      string          `json:"reason"`
}

// DocumentFlowService moves stock when upstream documents complete.
// Inbound documents become one purchase LOT per line; outbound documents
// drain LOTs oldest-received first, and a LOT drained to zero transitions to
// consumed. Each flow is atomic: if any line fails, or the product's LOTs
// cannot cover an outbound quantity, nothing moves.
type DocumentFlowService struct {
	txScope   TransactionScope
	allocator inventory.LotNumberAllocator
}

// NewDocumentFlowService creates a new DocumentFlowService
func NewDocumentFlowService(txScope TransactionScope, allocator inventory.LotNumberAllocator) *DocumentFlowService {
	return &DocumentFlowService{txScope: txScope, allocator: allocator}
}

// ReceiveInbound creates one purchase LOT per document line, each with an
// inbound ledger entry and a product stock increase.
func (s *DocumentFlowService) ReceiveInbound(ctx context.Context, req InboundRequest) (*InboundResultResponse, error) {
	if len(req.Lines) == 0 {
		return nil, shared.NewDomainError("INVALID_LINES", "Inbound document has no lines")
	}
	for _, line := range req.Lines {
		if line.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Line quantity must be positive")
		}
	}

	lots := make([]*LotResponse, 0, len(req.Lines))
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		for _, line := range req.Lines {
			product, err := repos.ProductRepo().FindByID(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if !product.IsActive {
				return shared.NewDomainError("PRODUCT_INACTIVE", "Cannot receive stock for an inactive product")
			}

			lotNumber, err := s.allocator.Next(ctx)
			if err != nil {
				return err
			}
			lot, err := inventory.NewLot(product.ID, lotNumber, line.Quantity, inventory.LotSourcePurchase)
			if err != nil {
				return err
			}
			lot.WithSourceDocument(req.DocumentID)
			if line.Supplier != "" {
				lot.WithSupplier(line.Supplier)
			}
			if line.Location != "" {
				lot.WithLocation(line.Location)
			}
			if line.UnitCost != nil {
				lot.WithUnitCost(*line.UnitCost)
			}
			if req.Notes != "" {
				lot.WithNotes(req.Notes)
			}
			if req.CreatedBy != nil {
				lot.WithCreatedBy(*req.CreatedBy)
			}
			if err := repos.LotRepo().Save(ctx, lot); err != nil {
				return err
			}

			lotEntry, err := inventory.NewLotTransaction(lot.ID, product.ID, inventory.TransactionTypeInbound,
				line.Quantity, decimal.Zero, line.Quantity)
			if err != nil {
				return err
			}
			lotEntry.WithReference(lot.LotNumber).WithNotes(req.Notes).WithDocument(req.DocumentID)
			if req.CreatedBy != nil {
				lotEntry.WithCreatedBy(*req.CreatedBy)
			}

			stockBefore := product.CurrentStock
			if err := product.IncreaseStock(line.Quantity); err != nil {
				return err
			}
			productEntry, err := inventory.NewProductTransaction(product.ID, inventory.TransactionTypeInbound,
				line.Quantity, stockBefore, product.CurrentStock)
			if err != nil {
				return err
			}
			productEntry.WithReference(lot.LotNumber).WithDocument(req.DocumentID)
			if req.CreatedBy != nil {
				productEntry.WithCreatedBy(*req.CreatedBy)
			}

			if err := repos.LedgerRepo().CreateBatch(ctx, []*inventory.LotTransaction{lotEntry, productEntry}); err != nil {
				return err
			}
			if err := repos.ProductRepo().SaveWithLock(ctx, product); err != nil {
				return err
			}

			lots = append(lots, ToLotResponse(lot))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &InboundResultResponse{DocumentID: req.DocumentID, Lots: lots}, nil
}

// DeductOutbound removes quantity from a product FIFO across its LOTs,
// writing one ledger entry per touched LOT plus a product-level entry, and
// lowering the product's cached stock.
func (s *DocumentFlowService) DeductOutbound(ctx context.Context, req OutboundRequest) (*OutboundResultResponse, error) {
	if req.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	var result *OutboundResultResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.ProductRepo().FindByID(ctx, req.ProductID)
		if err != nil {
			return err
		}

		lots, err := repos.LotRepo().FindAvailableFIFO(ctx, req.ProductID)
		if err != nil {
			return err
		}

		available := decimal.Zero
		for i := range lots {
			available = available.Add(lots[i].CurrentQuantity)
		}
		if available.LessThan(req.Quantity) {
			return shared.ErrInsufficientStock
		}

		remaining := req.Quantity
		deductions := make([]LotDeduction, 0)
		entries := make([]*inventory.LotTransaction, 0)

		for i := range lots {
			if remaining.IsZero() {
				break
			}
			lot := &lots[i]

			take := lot.CurrentQuantity
			if take.GreaterThan(remaining) {
				take = remaining
			}

			before := lot.CurrentQuantity
			if err := lot.Deduct(take); err != nil {
				return err
			}

			entry, err := inventory.NewLotTransaction(lot.ID, product.ID, inventory.TransactionTypeOutbound,
				take, before, lot.CurrentQuantity)
			if err != nil {
				return err
			}
			entry.WithReference(req.Reference).WithNotes(req.Notes)
			if req.DocumentID != nil {
				entry.WithDocument(*req.DocumentID)
			}
			if req.CreatedBy != nil {
				entry.WithCreatedBy(*req.CreatedBy)
			}
			entries = append(entries, entry)

			if err := repos.LotRepo().SaveWithLock(ctx, lot); err != nil {
				return err
			}

			deductions = append(deductions, LotDeduction{
				LotID:     lot.ID,
				LotNumber: lot.LotNumber,
				Quantity:  take,
				Depleted:  lot.Status == inventory.LotStatusConsumed,
			})
			remaining = remaining.Sub(take)
		}

		stockBefore := product.CurrentStock
		if err := product.DecreaseStock(req.Quantity); err != nil {
			return err
		}
		productEntry, err := inventory.NewProductTransaction(product.ID, inventory.TransactionTypeOutbound,
			req.Quantity, stockBefore, product.CurrentStock)
		if err != nil {
			return err
		}
		productEntry.WithReference(req.Reference)
		if req.DocumentID != nil {
			productEntry.WithDocument(*req.DocumentID)
		}
		if req.CreatedBy != nil {
			productEntry.WithCreatedBy(*req.CreatedBy)
		}
		entries = append(entries, productEntry)

		if err := repos.LedgerRepo().CreateBatch(ctx, entries); err != nil {
			return err
		}
		if err := repos.ProductRepo().SaveWithLock(ctx, product); err != nil {
			return err
		}

		result = &OutboundResultResponse{
			ProductID:  product.ID,
			Quantity:   req.Quantity,
			Deductions: deductions,
			StockAfter: product.CurrentStock,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// AdjustStock sets a product's cached stock to the counted quantity and
// writes a product-level adjustment entry for the difference. A count that
// matches the cached stock changes nothing and writes no entry.
func (s *DocumentFlowService) AdjustStock(ctx context.Context, productID uuid.UUID, req AdjustStockRequest) (*AdjustStockResponse, error) {
	var result *AdjustStockResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.ProductRepo().FindByID(ctx, productID)
		if err != nil {
			return err
		}

		stockBefore := product.CurrentStock
		diff, err := product.AdjustStock(req.ActualQuantity, req.Reason)
		if err != nil {
			return err
		}

		if !diff.IsZero() {
			entry, err := inventory.NewProductTransaction(product.ID, inventory.TransactionTypeAdjustment,
				diff.Abs(), stockBefore, product.CurrentStock)
			if err != nil {
				return err
			}
			entry.WithReference(req.Reason).WithNotes(req.Notes)
			if req.CreatedBy != nil {
				entry.WithCreatedBy(*req.CreatedBy)
			}
			if err := repos.LedgerRepo().Create(ctx, entry); err != nil {
				return err
			}
			if err := repos.ProductRepo().SaveWithLock(ctx, product); err != nil {
				return err
			}
		}

		result = &AdjustStockResponse{
			ProductID:   product.ID,
			StockBefore: stockBefore,
			StockAfter:  product.CurrentStock,
			Difference:  diff,
			Reason:      req.Reason,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
