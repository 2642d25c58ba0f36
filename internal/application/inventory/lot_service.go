package inventory

import (
	"context"

	"github.com/erurang/wooyangcrm-sub010/internal/domain/catalog"
	"github.com/erurang/wooyangcrm-sub010/internal/domain/inventory"
	"github.com/erurang/wooyangcrm-sub010/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LotService handles LOT receiving and lookup
type LotService struct {
	txScope     TransactionScope
	lotRepo     inventory.LotRepository
	productRepo catalog.ProductRepository
	allocator   inventory.LotNumberAllocator
}

// NewLotService creates a new LotService
func NewLotService(
	txScope TransactionScope,
	lotRepo inventory.LotRepository,
	productRepo catalog.ProductRepository,
	allocator inventory.LotNumberAllocator,
) *LotService {
	return &LotService{
		txScope:     txScope,
		lotRepo:     lotRepo,
		productRepo: productRepo,
		allocator:   allocator,
	}
}

// Create receives a new LOT into inventory. In one transaction it inserts
// the LOT, appends the inbound ledger entry and raises the product's cached
// stock with a matching product-level entry.
func (s *LotService) Create(ctx context.Context, req CreateLotRequest) (*LotResponse, error) {
	sourceType := inventory.LotSourceType(req.SourceType)
	if sourceType == inventory.LotSourceSplit {
		return nil, shared.NewDomainError("INVALID_SOURCE_TYPE", "Split lots are created through the split operation")
	}
	if !sourceType.IsValid() {
		return nil, shared.NewDomainError("INVALID_SOURCE_TYPE", "Invalid lot source type")
	}
	if req.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	lotNumber, err := s.allocator.Next(ctx)
	if err != nil {
		return nil, err
	}

	var created *inventory.Lot
	var owner *catalog.Product
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.ProductRepo().FindByID(ctx, req.ProductID)
		if err != nil {
			return err
		}
		if !product.IsActive {
			return shared.NewDomainError("PRODUCT_INACTIVE", "Cannot receive stock for an inactive product")
		}

		lot, err := inventory.NewLot(product.ID, lotNumber, req.Quantity, sourceType)
		if err != nil {
			return err
		}
		applyLotOptions(lot, req)

		if err := repos.LotRepo().Save(ctx, lot); err != nil {
			return err
		}

		lotEntry, err := inventory.NewLotTransaction(lot.ID, product.ID, inventory.TransactionTypeInbound,
			req.Quantity, decimal.Zero, req.Quantity)
		if err != nil {
			return err
		}
		lotEntry.WithNotes(req.Notes).WithReference(lot.LotNumber)
		if req.SourceDocumentID != nil {
			lotEntry.WithDocument(*req.SourceDocumentID)
		}
		if req.CreatedBy != nil {
			lotEntry.WithCreatedBy(*req.CreatedBy)
		}

		stockBefore := product.CurrentStock
		if err := product.IncreaseStock(req.Quantity); err != nil {
			return err
		}
		productEntry, err := inventory.NewProductTransaction(product.ID, inventory.TransactionTypeInbound,
			req.Quantity, stockBefore, product.CurrentStock)
		if err != nil {
			return err
		}
		productEntry.WithReference(lot.LotNumber)
		if req.CreatedBy != nil {
			productEntry.WithCreatedBy(*req.CreatedBy)
		}

		if err := repos.LedgerRepo().CreateBatch(ctx, []*inventory.LotTransaction{lotEntry, productEntry}); err != nil {
			return err
		}
		if err := repos.ProductRepo().SaveWithLock(ctx, product); err != nil {
			return err
		}

		created = lot
		owner = product
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := ToLotResponse(created)
	attachProduct(resp, owner)
	return resp, nil
}

func applyLotOptions(lot *inventory.Lot, req CreateLotRequest) {
	if req.SourceDocumentID != nil {
		lot.WithSourceDocument(*req.SourceDocumentID)
	}
	if req.Supplier != "" {
		lot.WithSupplier(req.Supplier)
	}
	if req.Location != "" {
		lot.WithLocation(req.Location)
	}
	if req.UnitCost != nil {
		lot.WithUnitCost(*req.UnitCost)
	}
	if req.ReceivedAt != nil {
		lot.WithReceivedAt(*req.ReceivedAt)
	}
	if req.ExpiryDate != nil {
		lot.WithExpiryDate(*req.ExpiryDate)
	}
	if req.Notes != "" {
		lot.WithNotes(req.Notes)
	}
	if req.CreatedBy != nil {
		lot.WithCreatedBy(*req.CreatedBy)
	}
}

// Get returns one LOT by ID with its product's display fields
func (s *LotService) Get(ctx context.Context, id uuid.UUID) (*LotResponse, error) {
	lot, err := s.lotRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.respond(ctx, lot)
}

// GetByNumber returns one LOT by its lot number
func (s *LotService) GetByNumber(ctx context.Context, lotNumber string) (*LotResponse, error) {
	lot, err := s.lotRepo.FindByLotNumber(ctx, lotNumber)
	if err != nil {
		return nil, err
	}
	return s.respond(ctx, lot)
}

func (s *LotService) respond(ctx context.Context, lot *inventory.Lot) (*LotResponse, error) {
	product, err := s.productRepo.FindByID(ctx, lot.ProductID)
	if err != nil {
		return nil, err
	}
	resp := ToLotResponse(lot)
	attachProduct(resp, product)
	return resp, nil
}

// List returns LOTs matching the filter, paginated. Product code, name and
// unit ride along on each item from one batch lookup.
func (s *LotService) List(ctx context.Context, filter LotListFilter) (*shared.Paginated[LotResponse], error) {
	domainFilter := toLotFilter(filter)

	lots, err := s.lotRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.lotRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	productIDs := make([]uuid.UUID, len(lots))
	for i := range lots {
		productIDs[i] = lots[i].ProductID
	}
	products, err := s.productRepo.FindByIDs(ctx, dedupe(productIDs))
	if err != nil {
		return nil, err
	}

	items := ToLotResponses(lots)
	attachProducts(items, products)

	page := shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

func toLotFilter(filter LotListFilter) inventory.LotFilter {
	base := shared.DefaultFilter()
	if filter.Page > 0 {
		base.Page = filter.Page
	}
	if filter.PageSize > 0 {
		base.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		base.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		base.OrderDir = filter.OrderDir
	}
	base.Search = filter.Search

	out := inventory.LotFilter{
		Filter:    base,
		ProductID: filter.ProductID,
		Supplier:  filter.Supplier,
		Location:  filter.Location,
	}
	if filter.Status != "" {
		status := inventory.LotStatus(filter.Status)
		out.Status = &status
	}
	if filter.SourceType != "" {
		sourceType := inventory.LotSourceType(filter.SourceType)
		out.SourceType = &sourceType
	}
	return out
}
