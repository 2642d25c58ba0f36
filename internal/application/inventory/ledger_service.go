package inventory

import (
	"context"

	"github.com/erurang/wooyangcrm-sub010/internal/domain/inventory"
	"github.com/erurang/wooyangcrm-sub010/internal/domain/shared"
	"github.com/google/uuid"
)

// LedgerService exposes read access to the transaction ledger. Writes happen
// only inside the transactional services; nothing appends through here.
type LedgerService struct {
	lotRepo    inventory.LotRepository
	ledgerRepo inventory.LotTransactionRepository
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(
	lotRepo inventory.LotRepository,
	ledgerRepo inventory.LotTransactionRepository,
) *LedgerService {
	return &LedgerService{
		lotRepo:    lotRepo,
		ledgerRepo: ledgerRepo,
	}
}

// ListByLot returns ledger entries for one LOT, time-ordered, paginated
func (s *LedgerService) ListByLot(ctx context.Context, lotID uuid.UUID, filter LedgerListFilter) (*shared.Paginated[LedgerEntryResponse], error) {
	if _, err := s.lotRepo.FindByID(ctx, lotID); err != nil {
		return nil, err
	}

	domainFilter := toTransactionFilter(filter)
	entries, err := s.ledgerRepo.FindByLot(ctx, lotID, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.ledgerRepo.CountByLot(ctx, lotID, domainFilter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToLedgerEntryResponses(entries), total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// ListByProduct returns ledger entries for one product, both LOT-level and
// product-level, time-ordered, paginated
func (s *LedgerService) ListByProduct(ctx context.Context, productID uuid.UUID, filter LedgerListFilter) (*shared.Paginated[LedgerEntryResponse], error) {
	domainFilter := toTransactionFilter(filter)
	entries, err := s.ledgerRepo.FindByProduct(ctx, productID, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.ledgerRepo.CountByProduct(ctx, productID, domainFilter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToLedgerEntryResponses(entries), total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

func toTransactionFilter(filter LedgerListFilter) inventory.TransactionFilter {
	base := shared.DefaultFilter()
	if filter.Page > 0 {
		base.Page = filter.Page
	}
	if filter.PageSize > 0 {
		base.PageSize = filter.PageSize
	}
	base.OrderBy = "transaction_date"

	out := inventory.TransactionFilter{
		Filter:    base,
		StartDate: filter.StartDate,
		EndDate:   filter.EndDate,
	}
	if filter.TransactionType != "" {
		txType := inventory.TransactionType(filter.TransactionType)
		out.TransactionType = &txType
	}
	return out
}
