package inventory

import (
	"context"
	"time"

	"github.com/erurang/wooyangcrm-sub010/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LotRepository defines the interface for LOT persistence
type LotRepository interface {
	// FindByID finds a LOT by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Lot, error)

	// FindByLotNumber finds a LOT by its unique lot number
	FindByLotNumber(ctx context.Context, lotNumber string) (*Lot, error)

	// FindByIDs finds multiple LOTs by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Lot, error)

	// FindAll finds LOTs matching the filter
	FindAll(ctx context.Context, filter LotFilter) ([]Lot, error)

	// FindAvailableFIFO finds LOTs with remaining quantity for a product,
	// oldest received first, for FIFO deduction
	FindAvailableFIFO(ctx context.Context, productID uuid.UUID) ([]Lot, error)

	// Save creates or updates a LOT
	Save(ctx context.Context, lot *Lot) error

	// SaveWithLock saves with optimistic locking (checks version)
	SaveWithLock(ctx context.Context, lot *Lot) error

	// Count counts LOTs matching the filter
	Count(ctx context.Context, filter LotFilter) (int64, error)
}

// LotSplitRepository defines the interface for split record persistence.
// Split records are immutable: there is no update or delete.
type LotSplitRepository interface {
	// FindByID finds a split record by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*LotSplit, error)

	// FindBySource finds the split where the LOT was the source
	FindBySource(ctx context.Context, sourceLotID uuid.UUID) ([]LotSplit, error)

	// FindByChild finds splits where the LOT is output or remnant
	FindByChild(ctx context.Context, lotID uuid.UUID) ([]LotSplit, error)

	// FindInvolving finds all splits touching any of the given LOTs,
	// as source, output or remnant
	FindInvolving(ctx context.Context, lotIDs []uuid.UUID) ([]LotSplit, error)

	// Create appends a new split record
	Create(ctx context.Context, split *LotSplit) error
}

// LotTransactionRepository defines the interface for ledger persistence.
// The ledger is append-only: entries are never updated or deleted.
type LotTransactionRepository interface {
	// FindByID finds a ledger entry by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*LotTransaction, error)

	// FindByLot finds entries for a LOT, time-ordered
	FindByLot(ctx context.Context, lotID uuid.UUID, filter TransactionFilter) ([]LotTransaction, error)

	// FindByProduct finds entries for a product, time-ordered
	FindByProduct(ctx context.Context, productID uuid.UUID, filter TransactionFilter) ([]LotTransaction, error)

	// Create appends a new ledger entry
	Create(ctx context.Context, tx *LotTransaction) error

	// CreateBatch appends multiple ledger entries
	CreateBatch(ctx context.Context, txs []*LotTransaction) error

	// CountByLot counts entries for a LOT matching the filter
	CountByLot(ctx context.Context, lotID uuid.UUID, filter TransactionFilter) (int64, error)

	// CountByProduct counts entries for a product
	CountByProduct(ctx context.Context, productID uuid.UUID, filter TransactionFilter) (int64, error)

	// SummarizeMovementSince aggregates outbound quantities per product for
	// entries on or after the cutoff, along with the most recent inbound
	// date. Feeds the consumption-rate analysis.
	SummarizeMovementSince(ctx context.Context, since time.Time) (map[uuid.UUID]ProductMovementSummary, error)
}

// ProductMovementSummary aggregates ledger movement for one product over an
// analysis window
type ProductMovementSummary struct {
	OutboundTotal decimal.Decimal
	LastInboundAt *time.Time
}

// LotNumberAllocator hands out globally unique lot numbers. Implementations
// must be race-free under concurrent creation (a transactional sequence),
// never read-the-max-and-increment in application code.
type LotNumberAllocator interface {
	// Next returns a new unique lot number
	Next(ctx context.Context) (string, error)
}

// LotFilter extends shared.Filter with LOT-specific filters
type LotFilter struct {
	shared.Filter
	ProductID  *uuid.UUID
	Status     *LotStatus
	SourceType *LotSourceType
	Supplier   string
	Location   string
}

// TransactionFilter extends shared.Filter with ledger-specific filters
type TransactionFilter struct {
	shared.Filter
	TransactionType *TransactionType
	StartDate       *time.Time
	EndDate         *time.Time
}
