package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/erurang/wooyangcrm-sub010/internal/domain/inventory"
	"github.com/erurang/wooyangcrm-sub010/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormLotTransactionRepository implements LotTransactionRepository using GORM.
// The ledger is append-only: the repository exposes no update or delete.
type GormLotTransactionRepository struct {
	db *gorm.DB
}

// NewGormLotTransactionRepository creates a new GormLotTransactionRepository
func NewGormLotTransactionRepository(db *gorm.DB) *GormLotTransactionRepository {
	return &GormLotTransactionRepository{db: db}
}

// FindByID finds a ledger entry by its ID
func (r *GormLotTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.LotTransaction, error) {
	var tx inventory.LotTransaction
	if err := r.db.WithContext(ctx).First(&tx, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tx, nil
}

// FindByLot finds entries for a LOT, time-ordered
func (r *GormLotTransactionRepository) FindByLot(ctx context.Context, lotID uuid.UUID, filter inventory.TransactionFilter) ([]inventory.LotTransaction, error) {
	var txs []inventory.LotTransaction
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.LotTransaction{}).Where("lot_id = ?", lotID),
		filter,
	)

	if err := query.Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// FindByProduct finds entries for a product, time-ordered
func (r *GormLotTransactionRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter inventory.TransactionFilter) ([]inventory.LotTransaction, error) {
	var txs []inventory.LotTransaction
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.LotTransaction{}).Where("product_id = ?", productID),
		filter,
	)

	if err := query.Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// Create appends a new ledger entry
func (r *GormLotTransactionRepository) Create(ctx context.Context, tx *inventory.LotTransaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

// CreateBatch appends multiple ledger entries
func (r *GormLotTransactionRepository) CreateBatch(ctx context.Context, txs []*inventory.LotTransaction) error {
	if len(txs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(txs).Error
}

// CountByLot counts entries for a LOT matching the filter
func (r *GormLotTransactionRepository) CountByLot(ctx context.Context, lotID uuid.UUID, filter inventory.TransactionFilter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&inventory.LotTransaction{}).Where("lot_id = ?", lotID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByProduct counts entries for a product
func (r *GormLotTransactionRepository) CountByProduct(ctx context.Context, productID uuid.UUID, filter inventory.TransactionFilter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&inventory.LotTransaction{}).Where("product_id = ?", productID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// movementRow is the scan target for the movement aggregate
type movementRow struct {
	ProductID     uuid.UUID
	OutboundTotal decimal.Decimal
	LastInboundAt *time.Time
}

// SummarizeMovementSince aggregates outbound quantities per product for
// entries on or after the cutoff, along with the most recent inbound date.
// Only product-level rows (lot_id IS NULL) count: every real stock movement
// writes exactly one such row, while the lot-level rows mirror it per LOT
// and splits write lot-level rows with no product movement at all.
// One grouped query regardless of product count.
func (r *GormLotTransactionRepository) SummarizeMovementSince(ctx context.Context, since time.Time) (map[uuid.UUID]inventory.ProductMovementSummary, error) {
	var rows []movementRow
	if err := r.db.WithContext(ctx).
		Model(&inventory.LotTransaction{}).
		Select(`product_id,
			COALESCE(SUM(quantity) FILTER (WHERE transaction_type = ?), 0) AS outbound_total,
			MAX(transaction_date) FILTER (WHERE transaction_type = ?) AS last_inbound_at`,
			inventory.TransactionTypeOutbound, inventory.TransactionTypeInbound).
		Where("lot_id IS NULL").
		Where("transaction_date >= ?", since).
		Group("product_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	summaries := make(map[uuid.UUID]inventory.ProductMovementSummary, len(rows))
	for _, row := range rows {
		summaries[row.ProductID] = inventory.ProductMovementSummary{
			OutboundTotal: row.OutboundTotal,
			LastInboundAt: row.LastInboundAt,
		}
	}
	return summaries, nil
}

// applyFilter applies filter options to the query
func (r *GormLotTransactionRepository) applyFilter(query *gorm.DB, filter inventory.TransactionFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, TransactionSortFields, "transaction_date")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormLotTransactionRepository) applyFilterWithoutPagination(query *gorm.DB, filter inventory.TransactionFilter) *gorm.DB {
	if filter.TransactionType != nil {
		query = query.Where("transaction_type = ?", *filter.TransactionType)
	}
	if filter.StartDate != nil {
		query = query.Where("transaction_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("transaction_date <= ?", *filter.EndDate)
	}
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("reference ILIKE ? OR notes ILIKE ?", searchPattern, searchPattern)
	}

	return query
}

// Ensure GormLotTransactionRepository implements LotTransactionRepository
var _ inventory.LotTransactionRepository = (*GormLotTransactionRepository)(nil)
