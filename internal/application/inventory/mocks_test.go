package inventory

import (
	"context"
	"time"

	"github.com/erurang/wooyangcrm-sub010/internal/domain/catalog"
	"github.com/erurang/wooyangcrm-sub010/internal/domain/inventory"
	"github.com/erurang/wooyangcrm-sub010/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockLotRepository is a mock implementation of LotRepository
type MockLotRepository struct {
	mock.Mock
}

func (m *MockLotRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Lot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Lot), args.Error(1)
}

func (m *MockLotRepository) FindByLotNumber(ctx context.Context, lotNumber string) (*inventory.Lot, error) {
	args := m.Called(ctx, lotNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Lot), args.Error(1)
}

func (m *MockLotRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]inventory.Lot, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]inventory.Lot), args.Error(1)
}

func (m *MockLotRepository) FindAll(ctx context.Context, filter inventory.LotFilter) ([]inventory.Lot, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inventory.Lot), args.Error(1)
}

func (m *MockLotRepository) FindAvailableFIFO(ctx context.Context, productID uuid.UUID) ([]inventory.Lot, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]inventory.Lot), args.Error(1)
}

func (m *MockLotRepository) Save(ctx context.Context, lot *inventory.Lot) error {
	args := m.Called(ctx, lot)
	return args.Error(0)
}

func (m *MockLotRepository) SaveWithLock(ctx context.Context, lot *inventory.Lot) error {
	args := m.Called(ctx, lot)
	return args.Error(0)
}

func (m *MockLotRepository) Count(ctx context.Context, filter inventory.LotFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockLotSplitRepository is a mock implementation of LotSplitRepository
type MockLotSplitRepository struct {
	mock.Mock
}

func (m *MockLotSplitRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.LotSplit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.LotSplit), args.Error(1)
}

func (m *MockLotSplitRepository) FindBySource(ctx context.Context, sourceLotID uuid.UUID) ([]inventory.LotSplit, error) {
	args := m.Called(ctx, sourceLotID)
	return args.Get(0).([]inventory.LotSplit), args.Error(1)
}

func (m *MockLotSplitRepository) FindByChild(ctx context.Context, lotID uuid.UUID) ([]inventory.LotSplit, error) {
	args := m.Called(ctx, lotID)
	return args.Get(0).([]inventory.LotSplit), args.Error(1)
}

func (m *MockLotSplitRepository) FindInvolving(ctx context.Context, lotIDs []uuid.UUID) ([]inventory.LotSplit, error) {
	args := m.Called(ctx, lotIDs)
	return args.Get(0).([]inventory.LotSplit), args.Error(1)
}

func (m *MockLotSplitRepository) Create(ctx context.Context, split *inventory.LotSplit) error {
	args := m.Called(ctx, split)
	return args.Error(0)
}

// MockLedgerRepository is a mock implementation of LotTransactionRepository
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.LotTransaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.LotTransaction), args.Error(1)
}

func (m *MockLedgerRepository) FindByLot(ctx context.Context, lotID uuid.UUID, filter inventory.TransactionFilter) ([]inventory.LotTransaction, error) {
	args := m.Called(ctx, lotID, filter)
	return args.Get(0).([]inventory.LotTransaction), args.Error(1)
}

func (m *MockLedgerRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter inventory.TransactionFilter) ([]inventory.LotTransaction, error) {
	args := m.Called(ctx, productID, filter)
	return args.Get(0).([]inventory.LotTransaction), args.Error(1)
}

func (m *MockLedgerRepository) Create(ctx context.Context, tx *inventory.LotTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockLedgerRepository) CreateBatch(ctx context.Context, txs []*inventory.LotTransaction) error {
	args := m.Called(ctx, txs)
	return args.Error(0)
}

func (m *MockLedgerRepository) CountByLot(ctx context.Context, lotID uuid.UUID, filter inventory.TransactionFilter) (int64, error) {
	args := m.Called(ctx, lotID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) CountByProduct(ctx context.Context, productID uuid.UUID, filter inventory.TransactionFilter) (int64, error) {
	args := m.Called(ctx, productID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) SummarizeMovementSince(ctx context.Context, since time.Time) (map[uuid.UUID]inventory.ProductMovementSummary, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(map[uuid.UUID]inventory.ProductMovementSummary), args.Error(1)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCode(ctx context.Context, code string) (*catalog.Product, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindActive(ctx context.Context, productType *catalog.ProductType) ([]catalog.Product, error) {
	args := m.Called(ctx, productType)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) SaveWithLock(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockLotNumberAllocator is a mock implementation of LotNumberAllocator
type MockLotNumberAllocator struct {
	mock.Mock
}

func (m *MockLotNumberAllocator) Next(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
