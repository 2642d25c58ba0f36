package production

import (
	"context"
	"time"

	"github.com/erurang/wooyangcrm-sub010/internal/domain/catalog"
	"github.com/erurang/wooyangcrm-sub010/internal/domain/inventory"
	"github.com/erurang/wooyangcrm-sub010/internal/domain/production"
	"github.com/erurang/wooyangcrm-sub010/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockRecordRepository is a mock implementation of RecordRepository
type MockRecordRepository struct {
	mock.Mock
}

func (m *MockRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*production.ProductionRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*production.ProductionRecord), args.Error(1)
}

func (m *MockRecordRepository) FindByIDWithConsumptions(ctx context.Context, id uuid.UUID) (*production.ProductionRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*production.ProductionRecord), args.Error(1)
}

func (m *MockRecordRepository) FindAll(ctx context.Context, filter production.RecordFilter) ([]production.ProductionRecord, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]production.ProductionRecord), args.Error(1)
}

func (m *MockRecordRepository) Save(ctx context.Context, record *production.ProductionRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockRecordRepository) SaveWithLock(ctx context.Context, record *production.ProductionRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockRecordRepository) Count(ctx context.Context, filter production.RecordFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockConsumptionRepository is a mock implementation of ConsumptionRepository
type MockConsumptionRepository struct {
	mock.Mock
}

func (m *MockConsumptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*production.ProductionConsumption, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*production.ProductionConsumption), args.Error(1)
}

func (m *MockConsumptionRepository) FindByRecord(ctx context.Context, recordID uuid.UUID) ([]production.ProductionConsumption, error) {
	args := m.Called(ctx, recordID)
	return args.Get(0).([]production.ProductionConsumption), args.Error(1)
}

func (m *MockConsumptionRepository) FindByMaterial(ctx context.Context, materialID uuid.UUID, filter shared.Filter) ([]production.ProductionConsumption, error) {
	args := m.Called(ctx, materialID, filter)
	return args.Get(0).([]production.ProductionConsumption), args.Error(1)
}

func (m *MockConsumptionRepository) Create(ctx context.Context, consumption *production.ProductionConsumption) error {
	args := m.Called(ctx, consumption)
	return args.Error(0)
}

// MockLedgerRepository is a mock implementation of inventory.LotTransactionRepository
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
