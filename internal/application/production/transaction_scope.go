package production

import (
	"context"

	"github.com/erurang/wooyangcrm-sub010/internal/domain/catalog"
	"github.com/erurang/wooyangcrm-sub010/internal/domain/inventory"
	"github.com/erurang/wooyangcrm-sub010/internal/domain/production"
)

// TransactionScope provides transactional access to the repositories a
// production booking touches. Consumption rows, ledger entries and material
// stock updates commit or roll back together.
type TransactionScope interface {
	// Execute runs the given function within a database transaction
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides the production-side repositories, all
// scoped to the same transaction
type TransactionalRepositories interface {
	// RecordRepo returns the production record repository scoped to the current transaction
	RecordRepo() production.RecordRepository
	// ConsumptionRepo returns the consumption repository scoped to the current transaction
	ConsumptionRepo() production.ConsumptionRepository
	// LedgerRepo returns the inventory ledger repository scoped to the current transaction
	LedgerRepo() inventory.LotTransactionRepository
	// ProductRepo returns the product repository scoped to the current transaction
	ProductRepo() catalog.ProductRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful for tests.
type NoOpTransactionScope struct {
	recordRepo      production.RecordRepository
	consumptionRepo production.ConsumptionRepository
	ledgerRepo      inventory.LotTransactionRepository
	productRepo     catalog.ProductRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(
	recordRepo production.RecordRepository,
	consumptionRepo production.ConsumptionRepository,
	ledgerRepo inventory.LotTransactionRepository,
	productRepo catalog.ProductRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		recordRepo:      recordRepo,
		consumptionRepo: consumptionRepo,
		ledgerRepo:      ledgerRepo,
		productRepo:     productRepo,
	}
}

// Execute runs the function directly
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// RecordRepo returns the production record repository
func (s *NoOpTransactionScope) RecordRepo() production.RecordRepository {
	return s.recordRepo
}

// ConsumptionRepo returns the consumption repository
func (s *NoOpTransactionScope) ConsumptionRepo() production.ConsumptionRepository {
	return s.consumptionRepo
}

// LedgerRepo returns the inventory ledger repository
func (s *NoOpTransactionScope) LedgerRepo() inventory.LotTransactionRepository {
	return s.ledgerRepo
}

// ProductRepo returns the product repository
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository {
	return s.productRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
