package inventory

import (
	"context"

	"github.com/erurang/wooyangcrm-sub010/internal/domain/catalog"
	"github.com/erurang/wooyangcrm-sub010/internal/domain/inventory"
)

// TransactionScope provides transactional access to the inventory
// repositories. All repository operations inside one Execute call share the
// same database transaction and commit or roll back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories a LOT
// operation touches, all scoped to the same transaction. Splits and ledger
// entries are written together with the LOT and product rows they describe;
// nothing here is ever written outside a scope.
type TransactionalRepositories interface {
	// LotRepo returns the LOT repository scoped to the current transaction
	LotRepo() inventory.LotRepository
	// SplitRepo returns the split record repository scoped to the current transaction
	SplitRepo() inventory.LotSplitRepository
	// LedgerRepo returns the ledger repository scoped to the current transaction
	LedgerRepo() inventory.LotTransactionRepository
	// ProductRepo returns the product repository scoped to the current transaction
	ProductRepo() catalog.ProductRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful for tests.
type NoOpTransactionScope struct {
	lotRepo     inventory.LotRepository
	splitRepo   inventory.LotSplitRepository
	ledgerRepo  inventory.LotTransactionRepository
	productRepo catalog.ProductRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(
	lotRepo inventory.LotRepository,
	splitRepo inventory.LotSplitRepository,
	ledgerRepo inventory.LotTransactionRepository,
	productRepo catalog.ProductRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		lotRepo:     lotRepo,
		splitRepo:   splitRepo,
		ledgerRepo:  ledgerRepo,
		productRepo: productRepo,
	}
}

// Execute runs the function directly
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// LotRepo returns the LOT repository
func (s *NoOpTransactionScope) LotRepo() inventory.LotRepository {
	return s.lotRepo
}

// SplitRepo returns the split record repository
func (s *NoOpTransactionScope) SplitRepo() inventory.LotSplitRepository {
	return s.splitRepo
}

// LedgerRepo returns the ledger repository
func (s *NoOpTransactionScope) LedgerRepo() inventory.LotTransactionRepository {
	return s.ledgerRepo
}

// ProductRepo returns the product repository
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository {
	return s.productRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
